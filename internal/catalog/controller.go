package catalog

import (
	"errors"
	"net/http"

	"offerly/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller struct {
	service CatalogService
}

func NewController(service CatalogService) *Controller {
	return &Controller{service: service}
}

func (c *Controller) GetPackages(ctx *gin.Context) {
	pkgs, err := c.service.ListPackages(ctx.Request.Context())
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to get packages", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Packages retrieved successfully", ToPackageResponses(pkgs), nil)
}

func (c *Controller) GetPackage(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid package ID", nil, err.Error())
		return
	}

	pkg, err := c.service.GetPackage(ctx.Request.Context(), id)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, ErrNotFound) {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(ctx, "error", statusCode, "Failed to get package", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Package retrieved successfully", ToPackageResponse(*pkg), nil)
}

func (c *Controller) GetServices(ctx *gin.Context) {
	svcs, err := c.service.ListServices(ctx.Request.Context())
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to get services", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Services retrieved successfully", ToServiceResponses(svcs), nil)
}

func (c *Controller) GetSeasons(ctx *gin.Context) {
	seasons, err := c.service.ListSeasons(ctx.Request.Context())
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to get seasons", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Seasons retrieved successfully", seasons, nil)
}

func (c *Controller) GetVenues(ctx *gin.Context) {
	venues, err := c.service.ListVenues(ctx.Request.Context())
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to get venues", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Venues retrieved successfully", venues, nil)
}
