package quotes

import (
	"errors"
	"net/http"

	"offerly/internal/catalog"
	"offerly/internal/exclusions"
	"offerly/internal/pricing"
	"offerly/internal/scheduling"
	"offerly/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

func (c *Controller) OpenSession(ctx *gin.Context) {
	var req OpenSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	view, err := c.service.OpenSession(ctx.Request.Context(), req.ClientRef, req.ClientName)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to open session", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Session opened successfully", view, nil)
}

func (c *Controller) GetSession(ctx *gin.Context) {
	view, err := c.service.GetSession(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		c.respondError(ctx, "Failed to get session", err)
		return
	}
	c.respondView(ctx, "Session retrieved successfully", view)
}

func (c *Controller) SetEventDetails(ctx *gin.Context) {
	var req EventDetailsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}
	in, err := req.ToInput()
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	view, err := c.service.SetEventDetails(ctx.Request.Context(), ctx.Param("id"), in)
	if err != nil {
		c.respondError(ctx, "Failed to set event details", err)
		return
	}
	c.respondView(ctx, "Event details set successfully", view)
}

func (c *Controller) SelectPackage(ctx *gin.Context) {
	var req SelectPackageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}
	packageID, err := uuid.Parse(req.PackageID)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid package ID", nil, err.Error())
		return
	}

	view, err := c.service.SelectPackage(ctx.Request.Context(), ctx.Param("id"), packageID, req.NegotiatedBase)
	if err != nil {
		c.respondError(ctx, "Failed to select package", err)
		return
	}
	c.respondView(ctx, "Package selected successfully", view)
}

func (c *Controller) MutateServices(ctx *gin.Context) {
	var req ServiceMutationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	id := ctx.Param("id")
	var (
		view *SessionView
		err  error
	)
	switch req.Action {
	case ServiceActionAdd:
		serviceID, parseErr := parseRequiredID(req.ServiceID)
		if parseErr != nil {
			response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid service ID", nil, parseErr.Error())
			return
		}
		quantity := req.Quantity
		if quantity == 0 {
			quantity = 1
		}
		view, err = c.service.AddService(ctx.Request.Context(), id, serviceID, quantity, req.UnitPriceOverride)

	case ServiceActionRemove:
		serviceID, parseErr := parseRequiredID(req.ServiceID)
		if parseErr != nil {
			response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid service ID", nil, parseErr.Error())
			return
		}
		view, err = c.service.RemoveService(ctx.Request.Context(), id, serviceID)

	case ServiceActionOverride:
		if req.GroupID == "" {
			response.RespondJSON(ctx, "error", http.StatusBadRequest, "Group ID is required", nil, "missing group_id")
			return
		}
		var serviceID *uuid.UUID
		if req.ServiceID != nil {
			parsed, parseErr := uuid.Parse(*req.ServiceID)
			if parseErr != nil {
				response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid service ID", nil, parseErr.Error())
				return
			}
			serviceID = &parsed
		}
		view, err = c.service.SetExclusionOverride(ctx.Request.Context(), id, req.GroupID, serviceID)
	}

	if err != nil {
		c.respondError(ctx, "Failed to update services", err)
		return
	}
	c.respondView(ctx, "Services updated successfully", view)
}

func (c *Controller) ApplyDiscount(ctx *gin.Context) {
	var req DiscountRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	view, err := c.service.ApplyDiscount(ctx.Request.Context(), ctx.Param("id"), req.Discount, req.ServiceFeeRate, req.SeasonAdjustment)
	if err != nil {
		c.respondError(ctx, "Failed to apply discount", err)
		return
	}
	c.respondView(ctx, "Discount applied successfully", view)
}

func (c *Controller) Finalize(ctx *gin.Context) {
	result, err := c.service.Finalize(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		c.respondError(ctx, "Failed to finalize quote", err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Quote finalized successfully", result, nil)
}

func (c *Controller) Calculate(ctx *gin.Context) {
	var req CalculateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}
	in, err := req.ToInput()
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	breakdown, err := c.service.Calculate(ctx.Request.Context(), in)
	if err != nil {
		c.respondError(ctx, "Failed to calculate price", err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Price calculated successfully", breakdown, nil)
}

// respondView surfaces calendar advisories as warnings next to the payload.
func (c *Controller) respondView(ctx *gin.Context, message string, view *SessionView) {
	if len(view.Advisories) > 0 {
		response.RespondJSONWithWarnings(ctx, "success", http.StatusOK, message, view, view.Advisories)
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, message, view, nil)
}

func (c *Controller) respondError(ctx *gin.Context, message string, err error) {
	response.RespondJSON(ctx, "error", statusFor(err), message, nil, err.Error())
}

// statusFor maps the domain error taxonomy onto HTTP status codes.
func statusFor(err error) int {
	var missingExtra *MissingRequiredExtraError
	var venueConflict *VenueConflictError

	switch {
	case errors.Is(err, ErrSessionNotFound), errors.Is(err, catalog.ErrNotFound):
		return http.StatusNotFound
	case errors.As(err, &venueConflict),
		errors.Is(err, ErrSessionFinalized),
		errors.Is(err, ErrCapacityAckRequired),
		errors.Is(err, ErrStaleAvailability):
		return http.StatusConflict
	case errors.As(err, &missingExtra),
		errors.Is(err, ErrInvalidEventDetails),
		errors.Is(err, ErrMissingEventDetails),
		errors.Is(err, ErrMissingPackage),
		errors.Is(err, ErrPackageNotOffered),
		errors.Is(err, scheduling.ErrIllegalScheduleWindow),
		errors.Is(err, scheduling.ErrPackageWindow),
		errors.Is(err, exclusions.ErrExclusionViolation),
		errors.Is(err, exclusions.ErrUnknownService),
		errors.Is(err, pricing.ErrInvalidDiscount),
		errors.Is(err, pricing.ErrInvalidServiceFeeRate):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func parseRequiredID(raw *string) (uuid.UUID, error) {
	if raw == nil {
		return uuid.Nil, errors.New("service_id is required")
	}
	return uuid.Parse(*raw)
}
