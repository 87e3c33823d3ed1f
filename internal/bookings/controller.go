package bookings

import (
	"net/http"
	"time"

	"offerly/internal/availability"
	"offerly/internal/catalog"
	"offerly/internal/scheduling"
	"offerly/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller struct {
	service Service
	checker *availability.Checker
	catalog catalog.Provider
	tokens  availability.TokenSource
}

func NewController(service Service, checker *availability.Checker, catalogProvider catalog.Provider) *Controller {
	return &Controller{service: service, checker: checker, catalog: catalogProvider}
}

// AvailabilityRequest is the payload for an ad-hoc availability check.
type AvailabilityRequest struct {
	Date      string `json:"date" binding:"required,datetime=2006-01-02"`
	StartTime string `json:"start_time" binding:"required,clocktime"`
	EndTime   string `json:"end_time" binding:"required,clocktime"`
}

func (c *Controller) CheckAvailability(ctx *gin.Context) {
	venueID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid venue ID", nil, err.Error())
		return
	}

	var req AvailabilityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	venue, err := c.catalog.GetVenue(ctx.Request.Context(), venueID)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to resolve venue", nil, err.Error())
		return
	}
	if venue == nil {
		response.RespondJSON(ctx, "error", http.StatusNotFound, "Venue not found", nil, "unknown venue")
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid date", nil, err.Error())
		return
	}
	start, err := scheduling.ParseClock(req.StartTime)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid start time", nil, err.Error())
		return
	}
	end, err := scheduling.ParseClock(req.EndTime)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid end time", nil, err.Error())
		return
	}

	result, err := c.checker.Check(ctx.Request.Context(), *venue, date, start, end, c.tokens.Next())
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Availability check failed", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Availability checked", result, nil)
}

func (c *Controller) GetBookedHours(ctx *gin.Context) {
	venueID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid venue ID", nil, err.Error())
		return
	}

	date, err := time.Parse("2006-01-02", ctx.Query("date"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid or missing date", nil, err.Error())
		return
	}

	hours, err := c.service.GetVenueBookedHours(ctx.Request.Context(), venueID, date)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to get booked hours", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Booked hours retrieved successfully", gin.H{
		"venue_id": venueID,
		"date":     date.Format("2006-01-02"),
		"hours":    hours,
	}, nil)
}
