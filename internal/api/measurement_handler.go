package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Mteo06/gym-tracker-pro/internal/service"

	"github.com/gin-gonic/gin"
)

// MeasurementHandler holds the measurement service dependency.
type MeasurementHandler struct {
	measurementService service.MeasurementService
}

// NewMeasurementHandler creates a new MeasurementHandler.
func NewMeasurementHandler(measurementService service.MeasurementService) *MeasurementHandler {
	return &MeasurementHandler{measurementService: measurementService}
}

type AddMeasurementRequest struct {
	WeightKg float64 `json:"weightKg" binding:"required"`
	Date     string  `json:"date"` // YYYY-MM-DD, defaults to today when empty
}

// AddMeasurement appends a body-weight entry.
func (h *MeasurementHandler) AddMeasurement(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req AddMeasurementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	measurement, err := h.measurementService.AddMeasurement(c.Request.Context(), userID, req.WeightKg, req.Date)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrWeightOutOfRange),
			errors.Is(err, service.ErrInvalidDate),
			errors.Is(err, service.ErrMeasurementInFuture):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to save measurement")
		}
		return
	}

	c.JSON(http.StatusCreated, measurement)
}

// GetMeasurements returns the full weight timeseries, oldest first, plus
// the current-vs-initial trend.
func (h *MeasurementHandler) GetMeasurements(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	result, err := h.measurementService.GetMeasurements(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to load measurements")
		return
	}

	c.JSON(http.StatusOK, result)
}
