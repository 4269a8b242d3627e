package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/Mteo06/gym-tracker-pro/internal/domain"
	"github.com/Mteo06/gym-tracker-pro/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WorkoutHandler holds the workout service dependency.
type WorkoutHandler struct {
	workoutService service.WorkoutService
}

// NewWorkoutHandler creates a new WorkoutHandler.
func NewWorkoutHandler(workoutService service.WorkoutService) *WorkoutHandler {
	return &WorkoutHandler{workoutService: workoutService}
}

// Today returns the workout view for the current date: the active plan's
// exercises for the day (or a rest-day view) plus per-exercise completion
// state. An optional ?date=YYYY-MM-DD overrides the date.
func (h *WorkoutHandler) Today(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	date := time.Now()
	if raw := c.Query("date"); raw != "" {
		date, err = time.Parse(domain.DateLayout, raw)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
			return
		}
	}

	workout, err := h.workoutService.GetWorkout(c.Request.Context(), userID, date)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to load today's workout")
		return
	}

	c.JSON(http.StatusOK, workout)
}

// ToggleExercise flips an exercise's done state for the current date (or
// ?date=), creating the day's session on first use and recomputing the
// session's completion flag.
func (h *WorkoutHandler) ToggleExercise(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	exerciseID, err := primitive.ObjectIDFromHex(c.Param("exerciseId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid exercise ID format")
		return
	}

	date := time.Now()
	if raw := c.Query("date"); raw != "" {
		date, err = time.Parse(domain.DateLayout, raw)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
			return
		}
	}

	result, err := h.workoutService.ToggleExercise(c.Request.Context(), userID, exerciseID, date)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoActivePlan):
			abortWithError(c, http.StatusConflict, err.Error())
		case errors.Is(err, service.ErrExerciseNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrExerciseNotScheduled):
			abortWithError(c, http.StatusConflict, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to toggle exercise")
		}
		return
	}

	c.JSON(http.StatusOK, result)
}

// Calendar returns one cell per day of the requested month, flagging
// scheduled, trained and completed days.
func (h *WorkoutHandler) Calendar(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	year, err := strconv.Atoi(c.Param("year"))
	if err != nil || year < 1970 || year > 9999 {
		abortWithError(c, http.StatusBadRequest, "Invalid year")
		return
	}
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil || month < 1 || month > 12 {
		abortWithError(c, http.StatusBadRequest, "Invalid month, expected 1-12")
		return
	}

	days, err := h.workoutService.MonthOverview(c.Request.Context(), userID, year, time.Month(month))
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to load calendar")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"year":  year,
		"month": month,
		"days":  days,
	})
}
