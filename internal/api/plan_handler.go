package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Mteo06/gym-tracker-pro/internal/domain"
	"github.com/Mteo06/gym-tracker-pro/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlanHandler holds the plan service dependency.
type PlanHandler struct {
	planService service.PlanService
}

// NewPlanHandler creates a new PlanHandler.
func NewPlanHandler(planService service.PlanService) *PlanHandler {
	return &PlanHandler{planService: planService}
}

// --- Request/Response Structs ---

type NewExerciseRequest struct {
	Weekday      domain.Weekday `json:"weekday" binding:"required"`
	Name         string         `json:"name" binding:"required"`
	TargetSets   int            `json:"targetSets" binding:"required,gt=0"`
	TargetReps   string         `json:"targetReps" binding:"required"`
	TargetWeight *float64       `json:"targetWeight" binding:"omitempty,gte=0"`
	RestTime     string         `json:"restTime"`
	MuscleGroup  string         `json:"muscleGroup"`
	Notes        string         `json:"notes"`
}

type CreatePlanRequest struct {
	Name        string               `json:"name" binding:"required"`
	Description string               `json:"description"`
	Weekdays    []domain.Weekday     `json:"weekdays" binding:"required,min=1"`
	Exercises   []NewExerciseRequest `json:"exercises" binding:"required,min=1,dive"`
}

type SetActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

// --- Handler Methods ---

// ListPlans returns all of the caller's plans, newest first, each with its
// exercise count.
func (h *PlanHandler) ListPlans(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	plans, err := h.planService.ListPlans(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to load training plans")
		return
	}

	c.JSON(http.StatusOK, plans)
}

// CreatePlan creates a plan with its exercises. The new plan becomes the
// active one.
func (h *PlanHandler) CreatePlan(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	exercises := make([]service.NewExercise, len(req.Exercises))
	for i, ex := range req.Exercises {
		exercises[i] = service.NewExercise{
			Weekday:      ex.Weekday,
			Name:         ex.Name,
			TargetSets:   ex.TargetSets,
			TargetReps:   ex.TargetReps,
			TargetWeight: ex.TargetWeight,
			RestTime:     ex.RestTime,
			MuscleGroup:  ex.MuscleGroup,
			Notes:        ex.Notes,
		}
	}

	plan, err := h.planService.CreatePlan(c.Request.Context(), userID, req.Name, req.Description, req.Weekdays, exercises)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPlanNameRequired),
			errors.Is(err, service.ErrNoWeekdaysSelected),
			errors.Is(err, service.ErrNoExercises),
			errors.Is(err, service.ErrExerciseDayInvalid):
			abortWithError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrPlanExercisesInsertFailed):
			// The plan document exists but its exercises do not.
			abortWithError(c, http.StatusInternalServerError, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to create training plan")
		}
		return
	}

	c.JSON(http.StatusCreated, plan)
}

// GetPlan returns one plan with all its exercises.
func (h *PlanHandler) GetPlan(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	planID, err := primitive.ObjectIDFromHex(c.Param("planId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid plan ID format")
		return
	}

	detail, err := h.planService.GetPlanDetail(c.Request.Context(), userID, planID)
	if err != nil {
		if errors.Is(err, service.ErrPlanNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to load training plan")
		}
		return
	}

	c.JSON(http.StatusOK, detail)
}

// SetActive switches a plan's active flag. Activating a plan deactivates
// every other plan of the same user.
func (h *PlanHandler) SetActive(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	planID, err := primitive.ObjectIDFromHex(c.Param("planId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid plan ID format")
		return
	}

	var req SetActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	plan, err := h.planService.SetPlanActive(c.Request.Context(), userID, planID, *req.Active)
	if err != nil {
		if errors.Is(err, service.ErrPlanNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to update training plan")
		}
		return
	}

	c.JSON(http.StatusOK, plan)
}

// DeletePlan removes a plan and its exercises. Logged history referencing
// the plan is kept.
func (h *PlanHandler) DeletePlan(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	planID, err := primitive.ObjectIDFromHex(c.Param("planId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid plan ID format")
		return
	}

	if err := h.planService.DeletePlan(c.Request.Context(), userID, planID); err != nil {
		if errors.Is(err, service.ErrPlanNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to delete training plan")
		}
		return
	}

	c.Status(http.StatusNoContent)
}
