package api

import (
	"net/http"

	"github.com/Mteo06/gym-tracker-pro/internal/service"

	"github.com/gin-gonic/gin"
)

// HistoryHandler holds the history service dependency.
type HistoryHandler struct {
	historyService service.HistoryService
}

// NewHistoryHandler creates a new HistoryHandler.
func NewHistoryHandler(historyService service.HistoryService) *HistoryHandler {
	return &HistoryHandler{historyService: historyService}
}

// GetHistory returns the caller's recent sessions, newest first, with
// aggregate stats. Optional query params: planId (exact match) and q
// (case-insensitive substring over notes and plan name).
func (h *HistoryHandler) GetHistory(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	filter := service.HistoryFilter{
		PlanID: c.Query("planId"),
		Search: c.Query("q"),
	}

	result, err := h.historyService.GetHistory(c.Request.Context(), userID, filter)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to load workout history")
		return
	}

	c.JSON(http.StatusOK, result)
}
