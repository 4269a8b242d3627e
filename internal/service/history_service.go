package service

import (
	"context"
	"strings"

	"github.com/Mteo06/gym-tracker-pro/internal/domain"
	"github.com/Mteo06/gym-tracker-pro/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// historyFetchLimit caps the history working set to the most recent sessions;
// filtering and aggregation run in memory over that slice.
const historyFetchLimit = 100

// HistoryFilter narrows the fetched sessions. The zero value matches
// everything: an empty PlanID means "all plans", an empty Search matches any
// session.
type HistoryFilter struct {
	PlanID string // Exact plan ID match
	Search string // Case-insensitive substring over notes and plan name
}

// SessionEntry is one history row: the session plus display/aggregation
// data derived from its plan and performed sets.
type SessionEntry struct {
	domain.WorkoutSession
	PlanName      string  `json:"planName,omitempty"` // Empty when the plan was deleted
	Volume        float64 `json:"volume"`             // Σ weight×reps over the session's sets
	CompletedSets int     `json:"completedSets"`
	TotalReps     int     `json:"totalReps"`
}

// HistoryStats aggregates the filtered collection.
type HistoryStats struct {
	TotalSessions  int     `json:"totalSessions"`
	TotalMinutes   int     `json:"totalMinutes"`
	AvgIntensity   float64 `json:"avgIntensity"` // Mean over sessions with a rating, 0 when none
	TotalVolume    float64 `json:"totalVolume"`
	CompletedCount int     `json:"completedCount"` // Sessions with the completion flag set
}

// HistoryResult is the full history view: filtered entries, newest first,
// and their aggregate stats.
type HistoryResult struct {
	Entries []SessionEntry `json:"entries"`
	Stats   HistoryStats   `json:"stats"`
}

// HistoryService reads and aggregates past workout sessions.
type HistoryService interface {
	GetHistory(ctx context.Context, userID primitive.ObjectID, filter HistoryFilter) (*HistoryResult, error)
}

// historyService implements the HistoryService interface.
type historyService struct {
	sessionRepo repository.SessionRepository
	setRepo     repository.SetRepository
	planRepo    repository.PlanRepository
}

// NewHistoryService creates a new instance of historyService.
func NewHistoryService(
	sessionRepo repository.SessionRepository,
	setRepo repository.SetRepository,
	planRepo repository.PlanRepository,
) HistoryService {
	return &historyService{
		sessionRepo: sessionRepo,
		setRepo:     setRepo,
		planRepo:    planRepo,
	}
}

// GetHistory fetches the user's most recent sessions, resolves plan names,
// applies the filter and aggregates the result. All aggregation is O(n) over
// the fetched slice.
func (s *historyService) GetHistory(ctx context.Context, userID primitive.ObjectID, filter HistoryFilter) (*HistoryResult, error) {
	sessions, err := s.sessionRepo.GetByUserID(ctx, userID, historyFetchLimit)
	if err != nil {
		return nil, err
	}

	planNames, err := s.planNamesByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	entries := make([]SessionEntry, 0, len(sessions))
	for _, session := range sessions {
		entry := SessionEntry{WorkoutSession: session}
		if session.PlanID != nil {
			entry.PlanName = planNames[*session.PlanID]
		}
		if !matchesFilter(&entry, filter) {
			continue
		}

		sets, err := s.setRepo.GetBySessionID(ctx, session.ID)
		if err != nil {
			return nil, err
		}
		for _, set := range sets {
			entry.Volume += set.Volume()
			entry.TotalReps += set.Reps
			if set.Completed {
				entry.CompletedSets++
			}
		}

		entries = append(entries, entry)
	}

	return &HistoryResult{
		Entries: entries,
		Stats:   aggregate(entries),
	}, nil
}

func (s *historyService) planNamesByID(ctx context.Context, userID primitive.ObjectID) (map[primitive.ObjectID]string, error) {
	plans, err := s.planRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	names := make(map[primitive.ObjectID]string, len(plans))
	for _, plan := range plans {
		names[plan.ID] = plan.Name
	}
	return names, nil
}

func matchesFilter(entry *SessionEntry, filter HistoryFilter) bool {
	if filter.PlanID != "" {
		if entry.PlanID == nil || entry.PlanID.Hex() != filter.PlanID {
			return false
		}
	}
	if search := strings.ToLower(strings.TrimSpace(filter.Search)); search != "" {
		notes := strings.ToLower(entry.Notes)
		planName := strings.ToLower(entry.PlanName)
		if !strings.Contains(notes, search) && !strings.Contains(planName, search) {
			return false
		}
	}
	return true
}

// aggregate computes the collection stats. Mean intensity only counts
// sessions that carry a rating and yields 0 when none do.
func aggregate(entries []SessionEntry) HistoryStats {
	var stats HistoryStats
	stats.TotalSessions = len(entries)

	intensitySum, intensityCount := 0, 0
	for _, entry := range entries {
		if entry.DurationMinutes != nil {
			stats.TotalMinutes += *entry.DurationMinutes
		}
		if entry.Intensity != nil {
			intensitySum += *entry.Intensity
			intensityCount++
		}
		if entry.Completed {
			stats.CompletedCount++
		}
		stats.TotalVolume += entry.Volume
	}
	if intensityCount > 0 {
		stats.AvgIntensity = float64(intensitySum) / float64(intensityCount)
	}
	return stats
}
