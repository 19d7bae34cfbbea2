package service

import (
	"context"

	"activity-service/internal/dto"
	"activity-service/internal/repository"
	"activity-service/internal/response"
)

// ActivityService defines the interface for read-only activity queries
type ActivityService interface {
	ListActivities(ctx context.Context) (dto.ActivityListResponse, error)
}

// activityServiceImpl is the implementation of ActivityService
type activityServiceImpl struct {
	activityRepo repository.ActivityRepository
}

// NewActivityService creates a new instance of ActivityService
func NewActivityService(activityRepo repository.ActivityRepository) ActivityService {
	return &activityServiceImpl{activityRepo: activityRepo}
}

// ListActivities returns every activity keyed by name with its live participant count
func (s *activityServiceImpl) ListActivities(ctx context.Context) (dto.ActivityListResponse, error) {
	summaries, err := s.activityRepo.ListWithParticipantCounts(ctx)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to list activities", err.Error())
	}

	activities := make(dto.ActivityListResponse, len(summaries))
	for _, summary := range summaries {
		activities[summary.Name] = dto.ActivityResponse{
			Description:     summary.Description,
			Schedule:        summary.Schedule,
			MaxParticipants: summary.MaxParticipants,
			Participants:    summary.ParticipantCount,
		}
	}
	return activities, nil
}
