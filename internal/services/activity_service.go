package services

import (
	"context"

	"github.com/rakib7/projectpulse/backend/internal/models"
	"github.com/rakib7/projectpulse/backend/internal/repositories"
	"go.uber.org/zap"
)

// ActivityService records feed items for milestone lifecycle events. Like
// progress recalculation it is best-effort: emission failures are logged,
// never retried, and never propagated to the mutation that triggered them.
type ActivityService struct {
	feedRepository repositories.FeedRepository
	logger         *zap.Logger
}

// NewActivityService creates a new ActivityService
func NewActivityService(feedRepo repositories.FeedRepository, logger *zap.Logger) *ActivityService {
	return &ActivityService{
		feedRepository: feedRepo,
		logger:         logger,
	}
}

// MilestoneCreated emits a milestone_created feed item. Creation always
// emits exactly one event.
func (s *ActivityService) MilestoneCreated(ctx context.Context, actor *models.User, project *models.Project, milestone *models.Milestone) {
	s.emit(ctx, models.FeedEventMilestoneCreated, actor, project, milestone)
}

// MilestoneUpdated emits a milestone_completed feed item if and only if the
// completion flag transitioned from false to true in this update. The caller
// must supply the prior completion state; the update statement alone cannot
// tell a re-save of an already-completed milestone from a fresh completion.
func (s *ActivityService) MilestoneUpdated(ctx context.Context, actor *models.User, project *models.Project, milestone *models.Milestone, wasCompleted bool) {
	if wasCompleted || !milestone.IsCompleted {
		return
	}
	s.emit(ctx, models.FeedEventMilestoneCompleted, actor, project, milestone)
}

func (s *ActivityService) emit(ctx context.Context, eventType string, actor *models.User, project *models.Project, milestone *models.Milestone) {
	var actorID uint
	if actor != nil {
		actorID = actor.ID
	}

	item := &models.FeedItem{
		ProjectID:   project.ID,
		MilestoneID: milestone.ID,
		UserID:      actorID,
		Type:        eventType,
		Data: models.FeedItemData{
			MilestoneTitle: milestone.Title,
			ProjectName:    project.Name,
			UserName:       actor.DisplayName(),
		},
	}

	if err := s.feedRepository.CreateFeedItem(ctx, item); err != nil {
		s.logger.Error("activity emission failed",
			zap.String("type", eventType),
			zap.Uint("project_id", project.ID),
			zap.Uint("milestone_id", milestone.ID),
			zap.Error(err),
		)
	}
}
