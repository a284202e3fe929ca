package services

import (
	"context"
	"math"

	"github.com/rakib7/projectpulse/backend/internal/repositories"
	"go.uber.org/zap"
)

// ProgressService keeps Project.Progress consistent with the completion
// state of the project's milestones. Recalculation is best-effort: the
// primary milestone mutation has already committed by the time it runs, so
// every failure here is logged and swallowed rather than surfaced. A stale
// progress value self-heals on the next recalculation.
type ProgressService struct {
	projectRepository   repositories.ProjectRepository
	milestoneRepository repositories.MilestoneRepository
	logger              *zap.Logger
}

// NewProgressService creates a new ProgressService
func NewProgressService(projectRepo repositories.ProjectRepository, milestoneRepo repositories.MilestoneRepository, logger *zap.Logger) *ProgressService {
	return &ProgressService{
		projectRepository:   projectRepo,
		milestoneRepository: milestoneRepo,
		logger:              logger,
	}
}

// ComputeProgress returns the completion percentage for a milestone set,
// rounding half up. An empty set counts as 0.
func ComputeProgress(completed, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(completed) / float64(total)))
}

// Recalculate recomputes the project's progress from its current milestone
// set and persists the result with an owner-filtered update. It returns
// nothing on purpose: callers must not be able to fail because of it.
func (s *ProgressService) Recalculate(ctx context.Context, ownerID, projectID uint) {
	milestones, err := s.milestoneRepository.GetMilestonesByProjectID(projectID)
	if err != nil {
		s.logger.Error("progress recalculation: failed to load milestones",
			zap.Uint("project_id", projectID),
			zap.Error(err),
		)
		return
	}

	completed := 0
	for _, m := range milestones {
		if m.IsCompleted {
			completed++
		}
	}
	progress := ComputeProgress(completed, len(milestones))

	if err := s.projectRepository.UpdateProgress(projectID, ownerID, progress); err != nil {
		s.logger.Error("progress recalculation: failed to persist progress",
			zap.Uint("project_id", projectID),
			zap.Uint("owner_id", ownerID),
			zap.Int("progress", progress),
			zap.Error(err),
		)
		return
	}

	s.logger.Info("project progress recalculated",
		zap.Uint("project_id", projectID),
		zap.Int("progress", progress),
		zap.Int("completed", completed),
		zap.Int("total", len(milestones)),
	)
}
