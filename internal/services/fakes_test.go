package services

import (
	"context"
	"fmt"

	"github.com/rakib7/projectpulse/backend/internal/models"
	"gorm.io/gorm"
)

// fakeProjectRepository is an in-memory ProjectRepository that records
// progress writes.
type fakeProjectRepository struct {
	projects        map[uint]*models.Project
	progressWrites  int
	failUpdateError error
}

func newFakeProjectRepository() *fakeProjectRepository {
	return &fakeProjectRepository{projects: make(map[uint]*models.Project)}
}

func (r *fakeProjectRepository) CreateProject(project *models.Project) error {
	if project.ID == 0 {
		project.ID = uint(len(r.projects) + 1)
	}
	r.projects[project.ID] = project
	return nil
}

func (r *fakeProjectRepository) GetProjectByIDAndOwner(id, ownerID uint) (*models.Project, error) {
	p, ok := r.projects[id]
	if !ok || p.UserID != ownerID {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *fakeProjectRepository) GetProjectByShareID(shareID string) (*models.Project, error) {
	for _, p := range r.projects {
		if p.IsPublic && p.PublicShareID == shareID {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeProjectRepository) GetProjectsByOwner(ownerID uint) ([]models.Project, error) {
	var out []models.Project
	for _, p := range r.projects {
		if p.UserID == ownerID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeProjectRepository) UpdateProject(project *models.Project, ownerID uint) error {
	existing, ok := r.projects[project.ID]
	if !ok || existing.UserID != ownerID {
		return gorm.ErrRecordNotFound
	}
	r.projects[project.ID] = project
	return nil
}

func (r *fakeProjectRepository) UpdateProgress(id, ownerID uint, progress int) error {
	if r.failUpdateError != nil {
		return r.failUpdateError
	}
	p, ok := r.projects[id]
	if !ok || p.UserID != ownerID {
		return gorm.ErrRecordNotFound
	}
	p.Progress = progress
	r.progressWrites++
	return nil
}

func (r *fakeProjectRepository) DeleteProject(id, ownerID uint) error {
	p, ok := r.projects[id]
	if !ok || p.UserID != ownerID {
		return gorm.ErrRecordNotFound
	}
	delete(r.projects, id)
	return nil
}

// fakeMilestoneRepository is an in-memory MilestoneRepository.
type fakeMilestoneRepository struct {
	milestones map[uint]*models.Milestone
	nextID     uint
	listError  error
}

func newFakeMilestoneRepository() *fakeMilestoneRepository {
	return &fakeMilestoneRepository{milestones: make(map[uint]*models.Milestone), nextID: 1}
}

func (r *fakeMilestoneRepository) CreateMilestone(milestone *models.Milestone) error {
	milestone.ID = r.nextID
	r.nextID++
	r.milestones[milestone.ID] = milestone
	return nil
}

func (r *fakeMilestoneRepository) GetMilestoneByID(id uint) (*models.Milestone, error) {
	m, ok := r.milestones[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return m, nil
}

func (r *fakeMilestoneRepository) GetMilestonesByProjectID(projectID uint) ([]models.Milestone, error) {
	if r.listError != nil {
		return nil, r.listError
	}
	var out []models.Milestone
	for _, m := range r.milestones {
		if m.ProjectID == projectID {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (r *fakeMilestoneRepository) UpdateMilestone(milestone *models.Milestone) error {
	if _, ok := r.milestones[milestone.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.milestones[milestone.ID] = milestone
	return nil
}

func (r *fakeMilestoneRepository) DeleteMilestone(id uint) error {
	if _, ok := r.milestones[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.milestones, id)
	return nil
}

// fakeFeedRepository records created feed items in order.
type fakeFeedRepository struct {
	items       []*models.FeedItem
	createError error
}

func (r *fakeFeedRepository) CreateFeedItem(ctx context.Context, item *models.FeedItem) error {
	if r.createError != nil {
		return r.createError
	}
	r.items = append(r.items, item)
	return nil
}

func (r *fakeFeedRepository) GetFeedItemByID(ctx context.Context, id string) (*models.FeedItem, error) {
	for _, item := range r.items {
		if item.ID.Hex() == id {
			return item, nil
		}
	}
	return nil, fmt.Errorf("feed item not found")
}

func (r *fakeFeedRepository) GetAllFeedItems(ctx context.Context, skip, limit int64) ([]models.FeedItem, error) {
	var out []models.FeedItem
	for _, item := range r.items {
		out = append(out, *item)
	}
	return out, nil
}

func (r *fakeFeedRepository) GetFeedItemsByProjectID(ctx context.Context, projectID uint) ([]models.FeedItem, error) {
	var out []models.FeedItem
	for _, item := range r.items {
		if item.ProjectID == projectID {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (r *fakeFeedRepository) CountFeedItems(ctx context.Context) (int64, error) {
	return int64(len(r.items)), nil
}
