package handlers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rakib7/projectpulse/backend/internal/models"
	"gorm.io/gorm"
)

// newFormContext builds an echo context for a browser form post. A non-zero
// userID installs JWT claims the way the auth middleware would.
func newFormContext(t *testing.T, form url.Values, userID uint) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)
	if userID != 0 {
		c.Set("user", &models.JwtCustomClaims{UserID: userID})
	}
	return c, rec
}

// assertRedirect checks the 303 See Other redirect convention used by all
// form handlers.
func assertRedirect(t *testing.T, rec *httptest.ResponseRecorder, wantLocation string) {
	t.Helper()
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("Expected status 303, got %d", rec.Code)
	}
	if got := rec.Header().Get("Location"); got != wantLocation {
		t.Errorf("Expected redirect to %q, got %q", wantLocation, got)
	}
}

type fakeProjectRepository struct {
	projects        map[uint]*models.Project
	nextID          uint
	progressWrites  int
	failUpdateError error
}

func newFakeProjectRepository() *fakeProjectRepository {
	return &fakeProjectRepository{projects: make(map[uint]*models.Project), nextID: 1}
}

func (r *fakeProjectRepository) CreateProject(project *models.Project) error {
	project.ID = r.nextID
	r.nextID++
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

type fakeMilestoneRepository struct {
	milestones map[uint]*models.Milestone
	nextID     uint
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

type fakeUserRepository struct {
	users map[uint]*models.User
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{users: make(map[uint]*models.User)}
}

func (r *fakeUserRepository) CreateUser(user *models.User) error {
	if user.ID == 0 {
		user.ID = uint(len(r.users) + 1)
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepository) GetUserByID(id uint) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *fakeUserRepository) GetUserByEmail(email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepository) GetUserByFirebaseUID(firebaseUID string) (*models.User, error) {
	for _, u := range r.users {
		if u.FirebaseUID == firebaseUID {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepository) UpdateUser(user *models.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.users[user.ID] = user
	return nil
}

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
	for i := len(r.items) - 1; i >= 0; i-- {
		out = append(out, *r.items[i])
	}
	if skip >= int64(len(out)) {
		return nil, nil
	}
	out = out[skip:]
	if int64(len(out)) > limit {
		out = out[:limit]
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

type fakeLikeRepository struct {
	likes []*models.Like
}

func (r *fakeLikeRepository) CreateLike(like *models.Like) error {
	r.likes = append(r.likes, like)
	return nil
}

func (r *fakeLikeRepository) DeleteLike(feedItemID string, userID uint) error {
	for i, l := range r.likes {
		if l.FeedItemID == feedItemID && l.UserID == userID {
			r.likes = append(r.likes[:i], r.likes[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("like not found")
}

func (r *fakeLikeRepository) GetLikesCountByFeedItemID(feedItemID string) (int64, error) {
	var count int64
	for _, l := range r.likes {
		if l.FeedItemID == feedItemID {
			count++
		}
	}
	return count, nil
}

func (r *fakeLikeRepository) HasUserLikedFeedItem(feedItemID string, userID uint) (bool, error) {
	for _, l := range r.likes {
		if l.FeedItemID == feedItemID && l.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

type fakeCommentRepository struct {
	comments map[uint]*models.Comment
	nextID   uint
}

func newFakeCommentRepository() *fakeCommentRepository {
	return &fakeCommentRepository{comments: make(map[uint]*models.Comment), nextID: 1}
}

func (r *fakeCommentRepository) CreateComment(comment *models.Comment) error {
	comment.ID = r.nextID
	r.nextID++
	r.comments[comment.ID] = comment
	return nil
}

func (r *fakeCommentRepository) GetCommentByID(id uint) (*models.Comment, error) {
	cm, ok := r.comments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return cm, nil
}

func (r *fakeCommentRepository) GetCommentsByFeedItemID(feedItemID string) ([]models.Comment, error) {
	var out []models.Comment
	for _, cm := range r.comments {
		if cm.FeedItemID == feedItemID {
			out = append(out, *cm)
		}
	}
	return out, nil
}

func (r *fakeCommentRepository) GetCommentsCountByFeedItemID(feedItemID string) (int64, error) {
	var count int64
	for _, cm := range r.comments {
		if cm.FeedItemID == feedItemID {
			count++
		}
	}
	return count, nil
}

func (r *fakeCommentRepository) UpdateComment(comment *models.Comment) error {
	if _, ok := r.comments[comment.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.comments[comment.ID] = comment
	return nil
}

func (r *fakeCommentRepository) DeleteComment(id uint) error {
	if _, ok := r.comments[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.comments, id)
	return nil
}
