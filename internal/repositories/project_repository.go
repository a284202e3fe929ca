package repositories

import (
	"time"

	"github.com/rakib7/projectpulse/backend/internal/models"
	"gorm.io/gorm"
)

// ProjectRepository defines the interface for project data operations.
// Every mutating operation carries an owner filter: a mismatch between id and
// ownerID affects zero rows and is reported as gorm.ErrRecordNotFound, so
// callers cannot tell a foreign project from a missing one.
type ProjectRepository interface {
	CreateProject(project *models.Project) error
	GetProjectByIDAndOwner(id, ownerID uint) (*models.Project, error)
	GetProjectByShareID(shareID string) (*models.Project, error)
	GetProjectsByOwner(ownerID uint) ([]models.Project, error)
	UpdateProject(project *models.Project, ownerID uint) error
	UpdateProgress(id, ownerID uint, progress int) error
	DeleteProject(id, ownerID uint) error
}

// PostgresProjectRepository implements ProjectRepository for PostgreSQL
type PostgresProjectRepository struct {
	db *gorm.DB
}

// NewPostgresProjectRepository creates a new PostgresProjectRepository
func NewPostgresProjectRepository(db *gorm.DB) *PostgresProjectRepository {
	return &PostgresProjectRepository{db: db}
}

// CreateProject creates a new project in PostgreSQL
func (r *PostgresProjectRepository) CreateProject(project *models.Project) error {
	return r.db.Create(project).Error
}

// GetProjectByIDAndOwner retrieves a project by ID scoped to its owner
func (r *PostgresProjectRepository) GetProjectByIDAndOwner(id, ownerID uint) (*models.Project, error) {
	var project models.Project
	if err := r.db.Where("id = ? AND user_id = ?", id, ownerID).First(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// GetProjectByShareID retrieves a public project by its share token
func (r *PostgresProjectRepository) GetProjectByShareID(shareID string) (*models.Project, error) {
	var project models.Project
	if err := r.db.Where("public_share_id = ? AND is_public = true", shareID).First(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// GetProjectsByOwner retrieves all projects of a user, newest first
func (r *PostgresProjectRepository) GetProjectsByOwner(ownerID uint) ([]models.Project, error) {
	var projects []models.Project
	if err := r.db.Where("user_id = ?", ownerID).Order("created_at DESC").Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

// UpdateProject updates a project's user-editable fields with an owner filter.
// Progress is deliberately not part of this statement; it is only written by
// UpdateProgress.
func (r *PostgresProjectRepository) UpdateProject(project *models.Project, ownerID uint) error {
	res := r.db.Model(&models.Project{}).
		Where("id = ? AND user_id = ?", project.ID, ownerID).
		Updates(map[string]interface{}{
			"name":            project.Name,
			"description":     project.Description,
			"status":          project.Status,
			"is_public":       project.IsPublic,
			"public_share_id": project.PublicShareID,
			"updated_at":      time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpdateProgress writes the recomputed progress value and bumps updated_at,
// re-applying the owner filter so a recalculation can never touch a project
// the acting user does not own.
func (r *PostgresProjectRepository) UpdateProgress(id, ownerID uint, progress int) error {
	res := r.db.Model(&models.Project{}).
		Where("id = ? AND user_id = ?", id, ownerID).
		Updates(map[string]interface{}{
			"progress":   progress,
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteProject deletes a project by ID with an owner filter
func (r *PostgresProjectRepository) DeleteProject(id, ownerID uint) error {
	res := r.db.Where("id = ? AND user_id = ?", id, ownerID).Delete(&models.Project{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
