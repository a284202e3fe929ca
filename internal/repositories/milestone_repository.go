package repositories

import (
	"github.com/rakib7/projectpulse/backend/internal/models"
	"gorm.io/gorm"
)

// MilestoneRepository defines the interface for milestone data operations.
// Milestone rows carry no owner column of their own; authorization is
// transitive through the parent project and enforced by the handlers before
// any write reaches this layer.
type MilestoneRepository interface {
	CreateMilestone(milestone *models.Milestone) error
	GetMilestoneByID(id uint) (*models.Milestone, error)
	GetMilestonesByProjectID(projectID uint) ([]models.Milestone, error)
	UpdateMilestone(milestone *models.Milestone) error
	DeleteMilestone(id uint) error
}

// PostgresMilestoneRepository implements MilestoneRepository for PostgreSQL
type PostgresMilestoneRepository struct {
	db *gorm.DB
}

// NewPostgresMilestoneRepository creates a new PostgresMilestoneRepository
func NewPostgresMilestoneRepository(db *gorm.DB) *PostgresMilestoneRepository {
	return &PostgresMilestoneRepository{db: db}
}

// CreateMilestone creates a new milestone in PostgreSQL
func (r *PostgresMilestoneRepository) CreateMilestone(milestone *models.Milestone) error {
	return r.db.Create(milestone).Error
}

// GetMilestoneByID retrieves a milestone by ID from PostgreSQL
func (r *PostgresMilestoneRepository) GetMilestoneByID(id uint) (*models.Milestone, error) {
	var milestone models.Milestone
	if err := r.db.First(&milestone, id).Error; err != nil {
		return nil, err
	}
	return &milestone, nil
}

// GetMilestonesByProjectID retrieves all milestones of a project ordered by due date
func (r *PostgresMilestoneRepository) GetMilestonesByProjectID(projectID uint) ([]models.Milestone, error) {
	var milestones []models.Milestone
	if err := r.db.Where("project_id = ?", projectID).Order("due_date ASC").Find(&milestones).Error; err != nil {
		return nil, err
	}
	return milestones, nil
}

// UpdateMilestone updates an existing milestone in PostgreSQL
func (r *PostgresMilestoneRepository) UpdateMilestone(milestone *models.Milestone) error {
	return r.db.Save(milestone).Error
}

// DeleteMilestone deletes a milestone by ID from PostgreSQL
func (r *PostgresMilestoneRepository) DeleteMilestone(id uint) error {
	res := r.db.Delete(&models.Milestone{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
