package repositories

import (
	"fmt"

	"github.com/rakib7/projectpulse/backend/internal/models"
	"gorm.io/gorm"
)

// LikeRepository defines the interface for like data operations
type LikeRepository interface {
	CreateLike(like *models.Like) error
	DeleteLike(feedItemID string, userID uint) error
	GetLikesCountByFeedItemID(feedItemID string) (int64, error)
	HasUserLikedFeedItem(feedItemID string, userID uint) (bool, error)
}

// PostgresLikeRepository implements LikeRepository for PostgreSQL
type PostgresLikeRepository struct {
	db *gorm.DB
}

// NewPostgresLikeRepository creates a new PostgresLikeRepository
func NewPostgresLikeRepository(db *gorm.DB) *PostgresLikeRepository {
	return &PostgresLikeRepository{db: db}
}

// CreateLike creates a new like in PostgreSQL
func (r *PostgresLikeRepository) CreateLike(like *models.Like) error {
	return r.db.Create(like).Error
}

// DeleteLike deletes a like from PostgreSQL
func (r *PostgresLikeRepository) DeleteLike(feedItemID string, userID uint) error {
	res := r.db.Where("feed_item_id = ? AND user_id = ?", feedItemID, userID).Delete(&models.Like{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("like not found")
	}
	return nil
}

// GetLikesCountByFeedItemID retrieves the count of likes for a specific feed item
func (r *PostgresLikeRepository) GetLikesCountByFeedItemID(feedItemID string) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Like{}).Where("feed_item_id = ?", feedItemID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// HasUserLikedFeedItem checks if a user has liked a specific feed item
func (r *PostgresLikeRepository) HasUserLikedFeedItem(feedItemID string, userID uint) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Like{}).Where("feed_item_id = ? AND user_id = ?", feedItemID, userID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
