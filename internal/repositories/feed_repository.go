package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/rakib7/projectpulse/backend/internal/models"
	"github.com/rakib7/projectpulse/backend/pkg/metrics"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// FeedRepository defines the interface for feed item data operations.
// Feed items are insert-only: there is intentionally no update or delete.
type FeedRepository interface {
	CreateFeedItem(ctx context.Context, item *models.FeedItem) error
	GetFeedItemByID(ctx context.Context, id string) (*models.FeedItem, error)
	GetAllFeedItems(ctx context.Context, skip, limit int64) ([]models.FeedItem, error)
	GetFeedItemsByProjectID(ctx context.Context, projectID uint) ([]models.FeedItem, error)
	CountFeedItems(ctx context.Context) (int64, error)
}

// MongoFeedRepository implements FeedRepository for MongoDB
type MongoFeedRepository struct {
	collection *mongo.Collection
	logger     *zap.Logger
}

// NewMongoFeedRepository creates a new MongoFeedRepository
func NewMongoFeedRepository(db *mongo.Database, logger *zap.Logger) *MongoFeedRepository {
	return &MongoFeedRepository{collection: db.Collection("feed_items"), logger: logger}
}

// CreateFeedItem inserts a new feed item into MongoDB
func (r *MongoFeedRepository) CreateFeedItem(ctx context.Context, item *models.FeedItem) error {
	item.ID = primitive.NewObjectID()
	item.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, item)
	if err != nil {
		r.logger.Error("failed to insert feed item",
			zap.Uint("project_id", item.ProjectID),
			zap.String("type", item.Type),
			zap.Error(err),
		)
		return err
	}
	metrics.FeedItemsEmitted.WithLabelValues(item.Type).Inc()
	r.logger.Info("feed item inserted",
		zap.String("id", item.ID.Hex()),
		zap.Uint("project_id", item.ProjectID),
		zap.String("type", item.Type),
	)
	return nil
}

// GetFeedItemByID retrieves a feed item by ID from MongoDB
func (r *MongoFeedRepository) GetFeedItemByID(ctx context.Context, id string) (*models.FeedItem, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid feed item ID format: %w", err)
	}

	var item models.FeedItem
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&item)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("feed item not found")
		}
		return nil, err
	}
	return &item, nil
}

// GetAllFeedItems retrieves feed items from MongoDB, newest first, with pagination
func (r *MongoFeedRepository) GetAllFeedItems(ctx context.Context, skip, limit int64) ([]models.FeedItem, error) {
	var items []models.FeedItem
	findOptions := options.Find().SetSkip(skip).SetLimit(limit).SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.D{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// GetFeedItemsByProjectID retrieves all feed items of a project, newest first
func (r *MongoFeedRepository) GetFeedItemsByProjectID(ctx context.Context, projectID uint) ([]models.FeedItem, error) {
	var items []models.FeedItem
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"project_id": projectID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// CountFeedItems returns the total number of feed items
func (r *MongoFeedRepository) CountFeedItems(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.D{})
}
