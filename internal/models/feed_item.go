package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Feed event types
const (
	FeedEventMilestoneCreated   = "milestone_created"
	FeedEventMilestoneCompleted = "milestone_completed"
)

// FeedItemData is the denormalized payload snapshot taken at event time so
// the feed stays readable even if the source rows later change.
type FeedItemData struct {
	MilestoneTitle string `json:"milestone_title" bson:"milestone_title"`
	ProjectName    string `json:"project_name" bson:"project_name"`
	UserName       string `json:"user_name" bson:"user_name"`
}

// FeedItem is an immutable activity record stored in MongoDB. It references
// project, milestone and actor by id only; the Data snapshot carries what the
// feed needs for display. Feed items are inserted once and never updated or
// deleted by application code.
type FeedItem struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	ProjectID   uint               `json:"project_id" bson:"project_id"`
	MilestoneID uint               `json:"milestone_id,omitempty" bson:"milestone_id,omitempty"`
	UserID      uint               `json:"user_id" bson:"user_id"` // Actor who triggered the event
	Type        string             `json:"type" bson:"type"`       // milestone_created | milestone_completed
	Data        FeedItemData       `json:"data" bson:"data"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
}
