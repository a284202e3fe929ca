package models

import "gorm.io/gorm"

// Comment represents a comment on a feed item
type Comment struct {
	gorm.Model
	FeedItemID string `json:"feed_item_id" gorm:"index"` // ID of the feed item the comment belongs to (MongoDB ObjectID as string)
	UserID     uint   `json:"user_id" gorm:"index"`      // ID of the user who made the comment
	Content    string `json:"content" validate:"required,min=1,max=500"`
}

// CreateCommentRequest defines the request body for creating a new comment
type CreateCommentRequest struct {
	Content string `json:"content" validate:"required,min=1,max=500"`
}

// UpdateCommentRequest defines the request body for updating an existing comment
type UpdateCommentRequest struct {
	Content string `json:"content" validate:"required,min=1,max=500"`
}
