package models

import "gorm.io/gorm"

// Like represents a like on a feed item
type Like struct {
	gorm.Model
	FeedItemID string `json:"feed_item_id" gorm:"index"` // ID of the liked feed item (MongoDB ObjectID as string)
	UserID     uint   `json:"user_id" gorm:"index"`      // ID of the user who liked the feed item
}
