package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rakib7/projectpulse/backend/internal/models"
)

func newLikeContext(method string, userID uint) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, "/", nil)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)
	if userID != 0 {
		c.Set("user", &models.JwtCustomClaims{UserID: userID})
	}
	return c, rec
}

func TestLikeHandler(t *testing.T) {
	feedRepo := &fakeFeedRepository{}
	item := seedFeedItem(feedRepo, 10, models.FeedEventMilestoneCompleted, "M1")
	itemID := item.ID.Hex()

	t.Run("like then unlike", func(t *testing.T) {
		likeRepo := &fakeLikeRepository{}
		h := NewLikeHandler(likeRepo, feedRepo)

		c, rec := newLikeContext(http.MethodPost, 20)
		c.SetParamNames("feed_item_id")
		c.SetParamValues(itemID)
		if err := h.LikeFeedItem(c); err != nil {
			t.Fatalf("LikeFeedItem failed: %v", err)
		}
		if rec.Code != http.StatusCreated {
			t.Fatalf("Expected status 201, got %d", rec.Code)
		}
		if len(likeRepo.likes) != 1 {
			t.Fatalf("Expected 1 like, got %d", len(likeRepo.likes))
		}

		c, rec = newLikeContext(http.MethodDelete, 20)
		c.SetParamNames("feed_item_id")
		c.SetParamValues(itemID)
		if err := h.UnlikeFeedItem(c); err != nil {
			t.Fatalf("UnlikeFeedItem failed: %v", err)
		}
		if rec.Code != http.StatusNoContent {
			t.Errorf("Expected status 204, got %d", rec.Code)
		}
		if len(likeRepo.likes) != 0 {
			t.Errorf("Expected no likes, got %d", len(likeRepo.likes))
		}
	})

	t.Run("double like conflicts", func(t *testing.T) {
		likeRepo := &fakeLikeRepository{}
		likeRepo.CreateLike(&models.Like{FeedItemID: itemID, UserID: 20})
		h := NewLikeHandler(likeRepo, feedRepo)

		c, _ := newLikeContext(http.MethodPost, 20)
		c.SetParamNames("feed_item_id")
		c.SetParamValues(itemID)
		err := h.LikeFeedItem(c)
		httpErr, ok := err.(*echo.HTTPError)
		if !ok || httpErr.Code != http.StatusConflict {
			t.Errorf("Expected 409 conflict, got %v", err)
		}
	})

	t.Run("liking a missing feed item is 404", func(t *testing.T) {
		h := NewLikeHandler(&fakeLikeRepository{}, feedRepo)

		c, _ := newLikeContext(http.MethodPost, 20)
		c.SetParamNames("feed_item_id")
		c.SetParamValues("000000000000000000000000")
		err := h.LikeFeedItem(c)
		httpErr, ok := err.(*echo.HTTPError)
		if !ok || httpErr.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %v", err)
		}
	})

	t.Run("unliking without a like is 404", func(t *testing.T) {
		h := NewLikeHandler(&fakeLikeRepository{}, feedRepo)

		c, _ := newLikeContext(http.MethodDelete, 20)
		c.SetParamNames("feed_item_id")
		c.SetParamValues(itemID)
		err := h.UnlikeFeedItem(c)
		httpErr, ok := err.(*echo.HTTPError)
		if !ok || httpErr.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %v", err)
		}
	})

	t.Run("unauthenticated like is 401", func(t *testing.T) {
		h := NewLikeHandler(&fakeLikeRepository{}, feedRepo)

		c, _ := newLikeContext(http.MethodPost, 0)
		c.SetParamNames("feed_item_id")
		c.SetParamValues(itemID)
		err := h.LikeFeedItem(c)
		httpErr, ok := err.(*echo.HTTPError)
		if !ok || httpErr.Code != http.StatusUnauthorized {
			t.Errorf("Expected 401, got %v", err)
		}
	})

	t.Run("likes count and status", func(t *testing.T) {
		likeRepo := &fakeLikeRepository{}
		likeRepo.CreateLike(&models.Like{FeedItemID: itemID, UserID: 20})
		likeRepo.CreateLike(&models.Like{FeedItemID: itemID, UserID: 30})
		h := NewLikeHandler(likeRepo, feedRepo)

		c, rec := newLikeContext(http.MethodGet, 0)
		c.SetParamNames("feed_item_id")
		c.SetParamValues(itemID)
		if err := h.GetLikesCountForFeedItem(c); err != nil {
			t.Fatalf("GetLikesCountForFeedItem failed: %v", err)
		}
		var countBody struct {
			LikesCount int64 `json:"likes_count"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &countBody); err != nil {
			t.Fatalf("Failed to unmarshal count: %v", err)
		}
		if countBody.LikesCount != 2 {
			t.Errorf("Expected 2 likes, got %d", countBody.LikesCount)
		}

		c, rec = newLikeContext(http.MethodGet, 30)
		c.SetParamNames("feed_item_id")
		c.SetParamValues(itemID)
		if err := h.GetUserLikeStatusForFeedItem(c); err != nil {
			t.Fatalf("GetUserLikeStatusForFeedItem failed: %v", err)
		}
		var statusBody struct {
			HasLiked bool `json:"has_liked"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &statusBody); err != nil {
			t.Fatalf("Failed to unmarshal status: %v", err)
		}
		if !statusBody.HasLiked {
			t.Error("Expected has_liked true")
		}
	})
}
