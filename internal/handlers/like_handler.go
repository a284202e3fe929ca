package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rakib7/projectpulse/backend/internal/models"
	"github.com/rakib7/projectpulse/backend/internal/repositories"
)

// LikeHandler handles HTTP requests related to likes on feed items
type LikeHandler struct {
	likeRepository repositories.LikeRepository
	feedRepository repositories.FeedRepository
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(likeRepo repositories.LikeRepository, feedRepo repositories.FeedRepository) *LikeHandler {
	return &LikeHandler{
		likeRepository: likeRepo,
		feedRepository: feedRepo,
	}
}

// RegisterLikeRoutes registers like-related routes
func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group) {
	g.POST("/feed/:feed_item_id/likes", h.LikeFeedItem)
	g.DELETE("/feed/:feed_item_id/likes", h.UnlikeFeedItem)
	g.GET("/feed/:feed_item_id/likes/count", h.GetLikesCountForFeedItem)
	g.GET("/feed/:feed_item_id/likes/status", h.GetUserLikeStatusForFeedItem)
}

// LikeFeedItem handles liking a feed item
func (h *LikeHandler) LikeFeedItem(c echo.Context) error {
	userID := getUserIDFromContext(c)
	if userID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	feedItemID := c.Param("feed_item_id")

	// Verify feed item exists
	if _, err := h.feedRepository.GetFeedItemByID(c.Request().Context(), feedItemID); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Feed item not found")
	}

	// Check if user has already liked the feed item
	hasLiked, err := h.likeRepository.HasUserLikedFeedItem(feedItemID, userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if hasLiked {
		return echo.NewHTTPError(http.StatusConflict, "Feed item already liked by this user")
	}

	like := &models.Like{
		FeedItemID: feedItemID,
		UserID:     userID,
	}

	if err := h.likeRepository.CreateLike(like); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, like)
}

// UnlikeFeedItem handles unliking a feed item
func (h *LikeHandler) UnlikeFeedItem(c echo.Context) error {
	userID := getUserIDFromContext(c)
	if userID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	feedItemID := c.Param("feed_item_id")

	if err := h.likeRepository.DeleteLike(feedItemID, userID); err != nil {
		if err.Error() == "like not found" {
			return echo.NewHTTPError(http.StatusNotFound, "Like not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.NoContent(http.StatusNoContent)
}

// GetLikesCountForFeedItem retrieves the total number of likes for a feed item
func (h *LikeHandler) GetLikesCountForFeedItem(c echo.Context) error {
	feedItemID := c.Param("feed_item_id")

	count, err := h.likeRepository.GetLikesCountByFeedItemID(feedItemID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"feed_item_id": feedItemID, "likes_count": count})
}

// GetUserLikeStatusForFeedItem checks if the authenticated user has liked a feed item
func (h *LikeHandler) GetUserLikeStatusForFeedItem(c echo.Context) error {
	userID := getUserIDFromContext(c)
	if userID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	feedItemID := c.Param("feed_item_id")

	hasLiked, err := h.likeRepository.HasUserLikedFeedItem(feedItemID, userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"feed_item_id": feedItemID, "user_id": userID, "has_liked": hasLiked})
}
