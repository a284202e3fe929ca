package handlers

import (
	"math"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rakib7/projectpulse/backend/internal/models"
	"github.com/rakib7/projectpulse/backend/internal/repositories"
)

// FeedHandler handles feed-related HTTP requests
type FeedHandler struct {
	feedRepository    repositories.FeedRepository
	userRepository    repositories.UserRepository
	likeRepository    repositories.LikeRepository
	commentRepository repositories.CommentRepository
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(
	feedRepo repositories.FeedRepository,
	userRepo repositories.UserRepository,
	likeRepo repositories.LikeRepository,
	commentRepo repositories.CommentRepository,
) *FeedHandler {
	return &FeedHandler{
		feedRepository:    feedRepo,
		userRepository:    userRepo,
		likeRepository:    likeRepo,
		commentRepository: commentRepo,
	}
}

// RegisterFeedRoutes registers feed-related routes
func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group) {
	g.GET("/feed", h.GetFeed)
}

// EnrichedFeedItem is a feed item with actor info and interaction counts
type EnrichedFeedItem struct {
	models.FeedItem
	Actor         models.UserCompact `json:"actor"`
	LikesCount    int64              `json:"likes_count"`
	CommentsCount int64              `json:"comments_count"`
	IsLiked       bool               `json:"is_liked"`
}

// GetFeed returns enriched feed items for the current user, newest first
func (h *FeedHandler) GetFeed(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 10
	}

	skip := int64((page - 1) * limit)

	items, err := h.feedRepository.GetAllFeedItems(c.Request().Context(), skip, int64(limit))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	totalItems, err := h.feedRepository.CountFeedItems(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	// Resolve actors once per unique user id
	userCache := make(map[uint]models.UserCompact)
	for _, item := range items {
		if _, ok := userCache[item.UserID]; ok {
			continue
		}
		user, err := h.userRepository.GetUserByID(item.UserID)
		if err == nil {
			userCache[item.UserID] = user.ToCompact()
		} else {
			// The denormalized payload still carries the name at event time
			userCache[item.UserID] = models.UserCompact{ID: item.UserID, FullName: item.Data.UserName}
		}
	}

	enriched := make([]EnrichedFeedItem, len(items))
	for i, item := range items {
		itemID := item.ID.Hex()
		likes, _ := h.likeRepository.GetLikesCountByFeedItemID(itemID)
		comments, _ := h.commentRepository.GetCommentsCountByFeedItemID(itemID)
		isLiked := false
		if currentUserID > 0 {
			isLiked, _ = h.likeRepository.HasUserLikedFeedItem(itemID, currentUserID)
		}
		enriched[i] = EnrichedFeedItem{
			FeedItem:      item,
			Actor:         userCache[item.UserID],
			LikesCount:    likes,
			CommentsCount: comments,
			IsLiked:       isLiked,
		}
	}

	totalPages := int(math.Ceil(float64(totalItems) / float64(limit)))

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data": echo.Map{
			"feed_items": enriched,
		},
		"meta": echo.Map{
			"currentPage":     page,
			"totalPages":      totalPages,
			"totalItems":      totalItems,
			"itemsPerPage":    limit,
			"hasNextPage":     page < totalPages,
			"hasPreviousPage": page > 1,
		},
	})
}
