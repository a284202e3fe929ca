package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rakib7/projectpulse/backend/internal/models"
	"github.com/rakib7/projectpulse/backend/internal/repositories"
	"github.com/rakib7/projectpulse/backend/internal/services"
	"gorm.io/gorm"
)

// MilestoneHandler handles HTTP requests related to milestones. After each
// successful mutation it invokes progress recalculation exactly once, and
// activity emission where the event rules call for it; both are best-effort
// and cannot fail the mutation's success response.
type MilestoneHandler struct {
	milestoneRepository repositories.MilestoneRepository
	projectRepository   repositories.ProjectRepository
	userRepository      repositories.UserRepository
	progressService     *services.ProgressService
	activityService     *services.ActivityService
}

// NewMilestoneHandler creates a new MilestoneHandler
func NewMilestoneHandler(
	milestoneRepo repositories.MilestoneRepository,
	projectRepo repositories.ProjectRepository,
	userRepo repositories.UserRepository,
	progressService *services.ProgressService,
	activityService *services.ActivityService,
) *MilestoneHandler {
	return &MilestoneHandler{
		milestoneRepository: milestoneRepo,
		projectRepository:   projectRepo,
		userRepository:      userRepo,
		progressService:     progressService,
		activityService:     activityService,
	}
}

// RegisterMilestoneRoutes registers the JSON read routes for milestones
func (h *MilestoneHandler) RegisterMilestoneRoutes(g *echo.Group) {
	g.GET("/projects/:project_id/milestones", h.ListMilestones)
}

// RegisterMilestoneFormRoutes registers the browser-form mutation routes
func (h *MilestoneHandler) RegisterMilestoneFormRoutes(g *echo.Group) {
	g.POST("/projects/milestone", h.CreateMilestone)
	g.POST("/projects/milestone/update", h.UpdateMilestone)
	g.POST("/projects/milestone/delete", h.DeleteMilestone)
}

// ListMilestones returns all milestones of a project owned by the caller
func (h *MilestoneHandler) ListMilestones(c echo.Context) error {
	userID := getUserIDFromContext(c)
	if userID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	projectID, err := strconv.ParseUint(c.Param("project_id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid project ID")
	}

	if _, err := h.projectRepository.GetProjectByIDAndOwner(uint(projectID), userID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Project not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	milestones, err := h.milestoneRepository.GetMilestonesByProjectID(uint(projectID))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, milestones)
}

// CreateMilestone creates a milestone from a browser form post. The parent
// project's ownership is verified by lookup before the insert. On success it
// recalculates progress and always emits a milestone_created feed event.
func (h *MilestoneHandler) CreateMilestone(c echo.Context) error {
	userID := getUserIDFromContext(c)
	if userID == 0 {
		return encodedRedirect(c, "error", "/sign-in", "You must be logged in to create a milestone")
	}

	projectID, err := strconv.ParseUint(c.FormValue("project_id"), 10, 32)
	title := c.FormValue("title")
	if err != nil || title == "" {
		return encodedRedirect(c, "error", "/dashboard/projects", "Project ID and title are required")
	}

	project, err := h.projectRepository.GetProjectByIDAndOwner(uint(projectID), userID)
	if err != nil {
		return encodedRedirect(c, "error", "/dashboard/projects", "Project not found or you don't have permission")
	}
	redirectPath := "/dashboard/projects/" + strconv.FormatUint(uint64(project.ID), 10)

	milestone := &models.Milestone{
		ProjectID:   project.ID,
		Title:       title,
		Description: c.FormValue("description"),
		DueDate:     parseDueDate(c.FormValue("due_date")),
	}

	if err := h.milestoneRepository.CreateMilestone(milestone); err != nil {
		return encodedRedirect(c, "error", redirectPath, "Failed to create milestone: "+err.Error())
	}

	ctx := c.Request().Context()
	h.progressService.Recalculate(ctx, userID, project.ID)

	actor, _ := h.userRepository.GetUserByID(userID)
	h.activityService.MilestoneCreated(ctx, actor, project, milestone)

	return encodedRedirect(c, "success", redirectPath, "Milestone created successfully")
}

// UpdateMilestone updates a milestone from a browser form post. The
// completion state before the edit is captured from the stored row: the
// update statement alone cannot distinguish a first completion from a
// re-save of an already-completed milestone, and that distinction decides
// whether a milestone_completed feed event is emitted.
func (h *MilestoneHandler) UpdateMilestone(c echo.Context) error {
	userID := getUserIDFromContext(c)
	if userID == 0 {
		return encodedRedirect(c, "error", "/sign-in", "You must be logged in to update a milestone")
	}

	id, err := strconv.ParseUint(c.FormValue("id"), 10, 32)
	title := c.FormValue("title")
	if err != nil || title == "" {
		return encodedRedirect(c, "error", "/dashboard/projects", "Milestone ID and title are required")
	}

	milestone, err := h.milestoneRepository.GetMilestoneByID(uint(id))
	if err != nil {
		return encodedRedirect(c, "error", "/dashboard/projects", "Milestone not found or you don't have permission")
	}

	// Re-verify parent project ownership before the write, symmetric with
	// creation. A foreign milestone is indistinguishable from a missing one.
	project, err := h.projectRepository.GetProjectByIDAndOwner(milestone.ProjectID, userID)
	if err != nil {
		return encodedRedirect(c, "error", "/dashboard/projects", "Milestone not found or you don't have permission")
	}
	redirectPath := "/dashboard/projects/" + strconv.FormatUint(uint64(project.ID), 10)

	// Prior state must come from the stored row, never from the client: a
	// missing or stale flag would otherwise duplicate or suppress the
	// completion event.
	wasCompleted := milestone.IsCompleted

	milestone.Title = title
	milestone.Description = c.FormValue("description")
	milestone.DueDate = parseDueDate(c.FormValue("due_date"))
	milestone.IsCompleted = c.FormValue("is_completed") == "true"

	if err := h.milestoneRepository.UpdateMilestone(milestone); err != nil {
		return encodedRedirect(c, "error", redirectPath, "Failed to update milestone: "+err.Error())
	}

	ctx := c.Request().Context()
	h.progressService.Recalculate(ctx, userID, project.ID)

	actor, _ := h.userRepository.GetUserByID(userID)
	h.activityService.MilestoneUpdated(ctx, actor, project, milestone, wasCompleted)

	return encodedRedirect(c, "success", redirectPath, "Milestone updated successfully")
}

// DeleteMilestone deletes a milestone from a browser form post. On success
// it recalculates progress over the remaining milestones; deletion never
// emits a feed event.
func (h *MilestoneHandler) DeleteMilestone(c echo.Context) error {
	userID := getUserIDFromContext(c)
	if userID == 0 {
		return encodedRedirect(c, "error", "/sign-in", "You must be logged in to delete a milestone")
	}

	id, err := strconv.ParseUint(c.FormValue("id"), 10, 32)
	if err != nil {
		return encodedRedirect(c, "error", "/dashboard/projects", "Milestone ID is required")
	}

	milestone, err := h.milestoneRepository.GetMilestoneByID(uint(id))
	if err != nil {
		return encodedRedirect(c, "error", "/dashboard/projects", "Milestone not found or you don't have permission")
	}

	project, err := h.projectRepository.GetProjectByIDAndOwner(milestone.ProjectID, userID)
	if err != nil {
		return encodedRedirect(c, "error", "/dashboard/projects", "Milestone not found or you don't have permission")
	}
	redirectPath := "/dashboard/projects/" + strconv.FormatUint(uint64(project.ID), 10)

	if err := h.milestoneRepository.DeleteMilestone(milestone.ID); err != nil {
		return encodedRedirect(c, "error", redirectPath, "Failed to delete milestone: "+err.Error())
	}

	h.progressService.Recalculate(c.Request().Context(), userID, project.ID)

	return encodedRedirect(c, "success", redirectPath, "Milestone deleted successfully")
}

// parseDueDate parses the optional form due date (YYYY-MM-DD). Empty or
// malformed values become nil.
func parseDueDate(value string) *time.Time {
	if value == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil
	}
	return &t
}
