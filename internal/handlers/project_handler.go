package handlers

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rakib7/projectpulse/backend/internal/models"
	"github.com/rakib7/projectpulse/backend/internal/repositories"
	"gorm.io/gorm"
)

// ProjectHandler handles HTTP requests related to projects
type ProjectHandler struct {
	projectRepository   repositories.ProjectRepository
	milestoneRepository repositories.MilestoneRepository
	feedRepository      repositories.FeedRepository
}

// NewProjectHandler creates a new ProjectHandler
func NewProjectHandler(projectRepo repositories.ProjectRepository, milestoneRepo repositories.MilestoneRepository, feedRepo repositories.FeedRepository) *ProjectHandler {
	return &ProjectHandler{
		projectRepository:   projectRepo,
		milestoneRepository: milestoneRepo,
		feedRepository:      feedRepo,
	}
}

// RegisterProjectRoutes registers the JSON read routes for projects
func (h *ProjectHandler) RegisterProjectRoutes(g *echo.Group) {
	g.GET("/projects", h.ListProjects)
	g.GET("/projects/:id", h.GetProject)
	g.GET("/projects/:id/activity", h.GetProjectActivity)
}

// RegisterProjectFormRoutes registers the browser-form mutation routes.
// These report their outcome through the redirect convention instead of
// JSON status codes.
func (h *ProjectHandler) RegisterProjectFormRoutes(g *echo.Group) {
	g.POST("/projects", h.CreateProject)
	g.POST("/projects/update", h.UpdateProject)
	g.POST("/projects/delete", h.DeleteProject)
}

// RegisterPublicProjectRoutes registers the unauthenticated share routes
func (h *ProjectHandler) RegisterPublicProjectRoutes(g *echo.Group) {
	g.GET("/projects/:share_id", h.GetSharedProject)
}

// ListProjects returns all projects of the authenticated user
func (h *ProjectHandler) ListProjects(c echo.Context) error {
	userID := getUserIDFromContext(c)
	if userID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	projects, err := h.projectRepository.GetProjectsByOwner(userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, projects)
}

// GetProject returns one project of the authenticated user with its milestones
func (h *ProjectHandler) GetProject(c echo.Context) error {
	userID := getUserIDFromContext(c)
	if userID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid project ID")
	}

	project, err := h.projectRepository.GetProjectByIDAndOwner(uint(id), userID)
	if err != nil {
		// Ownership mismatch looks exactly like not-found
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Project not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	milestones, err := h.milestoneRepository.GetMilestonesByProjectID(project.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"project":    project,
		"milestones": milestones,
	})
}

// GetProjectActivity returns the feed items of one project owned by the
// caller, newest first, for the project detail page's activity pane.
func (h *ProjectHandler) GetProjectActivity(c echo.Context) error {
	userID := getUserIDFromContext(c)
	if userID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid project ID")
	}

	project, err := h.projectRepository.GetProjectByIDAndOwner(uint(id), userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Project not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	items, err := h.feedRepository.GetFeedItemsByProjectID(c.Request().Context(), project.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, items)
}

// GetSharedProject returns a public project by its share token, without
// authentication. Private projects are indistinguishable from missing ones.
func (h *ProjectHandler) GetSharedProject(c echo.Context) error {
	shareID := c.Param("share_id")

	project, err := h.projectRepository.GetProjectByShareID(shareID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Project not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	milestones, err := h.milestoneRepository.GetMilestonesByProjectID(project.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"project":    project,
		"milestones": milestones,
	})
}

// CreateProject creates a new project from a browser form post. Progress is
// always forced to 0 at creation; it is only ever written by recalculation
// afterwards.
func (h *ProjectHandler) CreateProject(c echo.Context) error {
	userID := getUserIDFromContext(c)
	if userID == 0 {
		return encodedRedirect(c, "error", "/sign-in", "You must be logged in to create a project")
	}

	name := c.FormValue("name")
	if name == "" {
		return encodedRedirect(c, "error", "/dashboard/projects", "Project name is required")
	}

	status := c.FormValue("status")
	if !models.ValidProjectStatus(status) {
		status = models.ProjectStatusInProgress
	}

	project := &models.Project{
		UserID:      userID,
		Name:        name,
		Description: c.FormValue("description"),
		Status:      status,
		Progress:    0,
		IsPublic:    c.FormValue("is_public") == "true",
	}
	if project.IsPublic {
		project.PublicShareID = uuid.NewString()
	}

	if err := h.projectRepository.CreateProject(project); err != nil {
		return encodedRedirect(c, "error", "/dashboard/projects", "Failed to create project: "+err.Error())
	}

	return encodedRedirect(c, "success", "/dashboard/projects", "Project created successfully")
}

// UpdateProject updates a project's user-editable fields from a browser form
// post. The write is owner-filtered; a foreign project id affects zero rows.
func (h *ProjectHandler) UpdateProject(c echo.Context) error {
	userID := getUserIDFromContext(c)
	if userID == 0 {
		return encodedRedirect(c, "error", "/sign-in", "You must be logged in to update a project")
	}

	id, err := strconv.ParseUint(c.FormValue("id"), 10, 32)
	name := c.FormValue("name")
	if err != nil || name == "" {
		return encodedRedirect(c, "error", "/dashboard/projects", "Project ID and name are required")
	}

	// Read-modify-write so the share token survives unrelated edits; still
	// owner-scoped on both the read and the write.
	project, err := h.projectRepository.GetProjectByIDAndOwner(uint(id), userID)
	if err != nil {
		return encodedRedirect(c, "error", "/dashboard/projects", "Project not found or you don't have permission")
	}

	project.Name = name
	project.Description = c.FormValue("description")
	if status := c.FormValue("status"); models.ValidProjectStatus(status) {
		project.Status = status
	}
	project.IsPublic = c.FormValue("is_public") == "true"
	if project.IsPublic && project.PublicShareID == "" {
		project.PublicShareID = uuid.NewString()
	}
	if !project.IsPublic {
		project.PublicShareID = ""
	}

	if err := h.projectRepository.UpdateProject(project, userID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return encodedRedirect(c, "error", "/dashboard/projects", "Project not found or you don't have permission")
		}
		return encodedRedirect(c, "error", "/dashboard/projects", "Failed to update project: "+err.Error())
	}

	return encodedRedirect(c, "success", "/dashboard/projects", "Project updated successfully")
}

// DeleteProject deletes a project from a browser form post
func (h *ProjectHandler) DeleteProject(c echo.Context) error {
	userID := getUserIDFromContext(c)
	if userID == 0 {
		return encodedRedirect(c, "error", "/sign-in", "You must be logged in to delete a project")
	}

	id, err := strconv.ParseUint(c.FormValue("id"), 10, 32)
	if err != nil {
		return encodedRedirect(c, "error", "/dashboard/projects", "Project ID is required")
	}

	if err := h.projectRepository.DeleteProject(uint(id), userID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return encodedRedirect(c, "error", "/dashboard/projects", "Project not found or you don't have permission")
		}
		return encodedRedirect(c, "error", "/dashboard/projects", "Failed to delete project: "+err.Error())
	}

	return encodedRedirect(c, "success", "/dashboard/projects", "Project deleted successfully")
}
