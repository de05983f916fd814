package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/finbooks/finbooks_backend/internal/apperrors"
	"github.com/finbooks/finbooks_backend/internal/core/domain"
	portssvc "github.com/finbooks/finbooks_backend/internal/core/ports/services"
	"github.com/finbooks/finbooks_backend/internal/dto"
	"github.com/finbooks/finbooks_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// workplaceHandler handles HTTP requests related to workplaces.
type workplaceHandler struct {
	workplaceService portssvc.WorkplaceSvcFacade
}

func newWorkplaceHandler(workplaceService portssvc.WorkplaceSvcFacade) *workplaceHandler {
	return &workplaceHandler{
		workplaceService: workplaceService,
	}
}

// registerWorkplaceRoutes registers workplace routes and the entity routes
// nested under a specific workplace.
func registerWorkplaceRoutes(
	rg *gin.RouterGroup,
	workplaceService portssvc.WorkplaceSvcFacade,
	accountService portssvc.AccountSvcFacade,
	entryService portssvc.EntrySvcFacade,
	reportingService portssvc.ReportingService,
) {
	h := newWorkplaceHandler(workplaceService)

	workplaces := rg.Group("/workplaces")
	{
		workplaces.POST("", h.createWorkplace)
		workplaces.GET("", h.listUserWorkplaces)
	}

	workplaceSpecific := rg.Group("/workplaces/:workplace_id")
	{
		workplaceSpecific.GET("", h.getWorkplace)
		workplaceSpecific.POST("/users", h.addUserToWorkplace)

		registerAccountRoutes(workplaceSpecific, accountService)
		RegisterEntryRoutes(workplaceSpecific, entryService)
		registerReportingRoutes(workplaceSpecific, reportingService)
	}
}

// createWorkplace godoc
// @Summary Create a workplace
// @Description Creates a workplace and makes the caller its admin
// @Tags workplaces
// @Accept json
// @Produce json
// @Param workplace body dto.CreateWorkplaceRequest true "New workplace"
// @Success 201 {object} dto.WorkplaceResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Router /workplaces [post]
func (h *workplaceHandler) createWorkplace(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateWorkplaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	workplace, err := h.workplaceService.CreateWorkplace(c.Request.Context(), req.Name, req.Description, userID)
	if err != nil {
		logger.Error("Failed to create workplace", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create workplace"})
		return
	}

	c.JSON(http.StatusCreated, dto.ToWorkplaceResponse(workplace))
}

// listUserWorkplaces godoc
// @Summary List the caller's workplaces
// @Tags workplaces
// @Produce json
// @Success 200 {object} dto.ListWorkplacesResponse
// @Router /workplaces [get]
func (h *workplaceHandler) listUserWorkplaces(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	workplaces, err := h.workplaceService.ListUserWorkplaces(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to list workplaces", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list workplaces"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListWorkplacesResponse(workplaces))
}

// getWorkplace godoc
// @Summary Get a workplace
// @Tags workplaces
// @Produce json
// @Param workplace_id path string true "Workplace ID"
// @Success 200 {object} dto.WorkplaceResponse
// @Failure 404 {object} map[string]string "Workplace not found"
// @Router /workplaces/{workplace_id} [get]
func (h *workplaceHandler) getWorkplace(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	workplaceID := c.Param("workplace_id")

	userID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	// Membership check before disclosing anything about the workplace.
	if err := h.workplaceService.AuthorizeUserAction(c.Request.Context(), userID, workplaceID, domain.RoleReadOnly); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Workplace not found"})
		return
	}

	workplace, err := h.workplaceService.FindWorkplaceByID(c.Request.Context(), workplaceID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Workplace not found"})
			return
		}
		logger.Error("Failed to get workplace", slog.String("error", err.Error()), slog.String("workplace_id", workplaceID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve workplace"})
		return
	}

	c.JSON(http.StatusOK, dto.ToWorkplaceResponse(workplace))
}

// addUserToWorkplace godoc
// @Summary Add a user to a workplace
// @Description Admin-only; assigns a membership role
// @Tags workplaces
// @Accept json
// @Produce json
// @Param workplace_id path string true "Workplace ID"
// @Param membership body dto.AddUserToWorkplaceRequest true "Membership"
// @Success 204 "No Content"
// @Failure 403 {object} map[string]string "Forbidden"
// @Router /workplaces/{workplace_id}/users [post]
func (h *workplaceHandler) addUserToWorkplace(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	workplaceID := c.Param("workplace_id")

	var req dto.AddUserToWorkplaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.workplaceService.AddUserToWorkplace(c.Request.Context(), userID, req.UserID, workplaceID, req.Role); err != nil {
		if errors.Is(err, apperrors.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}
		logger.Error("Failed to add user to workplace", slog.String("error", err.Error()), slog.String("workplace_id", workplaceID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add user"})
		return
	}

	c.Status(http.StatusNoContent)
}
