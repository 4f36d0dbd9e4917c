package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/wathiqah/wathiqah-backend/internal/apperrors"
	portssvc "github.com/wathiqah/wathiqah-backend/internal/core/ports/services"
	"github.com/wathiqah/wathiqah-backend/internal/dto"
	"github.com/wathiqah/wathiqah-backend/internal/middleware"
)

// sharedAccessHandler handles HTTP requests related to shared ledger views.
type sharedAccessHandler struct {
	sharedAccessService portssvc.SharedAccessSvcFacade
}

// newSharedAccessHandler creates a new sharedAccessHandler.
func newSharedAccessHandler(sas portssvc.SharedAccessSvcFacade) *sharedAccessHandler {
	return &sharedAccessHandler{
		sharedAccessService: sas,
	}
}

// registerSharedAccessRoutes registers routes related to shared access.
func registerSharedAccessRoutes(rg *gin.RouterGroup, sharedAccessService portssvc.SharedAccessSvcFacade) {
	h := newSharedAccessHandler(sharedAccessService)

	shared := rg.Group("/shared-access")
	{
		shared.POST("/grants", h.grantAccess)
		shared.GET("/grants", h.listGrants)
		shared.GET("/grants/:id/data", h.getSharedData)
		shared.DELETE("/grants/:id", h.revokeAccess)
		shared.GET("/received", h.listReceivedGrants)
		shared.POST("/accept", h.acceptAccess)
	}
}

// grantAccess godoc
// @Summary Share a read-only ledger view
// @Description Issues a pending grant to an email address; the response carries the one-time invitation token
// @Tags shared access
// @Accept  json
// @Produce  json
// @Param   grant body dto.GrantAccessRequest true "Grantee email"
// @Success 201 {object} dto.IssuedAccessGrantResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Ledger already shared with this email"
// @Failure 500 {object} map[string]string "Failed to create access grant"
// @Router /shared-access/grants [post]
func (h *sharedAccessHandler) grantAccess(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.GrantAccessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for GrantAccess", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	grant, err := h.sharedAccessService.GrantAccess(c.Request.Context(), req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		h.respondSharedAccessError(c, logger, err, "Failed to create access grant")
		return
	}

	logger.Info("Access grant created successfully", slog.String("grant_id", grant.GrantID))
	c.JSON(http.StatusCreated, dto.ToIssuedAccessGrantResponse(grant))
}

// listGrants godoc
// @Summary List issued access grants
// @Description Retrieves the grants the caller has issued, newest first
// @Tags shared access
// @Produce  json
// @Success 200 {array} dto.AccessGrantResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list access grants"
// @Router /shared-access/grants [get]
func (h *sharedAccessHandler) listGrants(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	grants, err := h.sharedAccessService.ListGrants(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to list access grants from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list access grants"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListAccessGrantResponse(grants))
}

// listReceivedGrants godoc
// @Summary List received access grants
// @Description Retrieves the accepted grants other users have shared with the caller
// @Tags shared access
// @Produce  json
// @Success 200 {array} dto.AccessGrantResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list received grants"
// @Router /shared-access/received [get]
func (h *sharedAccessHandler) listReceivedGrants(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	grants, err := h.sharedAccessService.ListReceivedGrants(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to list received grants from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list received grants"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListAccessGrantResponse(grants))
}

// acceptAccess godoc
// @Summary Accept an access grant
// @Description Binds a pending grant to the caller using its invitation token
// @Tags shared access
// @Accept  json
// @Produce  json
// @Param   invitation body dto.AcceptAccessRequest true "Invitation token"
// @Success 200 {object} dto.AccessGrantResponse
// @Failure 400 {object} map[string]string "Invalid input format or grant no longer pending"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Grant was issued to a different email"
// @Failure 404 {object} map[string]string "Grant not found"
// @Failure 500 {object} map[string]string "Failed to accept access grant"
// @Router /shared-access/accept [post]
func (h *sharedAccessHandler) acceptAccess(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.AcceptAccessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AcceptAccess", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	grant, err := h.sharedAccessService.AcceptAccess(c.Request.Context(), req.Token, userID)
	if err != nil {
		h.respondSharedAccessError(c, logger, err, "Failed to accept access grant")
		return
	}

	logger.Info("Access grant accepted successfully", slog.String("grant_id", grant.GrantID))
	c.JSON(http.StatusOK, dto.ToAccessGrantResponse(grant))
}

// revokeAccess godoc
// @Summary Revoke an access grant
// @Description Revokes a grant the caller owns; the grantee loses the view immediately
// @Tags shared access
// @Produce  json
// @Param   id path string true "Grant ID"
// @Success 204 "Grant revoked"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Grant belongs to another user"
// @Failure 404 {object} map[string]string "Grant not found"
// @Failure 500 {object} map[string]string "Failed to revoke access grant"
// @Router /shared-access/grants/{id} [delete]
func (h *sharedAccessHandler) revokeAccess(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	grantID := c.Param("id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.sharedAccessService.RevokeAccess(c.Request.Context(), grantID, userID); err != nil {
		h.respondSharedAccessError(c, logger, err, "Failed to revoke access grant")
		return
	}

	c.Status(http.StatusNoContent)
}

// getSharedData godoc
// @Summary Get a shared ledger view
// @Description Retrieves the read-only ledger view for an active grant the caller has accepted
// @Tags shared access
// @Produce  json
// @Param   id path string true "Grant ID"
// @Success 200 {object} dto.SharedDataResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "No active grant for this user"
// @Failure 404 {object} map[string]string "Grant not found"
// @Failure 500 {object} map[string]string "Failed to retrieve shared data"
// @Router /shared-access/grants/{id}/data [get]
func (h *sharedAccessHandler) getSharedData(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	grantID := c.Param("id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	data, err := h.sharedAccessService.GetSharedData(c.Request.Context(), grantID, userID)
	if err != nil {
		h.respondSharedAccessError(c, logger, err, "Failed to retrieve shared data")
		return
	}

	c.JSON(http.StatusOK, dto.ToSharedDataResponse(data))
}

// respondSharedAccessError maps service errors to HTTP responses shared by the
// shared-access endpoints.
func (h *sharedAccessHandler) respondSharedAccessError(c *gin.Context, logger *slog.Logger, err error, fallbackMsg string) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Access grant not found"})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logger.Error(fallbackMsg, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallbackMsg})
	}
}
