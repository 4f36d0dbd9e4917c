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

// promiseHandler handles HTTP requests related to promises.
type promiseHandler struct {
	promiseService portssvc.PromiseSvcFacade
}

// newPromiseHandler creates a new promiseHandler.
func newPromiseHandler(ps portssvc.PromiseSvcFacade) *promiseHandler {
	return &promiseHandler{
		promiseService: ps,
	}
}

// registerPromiseRoutes registers routes related to promises.
func registerPromiseRoutes(rg *gin.RouterGroup, promiseService portssvc.PromiseSvcFacade) {
	h := newPromiseHandler(promiseService)

	promises := rg.Group("/promises")
	{
		promises.POST("", h.createPromise)
		promises.GET("", h.listPromises)
		promises.GET("/:id", h.getPromise)
		promises.PUT("/:id", h.updatePromise)
		promises.DELETE("/:id", h.deletePromise)
	}
}

// createPromise godoc
// @Summary Create a new promise
// @Description Records a personal promise with a due date and priority
// @Tags promises
// @Accept  json
// @Produce  json
// @Param   promise body dto.CreatePromiseRequest true "Promise details"
// @Success 201 {object} dto.PromiseResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create promise"
// @Router /promises [post]
func (h *promiseHandler) createPromise(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreatePromiseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreatePromise", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	promise, err := h.promiseService.CreatePromise(c.Request.Context(), req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create promise in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create promise"})
		}
		return
	}

	logger.Info("Promise created successfully", slog.String("promise_id", promise.PromiseID))
	c.JSON(http.StatusCreated, dto.ToPromiseResponse(promise))
}

// listPromises godoc
// @Summary List promises
// @Description Retrieves the caller's promises ordered by due date
// @Tags promises
// @Produce  json
// @Success 200 {array} dto.PromiseResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list promises"
// @Router /promises [get]
func (h *promiseHandler) listPromises(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	promises, err := h.promiseService.ListPromises(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to list promises from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list promises"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListPromiseResponse(promises))
}

// getPromise godoc
// @Summary Get a promise
// @Description Retrieves a promise the caller owns
// @Tags promises
// @Produce  json
// @Param   id path string true "Promise ID"
// @Success 200 {object} dto.PromiseResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Promise belongs to another user"
// @Failure 404 {object} map[string]string "Promise not found"
// @Failure 500 {object} map[string]string "Failed to retrieve promise"
// @Router /promises/{id} [get]
func (h *promiseHandler) getPromise(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	promiseID := c.Param("id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	promise, err := h.promiseService.GetPromise(c.Request.Context(), promiseID, userID)
	if err != nil {
		h.respondPromiseError(c, logger, promiseID, err, "Failed to retrieve promise")
		return
	}

	c.JSON(http.StatusOK, dto.ToPromiseResponse(promise))
}

// updatePromise godoc
// @Summary Update a promise
// @Description Applies a partial update to a promise the caller owns, including status transitions
// @Tags promises
// @Accept  json
// @Produce  json
// @Param   id path string true "Promise ID"
// @Param   promise body dto.UpdatePromiseRequest true "Fields to update"
// @Success 200 {object} dto.PromiseResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Promise belongs to another user"
// @Failure 404 {object} map[string]string "Promise not found"
// @Failure 500 {object} map[string]string "Failed to update promise"
// @Router /promises/{id} [put]
func (h *promiseHandler) updatePromise(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	promiseID := c.Param("id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.UpdatePromiseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdatePromise", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	promise, err := h.promiseService.UpdatePromise(c.Request.Context(), promiseID, req, userID)
	if err != nil {
		h.respondPromiseError(c, logger, promiseID, err, "Failed to update promise")
		return
	}

	c.JSON(http.StatusOK, dto.ToPromiseResponse(promise))
}

// deletePromise godoc
// @Summary Delete a promise
// @Description Removes a promise the caller owns
// @Tags promises
// @Produce  json
// @Param   id path string true "Promise ID"
// @Success 204 "Promise deleted"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Promise belongs to another user"
// @Failure 404 {object} map[string]string "Promise not found"
// @Failure 500 {object} map[string]string "Failed to delete promise"
// @Router /promises/{id} [delete]
func (h *promiseHandler) deletePromise(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	promiseID := c.Param("id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.promiseService.DeletePromise(c.Request.Context(), promiseID, userID); err != nil {
		h.respondPromiseError(c, logger, promiseID, err, "Failed to delete promise")
		return
	}

	c.Status(http.StatusNoContent)
}

// respondPromiseError maps service errors to HTTP responses shared by the
// promise endpoints.
func (h *promiseHandler) respondPromiseError(c *gin.Context, logger *slog.Logger, promiseID string, err error, fallbackMsg string) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Promise not found"})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Promise belongs to another user"})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logger.Error(fallbackMsg, slog.String("promise_id", promiseID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallbackMsg})
	}
}
