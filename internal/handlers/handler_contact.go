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

// contactHandler handles HTTP requests related to contacts.
type contactHandler struct {
	contactService portssvc.ContactSvcFacade
}

// newContactHandler creates a new contactHandler.
func newContactHandler(cs portssvc.ContactSvcFacade) *contactHandler {
	return &contactHandler{
		contactService: cs,
	}
}

// registerContactRoutes registers routes related to contacts.
func registerContactRoutes(rg *gin.RouterGroup, contactService portssvc.ContactSvcFacade) {
	h := newContactHandler(contactService)

	contacts := rg.Group("/contacts")
	{
		contacts.POST("", h.createContact)
		contacts.GET("", h.listContacts)
		contacts.GET("/:id", h.getContact)
		contacts.PUT("/:id", h.updateContact)
		contacts.DELETE("/:id", h.deleteContact)
		contacts.GET("/:id/balance", h.getBalance)
	}
}

// createContact godoc
// @Summary Create a new contact
// @Description Adds a contact to the caller's address book
// @Tags contacts
// @Accept  json
// @Produce  json
// @Param   contact body dto.CreateContactRequest true "Contact details"
// @Success 201 {object} dto.ContactResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create contact"
// @Router /contacts [post]
func (h *contactHandler) createContact(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateContact", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	contact, err := h.contactService.CreateContact(c.Request.Context(), req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create contact in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create contact"})
		}
		return
	}

	logger.Info("Contact created successfully", slog.String("contact_id", contact.ContactID))
	c.JSON(http.StatusCreated, dto.ToContactResponse(contact))
}

// listContacts godoc
// @Summary List contacts
// @Description Retrieves all contacts belonging to the caller
// @Tags contacts
// @Produce  json
// @Success 200 {array} dto.ContactResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list contacts"
// @Router /contacts [get]
func (h *contactHandler) listContacts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	contacts, err := h.contactService.ListContacts(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to list contacts from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list contacts"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListContactResponse(contacts))
}

// getContact godoc
// @Summary Get a contact
// @Description Retrieves a contact the caller owns
// @Tags contacts
// @Produce  json
// @Param   id path string true "Contact ID"
// @Success 200 {object} dto.ContactResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Contact belongs to another user"
// @Failure 404 {object} map[string]string "Contact not found"
// @Failure 500 {object} map[string]string "Failed to retrieve contact"
// @Router /contacts/{id} [get]
func (h *contactHandler) getContact(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	contactID := c.Param("id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	contact, err := h.contactService.GetContact(c.Request.Context(), contactID, userID)
	if err != nil {
		h.respondContactError(c, logger, contactID, err, "Failed to retrieve contact")
		return
	}

	c.JSON(http.StatusOK, dto.ToContactResponse(contact))
}

// updateContact godoc
// @Summary Update a contact
// @Description Applies a partial update to a contact the caller owns
// @Tags contacts
// @Accept  json
// @Produce  json
// @Param   id path string true "Contact ID"
// @Param   contact body dto.UpdateContactRequest true "Fields to update"
// @Success 200 {object} dto.ContactResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Contact belongs to another user"
// @Failure 404 {object} map[string]string "Contact not found"
// @Failure 500 {object} map[string]string "Failed to update contact"
// @Router /contacts/{id} [put]
func (h *contactHandler) updateContact(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	contactID := c.Param("id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.UpdateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateContact", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	contact, err := h.contactService.UpdateContact(c.Request.Context(), contactID, req, userID)
	if err != nil {
		h.respondContactError(c, logger, contactID, err, "Failed to update contact")
		return
	}

	c.JSON(http.StatusOK, dto.ToContactResponse(contact))
}

// deleteContact godoc
// @Summary Delete a contact
// @Description Removes a contact the caller owns
// @Tags contacts
// @Produce  json
// @Param   id path string true "Contact ID"
// @Success 204 "Contact deleted"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Contact belongs to another user"
// @Failure 404 {object} map[string]string "Contact not found"
// @Failure 500 {object} map[string]string "Failed to delete contact"
// @Router /contacts/{id} [delete]
func (h *contactHandler) deleteContact(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	contactID := c.Param("id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.contactService.DeleteContact(c.Request.Context(), contactID, userID); err != nil {
		h.respondContactError(c, logger, contactID, err, "Failed to delete contact")
		return
	}

	c.Status(http.StatusNoContent)
}

// getBalance godoc
// @Summary Get a contact's balance
// @Description Computes the contact's net standing from FUNDS transactions: GIVEN adds, RECEIVED and COLLECTED subtract
// @Tags contacts
// @Produce  json
// @Param   id path string true "Contact ID"
// @Success 200 {object} dto.BalanceResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Contact belongs to another user"
// @Failure 404 {object} map[string]string "Contact not found"
// @Failure 500 {object} map[string]string "Failed to compute balance"
// @Router /contacts/{id}/balance [get]
func (h *contactHandler) getBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	contactID := c.Param("id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	balance, err := h.contactService.GetBalance(c.Request.Context(), contactID, userID)
	if err != nil {
		h.respondContactError(c, logger, contactID, err, "Failed to compute balance")
		return
	}

	c.JSON(http.StatusOK, dto.BalanceResponse{ContactID: contactID, Balance: balance})
}

// respondContactError maps service errors to HTTP responses shared by the
// contact endpoints.
func (h *contactHandler) respondContactError(c *gin.Context, logger *slog.Logger, contactID string, err error, fallbackMsg string) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Contact not found"})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Contact belongs to another user"})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logger.Error(fallbackMsg, slog.String("contact_id", contactID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallbackMsg})
	}
}
