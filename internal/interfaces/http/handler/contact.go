package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	partnerapp "github.com/markethub/backend/internal/application/partner"
	"github.com/markethub/backend/internal/interfaces/http/dto"
)

// ContactHandler handles delivery contact endpoints
type ContactHandler struct {
	BaseHandler
	contactService *partnerapp.ContactService
}

// NewContactHandler creates a new ContactHandler
func NewContactHandler(contactService *partnerapp.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

// List handles GET /api/v1/contacts
func (h *ContactHandler) List(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	contacts, err := h.contactService.ListContacts(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, contacts)
}

// Create handles POST /api/v1/contacts
func (h *ContactHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req partnerapp.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	contact, err := h.contactService.CreateContact(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, contact)
}

// Update handles PUT /api/v1/contacts/:id
func (h *ContactHandler) Update(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "id must be a valid UUID")
		return
	}
	contactID, _ := uuid.Parse(uri.ID)

	var req partnerapp.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	contact, err := h.contactService.UpdateContact(c.Request.Context(), userID, contactID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, contact)
}

// Delete handles DELETE /api/v1/contacts/:id
func (h *ContactHandler) Delete(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "id must be a valid UUID")
		return
	}
	contactID, _ := uuid.Parse(uri.ID)

	if err := h.contactService.DeleteContact(c.Request.Context(), userID, contactID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
