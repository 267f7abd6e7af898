package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ncsdigital/contact-details-service/internal/api/rest/middleware"
	"github.com/ncsdigital/contact-details-service/internal/domain"
	"github.com/ncsdigital/contact-details-service/internal/service"
	"github.com/ncsdigital/contact-details-service/pkg/logger"
)

// HeaderAPIMURL is the caller-supplied base URL used to build the resource
// link carried in creation notifications.
const HeaderAPIMURL = "apimurl"

// ContactHandler serves the contact details routes
type ContactHandler struct {
	service service.ContactService
	log     *logger.Logger
}

// NewContactHandler creates a new contact details handler
func NewContactHandler(svc service.ContactService, log *logger.Logger) *ContactHandler {
	return &ContactHandler{
		service: svc,
		log:     log,
	}
}

// GetContactDetails returns the contact details owned by a customer
func (h *ContactHandler) GetContactDetails(c *gin.Context) {
	customerID, ok := h.pathUUID(c, "customerId")
	if !ok {
		return
	}

	details, err := h.service.GetByCustomer(c.Request.Context(), customerID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, details)
}

// GetContactDetailsByID returns the contact details matching both identifiers
func (h *ContactHandler) GetContactDetailsByID(c *gin.Context) {
	customerID, ok := h.pathUUID(c, "customerId")
	if !ok {
		return
	}
	contactID, ok := h.pathUUID(c, "contactId")
	if !ok {
		return
	}

	details, err := h.service.Get(c.Request.Context(), customerID, contactID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, details)
}

// CreateContactDetails creates the customer's contact details record
func (h *ContactHandler) CreateContactDetails(c *gin.Context) {
	customerID, ok := h.pathUUID(c, "customerId")
	if !ok {
		return
	}

	apimURL := c.GetHeader(HeaderAPIMURL)
	if apimURL == "" {
		h.log.Warn("Create rejected: missing %s header", HeaderAPIMURL)
		c.JSON(http.StatusBadRequest, gin.H{"error": "apimurl header is required"})
		return
	}

	var details domain.ContactDetails
	if err := c.ShouldBindJSON(&details); err != nil {
		h.log.Warn("Create rejected: malformed body: %v", err)
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "request body could not be parsed"})
		return
	}

	created, err := h.service.Create(c.Request.Context(), customerID, c.GetString(middleware.TouchpointKey), apimURL, &details)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.log.Info("Created contact details %s for customer %s", created.ContactID, created.CustomerID)
	c.JSON(http.StatusCreated, created)
}

// PatchContactDetails applies a partial update to a stored record
func (h *ContactHandler) PatchContactDetails(c *gin.Context) {
	customerID, ok := h.pathUUID(c, "customerId")
	if !ok {
		return
	}
	contactID, ok := h.pathUUID(c, "contactId")
	if !ok {
		return
	}

	var patch domain.ContactDetailsPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		h.log.Warn("Patch rejected: malformed body: %v", err)
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "request body could not be parsed"})
		return
	}

	updated, err := h.service.Patch(c.Request.Context(), customerID, contactID, c.GetString(middleware.TouchpointKey), &patch)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.log.Info("Patched contact details %s for customer %s", updated.ContactID, updated.CustomerID)
	c.JSON(http.StatusOK, updated)
}

// MethodNotSupported answers the declared-but-disabled PUT and DELETE routes
func (h *ContactHandler) MethodNotSupported(c *gin.Context) {
	c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "method not supported"})
}

// pathUUID parses a path identifier, answering 400 on malformed input.
func (h *ContactHandler) pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	raw := c.Param(name)
	id, err := uuid.Parse(raw)
	if err != nil {
		h.log.Warn("Invalid %s: %s", name, raw)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return uuid.Nil, false
	}
	return id, true
}

// respondError maps workflow errors onto the HTTP status taxonomy. Absent
// customers and records are a 204 with no body, never a 404.
func (h *ContactHandler) respondError(c *gin.Context, err error) {
	var findings domain.ValidationErrors
	if errors.As(err, &findings) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": findings})
		return
	}

	switch {
	case errors.Is(err, domain.ErrCustomerNotFound), errors.Is(err, domain.ErrContactNotFound):
		c.Status(http.StatusNoContent)
	case errors.Is(err, domain.ErrTouchpointMissing), errors.Is(err, domain.ErrPersistence):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrCustomerReadOnly):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrContactExists), errors.Is(err, domain.ErrEmailInUse):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		h.log.Error("Unhandled error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
