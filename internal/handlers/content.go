// internal/handlers/content.go
package handlers

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/meridianmade/storefront/internal/services"
	"github.com/meridianmade/storefront/internal/utils"
)

type ContentHandler struct {
	content *services.ContentService
}

func NewContentHandler(content *services.ContentService) *ContentHandler {
	return &ContentHandler{content: content}
}

// Events

// GET /v1/events
func (h *ContentHandler) GetEvents(c *gin.Context) {
	events, err := h.content.ListEvents(c.Request.Context(), true)
	if err != nil {
		respondServiceError(c, err, "Event")
		return
	}
	utils.SuccessResponse(c, gin.H{"events": events})
}

// GET /v1/admin/events
func (h *ContentHandler) ListEvents(c *gin.Context) {
	events, err := h.content.ListEvents(c.Request.Context(), false)
	if err != nil {
		respondServiceError(c, err, "Event")
		return
	}
	utils.SuccessResponse(c, gin.H{"events": events})
}

// POST /v1/admin/events
func (h *ContentHandler) CreateEvent(c *gin.Context) {
	var req services.EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	event, err := h.content.CreateEvent(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err, "Event")
		return
	}
	utils.CreatedResponse(c, event)
}

// PUT /v1/admin/events/:id
func (h *ContentHandler) UpdateEvent(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid event id", nil)
		return
	}

	var req services.EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	event, err := h.content.UpdateEvent(c.Request.Context(), id, &req)
	if err != nil {
		respondServiceError(c, err, "Event")
		return
	}
	utils.SuccessResponse(c, event)
}

// DELETE /v1/admin/events/:id
func (h *ContentHandler) DeleteEvent(c *gin.Context) {
	h.deleteByID(c, "Event", h.content.DeleteEvent)
}

// Gallery

// GET /v1/gallery
func (h *ContentHandler) GetGallery(c *gin.Context) {
	images, err := h.content.ListGallery(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "Gallery image")
		return
	}
	utils.SuccessResponse(c, gin.H{"images": images})
}

// POST /v1/admin/gallery
func (h *ContentHandler) CreateGalleryImage(c *gin.Context) {
	var req services.GalleryImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	image, err := h.content.CreateGalleryImage(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err, "Gallery image")
		return
	}
	utils.CreatedResponse(c, image)
}

// DELETE /v1/admin/gallery/:id
func (h *ContentHandler) DeleteGalleryImage(c *gin.Context) {
	h.deleteByID(c, "Gallery image", h.content.DeleteGalleryImage)
}

// Partners

// GET /v1/partners
func (h *ContentHandler) GetPartners(c *gin.Context) {
	partners, err := h.content.ListPartners(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "Partner")
		return
	}
	utils.SuccessResponse(c, gin.H{"partners": partners})
}

// POST /v1/admin/partners
func (h *ContentHandler) CreatePartner(c *gin.Context) {
	var req services.PartnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	partner, err := h.content.CreatePartner(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err, "Partner")
		return
	}
	utils.CreatedResponse(c, partner)
}

// DELETE /v1/admin/partners/:id
func (h *ContentHandler) DeletePartner(c *gin.Context) {
	h.deleteByID(c, "Partner", h.content.DeletePartner)
}

// Subscribers

// POST /v1/subscribe
func (h *ContentHandler) Subscribe(c *gin.Context) {
	var req services.SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "a valid email is required", nil)
		return
	}

	subscriber, err := h.content.Subscribe(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err, "Subscriber")
		return
	}
	utils.SuccessResponse(c, subscriber)
}

// GET /v1/admin/subscribers
func (h *ContentHandler) ListSubscribers(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	subscribers, total, err := h.content.ListSubscribers(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, err, "Subscriber")
		return
	}

	result := utils.CreatePaginationResult(subscribers, total, params)
	utils.PaginatedResponse(c, result)
}

// DELETE /v1/admin/subscribers/:id
func (h *ContentHandler) Unsubscribe(c *gin.Context) {
	h.deleteByID(c, "Subscriber", h.content.Unsubscribe)
}

// Settings

// GET /v1/admin/settings
func (h *ContentHandler) ListSettings(c *gin.Context) {
	settings, err := h.content.ListSettings(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "Setting")
		return
	}
	utils.SuccessResponse(c, gin.H{"settings": settings})
}

// PUT /v1/admin/settings
func (h *ContentHandler) UpsertSetting(c *gin.Context) {
	var req services.SettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	setting, err := h.content.UpsertSetting(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err, "Setting")
		return
	}
	utils.SuccessResponse(c, setting)
}

func (h *ContentHandler) deleteByID(c *gin.Context, resource string, del func(ctx context.Context, id uuid.UUID) error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid id", nil)
		return
	}

	if err := del(c.Request.Context(), id); err != nil {
		respondServiceError(c, err, resource)
		return
	}
	utils.SuccessResponse(c, gin.H{"deleted": true})
}
