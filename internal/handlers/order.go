// internal/handlers/order.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/meridianmade/storefront/internal/models"
	"github.com/meridianmade/storefront/internal/services"
	"github.com/meridianmade/storefront/internal/utils"
)

type OrderHandler struct {
	orders *services.OrderAdminService
}

func NewOrderHandler(orders *services.OrderAdminService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// GET /v1/admin/orders?status=
func (h *OrderHandler) ListOrders(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	var status *models.OrderStatus
	if raw := c.Query("status"); raw != "" {
		s := models.OrderStatus(raw)
		status = &s
	}

	orders, total, err := h.orders.List(c.Request.Context(), status, params)
	if err != nil {
		respondServiceError(c, err, "Order")
		return
	}

	result := utils.CreatePaginationResult(orders, total, params)
	utils.PaginatedResponse(c, result)
}

// GET /v1/admin/orders/:id
func (h *OrderHandler) GetOrder(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid order id", nil)
		return
	}

	order, err := h.orders.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "Order")
		return
	}
	utils.SuccessResponse(c, order)
}

// PUT /v1/admin/orders/:id/status
func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid order id", nil)
		return
	}

	var req services.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "status is required", nil)
		return
	}

	order, err := h.orders.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		respondServiceError(c, err, "Order")
		return
	}
	utils.SuccessResponse(c, order)
}

// PUT /v1/admin/orders/:id/tracking
func (h *OrderHandler) AttachTracking(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid order id", nil)
		return
	}

	var req services.AttachTrackingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "tracking_number is required", nil)
		return
	}

	order, err := h.orders.AttachTracking(c.Request.Context(), id, &req)
	if err != nil {
		respondServiceError(c, err, "Order")
		return
	}
	utils.SuccessResponse(c, order)
}

// POST /v1/admin/orders/:id/notes
func (h *OrderHandler) AppendOrderNote(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid order id", nil)
		return
	}

	var req services.AppendNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "note is required", nil)
		return
	}

	order, err := h.orders.AppendNote(c.Request.Context(), id, req.Note)
	if err != nil {
		respondServiceError(c, err, "Order")
		return
	}
	utils.SuccessResponse(c, order)
}
