// internal/handlers/cart.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/meridianmade/storefront/internal/services"
	"github.com/meridianmade/storefront/internal/utils"
)

const cartTokenHeader = "X-Cart-Token"

type CartHandler struct {
	carts *services.CartService
}

func NewCartHandler(carts *services.CartService) *CartHandler {
	return &CartHandler{carts: carts}
}

type addCartItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity"`
}

type updateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// GET /v1/cart
func (h *CartHandler) GetCart(c *gin.Context) {
	token, err := h.cartToken(c)
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}

	view := h.carts.Get(c.Request.Context(), token)
	c.Header(cartTokenHeader, token)
	utils.SuccessResponse(c, view)
}

// POST /v1/cart/items
func (h *CartHandler) AddItem(c *gin.Context) {
	token, err := h.cartToken(c)
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}

	var req addCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "product_id is required", nil)
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	view, err := h.carts.AddItem(c.Request.Context(), token, req.ProductID, req.Quantity)
	if err != nil {
		respondServiceError(c, err, "Product")
		return
	}

	c.Header(cartTokenHeader, token)
	utils.SuccessResponse(c, view)
}

// PUT /v1/cart/items/:productId
func (h *CartHandler) UpdateItem(c *gin.Context) {
	token, err := h.cartToken(c)
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}

	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid product id", nil)
		return
	}

	var req updateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "quantity is required", nil)
		return
	}

	view, err := h.carts.UpdateQuantity(c.Request.Context(), token, productID, req.Quantity)
	if err != nil {
		respondServiceError(c, err, "Product")
		return
	}

	c.Header(cartTokenHeader, token)
	utils.SuccessResponse(c, view)
}

// DELETE /v1/cart/items/:productId
func (h *CartHandler) RemoveItem(c *gin.Context) {
	token, err := h.cartToken(c)
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}

	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid product id", nil)
		return
	}

	view, err := h.carts.RemoveItem(c.Request.Context(), token, productID)
	if err != nil {
		respondServiceError(c, err, "Product")
		return
	}

	c.Header(cartTokenHeader, token)
	utils.SuccessResponse(c, view)
}

// DELETE /v1/cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	token := c.GetHeader(cartTokenHeader)
	if token == "" {
		utils.SuccessResponse(c, gin.H{"cleared": true})
		return
	}

	if err := h.carts.Clear(c.Request.Context(), token); err != nil {
		respondServiceError(c, err, "Cart")
		return
	}
	utils.SuccessResponse(c, gin.H{"cleared": true})
}

// cartToken returns the client's cart token, minting one for first-time
// shoppers.
func (h *CartHandler) cartToken(c *gin.Context) (string, error) {
	if token := c.GetHeader(cartTokenHeader); token != "" {
		return token, nil
	}
	return utils.GenerateCartToken()
}
