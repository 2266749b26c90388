// internal/handlers/auth.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/meridianmade/storefront/internal/services"
	"github.com/meridianmade/storefront/internal/utils"
)

type AuthHandler struct {
	auth *services.AuthService
}

func NewAuthHandler(auth *services.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// POST /v1/admin/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "email and password are required", nil)
		return
	}

	resp, err := h.auth.Login(c.Request.Context(), &req)
	if err != nil {
		if services.IsValidationError(err) {
			utils.UnauthorizedResponse(c, err.Error())
			return
		}
		respondServiceError(c, err, "Admin")
		return
	}

	utils.SuccessResponse(c, resp)
}
