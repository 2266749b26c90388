// internal/handlers/blast.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/meridianmade/storefront/internal/services"
)

type BlastHandler struct {
	blast *services.BlastService
}

func NewBlastHandler(blast *services.BlastService) *BlastHandler {
	return &BlastHandler{blast: blast}
}

// POST /v1/admin/blast
//
// The response is the flat dispatch tally: {"sent": n, "failed": n, "total": n}.
func (h *BlastHandler) SendBlast(c *gin.Context) {
	var req services.BlastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	result, err := h.blast.Send(c.Request.Context(), &req)
	if err != nil {
		if services.IsValidationError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "blast failed"})
		return
	}

	c.JSON(http.StatusOK, result)
}
