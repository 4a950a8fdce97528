package httpserver

import (
	"net/http"

	"greencart/internal/domain"

	"github.com/gin-gonic/gin"
)

type cartUpdateRequest struct {
	CartItems domain.CartItems `json:"cartItems"`
}

func (h *handlers) getCart(c *gin.Context) {
	items, err := h.deps.CartSvc.Get(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"cartItems": items})
}

func (h *handlers) updateCart(c *gin.Context) {
	var req cartUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	items, err := h.deps.CartSvc.Update(c.Request.Context(), currentUser(c).ID, req.CartItems)
	if err != nil {
		h.writeError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"message": "Cart Updated", "cartItems": items})
}
