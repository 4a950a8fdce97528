package httpserver

import (
	"net/http"

	"greencart/internal/domain"
	ordersvc "greencart/internal/service/order"

	"github.com/gin-gonic/gin"
)

func (h *handlers) placeCOD(c *gin.Context) {
	var in ordersvc.PlaceInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	in.UserID = currentUser(c).ID
	o, err := h.deps.OrderSvc.PlaceCOD(c.Request.Context(), in)
	if err != nil {
		h.writeError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, gin.H{"message": "Order Placed Successfully", "order": o})
}

func (h *handlers) placeOnline(c *gin.Context) {
	var in ordersvc.PlaceInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	in.UserID = currentUser(c).ID
	placed, err := h.deps.OrderSvc.PlaceOnline(c.Request.Context(), in)
	if err != nil {
		h.writeError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, gin.H{"data": placed})
}

func (h *handlers) verifyPayment(c *gin.Context) {
	var in ordersvc.VerifyInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	in.UserID = currentUser(c).ID
	o, err := h.deps.OrderSvc.VerifyPayment(c.Request.Context(), in)
	if err != nil {
		h.writeError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"message": "Payment verified", "order": o})
}

func (h *handlers) userOrders(c *gin.Context) {
	orders, err := h.deps.OrderSvc.ListForUser(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"orders": nonNil(orders)})
}

func (h *handlers) sellerOrders(c *gin.Context) {
	orders, err := h.deps.OrderSvc.ListAll(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"orders": nonNil(orders)})
}

func nonNil(orders []domain.Order) []domain.Order {
	if orders == nil {
		return []domain.Order{}
	}
	return orders
}
