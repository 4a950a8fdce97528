package httpserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

func (h *handlers) listProducts(c *gin.Context) {
	inStock, _ := strconv.ParseBool(c.Query("inStock"))
	products, err := h.deps.ProductSvc.List(c.Request.Context(), inStock)
	if err != nil {
		h.writeError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"products": products})
}

func (h *handlers) getProduct(c *gin.Context) {
	p, err := h.deps.ProductSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"product": p})
}
