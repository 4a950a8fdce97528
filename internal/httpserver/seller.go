package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *handlers) sellerLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	token, err := h.deps.SellerSvc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.writeError(c, err)
		return
	}
	h.setSessionCookie(c, sellerCookie, token)
	respondOK(c, http.StatusOK, gin.H{"message": "Logged In"})
}

func (h *handlers) sellerIsAuth(c *gin.Context) {
	respondOK(c, http.StatusOK, nil)
}

func (h *handlers) sellerLogout(c *gin.Context) {
	if err := h.deps.SellerSvc.Logout(c.Request.Context(), c.GetString(sellerTokenCtxKey)); err != nil {
		h.writeError(c, err)
		return
	}
	h.setSessionCookie(c, sellerCookie, "")
	respondOK(c, http.StatusOK, gin.H{"message": "Logged Out"})
}
