package httpserver

import (
	"net/http"

	"greencart/internal/domain"
	usersvc "greencart/internal/service/user"

	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	ID        string           `json:"_id"`
	Name      string           `json:"name"`
	Email     string           `json:"email"`
	CartItems domain.CartItems `json:"cartItems"`
}

func toUserResponse(u *domain.User) userResponse {
	items := u.CartItems
	if items == nil {
		items = domain.CartItems{}
	}
	return userResponse{ID: u.ID, Name: u.Name, Email: u.Email, CartItems: items}
}

func (h *handlers) register(c *gin.Context) {
	var req usersvc.RegisterInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	u, token, err := h.deps.UserSvc.Register(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	h.setSessionCookie(c, userCookie, token)
	respondOK(c, http.StatusCreated, gin.H{"user": toUserResponse(u), "token": token})
}

func (h *handlers) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	u, token, err := h.deps.UserSvc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.writeError(c, err)
		return
	}
	h.setSessionCookie(c, userCookie, token)
	respondOK(c, http.StatusOK, gin.H{"user": toUserResponse(u), "token": token})
}

func (h *handlers) isAuth(c *gin.Context) {
	respondOK(c, http.StatusOK, gin.H{"user": toUserResponse(currentUser(c))})
}

func (h *handlers) logout(c *gin.Context) {
	if err := h.deps.UserSvc.Logout(c.Request.Context(), c.GetString(userTokenCtxKey)); err != nil {
		h.writeError(c, err)
		return
	}
	h.setSessionCookie(c, userCookie, "")
	respondOK(c, http.StatusOK, gin.H{"message": "Logged Out"})
}
