package httpserver

import (
	"net/http"
	"strings"

	"greencart/internal/domain"

	"github.com/gin-gonic/gin"
)

const (
	userCookie   = "token"
	sellerCookie = "sellerToken"

	userCtxKey        = "user"
	userTokenCtxKey   = "userToken"
	sellerTokenCtxKey = "sellerToken"
)

func userAuthMiddleware(users userService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := requestToken(c, userCookie)
		if token == "" {
			abortUnauthorized(c)
			return
		}
		u, err := users.LookupByToken(c.Request.Context(), token)
		if err != nil {
			abortUnauthorized(c)
			return
		}
		c.Set(userCtxKey, u)
		c.Set(userTokenCtxKey, token)
		c.Next()
	}
}

func sellerAuthMiddleware(sellers sellerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := requestToken(c, sellerCookie)
		if token == "" || sellers.Authenticate(c.Request.Context(), token) != nil {
			abortUnauthorized(c)
			return
		}
		c.Set(sellerTokenCtxKey, token)
		c.Next()
	}
}

// requestToken prefers the session cookie and falls back to a bearer header.
func requestToken(c *gin.Context, cookie string) string {
	if v, err := c.Cookie(cookie); err == nil && v != "" {
		return v
	}
	auth := c.GetHeader("Authorization")
	if len(auth) > 7 && strings.EqualFold(auth[:7], "bearer ") {
		return strings.TrimSpace(auth[7:])
	}
	return ""
}

func currentUser(c *gin.Context) *domain.User {
	v, ok := c.Get(userCtxKey)
	if !ok {
		return nil
	}
	u, _ := v.(*domain.User)
	return u
}

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Not Authorized"})
}
