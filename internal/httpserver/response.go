package httpserver

import (
	"errors"
	"net/http"
	"time"

	"greencart/internal/domain"
	cartsvc "greencart/internal/service/cart"
	ordersvc "greencart/internal/service/order"
	"greencart/internal/service/payment"
	"greencart/internal/service/pricing"
	sellersvc "greencart/internal/service/seller"
	"greencart/internal/service/session"
	usersvc "greencart/internal/service/user"

	"github.com/gin-gonic/gin"
)

func respondOK(c *gin.Context, status int, body gin.H) {
	if body == nil {
		body = gin.H{}
	}
	body["success"] = true
	c.JSON(status, body)
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "message": message})
}

// writeError maps service errors onto HTTP statuses. Unknown errors are
// logged and reported as 500 without detail.
func (h *handlers) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, pricing.ErrInvalidOrder),
		errors.Is(err, pricing.ErrCatalogLookup),
		errors.Is(err, payment.ErrSignatureMismatch),
		errors.Is(err, usersvc.ErrInvalidInput),
		errors.Is(err, cartsvc.ErrInvalidCart):
		respondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, usersvc.ErrInvalidCredentials),
		errors.Is(err, sellersvc.ErrInvalidCredentials),
		errors.Is(err, session.ErrInvalidToken):
		respondError(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, ordersvc.ErrOrderNotFound), errors.Is(err, domain.ErrNotFound):
		respondError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, ordersvc.ErrOrderAlreadyPaid):
		respondError(c, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrAlreadyExists):
		respondError(c, http.StatusConflict, "user already exists")
	case errors.Is(err, payment.ErrProviderIntent):
		h.logger.Printf("%s %s: %v", c.Request.Method, c.FullPath(), err)
		respondError(c, http.StatusBadGateway, "payment provider unavailable")
	default:
		h.logger.Printf("%s %s: %v", c.Request.Method, c.FullPath(), err)
		respondError(c, http.StatusInternalServerError, "internal error")
	}
}

func (h *handlers) setSessionCookie(c *gin.Context, name, token string) {
	maxAge := int(h.deps.SessionTTL / time.Second)
	if token == "" {
		maxAge = -1
	}
	if h.deps.SecureCookies {
		c.SetSameSite(http.SameSiteNoneMode)
	} else {
		c.SetSameSite(http.SameSiteStrictMode)
	}
	c.SetCookie(name, token, maxAge, "/", "", h.deps.SecureCookies, true)
}
