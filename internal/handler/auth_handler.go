package handler

import (
	"net/http"

	"catalog/internal/auth"
	"catalog/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	svc          *service.AuthService
	secureCookie bool
}

func NewAuthHandler(svc *service.AuthService, secureCookie bool) *AuthHandler {
	return &AuthHandler{svc: svc, secureCookie: secureCookie}
}

// Login handles POST /api/admin/login. The token is returned in the body and
// also set as an HttpOnly cookie for the admin UI.
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	maxAge := int(res.ExpiresAt.Sub(timeNow()).Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(auth.CookieName, res.Token, maxAge, "/", "", h.secureCookie, true)
	respondData(c, res)
}

// Logout handles POST /api/admin/logout by clearing the admin cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(auth.CookieName, "", -1, "/", "", h.secureCookie, true)
	respondMessage(c, http.StatusOK, "Logged out successfully", nil)
}
