package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ladelta/bakery-service/internal/api"
	"github.com/ladelta/bakery-service/internal/config"
	"github.com/ladelta/bakery-service/internal/middleware"
	"github.com/ladelta/bakery-service/internal/models"
	"github.com/ladelta/bakery-service/internal/service"
)

// AuthHandler handles login, logout and session verification.
type AuthHandler struct {
	auth *service.AuthService
	cfg  config.Auth
	ttl  time.Duration
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(auth *service.AuthService, cfg config.Auth, tokenTTL time.Duration) *AuthHandler {
	return &AuthHandler{
		auth: auth,
		cfg:  cfg,
		ttl:  tokenTTL,
	}
}

// Login exchanges a credential pair for a session token. The token is both
// returned in the body and set as the session cookie.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		api.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Email == "" || req.Password == "" {
		api.Error(w, http.StatusBadRequest, "email and password are required")
		return
	}

	token, user, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			api.Error(w, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		logrus.WithError(err).Error("Login failed")
		api.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.cfg.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	api.JSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"token":   token,
		"user": map[string]interface{}{
			"id":    user.ID,
			"email": user.Email,
			"role":  user.Role,
		},
	})
}

// Logout clears the session cookie. Tokens are stateless, so there is
// nothing to revoke server-side.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		api.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.cfg.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	api.JSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Logged out successfully",
	})
}

// Verify returns the identity of the current session, or 401.
func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		api.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	identity := middleware.IdentityFrom(r.Context())
	if identity == nil {
		api.NotAuthenticated(w)
		return
	}

	api.JSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"user": map[string]interface{}{
			"id":    identity.UserID,
			"email": identity.Email,
			"role":  identity.Role,
		},
	})
}
