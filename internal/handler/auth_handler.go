package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/FredrikEglese/learnApi/internal/apperr"
	"github.com/FredrikEglese/learnApi/internal/service"
)

type AuthHandler struct {
	svc          *service.AuthService
	cookieExpire time.Duration
	secureCookie bool
}

func NewAuthHandler(s *service.AuthService, cookieExpireDays int, secureCookie bool) *AuthHandler {
	return &AuthHandler{
		svc:          s,
		cookieExpire: time.Duration(cookieExpireDays) * 24 * time.Hour,
		secureCookie: secureCookie,
	}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// @Summary Register
// @Description Crea un usuario nuevo y devuelve token + cookie
// @Tags auth
// @Accept json
// @Produce json
// @Param body body registerRequest true "datos"
// @Success 201 {object} map[string]any
// @Failure 400 {object} map[string]any
// @Router /api/v1/auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, apperr.Validationf("invalid request body"))
		return
	}

	_, token, err := h.svc.Register(r.Context(), service.RegisterData{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	h.sendTokenResponse(w, http.StatusCreated, token)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// @Summary Login
// @Tags auth
// @Accept json
// @Produce json
// @Param body body loginRequest true "credenciales"
// @Success 200 {object} map[string]any
// @Failure 401 {object} map[string]any
// @Router /api/v1/auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, apperr.Validationf("invalid request body"))
		return
	}

	token, _, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondError(w, err)
		return
	}

	h.sendTokenResponse(w, http.StatusOK, token)
}

// @Summary Usuario autenticado
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} map[string]any
// @Router /api/v1/auth/me [get]
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	respondData(w, http.StatusOK, UserFromContext(r.Context()))
}

// sendTokenResponse manda el token por partida doble: en el body y
// en una cookie http-only (secure solo en producción).
func (h *AuthHandler) sendTokenResponse(w http.ResponseWriter, status int, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(h.cookieExpire),
		HttpOnly: true,
		Secure:   h.secureCookie,
	})

	writeJSON(w, status, map[string]any{
		"success": true,
		"token":   token,
	})
}
