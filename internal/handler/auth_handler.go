// Package handler provides HTTP handlers for API endpoints.
package handler

import (
	"net/http"

	"huddle/internal/middleware"
	"huddle/internal/services"
	"huddle/internal/transport/httpdto"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles authentication HTTP endpoints.
type AuthHandler struct {
	service *services.AuthService
}

// NewAuthHandler creates an auth handler.
func NewAuthHandler(service *services.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// Register handles member registration.
func (h *AuthHandler) Register(c *gin.Context) {
	var req httpdto.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.service.Register(c.Request.Context(), req.Input())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, httpdto.FromAuthResult(res))
}

// Login handles credential verification and token rotation.
func (h *AuthHandler) Login(c *gin.Context) {
	var req httpdto.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.service.Login(c.Request.Context(), req.Input())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.FromAuthResult(res))
}

// Logout revokes the token used on this request.
func (h *AuthHandler) Logout(c *gin.Context) {
	p, ok := middleware.PrincipalFromContext(c)
	if !ok {
		writeError(c, notAuthenticated)
		return
	}

	if err := h.service.Logout(c.Request.Context(), *p); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.NewDetailResponse("Successfully logged out"))
}
