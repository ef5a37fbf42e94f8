package handler

import (
	"net/http"

	"huddle/internal/middleware"
	"huddle/internal/services"
	"huddle/internal/transport/httpdto"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	service *services.ProfileService
}

func NewProfileHandler(service *services.ProfileService) *ProfileHandler {
	return &ProfileHandler{service: service}
}

func (h *ProfileHandler) Get(c *gin.Context) {
	p, ok := middleware.PrincipalFromContext(c)
	if !ok {
		writeError(c, notAuthenticated)
		return
	}
	c.JSON(http.StatusOK, httpdto.FromSummary(h.service.Get(c.Request.Context(), *p)))
}

// Update applies a partial profile change; omitted fields are kept.
func (h *ProfileHandler) Update(c *gin.Context) {
	p, ok := middleware.PrincipalFromContext(c)
	if !ok {
		writeError(c, notAuthenticated)
		return
	}

	var req httpdto.UpdateProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	summary, err := h.service.Update(c.Request.Context(), *p, req.Input())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.FromSummary(summary))
}
