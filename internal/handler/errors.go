package handler

import (
	"errors"
	"io"
	"net/http"

	"huddle/internal/services"
	"huddle/internal/transport/httpdto"
	apperrors "huddle/pkg/errors"

	"github.com/gin-gonic/gin"
)

const detailBadBody = "Malformed request body."

var notAuthenticated = apperrors.ErrNotAuthenticated

// writeError maps service errors onto response bodies: field maps for
// validation and conflicts, {detail} for everything else.
func writeError(c *gin.Context, err error) {
	status := services.HTTPStatus(err)

	var verr *apperrors.ValidationError
	var conflict *apperrors.ConflictError
	switch {
	case errors.As(err, &verr):
		c.JSON(status, verr.Fields)
	case errors.As(err, &conflict):
		c.JSON(status, apperrors.FieldErrors{conflict.Field: {conflict.Message}})
	case status == http.StatusInternalServerError:
		// Logged by middleware.ErrorHandler.
		_ = c.Error(err)
		c.JSON(status, httpdto.NewDetailResponse("internal server error"))
	default:
		if status == http.StatusUnauthorized {
			c.Header("WWW-Authenticate", services.TokenKeyword)
		}
		c.JSON(status, httpdto.NewDetailResponse(err.Error()))
	}
}

// bindJSON decodes the request body into req, answering 400 on failure. An
// empty body binds as an empty object so field validation still runs.
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, httpdto.NewDetailResponse(detailBadBody))
		return false
	}
	return true
}
