package middleware

import (
	"net/http"

	"huddle/internal/transport/httpdto"
	"huddle/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Recovery turns panics into a 500 detail body.
func Recovery(l *logger.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		if l != nil {
			l.ErrorCtx(c.Request.Context(), "panic recovered", zap.Any("panic", recovered))
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, httpdto.NewDetailResponse("internal server error"))
	})
}

// ErrorHandler logs errors attached with c.Error and writes a body when the
// handler did not.
func ErrorHandler(l *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		if l != nil {
			l.ErrorCtx(c.Request.Context(), "request error", zap.Error(err))
		}
		if !c.Writer.Written() {
			c.JSON(http.StatusInternalServerError, httpdto.NewDetailResponse("internal server error"))
		}
	}
}
