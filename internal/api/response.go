package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"cvstudio/internal/errcode"
	"cvstudio/internal/render"
)

// Error writes an error body with a machine code and a localized user message.
func Error(c *gin.Context, status int, code int, msg string) {
	c.JSON(status, gin.H{
		"code":         code,
		"error":        msg,
		"user_message": errcode.UserMessage(requestLocale(c), code),
	})
}

func AbortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized", "code": errcode.Unauthenticated})
}

func Unauthorized(c *gin.Context) {
	Error(c, http.StatusUnauthorized, errcode.Unauthenticated, "unauthorized")
}

func BadRequest(c *gin.Context, msg string) {
	Error(c, http.StatusBadRequest, errcode.Validation, msg)
}

func Forbidden(c *gin.Context, msg string) {
	Error(c, http.StatusForbidden, errcode.Forbidden, msg)
}

func NotFound(c *gin.Context, msg string) {
	Error(c, http.StatusNotFound, errcode.NotFound, msg)
}

func Conflict(c *gin.Context, msg string) {
	Error(c, http.StatusConflict, errcode.Conflict, msg)
}

func TooManyRequests(c *gin.Context, msg string) {
	Error(c, http.StatusTooManyRequests, errcode.RateLimit, msg)
}

func Internal(c *gin.Context, msg string) {
	Error(c, http.StatusInternalServerError, errcode.SystemError, msg)
}

// requestLocale picks the response language from the Accept-Language header.
// Only the first tag matters; quality weights are ignored.
func requestLocale(c *gin.Context) string {
	header := c.GetHeader("Accept-Language")
	if idx := strings.IndexAny(header, ",;"); idx >= 0 {
		header = header[:idx]
	}
	return string(render.ParseLocale(header))
}
