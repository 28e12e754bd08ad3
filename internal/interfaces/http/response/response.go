package response

import (
	"errors"

	"github.com/gin-gonic/gin"

	domainerrors "cardreg.backend/internal/domain/errors"
)

// Success sends a success response
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// Error sends an error response
func Error(c *gin.Context, err error) {
	var appErr *domainerrors.AppError
	if !errors.As(err, &appErr) {
		appErr = domainerrors.InternalError(err)
	}

	body := gin.H{
		"code":    appErr.Code,
		"message": appErr.Message,
	}
	if len(appErr.Violations) > 0 {
		body["violations"] = appErr.Violations
	}
	c.JSON(appErr.Status, body)
}

// ErrorWithCode sends an error response with a specific status and message
func ErrorWithCode(c *gin.Context, status int, code string, message string) {
	c.JSON(status, gin.H{
		"code":    code,
		"message": message,
	})
}
