package routes

import (
	"github.com/gin-gonic/gin"
)

// Stable machine-readable error kinds carried in every error body next to
// the human message.
const (
	CodeValidation = "validation_error"
	CodeNotFound   = "not_found"
	CodeAuth       = "auth_error"
	CodeInternal   = "internal_error"
)

// fail writes the standard error envelope and stops the handler chain.
func fail(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"error": message,
		"code":  code,
	})
}
