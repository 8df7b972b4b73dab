// Package response writes the API's {status, message, data} envelope.
package response

import (
	"github.com/gin-gonic/gin"
)

func Success(c *gin.Context, status int, message string, data any) {
	c.JSON(status, gin.H{
		"status":  "successful",
		"message": message,
		"data":    data,
	})
}

func Fail(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"status":  "fail",
		"message": message,
		"data":    nil,
	})
}

// FieldErrors reports per-field validation problems with a 400 status.
func FieldErrors(c *gin.Context, status int, errs map[string]string) {
	c.JSON(status, gin.H{
		"status":  "fail",
		"message": "validation failed",
		"data":    gin.H{"errors": errs},
	})
}
