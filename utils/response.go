package utils

import (
	"github.com/gin-gonic/gin"
)

// JSONResponse writes the marketplace envelope {success, message, data}.
func JSONResponse(c *gin.Context, status int, data any, message string) {
	c.JSON(status, gin.H{
		"success": true,
		"message": message,
		"data":    data,
	})
}

// JSONError writes a failed envelope. The error text is kept out of the
// message so clients can show message verbatim.
func JSONError(c *gin.Context, status int, err error, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"message": message,
		"error":   err.Error(),
	})
}
