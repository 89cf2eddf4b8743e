package utils

import (
	"github.com/gin-gonic/gin"
)

// Every operation answers with the same envelope; UI code branches on
// result.success everywhere, so the shape is load-bearing.

func RespondWithData(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{"success": true, "data": data})
}

func RespondOK(c *gin.Context) {
	c.JSON(200, gin.H{"success": true})
}

func RespondWithError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "error": message})
}
