package utils

import "github.com/gin-gonic/gin"

func JSONSuccess(c *gin.Context, code int, data interface{}) {
	c.JSON(code, gin.H{"success": true, "data": data})
}

func JSONError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"success": false, "error": message})
}

// JSONFailureWithExport is the failure envelope for booking submissions:
// every failed attempt still carries a downloadable audit artifact.
func JSONFailureWithExport(c *gin.Context, code int, message, exportURL string) {
	c.JSON(code, gin.H{"success": false, "error": message, "export_url": exportURL})
}
