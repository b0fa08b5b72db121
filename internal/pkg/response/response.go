package response

import "github.com/gin-gonic/gin"

// Envelope is the JSON shape every endpoint returns:
// {"success": true, "data": {...}} or
// {"success": false, "error": {"code": ..., "message": ..., "details": ...}}.

func Success(c *gin.Context, statusCode int, data any) {
	c.JSON(statusCode, gin.H{
		"success": true,
		"data":    data,
	})
}

// Message wraps data together with a human-readable message, for endpoints
// whose success payload carries an explicit confirmation text.
func Message(c *gin.Context, statusCode int, message string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["message"] = message
	Success(c, statusCode, data)
}

func Error(c *gin.Context, statusCode int, code string, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

// ErrorWithDetails attaches structured details (typically field -> problem
// maps from validation) to an error response.
func ErrorWithDetails(c *gin.Context, statusCode int, code string, message string, details any) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}
