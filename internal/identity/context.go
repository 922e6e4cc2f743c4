package identity

import "github.com/gin-gonic/gin"

const callerKey = "callerID"

// CallerID returns the identified caller's user ID or empty string.
func CallerID(c *gin.Context) string {
	if v, ok := c.Get(callerKey); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
