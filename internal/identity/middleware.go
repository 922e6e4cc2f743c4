package identity

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Header names the caller on every request. The surrounding infrastructure is
// trusted to set it; this service does not authenticate.
const Header = "X-Sharer-User-Id"

// Required is a Gin middleware that extracts the caller's user ID from the
// X-Sharer-User-Id header and stores it in the request context.
func Required() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(Header)
		if id == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "missing " + Header + " header",
			})
			return
		}

		if _, err := uuid.Parse(id); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error": "invalid " + Header + " header",
			})
			return
		}

		c.Set(callerKey, id)
		c.Next()
	}
}
