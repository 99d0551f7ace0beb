package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// GinOptional attaches a Principal to the request context when a valid Bearer
// token is sent. Requests without a token pass through anonymously; a bad token is 401.
func GinOptional(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := ParseBearer(c.GetHeader("Authorization"), secret)
		if err != nil {
			if errors.Is(err, ErrNoToken) {
				c.Next()
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Invalid or expired token."})
			return
		}
		c.Request = c.Request.WithContext(WithPrincipal(c.Request.Context(), p))
		c.Next()
	}
}

// GinRequireOperator must run after GinOptional. It answers 401 for anonymous
// callers and 403 for principals that are not operators.
func GinRequireOperator() gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := FromContext(c.Request.Context())
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Authentication credentials were not provided."})
			return
		}
		if !p.IsOperator() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"detail": "You do not have permission to perform this action."})
			return
		}
		c.Next()
	}
}
