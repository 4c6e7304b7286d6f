package testserver

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

func (s *Server) authMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.takeUnauthorized() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Token revoked"})
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Not authenticated"})
			return
		}

		email, err := parseToken(s.secret, strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Could not validate credentials"})
			return
		}

		s.store.mu.RLock()
		user := s.store.userByEmail(email)
		s.store.mu.RUnlock()
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "User not found"})
			return
		}

		c.Set("userID", user.ID)
		c.Next()
	}
}
