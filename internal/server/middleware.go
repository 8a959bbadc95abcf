package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/mtslabs/mts/internal/service"
)

const claimsKey = "authClaims"

// RequestTimeMiddleware logs the handling time of every request.
func RequestTimeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		reqTime := time.Since(start)
		logrus.Infof("request time: %v %v: %v", c.Request.Method, c.FullPath(), reqTime)
	}
}

// RequireAuth verifies the bearer token and stores the claims on the context.
func RequireAuth(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid token"})
			return
		}

		claims, err := auth.VerifyToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}

// RequireAdmin rejects requests whose verified claims lack the admin flag.
// Must run behind RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := requestClaims(c)
		if claims == nil || !claims.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": service.ErrNotAdmin.Error()})
			return
		}
		c.Next()
	}
}

func requestClaims(c *gin.Context) *service.Claims {
	value, ok := c.Get(claimsKey)
	if !ok {
		return nil
	}

	claims, ok := value.(*service.Claims)
	if !ok {
		return nil
	}

	return claims
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if len(header) > 7 && strings.EqualFold(header[:7], "Bearer ") {
		return header[7:]
	}
	return ""
}
