package http_api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	userIDKey    = "user_id"
	userEmailKey = "user_email"
)

// authMiddleware verifies the bearer token issued by the hosted auth
// provider and stashes the caller's identity on the request context.
// Session issuance happens outside this service; tokens are only verified.
func (s *HTTPServer) authMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			return
		}

		userID, email, err := s.validateToken(parts[1])
		if err != nil {
			s.logger.Debug("Token validation failed", "error", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set(userIDKey, userID)
		c.Set(userEmailKey, email)
		c.Next()
	}
}

// validateToken parses the JWT and returns the subject and email claims.
func (s *HTTPServer) validateToken(tokenString string) (string, string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})

	if err != nil {
		return "", "", fmt.Errorf("failed to parse token: %w", err)
	}

	if !token.Valid {
		return "", "", fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", fmt.Errorf("invalid token claims")
	}

	userID, ok := claims["sub"].(string)
	if !ok || userID == "" {
		return "", "", fmt.Errorf("sub not found in token")
	}

	// email is optional; profiles created without one can be filled later
	email, _ := claims["email"].(string)

	return userID, email, nil
}

// callerID returns the authenticated account id for the request.
func callerID(c *gin.Context) string {
	return c.GetString(userIDKey)
}

// callerEmail returns the authenticated account email, if the token had one.
func callerEmail(c *gin.Context) string {
	return c.GetString(userEmailKey)
}
