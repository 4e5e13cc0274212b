package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// UserIDKey is the context key the authenticated caller id is stored under.
const UserIDKey = "userID"

type Claims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

// RequireUser resolves the caller's identity and rejects anonymous
// requests. The gateway normally forwards the id in X-User-ID; direct
// callers may present the identity service's bearer token instead.
func RequireUser(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader("X-User-ID")
		if userID == "" {
			userID = userIDFromToken(c, jwtSecret)
		}
		if userID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Authentication required",
				"code":  "MISSING_USER_ID",
			})
			c.Abort()
			return
		}
		c.Set(UserIDKey, userID)
		c.Next()
	}
}

// UserID reads the caller id stored by RequireUser.
func UserID(c *gin.Context) string {
	return c.GetString(UserIDKey)
}

func userIDFromToken(c *gin.Context, secret string) string {
	tokenString := c.GetHeader("Authorization")
	if tokenString == "" {
		return ""
	}
	tokenString = strings.TrimPrefix(tokenString, "Bearer ")

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return ""
	}
	return claims.UserID
}
