package handlers

import (
	"net/http"
	"strings"

	"github.com/campus-hq/portal-service/internal/auth"
	"github.com/gin-gonic/gin"
)

// sessionToken pulls the JWT from the session cookie, falling back to a
// bearer Authorization header for non-browser clients.
func sessionToken(c *gin.Context, cookieName string) string {
	if token, err := c.Cookie(cookieName); err == nil && token != "" {
		return token
	}
	header := c.GetHeader("Authorization")
	if after, ok := strings.CutPrefix(header, "Bearer "); ok {
		return after
	}
	return ""
}

// AuthMiddleware verifies the session token and stores the caller's
// identity on the request context.
func AuthMiddleware(jwtSecret, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := sessionToken(c, cookieName)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Message: "Authentication required",
			})
			return
		}

		claims, err := auth.ParseSessionToken(jwtSecret, token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Message: "Invalid or expired session",
			})
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("user_type", claims.UserType)
		c.Next()
	}
}

// AdminMiddleware rejects callers whose session was not minted for an
// admin account. It must run after AuthMiddleware.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userType, _ := c.Get("user_type")
		if userType != "admin" {
			c.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{
				Message: "Admin access required",
			})
			return
		}
		c.Next()
	}
}

// currentUserID returns the authenticated caller's ID, or 0 when the
// route runs without AuthMiddleware.
func currentUserID(c *gin.Context) uint {
	if v, exists := c.Get("user_id"); exists {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}
