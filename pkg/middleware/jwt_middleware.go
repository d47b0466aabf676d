package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"voyager/pkg/utils"
)

const SessionHeader = "X-Session-ID"

func JWTAuthMiddleware(jwtManager *utils.JWTManager) gin.HandlerFunc {

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.RespondError(c, http.StatusUnauthorized, "Authorization header missing or invalid")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := jwtManager.ValidateToken(tokenString)
		if err != nil {
			utils.RespondError(c, http.StatusUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}

		// Pass user information to the next handler
		c.Set("user_id", claims.UserID)
		c.Set("Role", claims.Role)
		c.Set("session_key", sessionKey(claims.UserID, c.GetHeader(SessionHeader)))
		c.Next()
	}
}

// sessionKey scopes form state to one browser tab when the client sends a session id.
func sessionKey(userID, sessionID string) string {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return userID
	}
	return userID + ":" + sessionID
}
