package middleware

import (
	"net/http"
	"strings"

	"walegrills/utils"

	"github.com/gin-gonic/gin"
)

// SessionTokenMiddleware admits requests carrying a token for the :sessionID in the
// path and the given flow. The token comes from "Authorization: Bearer" or X-Session-Token.
func SessionTokenMiddleware(issuer *utils.SessionTokenIssuer, flow string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := c.GetHeader("X-Session-Token")
		if authHeader := c.GetHeader("Authorization"); tokenString == "" && strings.HasPrefix(authHeader, "Bearer ") {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		}
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing session token"})
			return
		}

		sid, tokenFlow, err := issuer.ExtractSession(tokenString)
		if err != nil || tokenFlow != flow || sid != c.Param("sessionID") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid session token"})
			return
		}
		c.Set("sessionID", sid)
		c.Next()
	}
}
