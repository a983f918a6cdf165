package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"pekarna-api/internal/core/auth"
	resp "pekarna-api/internal/transport/http/response"
)

const KeyUserID = "userId"

// AuthJWT guards a route group with a bearer token. Missing, malformed,
// expired and mis-signed tokens all produce the same 401 body.
func AuthJWT(j *auth.JWTer) gin.HandlerFunc {
	return func(c *gin.Context) {
		ah := c.GetHeader("Authorization")
		if !strings.HasPrefix(ah, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, resp.Error(resp.CodeInvalidToken, "Neplatný token."))
			return
		}
		uid, err := j.Parse(strings.TrimPrefix(ah, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, resp.Error(resp.CodeInvalidToken, "Neplatný token."))
			return
		}
		c.Set(KeyUserID, uid)
		c.Next()
	}
}
