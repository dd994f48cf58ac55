package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dougladias/Clinica-vida-plena-sub000/internal/utils"
)

const ClaimsKey = "claims"

// Auth rejects requests without a valid Bearer token signed with secret.
// The parsed claims are stored under ClaimsKey.
func Auth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		tokenStr, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(tokenStr) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token de autenticação não informado", "code": "UNAUTHORIZED"})
			return
		}

		claims, err := utils.ParseToken(secret, strings.TrimSpace(tokenStr))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token inválido ou expirado", "code": "UNAUTHORIZED"})
			return
		}
		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

// CurrentClaims returns the claims stored by Auth, if any.
func CurrentClaims(c *gin.Context) (*utils.Claims, bool) {
	v, ok := c.Get(ClaimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*utils.Claims)
	return claims, ok
}
