package middleware

import (
	"net/http"
	"strings"

	"prestadores-api/internal/apierror"
	"prestadores-api/internal/token"

	"github.com/gin-gonic/gin"
)

const (
	// TokenHeader carries the session token on protected routes.
	TokenHeader = "access-token"

	ClaimsKey = "claims"
)

// TokenVerifier decodes a session token.
type TokenVerifier interface {
	Verify(tokenStr string) (*token.Claims, error)
}

// Auth validates the session token on every protected route. A missing token
// is 401; a present but unusable one is 403 with the verification error.
func Auth(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := strings.TrimSpace(c.GetHeader(TokenHeader))
		if tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Acesso negado. É obrigatório o envio do token JWT"))
			return
		}

		claims, err := verifier.Verify(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, apierror.New("Token inválido: "+err.Error()))
			return
		}

		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

// GetUsuarioID returns the authenticated user id, or false on routes that
// did not pass through Auth.
func GetUsuarioID(c *gin.Context) (string, bool) {
	claims := getClaims(c)
	if claims == nil || claims.Usuario.ID == "" {
		return "", false
	}
	return claims.Usuario.ID, true
}

func getClaims(c *gin.Context) *token.Claims {
	claims, _ := c.Get(ClaimsKey)
	tc, _ := claims.(*token.Claims)
	return tc
}
