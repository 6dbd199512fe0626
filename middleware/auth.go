package middleware

import (
	"net/http"
	"strings"

	"guate-servicios/models"
	"guate-servicios/utils"

	"github.com/gin-gonic/gin"
)

const claimsKey = "claims"

type TokenVerifier interface {
	Verify(token string) (*utils.Claims, error)
}

// RequireAuth accepts only "Authorization: Bearer <token>" and stores the
// verified claims on the context.
func RequireAuth(tokens TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{
				Message: "No token, autorización denegada.",
			})
			return
		}

		claims, err := tokens.Verify(strings.TrimSpace(token))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{
				Message: "Token no válido.",
			})
			return
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}

// RequireRole must run after RequireAuth.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := CurrentClaims(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, models.ErrorResponse{
				Message: "Acceso denegado: rol insuficiente.",
			})
			return
		}

		for _, role := range roles {
			if claims.Role == string(role) {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, models.ErrorResponse{
			Message: "Acceso denegado: rol insuficiente.",
		})
	}
}

func CurrentClaims(c *gin.Context) (*utils.Claims, bool) {
	v, exists := c.Get(claimsKey)
	if !exists {
		return nil, false
	}
	claims, ok := v.(*utils.Claims)
	return claims, ok
}
