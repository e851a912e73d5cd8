package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Allowed is the authorization policy: whether role belongs to the allowed
// capability set. Roles compare case-insensitively.
func Allowed(role string, allowed map[string]struct{}) bool {
	_, ok := allowed[strings.ToLower(strings.TrimSpace(role))]
	return ok
}

// RequireRoles only lets through requests whose authenticated role is in
// allowedRoles. Assumes Auth ran earlier and set the role on the context.
func RequireRoles(allowedRoles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[strings.ToLower(strings.TrimSpace(r))] = struct{}{}
	}

	return func(c *gin.Context) {
		role := GetUserRole(c)
		if role == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"estado": "falhou",
				"erro":   "role não encontrada no contexto",
			})
			return
		}

		if !Allowed(role, allowed) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"estado": "falhou",
				"erro":   "Permissão negada",
			})
			return
		}

		c.Next()
	}
}
