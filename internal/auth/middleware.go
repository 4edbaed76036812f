package auth

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireAdmin guards privileged ledger routes. It rejects the request
// before the wrapped handler runs, so a failed check never has side effects
// on the ledger.
func RequireAdmin(service *Service, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, err := c.Request.Cookie(CookieName)
		if err != nil || !service.Verify(cookie.Value) {
			logger.Warn("admin check failed", "path", c.Request.URL.Path)
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "administrator login required"})
			return
		}

		c.Next()
	}
}
