package server

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	market "ev-marketplace/internal/marketService"
	"ev-marketplace/internal/marketerrors"
	"ev-marketplace/services/market/helpers"
	"ev-marketplace/utils"

	"github.com/gin-gonic/gin"
)

// RequestLoggerMiddleware logs incoming requests with timing
func RequestLoggerMiddleware(c *gin.Context) {
	start := time.Now()

	c.Next() // process request

	utils.Info("HTTP Request", map[string]any{
		"method":  c.Request.Method,
		"path":    c.Request.URL.Path,
		"status":  c.Writer.Status(),
		"latency": time.Since(start).String(),
	})
}

// TokenParser verifies bearer tokens.
type TokenParser interface {
	ParseToken(token string) (market.Claims, error)
}

// AuthMiddleware rejects requests without a valid bearer token and stores
// the caller in the context.
func AuthMiddleware(tokens TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(raw) == "" {
			abortUnauthorized(c, fmt.Errorf("missing bearer token: %w", marketerrors.ErrUnauthorized))
			return
		}

		claims, err := tokens.ParseToken(strings.TrimSpace(raw))
		if err != nil {
			abortUnauthorized(c, err)
			return
		}
		c.Set(helpers.UserIDKey, claims.UserID)
		c.Set(helpers.RoleKey, claims.Role)
		c.Next()
	}
}

// AdminOnly must run after AuthMiddleware.
func AdminOnly(c *gin.Context) {
	if c.GetString(helpers.RoleKey) != market.RoleAdmin {
		err := fmt.Errorf("admin role required: %w", marketerrors.ErrForbidden)
		utils.JSONError(c, http.StatusForbidden, err, "not allowed")
		c.Abort()
		return
	}
	c.Next()
}

func abortUnauthorized(c *gin.Context, err error) {
	utils.Warn("AuthMiddleware: rejected request", map[string]any{
		"path":  c.Request.URL.Path,
		"error": err.Error(),
	})
	utils.JSONError(c, http.StatusUnauthorized, err, "authentication required")
	c.Abort()
}
