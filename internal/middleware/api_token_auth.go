package middleware

import (
	"context"
	"crypto/subtle"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const (
	// ClientKeyKey is the context key for the rate limiting identity of the caller
	ClientKeyKey contextKey = "client_key"
	// IsAPITokenAuthKey is the context key indicating API token authentication
	IsAPITokenAuthKey contextKey = "is_api_token_auth"
)

// tokenQueryParam lets browser websocket clients, which cannot set headers, authenticate.
const tokenQueryParam = "token"

// APITokenAuthMiddleware guards the API with a single static bearer token.
// An empty token disables authentication.
type APITokenAuthMiddleware struct {
	token string
}

// NewAPITokenAuthMiddleware creates a new APITokenAuthMiddleware
func NewAPITokenAuthMiddleware(token string) *APITokenAuthMiddleware {
	return &APITokenAuthMiddleware{token: token}
}

// Enabled reports whether a token is configured
func (m *APITokenAuthMiddleware) Enabled() bool {
	return m.token != ""
}

// Authenticate returns an Echo middleware that validates the bearer token
func (m *APITokenAuthMiddleware) Authenticate() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !m.Enabled() {
				return next(c)
			}

			token, detail := extractToken(c)
			if detail != "" {
				return unauthorizedError(c, detail)
			}

			if subtle.ConstantTimeCompare([]byte(token), []byte(m.token)) != 1 {
				log.Debug().Str("path", c.Request().URL.Path).Msg("API token rejected")
				return unauthorizedError(c, "Invalid API token")
			}

			ctx := c.Request().Context()
			ctx = context.WithValue(ctx, IsAPITokenAuthKey, true)
			ctx = context.WithValue(ctx, ClientKeyKey, "token:"+tokenFingerprint(token))
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

// extractToken returns the presented token, or a detail message when none is usable.
func extractToken(c echo.Context) (token string, detail string) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		if q := c.QueryParam(tokenQueryParam); q != "" {
			return q, ""
		}
		return "", "Missing authorization header"
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" || parts[1] == "" {
		return "", "Invalid authorization header format"
	}
	return parts[1], ""
}

// tokenFingerprint keeps raw tokens out of limiter keys and logs.
func tokenFingerprint(token string) string {
	if len(token) <= 4 {
		return "****"
	}
	return "****" + token[len(token)-4:]
}

// IsAPITokenAuth checks if the request was authenticated via API token
func IsAPITokenAuth(c echo.Context) bool {
	if isAPIToken, ok := c.Request().Context().Value(IsAPITokenAuthKey).(bool); ok {
		return isAPIToken
	}
	return false
}

// GetClientKey returns the identity used for rate limiting: the token
// fingerprint when authenticated, otherwise the client IP.
func GetClientKey(c echo.Context) string {
	if key, ok := c.Request().Context().Value(ClientKeyKey).(string); ok && key != "" {
		return key
	}
	return "ip:" + c.RealIP()
}
