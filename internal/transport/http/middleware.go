package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"github.com/yash-2200030856/Sanchari-escapes/internal/domain"
	"github.com/yash-2200030856/Sanchari-escapes/internal/service"
	"github.com/yash-2200030856/Sanchari-escapes/internal/util"
)

const (
	contextIdentityKey  = "auth.identity"
	contextTokenKey     = "auth.token"
	contextRequestIDKey = "request.id"
)

// bearerToken extracts the token from "Authorization: Bearer <token>".
func bearerToken(c echo.Context) string {
	header := strings.TrimSpace(c.Request().Header.Get(echo.HeaderAuthorization))
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// RequireAuth resolves the bearer token to an identity on every request.
func RequireAuth(auth *service.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := bearerToken(c)
			identity, err := auth.Authenticate(c.Request().Context(), token)
			if err != nil {
				return writeError(c, err)
			}
			c.Set(contextIdentityKey, identity)
			c.Set(contextTokenKey, token)
			return next(c)
		}
	}
}

// RequireAdmin must run after RequireAuth.
func RequireAdmin(auth *service.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, ok := CurrentIdentity(c)
			if !ok {
				return writeError(c, service.ErrUnauthorized)
			}
			if err := auth.AuthorizeAdmin(c.Request().Context(), identity); err != nil {
				return writeError(c, err)
			}
			return next(c)
		}
	}
}

func CurrentIdentity(c echo.Context) (*domain.Identity, bool) {
	identity, ok := c.Get(contextIdentityKey).(*domain.Identity)
	return identity, ok && identity != nil
}

// NewAdminGroup mounts /api/admin behind the rate limiter and the admin check.
func NewAdminGroup(e *echo.Echo, auth *service.AuthService, ratePerSecond float64) *echo.Group {
	return e.Group("/api/admin", RateLimit(ratePerSecond), RequireAuth(auth), RequireAdmin(auth))
}

// RateLimit limits requests per client IP.
func RateLimit(ratePerSecond float64) echo.MiddlewareFunc {
	if ratePerSecond <= 0 {
		ratePerSecond = 10
	}
	burst := int(ratePerSecond * 2)
	if burst < 1 {
		burst = 1
	}
	store := middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(ratePerSecond),
		Burst:     burst,
		ExpiresIn: 3 * time.Minute,
	})
	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return c.JSON(http.StatusForbidden, util.Error("unable to identify client"))
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return c.JSON(http.StatusTooManyRequests, util.Error("Too many requests"))
		},
	})
}
