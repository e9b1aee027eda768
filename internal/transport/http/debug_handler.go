package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/yash-2200030856/Sanchari-escapes/internal/service"
	"github.com/yash-2200030856/Sanchari-escapes/internal/util"
)

// RegisterDebug mounts GET /api/admin/debug-token. It reports what the server sees for a
// bearer token so failing admin checks can be diagnosed. Keep it disabled in production.
func RegisterDebug(e *echo.Echo, auth *service.AuthService) {
	e.GET("/api/admin/debug-token", func(c echo.Context) error {
		token := bearerToken(c)
		if token == "" {
			return writeError(c, service.ErrUnauthorized)
		}

		resp := util.Envelope{"policy": auth.Policy()}
		if claims, err := util.DecodeUnverified(token); err == nil {
			resp["claims"] = claims
		} else {
			resp["claims_error"] = err.Error()
		}

		identity, err := auth.Authenticate(c.Request().Context(), token)
		if err != nil {
			resp["user_error"] = err.Error()
			return c.JSON(http.StatusOK, resp)
		}
		resp["user"] = identity

		profile, err := auth.Profile(c.Request().Context(), identity)
		if err != nil {
			resp["profile_error"] = err.Error()
		} else {
			resp["profile"] = profile
			resp["profile_is_admin"] = profile.IsAdmin()
		}
		resp["is_admin"] = auth.AuthorizeAdmin(c.Request().Context(), identity) == nil
		return c.JSON(http.StatusOK, resp)
	})
}
