package http

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/yash-2200030856/Sanchari-escapes/internal/domain"
	"github.com/yash-2200030856/Sanchari-escapes/internal/service"
	"github.com/yash-2200030856/Sanchari-escapes/internal/util"
)

type UserHandler struct {
	profiles *service.ProfileService
}

func RegisterAdminUsers(admin *echo.Group, profiles *service.ProfileService) {
	handler := &UserHandler{profiles: profiles}

	admin.GET("/users", handler.list)
	admin.PUT("/users/:id/role", handler.setRole)
}

func (h *UserHandler) list(c echo.Context) error {
	limit, offset := parsePagination(c, 50, 0)
	profiles, err := h.profiles.List(c.Request().Context(), limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, util.Envelope{
		"users": profiles,
		"meta":  PageMeta{Limit: limit, Offset: offset, Count: len(profiles)},
	})
}

func (h *UserHandler) setRole(c echo.Context) error {
	identity, ok := CurrentIdentity(c)
	if !ok {
		return writeError(c, service.ErrUnauthorized)
	}
	targetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid user id"))
	}

	var req struct {
		Role string `json:"role"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}
	role, err := domain.ParseRole(req.Role)
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	}

	profile, err := h.profiles.SetRole(c.Request().Context(), identity.ID, targetID, role)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, util.Data("user", profile))
}
