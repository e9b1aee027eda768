package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/yash-2200030856/Sanchari-escapes/internal/domain"
	"github.com/yash-2200030856/Sanchari-escapes/internal/service"
	"github.com/yash-2200030856/Sanchari-escapes/internal/util"
)

type DestinationHandler struct {
	destinations *service.DestinationService
}

// RegisterDestinations mounts the public catalog on e and trip management on the admin group.
func RegisterDestinations(e *echo.Echo, admin *echo.Group, destinations *service.DestinationService) {
	handler := &DestinationHandler{destinations: destinations}

	public := e.Group("/api/destinations")
	public.GET("", handler.list)
	public.GET("/:id", handler.get)

	manage := admin.Group("/destinations")
	manage.GET("", handler.list)
	manage.POST("", handler.create)
	manage.PUT("/:id", handler.update)
	manage.DELETE("/:id", handler.delete)
	manage.POST("/:id/image", handler.uploadImage)
}

func (h *DestinationHandler) list(c echo.Context) error {
	limit, offset := parsePagination(c, 50, 0)
	items, err := h.destinations.List(c.Request().Context(), limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, util.Envelope{
		"destinations": items,
		"meta":         PageMeta{Limit: limit, Offset: offset, Count: len(items)},
	})
}

func (h *DestinationHandler) get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid destination id"))
	}
	dest, err := h.destinations.Get(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, util.Data("destination", dest))
}

func (h *DestinationHandler) create(c echo.Context) error {
	var fields domain.DestinationFields
	if err := c.Bind(&fields); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}
	dest, err := h.destinations.Create(c.Request().Context(), fields)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, util.Data("destination", dest))
}

func (h *DestinationHandler) update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid destination id"))
	}
	var fields domain.DestinationFields
	if err := c.Bind(&fields); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}
	dest, err := h.destinations.Update(c.Request().Context(), id, fields)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, util.Data("destination", dest))
}

func (h *DestinationHandler) delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid destination id"))
	}
	if err := h.destinations.Delete(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Success: true})
}

func (h *DestinationHandler) uploadImage(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid destination id"))
	}
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return writeError(c, service.ErrImageRequired)
	}
	file, err := fileHeader.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("unable to read uploaded file"))
	}
	defer file.Close()

	dest, err := h.destinations.UploadImage(c.Request().Context(), id, service.ImageUpload{
		Reader:   file,
		Size:     fileHeader.Size,
		FileName: fileHeader.Filename,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, util.Data("destination", dest))
}

func parsePagination(c echo.Context, defaultLimit, defaultOffset int) (int, int) {
	limit := defaultLimit
	offset := defaultOffset
	if v := strings.TrimSpace(c.QueryParam("limit")); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	if limit > 200 {
		limit = 200
	}
	if v := strings.TrimSpace(c.QueryParam("offset")); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			offset = parsed
		}
	}
	return limit, offset
}
