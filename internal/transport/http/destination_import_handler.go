package http

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/yash-2200030856/Sanchari-escapes/internal/service"
	"github.com/yash-2200030856/Sanchari-escapes/internal/util"
)

type DestinationImportHandler struct {
	service *service.DestinationImportService
}

// RegisterDestinationImports mounts the bulk CSV import on the admin group.
func RegisterDestinationImports(admin *echo.Group, svc *service.DestinationImportService) {
	handler := &DestinationImportHandler{service: svc}

	admin.GET("/destinations/import/template", handler.template)
	admin.POST("/destinations/import", handler.create)
}

func (h *DestinationImportHandler) template(c echo.Context) error {
	sample := []string{"Alleppey Backwaters", "India", "8500", "Three nights on a houseboat through the Kerala backwaters.", ""}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	_ = writer.Write(service.DestinationImportColumns)
	_ = writer.Write(sample)
	writer.Flush()
	if err := writer.Error(); err != nil {
		return c.JSON(http.StatusInternalServerError, util.Error("could not generate template"))
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="destination-import-template.csv"`)
	return c.Blob(http.StatusOK, "text/csv", buf.Bytes())
}

func (h *DestinationImportHandler) create(c echo.Context) error {
	identity, ok := CurrentIdentity(c)
	if !ok {
		return writeError(c, service.ErrUnauthorized)
	}

	file, err := c.FormFile("file")
	if err != nil {
		return h.writeError(c, service.ErrImportFileRequired)
	}
	src, err := file.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("unable to read upload"))
	}
	defer src.Close()

	limit := h.service.MaxFileBytes()
	data, err := io.ReadAll(io.LimitReader(src, limit+1))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("failed reading upload"))
	}

	dryRun, _ := strconv.ParseBool(strings.TrimSpace(c.QueryParam("dry_run")))

	result, err := h.service.Import(c.Request().Context(), identity.ID, file.Filename, data, dryRun)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(http.StatusOK, util.Data("import", result))
}

func (h *DestinationImportHandler) writeError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrImportTooLarge):
		return c.JSON(http.StatusRequestEntityTooLarge, util.Error(err.Error()))
	case errors.Is(err, service.ErrImportFileRequired),
		errors.Is(err, service.ErrImportEmptyFile),
		errors.Is(err, service.ErrImportInvalidHeaders),
		errors.Is(err, service.ErrImportRowLimitExceeded):
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	}
	var parseErr *csv.ParseError
	if errors.As(err, &parseErr) {
		return c.JSON(http.StatusBadRequest, util.Error("malformed csv: "+parseErr.Error()))
	}
	return writeError(c, err)
}
