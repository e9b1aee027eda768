package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/yash-2200030856/Sanchari-escapes/internal/domain"
	"github.com/yash-2200030856/Sanchari-escapes/internal/repository/ports"
)

var (
	ErrImportFileRequired     = errors.New("csv file is required")
	ErrImportEmptyFile        = errors.New("csv file is empty")
	ErrImportTooLarge         = errors.New("csv file exceeds maximum size")
	ErrImportInvalidHeaders   = errors.New("csv headers missing required columns")
	ErrImportRowLimitExceeded = errors.New("csv exceeds maximum allowed rows")
)

// DestinationImportColumns is the CSV header accepted by Import, required columns first.
var DestinationImportColumns = []string{"name", "country", "price_per_person", "description", "image_url"}

var requiredImportColumns = DestinationImportColumns[:3]

type DestinationImportServiceConfig struct {
	Bucket       string
	MaxRows      int
	MaxFileBytes int64
	Logger       *zerolog.Logger
}

type DestinationImportService struct {
	destinations ports.DestinationRepository
	storage      ports.ObjectStorage
	bucket       string
	maxRows      int
	maxFileBytes int64
	logger       zerolog.Logger
}

func NewDestinationImportService(destinations ports.DestinationRepository, storage ports.ObjectStorage, cfg DestinationImportServiceConfig) *DestinationImportService {
	maxRows := cfg.MaxRows
	if maxRows <= 0 {
		maxRows = 500
	}
	maxFile := cfg.MaxFileBytes
	if maxFile <= 0 {
		maxFile = 5 * 1024 * 1024
	}
	logger := zerolog.Nop()
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}
	return &DestinationImportService{
		destinations: destinations,
		storage:      storage,
		bucket:       cfg.Bucket,
		maxRows:      maxRows,
		maxFileBytes: maxFile,
		logger:       logger,
	}
}

func (s *DestinationImportService) MaxFileBytes() int64 {
	return s.maxFileBytes
}

// Import creates one destination per CSV row. Rows are independent: a failing row is
// reported and the rest still import. With dryRun nothing is written.
func (s *DestinationImportService) Import(ctx context.Context, uploadedBy uuid.UUID, filename string, contents []byte, dryRun bool) (*domain.DestinationImportResult, error) {
	if len(contents) == 0 {
		return nil, ErrImportEmptyFile
	}
	if int64(len(contents)) > s.maxFileBytes {
		return nil, ErrImportTooLarge
	}

	header, records, err := parseCSV(contents)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrImportEmptyFile
	}
	if len(records) > s.maxRows {
		return nil, ErrImportRowLimitExceeded
	}
	if missing := missingColumns(header, requiredImportColumns); len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrImportInvalidHeaders, strings.Join(missing, ", "))
	}

	result := &domain.DestinationImportResult{
		ID:         uuid.New(),
		UploadedBy: uploadedBy,
		DryRun:     dryRun,
		TotalRows:  len(records),
		Rows:       make([]domain.DestinationImportRow, 0, len(records)),
	}

	if !dryRun && s.storage != nil && s.bucket != "" {
		objectName := buildObjectName(result.ID, filename)
		if _, err := s.storage.Upload(ctx, s.bucket, objectName, "text/csv", bytes.NewReader(contents), int64(len(contents))); err != nil {
			return nil, fmt.Errorf("archive import file: %w", err)
		}
		result.FileKey = &objectName
	}

	seenNames := make(map[string]int)
	for idx, record := range records {
		rowNumber := idx + 2 // header is line 1
		fields, rowErrors := buildDestinationFields(rowToMap(header, record))

		if fields.Name != nil {
			key := strings.ToLower(*fields.Name)
			if prev, ok := seenNames[key]; ok {
				rowErrors = append(rowErrors, fmt.Sprintf("name duplicates row %d", prev))
			} else {
				seenNames[key] = rowNumber
				exists, err := s.nameExists(ctx, *fields.Name)
				if err != nil {
					return nil, err
				}
				if exists {
					rowErrors = append(rowErrors, ErrDestinationExists.Error())
				}
			}
		}
		if err := validateDestinationFields(fields, true); err != nil {
			rowErrors = append(rowErrors, strings.TrimPrefix(err.Error(), ErrDestinationValidation.Error()+": "))
		}

		row := domain.DestinationImportRow{RowNumber: rowNumber, Payload: fields}
		if len(rowErrors) == 0 && !dryRun {
			created, err := s.destinations.Create(ctx, fields)
			switch {
			case err == nil:
				row.DestinationID = &created.ID
			case isUniqueViolation(err):
				rowErrors = append(rowErrors, ErrDestinationExists.Error())
			default:
				return nil, err
			}
		}

		switch {
		case len(rowErrors) > 0:
			result.RowsFailed++
			row.Status = domain.DestinationImportRowStatusFailed
			message := strings.Join(rowErrors, "; ")
			row.Error = &message
		case dryRun:
			row.Status = domain.DestinationImportRowStatusValid
		default:
			result.RowsCreated++
			row.Status = domain.DestinationImportRowStatusCreated
		}
		result.Rows = append(result.Rows, row)
	}

	s.logger.Info().
		Str("import_id", result.ID.String()).
		Str("uploaded_by", uploadedBy.String()).
		Bool("dry_run", dryRun).
		Int("rows", result.TotalRows).
		Int("created", result.RowsCreated).
		Int("failed", result.RowsFailed).
		Msg("destination import finished")
	return result, nil
}

func (s *DestinationImportService) nameExists(ctx context.Context, name string) (bool, error) {
	if _, err := s.destinations.FindByName(ctx, name); err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func parseCSV(contents []byte) ([]string, [][]string, error) {
	reader := csv.NewReader(bytes.NewReader(contents))
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil, ErrImportEmptyFile
		}
		return nil, nil, err
	}
	for i, h := range header {
		header[i] = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
	}

	var rows [][]string
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, err
		}
		if isRecordEmpty(record) {
			continue
		}
		rows = append(rows, record)
	}
	return header, rows, nil
}

func missingColumns(header []string, required []string) []string {
	set := make(map[string]struct{}, len(header))
	for _, h := range header {
		set[h] = struct{}{}
	}
	var missing []string
	for _, req := range required {
		if _, ok := set[req]; !ok {
			missing = append(missing, req)
		}
	}
	return missing
}

func rowToMap(header []string, record []string) map[string]string {
	out := make(map[string]string, len(header))
	for idx, key := range header {
		if idx < len(record) {
			out[key] = strings.TrimSpace(record[idx])
		}
	}
	return out
}

func buildDestinationFields(values map[string]string) (domain.DestinationFields, []string) {
	var errs []string
	fields := domain.DestinationFields{
		Name:        optionalValue(values["name"]),
		Country:     optionalValue(values["country"]),
		Description: optionalValue(values["description"]),
		ImageURL:    optionalValue(values["image_url"]),
	}
	if raw := values["price_per_person"]; raw != "" {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(price) || math.IsInf(price, 0) {
			errs = append(errs, fmt.Sprintf("invalid price_per_person %q", raw))
		} else {
			fields.PricePerPerson = &price
		}
	}
	return fields, errs
}

func optionalValue(val string) *string {
	if val == "" {
		return nil
	}
	return &val
}

func isRecordEmpty(record []string) bool {
	for _, field := range record {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}

func buildObjectName(importID uuid.UUID, filename string) string {
	name := strings.TrimSpace(filename)
	if name == "" {
		name = "upload.csv"
	}
	name = strings.ReplaceAll(filepath.Base(name), " ", "_")
	return fmt.Sprintf("destinations/imports/%s/%s", importID, name)
}
