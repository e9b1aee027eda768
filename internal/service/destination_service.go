package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/google/uuid"

	"github.com/yash-2200030856/Sanchari-escapes/internal/domain"
	"github.com/yash-2200030856/Sanchari-escapes/internal/media"
	"github.com/yash-2200030856/Sanchari-escapes/internal/repository/ports"
)

const defaultImageMaxBytes int64 = 5 * 1024 * 1024

// maxPricePerPerson is the first value price_per_person NUMERIC(12,2) cannot hold.
const maxPricePerPerson = 1e10

type DestinationServiceConfig struct {
	Bucket            string
	PublicBaseURL     string
	ImageMaxBytes     int64
	ImageMaxDimension int
}

type ImageUpload struct {
	Reader   io.Reader
	Size     int64
	FileName string
}

type DestinationService struct {
	destinations  ports.DestinationRepository
	storage       ports.ObjectStorage
	bucket        string
	publicBase    string
	imageMaxBytes int64
	imageMaxDim   int
}

// NewDestinationService wires the catalog service. storage may be nil, in which case
// image uploads fail with ErrStorageDisabled.
func NewDestinationService(destinations ports.DestinationRepository, storage ports.ObjectStorage, cfg DestinationServiceConfig) *DestinationService {
	maxBytes := cfg.ImageMaxBytes
	if maxBytes <= 0 {
		maxBytes = defaultImageMaxBytes
	}
	return &DestinationService{
		destinations:  destinations,
		storage:       storage,
		bucket:        cfg.Bucket,
		publicBase:    strings.TrimRight(cfg.PublicBaseURL, "/"),
		imageMaxBytes: maxBytes,
		imageMaxDim:   cfg.ImageMaxDimension,
	}
}

func (s *DestinationService) List(ctx context.Context, limit, offset int) ([]domain.Destination, error) {
	return s.destinations.List(ctx, limit, offset)
}

func (s *DestinationService) Get(ctx context.Context, id uuid.UUID) (*domain.Destination, error) {
	dest, err := s.destinations.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrDestinationNotFound
		}
		return nil, err
	}
	return dest, nil
}

func (s *DestinationService) Create(ctx context.Context, fields domain.DestinationFields) (*domain.Destination, error) {
	if err := validateDestinationFields(fields, true); err != nil {
		return nil, err
	}
	dest, err := s.destinations.Create(ctx, fields)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDestinationExists
		}
		return nil, err
	}
	return dest, nil
}

func (s *DestinationService) Update(ctx context.Context, id uuid.UUID, fields domain.DestinationFields) (*domain.Destination, error) {
	if err := validateDestinationFields(fields, false); err != nil {
		return nil, err
	}
	dest, err := s.destinations.Update(ctx, id, fields)
	if err != nil {
		switch {
		case isNotFound(err):
			return nil, ErrDestinationNotFound
		case isUniqueViolation(err):
			return nil, ErrDestinationExists
		}
		return nil, err
	}
	return dest, nil
}

func (s *DestinationService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.destinations.Delete(ctx, id); err != nil {
		if isNotFound(err) {
			return ErrDestinationNotFound
		}
		return err
	}
	return nil
}

// UploadImage validates the upload, stores it and points the destination's image_url at it.
func (s *DestinationService) UploadImage(ctx context.Context, id uuid.UUID, upload ImageUpload) (*domain.Destination, error) {
	if s.storage == nil {
		return nil, ErrStorageDisabled
	}
	if upload.Reader == nil || upload.Size <= 0 {
		return nil, ErrImageRequired
	}
	if upload.Size > s.imageMaxBytes {
		return nil, ErrImageTooLarge
	}
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(io.LimitReader(upload.Reader, s.imageMaxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > s.imageMaxBytes {
		return nil, ErrImageTooLarge
	}
	info, err := media.Inspect(data, s.imageMaxDim)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageUnsupportedType, err)
	}

	objectName := fmt.Sprintf("destinations/%s/%s%s", id.String(), uuid.NewString(), info.Extension)
	publicURL, err := s.storage.Upload(ctx, s.bucket, objectName, info.ContentType, bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}
	if s.publicBase != "" {
		publicURL = s.publicBase + "/" + objectName
	}

	return s.Update(ctx, id, domain.DestinationFields{ImageURL: &publicURL})
}

func validateDestinationFields(fields domain.DestinationFields, requireAll bool) error {
	var problems []string
	if requireAll || fields.Name != nil {
		if fields.Name == nil || strings.TrimSpace(*fields.Name) == "" {
			problems = append(problems, "name is required")
		}
	}
	if requireAll || fields.Country != nil {
		if fields.Country == nil || strings.TrimSpace(*fields.Country) == "" {
			problems = append(problems, "country is required")
		}
	}
	if requireAll || fields.PricePerPerson != nil {
		switch {
		case fields.PricePerPerson == nil || *fields.PricePerPerson <= 0:
			problems = append(problems, "price_per_person must be greater than zero")
		case math.IsNaN(*fields.PricePerPerson) || math.IsInf(*fields.PricePerPerson, 0) ||
			*fields.PricePerPerson >= maxPricePerPerson:
			problems = append(problems, "price_per_person must be below 10000000000")
		}
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrDestinationValidation, strings.Join(problems, "; "))
	}
	return nil
}

