package media

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

const DefaultMaxDimension = 8000

type ImageInfo struct {
	Format      string
	ContentType string
	Extension   string
	Width       int
	Height      int
}

var formats = map[string]struct {
	contentType string
	extension   string
}{
	"jpeg": {"image/jpeg", ".jpg"},
	"png":  {"image/png", ".png"},
	"webp": {"image/webp", ".webp"},
}

// Inspect decodes the image header and reports its format and size.
// Only jpeg, png and webp are accepted.
func Inspect(data []byte, maxDimension int) (*ImageInfo, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("media: empty image data")
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("media: decode image: %w", err)
	}
	meta, ok := formats[format]
	if !ok {
		return nil, fmt.Errorf("media: unsupported format %q", format)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("media: invalid dimensions %dx%d", cfg.Width, cfg.Height)
	}
	if maxDimension <= 0 {
		maxDimension = DefaultMaxDimension
	}
	if cfg.Width > maxDimension || cfg.Height > maxDimension {
		return nil, fmt.Errorf("media: image %dx%d exceeds %dpx", cfg.Width, cfg.Height, maxDimension)
	}
	return &ImageInfo{
		Format:      format,
		ContentType: meta.contentType,
		Extension:   meta.extension,
		Width:       cfg.Width,
		Height:      cfg.Height,
	}, nil
}
