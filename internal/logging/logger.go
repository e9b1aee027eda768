package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/yash-2200030856/Sanchari-escapes/internal/config"
)

const AppName = "sanchari-api"

// New builds the process logger: JSON (or console) on stdout, mirrored to Logstash
// when an address is configured. The returned closer is nil when nothing needs closing.
func New(cfg config.LoggingConfig) (*zerolog.Logger, io.Closer, error) {
	level := zerolog.InfoLevel
	if parsed, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(cfg.Level))); err == nil && parsed != zerolog.NoLevel {
		level = parsed
	}

	var output io.Writer = os.Stdout
	if strings.ToLower(strings.TrimSpace(cfg.Format)) == "console" {
		output = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}

	var closer io.Closer
	if addr := strings.TrimSpace(cfg.LogstashTCPAddr); addr != "" {
		shipper, err := NewLogstashWriter(addr)
		if err != nil {
			return nil, nil, err
		}
		output = zerolog.MultiLevelWriter(output, shipper)
		closer = shipper
	}

	zerolog.TimeFieldFormat = time.RFC3339Nano
	logger := zerolog.New(output).
		Level(level).
		With().
		Timestamp().
		Str("app", AppName).
		Logger()

	return &logger, closer, nil
}
