package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/yash-2200030856/Sanchari-escapes/internal/domain"
)

// ErrMissingConfig matches any *MissingConfigError.
var ErrMissingConfig = errors.New("missing required configuration")

type MissingConfigError struct {
	Keys []string
}

func (e *MissingConfigError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingConfig.Error(), strings.Join(e.Keys, ", "))
}

func (e *MissingConfigError) Is(target error) bool {
	return target == ErrMissingConfig
}

type LoggingConfig struct {
	Level           string
	Format          string
	LogstashTCPAddr string
}

type Config struct {
	Port                 string
	DatabaseURL          string
	AuthURL              string
	ServiceRoleKey       string
	AnonKey              string
	JWTSecret            string
	AdminPolicy          domain.AdminPolicy
	AllowOrigins         []string
	AdminRateLimitRPS    float64
	EnableDebugEndpoints bool
	Logging              LoggingConfig

	MinIOEndpoint            string
	MinIOAccessKey           string
	MinIOSecretKey           string
	MinIOUseSSL              bool
	MinIOBucketDestinations  string
	MinIOPublicURL           string
	DestinationImageMaxBytes int64
	DestinationImageMaxDim   int
	DestinationImportMaxRows int

	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string
}

// VerificationKey is the credential sent to the auth API when verifying tokens.
// The restricted anon key is preferred over the service key.
func (c Config) VerificationKey() string {
	if c.AnonKey != "" {
		return c.AnonKey
	}
	return c.ServiceRoleKey
}

func (c Config) StorageEnabled() bool {
	return c.MinIOEndpoint != "" && c.MinIOAccessKey != "" && c.MinIOSecretKey != ""
}

func (c Config) MailEnabled() bool {
	return c.SMTPHost != "" && c.SMTPPort != "" && c.SMTPFrom != ""
}

// Load reads the environment, optionally seeded from envFile (or ./.env when empty),
// and validates it. Every missing required key is reported at once.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return Config{}, fmt.Errorf("load env file %s: %w", envFile, err)
		}
	} else {
		_ = godotenv.Load()
	}

	var missing []string
	require := func(keys ...string) string {
		for _, k := range keys {
			if v := strings.TrimSpace(os.Getenv(k)); v != "" {
				return v
			}
		}
		missing = append(missing, keys[0])
		return ""
	}

	cfg := Config{
		Port:                 getenv("PORT", "3333"),
		DatabaseURL:          require("DATABASE_URL"),
		AuthURL:              require("SUPABASE_URL", "VITE_SUPABASE_URL"),
		ServiceRoleKey:       require("SUPABASE_SERVICE_ROLE_KEY"),
		AnonKey:              firstEnv("SUPABASE_ANON_KEY", "VITE_SUPABASE_ANON_KEY"),
		JWTSecret:            getenv("SUPABASE_JWT_SECRET", ""),
		AllowOrigins:         splitAndTrim(getenv("ALLOW_ORIGINS", "*")),
		EnableDebugEndpoints: getenv("ENABLE_DEBUG_ENDPOINTS", "false") == "true",
		Logging: LoggingConfig{
			Level:           getenv("LOG_LEVEL", "info"),
			Format:          getenv("LOG_FORMAT", "json"),
			LogstashTCPAddr: getenv("LOGSTASH_TCP_ADDR", ""),
		},
		MinIOEndpoint:           getenv("MINIO_ENDPOINT", ""),
		MinIOAccessKey:          getenv("MINIO_ACCESS_KEY", ""),
		MinIOSecretKey:          getenv("MINIO_SECRET_KEY", ""),
		MinIOUseSSL:             getenv("MINIO_USE_SSL", "false") == "true",
		MinIOBucketDestinations: getenv("MINIO_BUCKET_DESTINATIONS", "sanchari-destinations"),
		MinIOPublicURL:          getenv("MINIO_PUBLIC_URL", ""),
		SMTPHost:                getenv("SMTP_HOST", ""),
		SMTPPort:                getenv("SMTP_PORT", ""),
		SMTPUsername:            getenv("SMTP_USERNAME", ""),
		SMTPPassword:            getenv("SMTP_PASSWORD", ""),
		SMTPFrom:                getenv("SMTP_FROM", ""),
	}

	if len(missing) > 0 {
		return Config{}, &MissingConfigError{Keys: missing}
	}

	policy, err := domain.ParseAdminPolicy(getenv("ADMIN_AUTH_POLICY", string(domain.AdminPolicyProviderSuperAdmin)))
	if err != nil {
		return Config{}, err
	}
	cfg.AdminPolicy = policy

	cfg.AdminRateLimitRPS = 10
	if v, err := strconv.ParseFloat(getenv("ADMIN_RATE_LIMIT_RPS", "10"), 64); err == nil && v > 0 {
		cfg.AdminRateLimitRPS = v
	}

	cfg.DestinationImageMaxBytes = 5 * 1024 * 1024
	if v, err := strconv.ParseInt(getenv("DESTINATION_IMAGE_MAX_BYTES", "5242880"), 10, 64); err == nil && v > 0 {
		cfg.DestinationImageMaxBytes = v
	}
	cfg.DestinationImageMaxDim = 8000
	if v, err := strconv.Atoi(getenv("DESTINATION_IMAGE_MAX_DIMENSION", "8000")); err == nil && v > 0 {
		cfg.DestinationImageMaxDim = v
	}
	cfg.DestinationImportMaxRows = 500
	if v, err := strconv.Atoi(getenv("DESTINATION_IMPORT_MAX_ROWS", "500")); err == nil && v > 0 {
		cfg.DestinationImportMaxRows = v
	}

	return cfg, nil
}

func splitAndTrim(input string) []string {
	parts := strings.Split(input, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(os.Getenv(k)); v != "" {
			return v
		}
	}
	return ""
}
