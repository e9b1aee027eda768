package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/yash-2200030856/Sanchari-escapes/internal/config"
	"github.com/yash-2200030856/Sanchari-escapes/internal/logging"
	"github.com/yash-2200030856/Sanchari-escapes/internal/repository/authapi"
	"github.com/yash-2200030856/Sanchari-escapes/internal/repository/jwtauth"
	miniorepo "github.com/yash-2200030856/Sanchari-escapes/internal/repository/minio"
	"github.com/yash-2200030856/Sanchari-escapes/internal/repository/ports"
	"github.com/yash-2200030856/Sanchari-escapes/internal/repository/postgres"
	"github.com/yash-2200030856/Sanchari-escapes/internal/service"
	httpapi "github.com/yash-2200030856/Sanchari-escapes/internal/transport/http"
	"github.com/yash-2200030856/Sanchari-escapes/internal/transport/mail"
	"github.com/yash-2200030856/Sanchari-escapes/internal/util"
)

const shutdownTimeout = 15 * time.Second

func newServeCommand(envFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), *envFile)
		},
	}
}

func runServe(ctx context.Context, envFile string) error {
	cfg, err := config.Load(envFile)
	if err != nil {
		return err
	}

	logger, closer, err := logging.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("logger init: %w", err)
	}
	if closer != nil {
		defer closer.Close()
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := postgres.New(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("database open: %w", err)
	}
	defer db.Close()

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	err = postgres.Ping(pingCtx, db)
	cancel()
	if err != nil {
		return fmt.Errorf("database ping: %w", err)
	}

	e, err := buildServer(ctx, cfg, db, logger)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       90 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", server.Addr).Str("admin_policy", string(cfg.AdminPolicy)).Msg("http server starting")
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info().Msg("shutdown requested")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// buildServer wires repositories, services and routes.
func buildServer(ctx context.Context, cfg config.Config, db *sqlx.DB, logger *zerolog.Logger) (http.Handler, error) {
	profiles := postgres.NewProfileRepo(db)
	bookings := postgres.NewBookingRepo(db)
	transactions := postgres.NewTransactionRepo(db)
	destinations := postgres.NewDestinationRepo(db)
	reviews := postgres.NewReviewRepo(db)

	var identities ports.IdentityProvider
	if cfg.JWTSecret != "" {
		identities = jwtauth.NewProvider(util.NewJWTManager(cfg.JWTSecret, time.Hour))
		logger.Info().Msg("verifying access tokens locally")
	} else {
		identities = authapi.NewProvider(cfg.AuthURL, cfg.VerificationKey(), nil)
	}

	var storage ports.ObjectStorage
	if cfg.StorageEnabled() {
		client, err := miniorepo.NewClient(cfg.MinIOEndpoint, cfg.MinIOAccessKey, cfg.MinIOSecretKey, cfg.MinIOUseSSL)
		if err != nil {
			return nil, fmt.Errorf("minio client: %w", err)
		}
		store := miniorepo.NewStorage(client)
		if err := store.EnsureBucket(ctx, cfg.MinIOBucketDestinations); err != nil {
			return nil, fmt.Errorf("minio bucket: %w", err)
		}
		storage = store
	} else {
		logger.Warn().Msg("object storage not configured; destination image uploads disabled")
	}

	var notifier ports.RefundNotifier
	if cfg.MailEnabled() {
		notifier = mail.NewRefundMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom)
	}

	authService := service.NewAuthService(identities, profiles, cfg.AdminPolicy)
	transactionService := service.NewTransactionService(transactions, bookings, profiles, destinations, service.TransactionServiceConfig{
		Logger:   logger,
		Notifier: notifier,
	})
	bookingService := service.NewBookingService(bookings)
	profileService := service.NewProfileService(profiles)
	reviewService := service.NewReviewService(reviews, destinations)
	importService := service.NewDestinationImportService(destinations, storage, service.DestinationImportServiceConfig{
		Bucket:  cfg.MinIOBucketDestinations,
		MaxRows: cfg.DestinationImportMaxRows,
		Logger:  logger,
	})
	destinationService := service.NewDestinationService(destinations, storage, service.DestinationServiceConfig{
		Bucket:            cfg.MinIOBucketDestinations,
		PublicBaseURL:     cfg.MinIOPublicURL,
		ImageMaxBytes:     cfg.DestinationImageMaxBytes,
		ImageMaxDimension: cfg.DestinationImageMaxDim,
	})

	e := httpapi.NewRouter(httpapi.RouterConfig{
		AllowOrigins: cfg.AllowOrigins,
		Logger:       logger,
		HealthCheck: func(ctx context.Context) error {
			return postgres.Ping(ctx, db)
		},
	})

	admin := httpapi.NewAdminGroup(e, authService, cfg.AdminRateLimitRPS)
	httpapi.RegisterAdminTransactions(admin, transactionService)
	httpapi.RegisterAdminUsers(admin, profileService)
	httpapi.RegisterDestinations(e, admin, destinationService)
	httpapi.RegisterDestinationImports(admin, importService)
	httpapi.RegisterAccount(e, authService, transactionService, bookingService)
	httpapi.RegisterReviews(e, admin, reviewService)
	if cfg.EnableDebugEndpoints {
		logger.Warn().Msg("debug endpoints enabled")
		httpapi.RegisterDebug(e, authService)
	}
	httpapi.RegisterSwagger(e)

	return e, nil
}
