package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"food-fridge/internal/auth"
	"food-fridge/internal/config"
	"food-fridge/internal/database"
	"food-fridge/internal/handler"
	"food-fridge/internal/repository"
	"food-fridge/internal/router"
	"food-fridge/internal/seed"
	"food-fridge/internal/service"

	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Str("store", cfg.Store.Driver).Msg("starting food-fridge API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The store must be reachable before the listener starts
	foodRepo, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize store: %w", err)
	}
	defer closeStore()

	verifier, err := newVerifier(cfg.Auth, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize identity verifier: %w", err)
	}

	// Initialize services
	foodService := service.NewFoodService(foodRepo, logger)
	authService := service.NewAuthService(verifier, logger)

	if cfg.Seed.File != "" {
		if err := importSeed(ctx, cfg, foodService, logger); err != nil {
			return fmt.Errorf("failed to import seed file: %w", err)
		}
	}

	// Initialize HTTP handlers
	foodHandler := handler.NewFoodHandler(foodService, logger)
	authHandler := handler.NewAuthHandler(authService, cfg.Auth.CookieSecure, logger)
	healthHandler := handler.NewHealthHandler(foodService, logger)

	// Initialize router
	mux := router.New(foodHandler, authHandler, healthHandler, verifier, router.Options{
		AllowedOrigin:  cfg.CORS.AllowedOrigin,
		RequestTimeout: cfg.Server.Timeout(),
	}, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.Server.Timeout() + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			// Force close
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}

// openStore connects the configured backend and returns its repository with
// a function that releases the connection.
func openStore(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (repository.FoodRepository, func(), error) {
	switch cfg.Store.Driver {
	case config.StoreDriverPostgres:
		pool, err := database.NewPool(ctx, cfg.Database, logger)
		if err != nil {
			return nil, nil, err
		}
		if err := database.Migrate(ctx, pool, logger); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return repository.NewPostgresFoodRepository(pool, logger), pool.Close, nil

	case config.StoreDriverMongo:
		client, err := database.NewMongoClient(ctx, cfg.Mongo, logger)
		if err != nil {
			return nil, nil, err
		}
		coll := client.Database(cfg.Mongo.Database).Collection(cfg.Mongo.Collection)
		disconnect := func() {
			disconnectCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := client.Disconnect(disconnectCtx); err != nil {
				logger.Error().Err(err).Msg("failed to disconnect from mongo")
			}
		}
		return repository.NewMongoFoodRepository(coll, logger), disconnect, nil

	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}

func newVerifier(cfg config.AuthConfig, logger zerolog.Logger) (auth.Verifier, error) {
	switch cfg.Provider {
	case config.AuthProviderHMAC:
		logger.Warn().Msg("using shared-secret token verification; not for production")
		return auth.NewHMACVerifier(cfg.HMACSecret, logger)
	case config.AuthProviderFirebase:
		return auth.NewFirebaseVerifier(auth.FirebaseConfig{
			ProjectID: cfg.FirebaseProjectID,
			CertsURL:  cfg.FirebaseCertsURL,
		}, nil, logger)
	default:
		return nil, fmt.Errorf("unknown auth provider %q", cfg.Provider)
	}
}

// importSeed loads the seed file from S3 with a local fallback and creates
// every item as the seed owner.
func importSeed(ctx context.Context, cfg *config.Config, foodService service.FoodService, logger zerolog.Logger) error {
	fileLoader := seed.NewFileLoader(logger)

	var s3Loader seed.Loader
	if cfg.S3.Enabled {
		var err error
		s3Loader, err = seed.NewS3Loader(ctx, cfg.S3.Bucket, cfg.S3.Region, logger)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to initialise S3 loader, falling back to local file system only")
			s3Loader = nil
		}
	}

	loader := seed.NewFallbackLoader(s3Loader, fileLoader, cfg.S3.Prefix, cfg.S3.Enabled, logger)

	_, err := seed.NewImporter(loader, foodService, logger).Import(ctx, cfg.Seed.File, cfg.Seed.Owner)
	return err
}
