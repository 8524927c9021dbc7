package cmd

import (
	"context"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/getsentry/sentry-go"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/checkmarble/heatmap-backend/api"
	"github.com/checkmarble/heatmap-backend/infra"
	"github.com/checkmarble/heatmap-backend/models"
	"github.com/checkmarble/heatmap-backend/repositories"
	"github.com/checkmarble/heatmap-backend/usecases"
	"github.com/checkmarble/heatmap-backend/utils"
)

func RunServer(config CompiledConfig) error {
	// This is where we read the environment variables and set up the configuration for the application.
	apiConfig := api.Configuration{
		Env:              utils.GetEnv("ENV", "development"),
		AppName:          "heatmap-backend",
		AppVersion:       config.Version,
		Port:             utils.GetRequiredEnv[string]("PORT"),
		CorsAllowOrigins: splitOrigins(utils.GetEnv("CORS_ALLOW_ORIGINS", "")),
		MaxUploadSizeMb:  int64(utils.GetEnv("MAX_UPLOAD_SIZE_MB", 20)),
		DefaultTimeout:   time.Duration(utils.GetEnv("DEFAULT_TIMEOUT_SECOND", 30)) * time.Second,
	}
	pgConfig := pgConfigFromEnv()
	serverConfig := ServerConfig{
		loggingFormat: utils.GetEnv("LOGGING_FORMAT", "text"),
		sentryDsn:     utils.GetEnv("SENTRY_DSN", ""),
	}

	logger := utils.NewLogger(serverConfig.loggingFormat)
	ctx := utils.StoreLoggerInContext(context.Background(), logger)

	infra.SetupSentry(serverConfig.sentryDsn, apiConfig.Env, apiConfig.AppVersion)
	defer sentry.Flush(3 * time.Second)

	storageConfig, err := storageConfigFromEnv()
	if err != nil {
		utils.LogAndReportSentryError(ctx, err)
		return err
	}
	policy, err := retryPolicy(retryConfigFromEnv())
	if err != nil {
		utils.LogAndReportSentryError(ctx, err)
		return err
	}

	var pool *pgxpool.Pool
	if storageConfig.Backend == models.StorageBackendPostgres {
		pool, err = infra.NewPostgresConnectionPool(ctx, pgConfig)
		if err != nil {
			utils.LogAndReportSentryError(ctx, err)
			return err
		}
		defer pool.Close()
	}

	repos, err := repositories.NewRepositories(ctx, storageConfig, pool)
	if err != nil {
		utils.LogAndReportSentryError(ctx, err)
		return err
	}
	logger.InfoContext(ctx, "storage backend selected", slog.String("backend", string(storageConfig.Backend)))

	uc := usecases.NewUsecases(repos, usecases.WithRetryPolicy(policy))

	router := api.InitRouterMiddlewares(ctx, apiConfig)
	server := api.NewServer(router, apiConfig, uc)

	notify, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.InfoContext(ctx, "starting server", slog.String("port", apiConfig.Port))
		err := server.ListenAndServe()
		if !errors.Is(err, http.ErrServerClosed) {
			utils.LogAndReportSentryError(ctx, errors.Wrap(err, "Error while serving the app"))
		}
		logger.InfoContext(ctx, "server returned")
	}()

	<-notify.Done()
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		utils.LogAndReportSentryError(
			ctx,
			errors.Wrap(err, "Error while shutting down the server"),
		)
		return err
	}

	if closer, ok := repos.DatasetStore.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			logger.WarnContext(ctx, "error closing the local storage", slog.Any("error", err))
		}
	}

	return nil
}
