package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-hub/adapters/event"
	httpAdapter "github.com/khoahotran/portfolio-hub/adapters/http"
	"github.com/khoahotran/portfolio-hub/adapters/persistence"
	authUC "github.com/khoahotran/portfolio-hub/internal/application/usecase/auth"
	draftUC "github.com/khoahotran/portfolio-hub/internal/application/usecase/draft"
	profileUC "github.com/khoahotran/portfolio-hub/internal/application/usecase/profile"
	"github.com/khoahotran/portfolio-hub/internal/config"
	"github.com/khoahotran/portfolio-hub/pkg/auth"
	"github.com/khoahotran/portfolio-hub/pkg/logger"
	"github.com/khoahotran/portfolio-hub/pkg/tracing"
)

const serviceName = "portfolio-hub-api"

func main() {
	fmt.Println("Start Portfolio Hub API Server...")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger, err := logger.NewZapLogger(cfg.App.Env, cfg.App.LogLevel)
	if err != nil {
		log.Fatalf("FATAL: cannot init logger: %v", err)
	}
	defer appLogger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Setup(ctx, cfg, appLogger, serviceName)
	if err != nil {
		appLogger.Fatal("Cannot set up tracing", err)
	}

	// Initialize dependencies
	store, err := persistence.OpenStore(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Cannot open store", err)
	}
	defer store.Close()

	kafkaClient, err := event.NewKafkaProducerClient(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Cannot init Kafka", err)
	}
	defer kafkaClient.Close()

	// Repositories
	userRepo := persistence.NewPostgresUserRepo(store.Pool)
	roleRepo := persistence.NewPostgresRoleRepo(store.Pool)
	profileRepo := persistence.NewPostgresProfileRepo(store.Pool, appLogger, persistence.ProfileRepoOptions{
		SwallowListErrors: cfg.Profiles.SwallowListErrors,
	})
	draftRepo := persistence.NewRedisDraftRepo(store.Redis, cfg.Drafts.TTL)

	// Services
	jwtSvc := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenLifespan)

	// Use Cases
	authUseCase := authUC.NewAuthUseCase(authUC.Deps{
		UserRepo:        userRepo,
		RoleRepo:        roleRepo,
		JWT:             jwtSvc,
		Sessions:        persistence.NewRedisSessionStore(store.Redis),
		Confirmations:   persistence.NewRedisConfirmationStore(store.Redis),
		Publisher:       kafkaClient,
		Logger:          appLogger,
		ConfirmationTTL: cfg.Auth.ConfirmationLifespan,
	})
	profileUseCase := profileUC.NewProfileUseCase(profileRepo, authUseCase, kafkaClient, appLogger)
	draftUseCase := draftUC.NewDraftUseCase(draftRepo, profileRepo, authUseCase, profileUseCase, appLogger)
	feedUseCase := profileUC.NewFeedUseCase(profileRepo, cfg.App.PublicURL, appLogger)

	// HTTP
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := httpAdapter.NewRouter(httpAdapter.RouterDeps{
		ServiceName:   serviceName,
		AnonKey:       cfg.Backend.AnonKey,
		Authenticator: authUseCase,
		Logger:        appLogger,
		Auth:          httpAdapter.NewAuthHandler(authUseCase),
		Profiles:      httpAdapter.NewProfileHandler(profileUseCase),
		Drafts:        httpAdapter.NewDraftHandler(draftUseCase),
		Feed:          httpAdapter.NewFeedHandler(feedUseCase, appLogger),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		appLogger.Info("Server running", zap.String("port", cfg.App.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("Cannot run server", err)
			stop()
		}
	}()

	<-ctx.Done()
	appLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", err)
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		appLogger.Error("Failed to flush traces", err)
	}
}
