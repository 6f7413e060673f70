package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/big"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"kyc-platform.backend/internal/config"
	"kyc-platform.backend/internal/domain/entities"
	"kyc-platform.backend/internal/infrastructure/datasources/postgres"
	"kyc-platform.backend/internal/infrastructure/datasources/sqlite"
	"kyc-platform.backend/internal/infrastructure/jobs"
	"kyc-platform.backend/internal/infrastructure/metrics"
	"kyc-platform.backend/internal/infrastructure/models"
	"kyc-platform.backend/internal/infrastructure/repositories"
	"kyc-platform.backend/internal/interfaces/http/handlers"
	"kyc-platform.backend/internal/interfaces/http/middleware"
	"kyc-platform.backend/internal/usecases"
	"kyc-platform.backend/pkg/jwt"
	"kyc-platform.backend/pkg/logger"
	"kyc-platform.backend/pkg/redis"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = func(cfg config.DatabaseConfig) (*gorm.DB, error) {
		switch cfg.Driver {
		case "sqlite":
			return sqlite.NewGormDB(cfg.SQLitePath)
		case "postgres", "":
			return postgres.NewGormDB(cfg)
		default:
			return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
		}
	}
	newMetrics     = metrics.New
	runServer      = func(srv *http.Server) error { return srv.ListenAndServe() }
	notifyShutdown = func(c chan<- os.Signal) { signal.Notify(c, syscall.SIGINT, syscall.SIGTERM) }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	// Load .env file
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := loadCfg()

	initLog(cfg.Server.Env)
	defer logger.Sync()
	ctx := context.Background()
	logger.Info(ctx, "Logger initialized", zap.String("env", cfg.Server.Env))

	if err := initRedis(cfg.Redis.URL, cfg.Redis.PASSWORD); err != nil {
		logger.Error(ctx, "Failed to initialize Redis", zap.Error(err))
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	logger.Info(ctx, "Redis initialized")

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := openDB(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	logger.Info(ctx, "Database ready", zap.String("driver", cfg.Database.Driver))

	defaults, err := platformDefaults(cfg.Platform)
	if err != nil {
		return err
	}

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiry)
	m := newMetrics()

	// Repositories
	uow := repositories.NewUnitOfWork(db)
	settingsRepo := repositories.NewCachedSettingsRepository(repositories.NewSettingsRepository(db), cfg.Platform.SettingsCacheTTL)
	kycRepo := repositories.NewKycMemberRepository(db)
	projectRepo := repositories.NewProjectRepository(db)
	ledgerRepo := repositories.NewLedgerRepository(db)

	// Usecases
	verifier := usecases.NewSignatureVerifier()
	access := usecases.NewAccessControl(settingsRepo, uow)
	settingsUsecase := usecases.NewSettingsUsecase(settingsRepo, access)
	kycUsecase := usecases.NewKycUsecase(kycRepo, settingsRepo, verifier, uow, usecases.SystemClock, m)
	projectUsecase := usecases.NewProjectUsecase(projectRepo, ledgerRepo, settingsRepo, kycUsecase, verifier, uow, usecases.SystemClock, m)
	authUsecase := usecases.NewWalletAuthUsecase(redis.NewNonceStore(cfg.Auth.NonceTTL), jwtService, usecases.SystemClock)

	if _, err := settingsUsecase.Seed(ctx, defaults); err != nil {
		return fmt.Errorf("failed to seed platform settings: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	expiryJob := jobs.NewExpiryReportJob(settingsRepo, kycRepo, projectRepo, m, cfg.Jobs.ExpiryReportInterval)
	go expiryJob.Start(ctx)
	defer expiryJob.Stop()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())

	applyCORSMiddleware(r, cfg.Server.AllowedOrigins)
	registerHealthRoute(r)
	registerAPIV1Routes(r, routeDeps{
		authHandler:     handlers.NewAuthHandler(authUsecase),
		ownerHandler:    handlers.NewOwnerHandler(access),
		settingsHandler: handlers.NewSettingsHandler(settingsUsecase),
		kycHandler:      handlers.NewKycHandler(kycUsecase),
		projectHandler:  handlers.NewProjectHandler(projectUsecase),
		authMiddleware:  middleware.AuthMiddleware(jwtService),
	})

	for _, route := range r.Routes() {
		logger.Debug(ctx, "Route registered", zap.String("method", route.Method), zap.String("path", route.Path))
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	notifyShutdown(quit)
	defer signal.Stop(quit)

	serveErr := make(chan error, 1)
	go func() { serveErr <- runServer(srv) }()
	logger.Info(ctx, "KYC Platform backend starting", zap.String("port", cfg.Server.Port))

	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case sig := <-quit:
		logger.Info(ctx, "Shutting down server", zap.String("signal", sig.String()))
	}

	// Graceful shutdown
	expiryJob.Stop()
	cancel()

	timeout := cfg.Server.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, stop := context.WithTimeout(context.Background(), timeout)
	defer stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	if err := <-serveErr; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server stopped with error: %w", err)
	}

	logger.Info(context.Background(), "Server stopped")
	return nil
}

// platformDefaults builds the settings stored on first start
func platformDefaults(cfg config.PlatformConfig) (*entities.PlatformSettings, error) {
	var owner common.Address
	if cfg.AuthorityAddress != "" {
		addr, err := usecases.ParseAddress(cfg.AuthorityAddress)
		if err != nil {
			return nil, fmt.Errorf("invalid AUTHORITY_ADDRESS: %w", err)
		}
		owner = addr
	}

	fee := new(big.Int)
	if cfg.ProjectServiceFeeWei != "" {
		if _, ok := fee.SetString(cfg.ProjectServiceFeeWei, 10); !ok || fee.Sign() < 0 {
			return nil, fmt.Errorf("invalid PROJECT_SERVICE_FEE_WEI %q", cfg.ProjectServiceFeeWei)
		}
	}

	return &entities.PlatformSettings{
		Owner: owner,
		Kyc: entities.KycSettings{
			Version:               cfg.KycVersion,
			DurationUpdateVersion: cfg.KycDurationUpdate,
			RenewExpireTime:       cfg.KycRenewExpireTime,
		},
		Project: entities.ProjectSettings{
			ExpireEachProject:  cfg.ProjectExpireEach,
			ServiceFee:         fee,
			DurationPaymentFee: cfg.ProjectDurationPayFee,
		},
	}, nil
}
