package main

import (
	"context"
	"database/sql"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"firmdesk.backend/internal/config"
	"firmdesk.backend/internal/infrastructure/identity"
	"firmdesk.backend/internal/infrastructure/jobs"
	"firmdesk.backend/internal/infrastructure/models"
	"firmdesk.backend/internal/infrastructure/repositories"
	"firmdesk.backend/internal/usecases"
	"firmdesk.backend/pkg/jwt"
	"firmdesk.backend/pkg/logger"
	"firmdesk.backend/pkg/redis"
)

func main() {
	// Missing .env is fine; the environment may carry everything
	_ = godotenv.Load()

	cfg := config.Load()
	logger.Init(cfg.Server.Env)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := openDatabase(cfg)
	if err != nil {
		logger.GetLogger().Fatal("failed to connect to database", zap.Error(err))
	}

	if err := redis.Init(cfg.Redis.URL, cfg.Redis.Password); err != nil {
		// The profile cache is optional; run without it
		logger.Warn(ctx, "redis unavailable, profile cache disabled", zap.Error(err))
	}
	var cache *redis.ProfileCache
	if redis.GetClient() != nil {
		cache = redis.NewProfileCache(cfg.Redis.CacheTTL)
	}

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiry, cfg.JWT.RefreshExpiry)
	identityClient := identity.NewClient(cfg.Identity.BaseURL, cfg.Identity.APIKey, cfg.Identity.Timeout)

	influencerRepo := repositories.NewInfluencerRepository(db)
	clientRepo := repositories.NewClientRepository(db)
	taskRepo := repositories.NewTaskRepository(db)
	checklistRepo := repositories.NewChecklistRepository(db)
	chargeRepo := repositories.NewChargeRepository(db)
	couponRepo := repositories.NewCouponRepository(db)
	userRepo := repositories.NewUserRepository(db)

	deps := &handlerDeps{
		influencer: usecases.NewInfluencerUsecase(influencerRepo, identityClient, cache),
		client:     usecases.NewClientUsecase(clientRepo),
		task:       usecases.NewTaskUsecase(taskRepo, clientRepo),
		checklist:  usecases.NewChecklistUsecase(checklistRepo, clientRepo),
		charge:     usecases.NewChargeUsecase(chargeRepo, clientRepo, couponRepo),
		coupon:     usecases.NewCouponUsecase(couponRepo),
		auth:       usecases.NewAuthUsecase(userRepo, jwtService),
		jwt:        jwtService,
	}

	go jobs.NewCouponExpiryJob(couponRepo, time.Hour).Run(ctx)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: setupRouter(cfg, deps),
	}

	go func() {
		logger.Info(ctx, "server listening", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.GetLogger().Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info(context.Background(), "shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error(context.Background(), "forced shutdown", zap.Error(err))
	}
}

func openDatabase(cfg *config.Config) (*gorm.DB, error) {
	sqlDB, err := sql.Open("postgres", cfg.Database.URL())
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(
		&models.Influencer{},
		&models.Client{},
		&models.Task{},
		&models.Checklist{},
		&models.Charge{},
		&models.Coupon{},
		&models.User{},
	); err != nil {
		return nil, err
	}
	return db, nil
}
