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
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/alimovshaxzod89/SMS/api/swagger"
	"github.com/alimovshaxzod89/SMS/internal/handler"
	"github.com/alimovshaxzod89/SMS/internal/middleware"
	"github.com/alimovshaxzod89/SMS/internal/query"
	"github.com/alimovshaxzod89/SMS/internal/query/memstore"
	"github.com/alimovshaxzod89/SMS/internal/repository"
	"github.com/alimovshaxzod89/SMS/internal/service"
	"github.com/alimovshaxzod89/SMS/pkg/cache"
	"github.com/alimovshaxzod89/SMS/pkg/config"
	"github.com/alimovshaxzod89/SMS/pkg/database"
	"github.com/alimovshaxzod89/SMS/pkg/logger"
	corsmiddleware "github.com/alimovshaxzod89/SMS/pkg/middleware/cors"
	reqidmiddleware "github.com/alimovshaxzod89/SMS/pkg/middleware/requestid"
)

// @title School Management API
// @version 1.0.0
// @description REST backend for grades, classes, subjects, lessons, exams, assignments, people, announcements and events
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

type storeBackend interface {
	query.Store
	Ping(ctx context.Context) error
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	metrics := service.NewMetricsService()

	store, closeStore, err := openStore(ctx, cfg, metrics, logr)
	if err != nil {
		logr.Sugar().Fatalw("store init failed", "driver", cfg.Store.Driver, "error", err)
	}
	defer closeStore()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Fatalw("redis init failed", "error", err)
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	var (
		blacklist service.TokenBlacklist
		cacheRepo service.CacheRepository
	)
	if redisClient != nil {
		blacklist = repository.NewRedisTokenBlacklist(redisClient, "sms:")
		cacheRepo = repository.NewCacheRepository(redisClient, "sms:cache:", logr)
	} else {
		blacklist = repository.NewStoreTokenBlacklist(store)
	}
	cacheSvc := service.NewCacheService(cacheRepo, metrics, cfg.Stats.CacheTTL, logr, redisClient != nil)

	engine := query.NewEngine(store, logr,
		query.WithJoinConcurrency(cfg.Store.JoinConcurrency),
		query.WithJoinObserver(metrics),
	)
	validate := service.NewValidator()

	authSvc := service.NewAuthService(store, blacklist, validate, logr, service.AuthConfig{
		Secret:            cfg.JWT.Secret,
		Expiry:            cfg.JWT.Expiration,
		Issuer:            cfg.JWT.Issuer,
		AdminUsername:     cfg.Admin.Username,
		AdminPasswordHash: cfg.Admin.PasswordHash,
	})
	statsSvc := service.NewStatisticsService(store, cacheSvc, cfg.Stats.CacheTTL, logr)
	observe := service.WithChangeObserver(statsSvc)
	examSvc := service.NewExamService(engine, validate, logr, observe)
	exportSvc := service.NewExportService(examSvc, nil, nil, logr)

	handlers := handler.Handlers{
		Auth:          handler.NewAuthHandler(authSvc),
		Grades:        handler.NewGradeHandler(service.NewGradeService(engine, logr, observe)),
		Classes:       handler.NewClassHandler(service.NewClassService(engine, validate, logr, observe)),
		Subjects:      handler.NewSubjectHandler(service.NewSubjectService(engine, validate, logr, observe)),
		Lessons:       handler.NewLessonHandler(service.NewLessonService(engine, validate, logr, observe)),
		Exams:         handler.NewExamHandler(examSvc, exportSvc),
		Assignments:   handler.NewAssignmentHandler(service.NewAssignmentService(engine, validate, logr, observe)),
		Teachers:      handler.NewTeacherHandler(service.NewTeacherService(engine, validate, logr, observe)),
		Students:      handler.NewStudentHandler(service.NewStudentService(engine, validate, logr, observe)),
		Parents:       handler.NewParentHandler(service.NewParentService(engine, validate, logr, observe)),
		Announcements: handler.NewAnnouncementHandler(service.NewAnnouncementService(engine, validate, logr, observe)),
		Events:        handler.NewEventHandler(service.NewEventService(engine, validate, logr, observe)),
		Statistics:    handler.NewStatisticsHandler(statsSvc, metrics),
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))

	handler.RegisterSystemRoutes(r, handler.NewMetricsHandler(metrics, store))
	handler.RegisterRoutes(r, cfg.APIPrefix, handlers, middleware.JWT(authSvc))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env, "store", cfg.Store.Driver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
}

// openStore builds the document store selected by configuration. The memory
// driver is seeded from MEMORY_SEED_FILE when set.
func openStore(ctx context.Context, cfg *config.Config, metrics *service.MetricsService, logr *zap.Logger) (storeBackend, func(), error) {
	schema := repository.DefaultSchema()

	switch cfg.Store.Driver {
	case config.StoreDriverMemory:
		mem := memstore.New(schema.MemoryOptions()...)
		if cfg.Store.SeedFile != "" {
			n, err := mem.LoadFile(ctx, cfg.Store.SeedFile)
			if err != nil {
				return nil, nil, err
			}
			logr.Info("memory store seeded", zap.String("file", cfg.Store.SeedFile), zap.Int("documents", n))
		}
		return mem, func() {}, nil
	case config.StoreDriverPostgres:
		db, err := database.NewPostgres(cfg.Database, 5*time.Second)
		if err != nil {
			return nil, nil, err
		}
		docs := repository.NewDocumentStore(db, schema, logr,
			repository.WithQueryTimeout(cfg.Store.QueryTimeout),
			repository.WithQueryObserver(metrics),
		)
		if err := docs.Migrate(ctx); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return docs, func() { _ = db.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}
