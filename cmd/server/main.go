package main

import (
	"context"
	"errors"
	stdlog "log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"surveyform/internal/cache"
	"surveyform/internal/config"
	"surveyform/internal/logger"
	"surveyform/internal/repository"
	"surveyform/internal/service"
	"surveyform/internal/transport/rest"
	"surveyform/internal/transport/ws"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		stdlog.Fatalf("failed to load config: %s", err)
	}
	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		stdlog.Fatalf("failed to initialize logger: %s", err)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Survey and user stores
	var (
		surveyRepo repository.SurveyRepo
		userRepo   repository.UserRepo
		storePing  func(ctx context.Context) error
	)
	switch cfg.StorageBackend {
	case config.BackendMongo:
		mongoClient, err := mongo.Connect(ctx, options.Client().
			ApplyURI(cfg.MongoURI).
			SetServerSelectionTimeout(cfg.StoreTimeout))
		if err != nil {
			log.Fatal("failed to connect to MongoDB", zap.Error(err))
		}
		defer mongoClient.Disconnect(context.Background())

		pingCtx, cancel := context.WithTimeout(ctx, cfg.StoreTimeout)
		if err := mongoClient.Ping(pingCtx, nil); err != nil {
			// Requests report persistence unavailable until the store comes back
			log.Warn("MongoDB not reachable at startup", zap.Error(err))
		} else {
			log.Info("connected to MongoDB", zap.String("database", cfg.MongoDatabase))
		}
		cancel()

		db := mongoClient.Database(cfg.MongoDatabase)
		indexCtx, cancel := context.WithTimeout(ctx, cfg.StoreTimeout)
		if err := repository.EnsureUserIndexes(indexCtx, db); err != nil {
			log.Warn("failed to ensure user indexes", zap.Error(err))
		}
		cancel()

		surveyRepo = repository.NewSurveyRepo(db)
		userRepo = repository.NewUserRepo(db)
		storePing = func(ctx context.Context) error {
			return mongoClient.Ping(ctx, nil)
		}
	case config.BackendMemory:
		surveyRepo = repository.NewMemorySurveyRepo()
		userRepo = repository.NewMemoryUserRepo()
		log.Warn("using in-memory storage, data is lost on restart")
	}

	// Session store
	var sessions cache.SessionStore
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer rdb.Close()

		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Fatal("failed to ping Redis", zap.Error(err))
		}
		log.Info("connected to Redis", zap.String("addr", cfg.RedisAddr))
		sessions = cache.NewSessionCache(rdb)
	} else {
		log.Warn("REDIS_ADDR not set, sessions are kept in memory")
		sessions = cache.NewMemorySessionStore()
	}

	wsHub := ws.NewHub(log)
	defer wsHub.Close()

	// Services
	authSvc := service.NewAuthService(userRepo, sessions, service.AuthConfig{
		JWTSecret:  cfg.JWTSecret,
		SessionTTL: cfg.SessionTTL,
		BcryptCost: cfg.BcryptCost,
	}, log)
	samples := repository.NewSampleCatalog()
	surveySvc := service.NewSurveyService(surveyRepo, samples, log)
	responseSvc := service.NewResponseService(surveyRepo, log)
	responseSvc.SetBroadcaster(wsHub)

	// Always-available local store, advertised when the primary store is down
	localRepo := repository.NewMemorySurveyRepo()
	localSurveySvc := service.NewSurveyService(localRepo, nil, log)
	localResponseSvc := service.NewResponseService(localRepo, log)

	router := rest.NewRouter(&rest.Container{
		AuthService:          authSvc,
		SurveyService:        surveySvc,
		ResponseService:      responseSvc,
		LocalSurveyService:   localSurveySvc,
		LocalResponseService: localResponseSvc,
		WSHub:                wsHub,
		Logger:               log,
		StorageBackend:       cfg.StorageBackend,
		StorePing:            storePing,
		StoreTimeout:         cfg.StoreTimeout,
		CORSOrigins:          cfg.CORSOrigins,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("server starting",
			zap.String("addr", srv.Addr),
			zap.String("storage", cfg.StorageBackend))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("ListenAndServe failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
	}
	log.Info("server exited")
}
