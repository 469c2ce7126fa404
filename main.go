package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/editfolio/editfolio-backend/handlers"
	"github.com/editfolio/editfolio-backend/internal/auth"
	"github.com/editfolio/editfolio-backend/internal/config"
	"github.com/editfolio/editfolio-backend/internal/content"
	"github.com/editfolio/editfolio-backend/internal/database"
	"github.com/editfolio/editfolio-backend/internal/relay"
	"github.com/editfolio/editfolio-backend/internal/sessions"
	"github.com/editfolio/editfolio-backend/internal/storage"
	"github.com/editfolio/editfolio-backend/internal/store"
	"github.com/editfolio/editfolio-backend/internal/subscription"
	"github.com/editfolio/editfolio-backend/internal/users"
	"github.com/editfolio/editfolio-backend/pkg/logger"
	"github.com/editfolio/editfolio-backend/pkg/metrics"
	"github.com/editfolio/editfolio-backend/pkg/middleware"
)

var startTime = time.Now()

func main() {
	// logging level is controlled with LOG_LEVEL env: debug|info|warn|error|fatal
	logger.Init(os.Getenv("LOG_LEVEL"))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Infof("config loaded: mongo=%v redis=%v app_id=%s", cfg.MongoDB.URI != "", cfg.Redis.Host != "", cfg.Server.AppID)

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	// Lightweight CORS middleware for dev/test: set common headers and respond to OPTIONS.
	// (Keep this intentionally simple — production should use a stricter policy.)
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(200)
			return
		}
		c.Next()
	})

	ctx := context.Background()

	// Connect to Redis early; it backs sessions and cross-instance change
	// notifications when available.
	var redisClient *redis.Client
	if cfg.Redis.Host != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Host + ":" + cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Warnf("failed to connect to Redis (%s:%s): %v", cfg.Redis.Host, cfg.Redis.Port, err)
			redisClient = nil
		} else {
			logger.Infof("Connected to Redis: %s:%s", cfg.Redis.Host, cfg.Redis.Port)
		}
	}

	// Connect to MongoDB with retry/backoff to tolerate startup races.
	var mongoClient *mongo.Client
	if cfg.MongoDB.URI != "" {
		const maxAttempts = 5
		backoff := time.Second
		var errConn error
		for attempt := 1; attempt <= maxAttempts; attempt++ {
			mongoClient, errConn = database.ConnectMongo(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout)
			if errConn == nil {
				break
			}
			logger.Warnf("attempt %d/%d: failed to connect to MongoDB: %v", attempt, maxAttempts, errConn)
			if attempt < maxAttempts {
				time.Sleep(backoff)
				backoff *= 2
			}
		}
		if errConn != nil {
			logger.Warnf("could not connect to MongoDB after %d attempts: %v", maxAttempts, errConn)
			mongoClient = nil
		}
	}

	// The document store itself: Mongo when connected, in-memory otherwise.
	// The database name doubles as the app namespace.
	var docStore store.Store
	if mongoClient != nil {
		defer func() { _ = mongoClient.Disconnect(ctx) }()
		// change notifications fan out over Redis when it is available, so
		// several instances can share one document store
		var notifier store.Notifier = store.NewLocalNotifier()
		if redisClient != nil {
			notifier = store.NewRedisNotifier(redisClient, "change:")
		}
		docStore = store.NewMongoStore(mongoClient.Database(cfg.MongoDB.Database), notifier)
		logger.Infof("Using MongoDB document store: %s", cfg.MongoDB.Database)
	} else {
		docStore = store.NewMemoryStore()
		logger.Warnf("MongoDB unavailable; using in-memory document store (data is not persisted)")
	}

	gate := auth.NewGate(cfg)
	guarded := store.Guarded(docStore, gate.WriteRule())
	accessor := content.NewAccessor(guarded)
	coordinator := subscription.NewCoordinator(docStore)

	// Users live in Mongo when available, sessions prefer Redis.
	var usersSvc *users.Service
	if mongoClient != nil {
		usersSvc = users.NewService(users.NewMongoUserRepository(
			mongoClient.Database(cfg.MongoDB.Database).Collection("users")))
	} else {
		usersSvc = users.NewService(users.NewMemoryUserRepository())
	}

	var sessionsSvc *sessions.Service
	switch {
	case redisClient != nil:
		sessionsSvc = sessions.NewService(sessions.NewRedisRepository(redisClient, "session:"))
		logger.Infof("Using Redis for session storage")
	case mongoClient != nil:
		sessionsSvc = sessions.NewService(sessions.NewMongoRepository(
			mongoClient.Database(cfg.MongoDB.Database).Collection("sessions")))
	default:
		sessionsSvc = sessions.NewService(sessions.NewMemoryRepository())
		logger.Warnf("using in-memory session storage")
	}

	authn := auth.NewAuthenticator(cfg, usersSvc, sessionsSvc)
	r.Use(middleware.Identity(authn))

	// Optional media bucket for portfolio thumbnails.
	var media *storage.MediaStorage
	if mcfg := storage.LoadMinIOConfig(); mcfg.Endpoint != "" {
		media, err = storage.NewMediaStorage(mcfg)
		if err != nil {
			logger.Warnf("media storage unavailable: %v", err)
			media = nil
		}
	}

	contactRelay := relay.NewFromConfig(cfg)

	handlers.NewAuthHandler(authn, usersSvc, gate).Register(r)
	handlers.NewContentHandler(accessor, gate).Register(r)
	handlers.NewLiveHandler(coordinator).Register(r)
	handlers.NewContactHandler(contactRelay).Register(r)
	handlers.NewUploadHandler(media, gate).Register(r)
	handlers.RegisterSwagger(r)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})

	// readiness: 200 only when the persistent store is actually behind the API
	r.GET("/ready", func(c *gin.Context) {
		deps := map[string]bool{
			"mongo": mongoClient != nil,
			"redis": redisClient != nil,
			"relay": contactRelay.Enabled(),
			"media": media != nil,
		}
		if cfg.MongoDB.URI != "" && mongoClient == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "deps": deps, "uptime": time.Since(startTime).String()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready", "deps": deps, "uptime": time.Since(startTime).String()})
	})

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	logger.Infof("Starting editfolio backend on %s", addr)
	if err := r.Run(addr); err != nil {
		logger.Fatalf("server failed: %v", err)
	}
}
