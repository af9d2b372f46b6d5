package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"tradeflex/internal/auth"
	"tradeflex/internal/billing"
	"tradeflex/internal/cache"
	"tradeflex/internal/card"
	"tradeflex/internal/config"
	cronrunner "tradeflex/internal/cron"
	"tradeflex/internal/db"
	"tradeflex/internal/entitlement"
	"tradeflex/internal/feed"
	"tradeflex/internal/handler"
	"tradeflex/internal/logger"
	gormrepository "tradeflex/internal/repository/gorm"
	"tradeflex/internal/service"

	_ "tradeflex/docs"
)

func main() {
	cfgPath := os.Getenv("TF_CONFIG")
	if cfgPath == "" {
		cfgPath = "config/config.yaml"
	}

	envOnly := false
	if envOnlyRaw := os.Getenv("TF_ENV_ONLY"); envOnlyRaw != "" {
		envOnly = strings.EqualFold(envOnlyRaw, "true") || envOnlyRaw == "1"
	}

	cfg, err := config.Load(cfgPath, envOnly)
	if err != nil {
		panic(err)
	}

	logger, err := logger.New(cfg.Log)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	dbConn, err := db.Open(cfg.DB)
	if err != nil {
		logger.Fatal("db open failed", zap.Error(err))
	}
	defer db.Close(dbConn)

	if err := db.SetTimezone(dbConn, cfg.DB.Timezone); err != nil {
		logger.Warn("failed to set timezone", zap.Error(err))
	}
	if err := db.AutoMigrate(dbConn); err != nil {
		logger.Fatal("auto-migrate failed", zap.Error(err))
	}

	baseCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store := gormrepository.New(dbConn.Gorm)

	var cacheStore cache.Store
	switch strings.ToLower(cfg.Cache.Backend) {
	case "redis":
		redisStore, err := cache.NewRedisStore(cfg.Cache.RedisURL)
		if err != nil {
			logger.Fatal("redis connect failed", zap.Error(err))
		}
		defer redisStore.Close()
		cacheStore = redisStore
		logger.Info("cache backend: redis")
	default:
		cacheStore = cache.NewMemoryStore()
		logger.Info("cache backend: memory")
	}

	jwt := auth.JWT{
		Secret:   []byte(cfg.Auth.JWTSecret),
		TokenTTL: cfg.Auth.TokenTTL,
		Issuer:   cfg.Auth.Issuer,
	}
	if len(jwt.Secret) == 0 {
		logger.Fatal("auth.jwt_secret is required")
	}
	requireAuth := auth.Middleware(jwt)
	optionalAuth := auth.Optional(jwt)

	entitlements := entitlement.NewResolver(cfg.Admin.Emails, store, cfg.Referral.ProThreshold)

	renderer, err := card.NewRenderer()
	if err != nil {
		logger.Fatal("card renderer init failed", zap.Error(err))
	}

	hub := feed.NewHub(cfg.Feed.BufferSize)
	defer hub.Close()

	var provider billing.Provider
	switch strings.ToLower(cfg.Billing.Mode) {
	case billing.ModeStripe:
		provider = billing.StripeProvider{
			SecretKey:    cfg.Billing.SecretKey,
			PriceMonthly: cfg.Billing.PriceMonthly,
			PriceYearly:  cfg.Billing.PriceYearly,
			SuccessURL:   cfg.Billing.SuccessURL,
			CancelURL:    cfg.Billing.CancelURL,
		}
		logger.Info("billing provider: stripe")
	default:
		provider = billing.MockProvider{BaseURL: cfg.Billing.CheckoutBaseURL}
		logger.Info("billing provider: mock")
	}

	notifier := &service.Notifier{Repo: store, Logger: logger}
	profileSvc := &service.ProfileService{Repo: store, Logger: logger}
	flexSvc := &service.FlexService{
		Repo:         store,
		Logger:       logger,
		Hub:          hub,
		Renderer:     renderer,
		Entitlements: entitlements,
		Brand:        cfg.App.Brand,
	}
	leaderboardSvc := &service.LeaderboardService{
		Repo:   store,
		Cache:  cacheStore,
		Logger: logger,
		TTL:    cfg.Cache.LeaderboardTTL,
	}
	oracleSvc := &service.OracleService{
		Repo:   store,
		Cache:  cacheStore,
		Logger: logger,
		TTL:    cfg.Cache.OracleTTL,
	}
	communitySvc := &service.CommunityService{Repo: store, Notifier: notifier, Logger: logger}
	sentimentSvc := &service.SentimentService{Repo: store, Cache: cacheStore, TTL: cfg.Cache.LeaderboardTTL}
	followSvc := &service.FollowService{Repo: store, Notifier: notifier, Logger: logger}
	referralSvc := &service.ReferralService{
		Repo:      store,
		Notifier:  notifier,
		Logger:    logger,
		LinkBase:  cfg.Referral.LinkBase,
		Threshold: cfg.Referral.ProThreshold,
	}
	checkoutSvc := &service.CheckoutService{Provider: provider, Logger: logger}
	webhookSvc := &service.WebhookService{
		Repo:      store,
		Logger:    logger,
		Secret:    cfg.Billing.WebhookSecret,
		Tolerance: cfg.Billing.WebhookTolerance,
	}
	adminSvc := &service.AdminService{Repo: store}

	if strings.EqualFold(cfg.App.Env, "dev") {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(corsMiddleware())

	(&handler.HealthHandler{DB: dbConn.Gorm}).Register(engine)
	(&handler.FlexHandler{Flexes: flexSvc, Profiles: profileSvc, Auth: requireAuth}).Register(engine)
	(&handler.LeaderboardHandler{Leaderboard: leaderboardSvc}).Register(engine)
	(&handler.CommunityHandler{Community: communitySvc, Profiles: profileSvc, Auth: requireAuth}).Register(engine)
	(&handler.OracleHandler{Oracle: oracleSvc, Auth: requireAuth, Optional: optionalAuth}).Register(engine)
	(&handler.NotificationHandler{Repo: store, Auth: requireAuth}).Register(engine)
	(&handler.SubscriptionHandler{Entitlements: entitlements, Checkout: checkoutSvc, Auth: requireAuth}).Register(engine)
	(&handler.WebhookHandler{Webhooks: webhookSvc}).Register(engine)
	(&handler.ProfileHandler{Profiles: profileSvc, Follows: followSvc, Auth: requireAuth, Optional: optionalAuth}).Register(engine)
	(&handler.ReferralHandler{Referrals: referralSvc, Profiles: profileSvc, Auth: requireAuth}).Register(engine)
	(&handler.SentimentHandler{Sentiment: sentimentSvc, Entitlements: entitlements, Auth: requireAuth}).Register(engine)
	(&handler.AdminHandler{Admin: adminSvc, Entitlements: entitlements, Auth: requireAuth}).Register(engine)
	(&handler.FeedHandler{Hub: hub, Logger: logger}).Register(engine)

	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	var runner *cronrunner.Runner
	if cfg.Cron.Enabled {
		runner = cronrunner.New(logger, baseCtx)
		sweep := &service.SubscriptionSweep{Repo: store, Logger: logger}
		purge := &service.NotificationPurge{Repo: store, Logger: logger}
		if _, err := runner.Add(cfg.Cron.SubscriptionSweep, func(ctx context.Context) {
			if err := sweep.RunOnce(ctx); err != nil {
				logger.Warn("subscription sweep failed", zap.Error(err))
			}
		}); err != nil {
			logger.Fatal("cron add subscription sweep failed", zap.Error(err))
		}
		if _, err := runner.Add(cfg.Cron.LeaderboardRefresh, func(ctx context.Context) {
			if err := leaderboardSvc.Refresh(ctx); err != nil {
				logger.Warn("leaderboard refresh failed", zap.Error(err))
			}
		}); err != nil {
			logger.Fatal("cron add leaderboard refresh failed", zap.Error(err))
		}
		if _, err := runner.Add(cfg.Cron.NotificationPurge, func(ctx context.Context) {
			if err := purge.RunOnce(ctx); err != nil {
				logger.Warn("notification purge failed", zap.Error(err))
			}
		}); err != nil {
			logger.Fatal("cron add notification purge failed", zap.Error(err))
		}
		runner.Start()
		defer runner.Stop()
	}

	server := &http.Server{
		Addr:              cfg.Server.HTTPAddr,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("http server listening", zap.String("addr", cfg.Server.HTTPAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("http server failed", zap.Error(err))
		}
	}()

	<-baseCtx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Warn("http shutdown failed", zap.Error(err))
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, Stripe-Signature")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
