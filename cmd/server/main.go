package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"carefund/internal/config"
	"carefund/internal/handlers"
	"carefund/internal/middleware"
	"carefund/internal/repositories/mongodb"
	"carefund/internal/services"
	"carefund/pkg/cache"
	"carefund/pkg/database"
	"carefund/pkg/email"
	"carefund/pkg/logger"
	"carefund/pkg/payment"
	"carefund/pkg/sms"
	"carefund/pkg/storage"
	"carefund/routes"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.NewLogger(&logger.Config{
		Level:  cfg.App.LogLevel,
		Format: cfg.App.LogFormat,
		Output: "stdout",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}

	db, err := database.NewMongoDB(&database.DatabaseConfig{
		URI:            cfg.Database.URI,
		Database:       cfg.Database.Database,
		MaxPoolSize:    cfg.Database.MaxPoolSize,
		MinPoolSize:    cfg.Database.MinPoolSize,
		ConnectTimeout: cfg.Database.ConnectTimeout,
		SocketTimeout:  cfg.Database.SocketTimeout,
	})
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to MongoDB")
	}
	defer db.Close()

	redisCache, err := cache.NewRedisCache(&cache.RedisConfig{
		Host:         cfg.Redis.Host,
		Port:         cfg.Redis.Port,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	})
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to Redis")
	}

	cacheService := services.NewCacheService(redisCache, log, "carefund", 15*time.Minute)

	// Repositories
	userRepo := mongodb.NewUserRepository(db.Database, cacheService)
	campaignRepo := mongodb.NewCampaignRepository(db.Database, cacheService)
	donationRepo := mongodb.NewDonationRepository(db.Database)
	paymentRepo := mongodb.NewPaymentRepository(db.Database)
	couponRepo := mongodb.NewCouponRepository(db.Database, cacheService)
	packageRepo := mongodb.NewCouponPackageRepository(db.Database, cacheService)
	partnerRepo := mongodb.NewPartnerRepository(db.Database, cacheService)
	walletRepo := mongodb.NewWalletRepository(db.Database, cacheService)
	contactRepo := mongodb.NewContactQueryRepository(db.Database)

	// Payment gateways
	providers := []payment.Provider{}
	if cfg.Payment.Razorpay.Enabled && cfg.Payment.Razorpay.KeyID != "" {
		providers = append(providers, payment.NewRazorpayProvider(cfg.Payment.Razorpay.KeyID, cfg.Payment.Razorpay.KeySecret))
	}
	if cfg.Payment.Stripe.Enabled && cfg.Payment.Stripe.SecretKey != "" {
		providers = append(providers, payment.NewStripeProvider(cfg.Payment.Stripe.SecretKey, cfg.Payment.Stripe.PublishableKey))
	}
	if cfg.Payment.UPI.Enabled {
		providers = append(providers, payment.NewUPIProvider(cfg.Payment.UPI.VPAHandle, cfg.Payment.UPI.PayeeName))
	}
	// The free test gateway never ships to production.
	if cfg.Payment.TestGatewayEnabled && !cfg.IsProduction() {
		providers = append(providers, payment.NewTestProvider())
	}
	registry := payment.NewRegistry(providers...)

	var smsProvider sms.SMSProvider
	if cfg.SMS.Enabled {
		smsProvider = sms.NewTwilioProvider(cfg.SMS.AccountSID, cfg.SMS.AuthToken, cfg.SMS.FromNumber)
	}

	var mailer email.EmailProvider
	if cfg.SMTP.Enabled {
		mailer = email.NewSMTPProvider(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.FromEmail, cfg.SMTP.FromName)
	}

	var store storage.StorageProvider
	if cfg.Storage.Provider == "s3" {
		store, err = storage.NewAWSS3Storage(cfg.Storage.S3Region, cfg.Storage.S3Bucket, cfg.Storage.CDNDomain)
	} else {
		store, err = storage.NewLocalStorage(cfg.Storage.LocalPath, cfg.Storage.BaseURL)
	}
	if err != nil {
		log.WithError(err).Fatal("Failed to init storage")
	}

	// Services
	authService := services.NewAuthService(userRepo, cacheService, mailer, log, cfg.Security.JWTSecret, cfg.App.BaseURL)
	campaignService := services.NewCampaignService(campaignRepo, log)
	donationService := services.NewDonationService(donationRepo, campaignRepo, log)
	paymentService := services.NewPaymentService(paymentRepo, donationRepo, donationService, registry, log, cfg.IsProduction())
	couponService := services.NewCouponService(couponRepo, packageRepo, partnerRepo, paymentRepo, registry, smsProvider, mailer, store, log, cfg.App.BaseURL, cfg.IsProduction())
	partnerService := services.NewPartnerService(partnerRepo, store, log)
	walletService := services.NewWalletService(walletRepo, couponRepo, partnerRepo, log)
	adminService := services.NewAdminService(userRepo, campaignRepo, donationRepo, couponRepo, partnerRepo, walletRepo, donationService, authService, log)
	contactService := services.NewContactService(contactRepo, log)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	campaignHandler := handlers.NewCampaignHandler(campaignService)
	donationHandler := handlers.NewDonationHandler(donationService, paymentService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	couponHandler := handlers.NewCouponHandler(couponService)
	partnerHandler := handlers.NewPartnerHandler(partnerService)
	walletHandler := handlers.NewWalletHandler(walletService)
	adminHandler := handlers.NewAdminHandler(adminService)
	contactHandler := handlers.NewContactHandler(contactService)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.SetTrustedProxies(cfg.Security.TrustedProxies)

	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.CORSMiddleware(cfg.Security.CORSAllowedOrigins))
	router.Use(middleware.RateLimit(cacheService, int64(cfg.Security.RateLimitPerMinute), time.Minute))

	router.GET("/health", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "down", "mongo": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "up", "version": cfg.App.Version})
	})

	jwtSecret := cfg.Security.JWTSecret
	api := router.Group("/api")
	routes.SetupAuthRoutes(api, authHandler, jwtSecret)
	routes.SetupCampaignRoutes(api, campaignHandler, donationHandler, jwtSecret)
	routes.SetupDonationRoutes(api, donationHandler, paymentHandler, jwtSecret)
	routes.SetupPaymentRoutes(api, paymentHandler, jwtSecret)
	routes.SetupCouponRoutes(api, couponHandler, walletHandler, jwtSecret)
	routes.SetupPartnerRoutes(api, partnerHandler, couponHandler, jwtSecret)
	routes.SetupWalletRoutes(api, walletHandler, jwtSecret)
	routes.SetupAdminRoutes(api, adminHandler, campaignHandler, donationHandler, paymentHandler, couponHandler, partnerHandler, walletHandler, jwtSecret)
	routes.SetupContactRoutes(api, contactHandler, jwtSecret)

	if cfg.Storage.Provider != "s3" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.App.Host, cfg.App.Port),
		Handler: router,
	}

	go func() {
		log.WithField("addr", srv.Addr).WithField("env", cfg.App.Environment).Info("Server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("Server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("Forced shutdown")
	}

	log.Info("Server stopped")
}
