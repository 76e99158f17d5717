package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/FBSocial/subway2-team-activities/docs"
	"github.com/FBSocial/subway2-team-activities/internal/common/config"
	"github.com/FBSocial/subway2-team-activities/internal/common/logger"
	"github.com/FBSocial/subway2-team-activities/internal/common/middleware"
	activityhttp "github.com/FBSocial/subway2-team-activities/internal/features/activity/delivery/http"
	activityredis "github.com/FBSocial/subway2-team-activities/internal/features/activity/repository/redis"
	activityservice "github.com/FBSocial/subway2-team-activities/internal/features/activity/service"
	"github.com/FBSocial/subway2-team-activities/internal/features/auth"
	authhttp "github.com/FBSocial/subway2-team-activities/internal/features/auth/delivery/http"
	"github.com/FBSocial/subway2-team-activities/internal/platform/fanbook"
	redisplatform "github.com/FBSocial/subway2-team-activities/internal/platform/redis"
	"github.com/FBSocial/subway2-team-activities/internal/workers"
)

// @title           Subway2 Team Activities API
// @version         1.0
// @description     Backend-for-frontend of the subway2 invite team-up campaign. Derives the full activity state from campaign platform snapshots and serves the mini-program pages.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerToken
// @in header
// @name Authorization
// @description Viewer session token, "Bearer <token>"

// @tag.name activity
// @tag.description Derived activity state - lifecycle, tasks, rewards, progress

// @tag.name invite
// @tag.description Invite codes - invited page and joining teams

// @tag.name team
// @tag.description Team raising

// @tag.name gifts
// @tag.description Gift records and redemption keys

// @tag.name auth
// @tag.description Auth classification and logout

func main() {
	cfg := config.Load()

	logger.Init("subway2-team-activities", cfg.Debug)
	logger.Info().Bool("debug", cfg.Debug).Msg("starting subway2 team activities backend")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	redisClient, err := redisplatform.Open(ctx, cfg.Redis.Host, cfg.Redis.Port, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		logger.Fatal().Err(err).Msg("redis connection failed")
	}
	defer redisClient.Close()

	platformClient := fanbook.NewClient(
		cfg.Platform.BaseURL,
		cfg.Platform.AppKey,
		cfg.Platform.AppSecret,
		cfg.Platform.Name,
		cfg.Platform.ActivityID,
	)

	sessions := auth.NewSessionStore(redisClient, time.Duration(cfg.Cache.SessionTTLSeconds)*time.Second)
	snapshotCache := activityredis.NewSnapshotCache(
		redisClient,
		time.Duration(cfg.Cache.SnapshotTTLSeconds)*time.Second,
		time.Duration(cfg.Cache.GiftRecordTTLSeconds)*time.Second,
	)

	activitySvc := activityservice.NewActivityService(platformClient, snapshotCache, cfg)

	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.ErrorHandler())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.Server.Origin}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Content-Type", "Authorization", "Accept", "X-Host-Init-Data"}
	router.Use(cors.New(corsConfig))

	v1 := router.Group("/api/v1")
	v1.Use(middleware.HostInitData(cfg.Host.InitDataSecret, time.Duration(cfg.Host.InitDataTTL)*time.Second))
	v1.Use(middleware.ClassifyAuth(sessions))

	activityhttp.NewActivityHandler(activitySvc).RegisterRoutes(v1)
	authhttp.NewAuthHandler(sessions, activitySvc).RegisterRoutes(v1)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC(),
			"service":   "subway2-team-activities",
		})
	})

	var refresher *workers.SnapshotRefresher
	if cfg.Refresh.Enabled {
		refresher = workers.NewSnapshotRefresher(activitySvc, snapshotCache, time.Duration(cfg.Refresh.IntervalSeconds)*time.Second)
		if err := refresher.Start(); err != nil {
			logger.Fatal().Err(err).Msg("snapshot refresher start failed")
		}
	}

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutting down")

	if refresher != nil {
		refresher.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("forced shutdown")
		os.Exit(1)
	}

	logger.Info().Msg("server exited")
}
