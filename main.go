package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/juliencrn/twitter-clone/internal/api"
	"github.com/juliencrn/twitter-clone/internal/auth"
	"github.com/juliencrn/twitter-clone/internal/config"
	"github.com/juliencrn/twitter-clone/internal/database"
	"github.com/juliencrn/twitter-clone/internal/logger"
	"github.com/juliencrn/twitter-clone/internal/services"
	"github.com/juliencrn/twitter-clone/internal/trending"
	"github.com/juliencrn/twitter-clone/internal/websocket"
	"github.com/rs/zerolog/log"
)

func main() {
	logger.Init()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Set up database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply database migrations")
	}

	// The signing secret is loaded once here and owned by the codec;
	// nothing else reads it.
	codec := auth.NewTokenCodec(cfg.JWTSecret, cfg.TokenTTL)
	hasher := auth.NewArgon2Hasher()

	// Set up live feed hub
	hub := websocket.NewHub()
	go hub.Run()

	// Set up services
	userService := services.NewUserService(db)
	authService := services.NewAuthService(userService, hasher, codec)
	hashtagService := services.NewHashtagService(db)
	tweetService := services.NewTweetService(db, hashtagService, hub)
	likeService := services.NewLikeService(db, tweetService)

	// Set up and run the background trending updater
	updater, err := trending.NewUpdater(hashtagService, cfg.TrendingCron, cfg.TrendingWindow)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid trending cron expression")
	}
	go updater.Run()

	// Set up router
	router := api.NewRouter(codec, hub, authService, userService, tweetService, likeService, hashtagService)

	// Set up server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Info().Int("port", cfg.ServerPort).Msg("Server starting")
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("ListenAndServe()")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	updater.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}
