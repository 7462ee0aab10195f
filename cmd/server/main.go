// Command server runs the tablehost game host: a WebSocket endpoint that
// routes room/game commands for Chess, Xiangqi, Big Two, Boggle, and Bingo
// over one shared event dispatcher.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"tablehost/internal/v1/analytics"
	"tablehost/internal/v1/config"
	"tablehost/internal/v1/dispatcher"
	"tablehost/internal/v1/health"
	"tablehost/internal/v1/leaderboard"
	"tablehost/internal/v1/logging"
	"tablehost/internal/v1/middleware"
	"tablehost/internal/v1/ratelimit"
	"tablehost/internal/v1/roommgr"
)

func main() {
	envPaths := []string{".env", "../../.env"}
	for _, path := range envPaths {
		if err := godotenv.Load(path); err == nil {
			break
		}
	}

	cfg, err := config.ValidateEnv()
	if err != nil {
		panic(err)
	}

	if err := logging.Initialize(cfg.GoEnv != "production"); err != nil {
		panic(err)
	}
	ctx := context.Background()
	logging.Info(ctx, "starting tablehost", zap.Int("port", cfg.Port), zap.String("go_env", cfg.GoEnv))

	rooms := roommgr.NewManager()
	board := leaderboard.New()
	sink := analytics.New(cfg.AnalyticsEndpoint)
	limiter := ratelimit.New(cfg)
	hub := dispatcher.NewHub(rooms, board, sink, limiter)

	var allowedOrigins []string
	if cfg.CORSOrigin != "" {
		allowedOrigins = strings.Split(cfg.CORSOrigin, ",")
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CorrelationID())
	if len(allowedOrigins) > 0 {
		corsCfg := cors.DefaultConfig()
		corsCfg.AllowOrigins = allowedOrigins
		router.Use(cors.New(corsCfg))
	}

	router.GET("/ws", hub.ServeWs(allowedOrigins))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	healthHandler := health.NewHandler(rooms)
	router.GET("/health/live", healthHandler.Liveness)
	router.GET("/health/ready", healthHandler.Readiness)

	router.GET("/leaderboard", func(c *gin.Context) {
		family := c.Query("family")
		c.JSON(http.StatusOK, board.GetLeaderboard(family, 20))
	})

	srv := &http.Server{
		Addr:    ":" + strconv.Itoa(cfg.Port),
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Fatal(ctx, "server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logging.Info(ctx, "shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Error(ctx, "forced shutdown", zap.Error(err))
	}
}

