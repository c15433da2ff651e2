package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ManadaHerath/hexpath/internal/api"
	"github.com/ManadaHerath/hexpath/internal/broker"
	"github.com/ManadaHerath/hexpath/internal/config"
	"github.com/ManadaHerath/hexpath/internal/session"
	"github.com/ManadaHerath/hexpath/internal/solver"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatal("invalid configuration: ", err)
	}
	logrus.SetLevel(cfg.LogLevel)
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	frames := newBroker(cfg)
	defer frames.Close()

	client := solver.NewClient(cfg.SolverURL, cfg.SolverTimeout)
	sessions := session.NewManager(client, frames, session.Options{
		PaintDelay:   cfg.PaintDelay,
		PaintVisited: cfg.PaintVisited,
	})
	defer sessions.Close()

	if cfg.LogLevel < logrus.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), corsMiddleware())
	api.NewAPI(sessions, frames).RegisterRoutes(router)

	srv := &http.Server{Addr: cfg.ListenAddr, Handler: router}

	go func() {
		logrus.WithField("solver", cfg.SolverURL).Info("Server listening on ", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatal(err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logrus.Warn("shutdown: ", err)
	}
}

func newBroker(cfg *config.Config) broker.Broker {
	if cfg.RedisAddr == "" {
		logrus.Info("Using in-process frame broker")
		return broker.NewMemBroker()
	}

	rb := broker.NewRedisBroker(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err := rb.Ping(context.Background()); err != nil {
		logrus.Fatal("Failed to connect to Redis: ", err)
	}
	logrus.Info("Using Redis at ", cfg.RedisAddr)
	return rb
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
