package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"portfolio-complete/config"
	"portfolio-complete/handlers/sockets"
	"portfolio-complete/metrics"
	"portfolio-complete/service"
	"portfolio-complete/stores"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

func setupLogging(cfg config.LogConfig) {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		logrus.WithField("level", cfg.Level).Warn("Unknown log level, using info")
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
	if cfg.Format == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.WithField("error", err).Fatal("Failed to load config")
	}
	setupLogging(cfg.Log)

	store, err := stores.GetStore(context.Background(), cfg.Storage)
	if err != nil {
		logrus.WithField("error", err).Fatal("Failed to open storage")
	}
	if c, ok := store.(io.Closer); ok {
		defer c.Close()
	}

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)

	hub := sockets.NewHub()
	svc := service.New(store, hub)

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      newRouter(cfg, svc, hub.Handler()),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logrus.WithField("addr", srv.Addr).Info("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithField("error", err).Fatal("Server failed")
		}
	}()

	signalC := make(chan os.Signal, 1)
	signal.Notify(signalC, os.Interrupt, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	s := <-signalC
	logrus.WithField("signal", s.String()).Info("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	hub.Close()
	if err := srv.Shutdown(ctx); err != nil {
		logrus.WithField("error", err).Error("Shutdown error")
	}
	logrus.Info("Server stopped")
}
