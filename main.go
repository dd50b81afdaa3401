package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/jucanuro/grupovicaf/config"
	"github.com/jucanuro/grupovicaf/repository"
	"github.com/jucanuro/grupovicaf/server"
)

var (
	configPath string
	httpPort   string
)

func init() {
	flag.StringVar(&configPath, "config", "", "Path to the config file (TOML)")
	flag.StringVar(&httpPort, "http-port", "", "HTTP web server port, overrides config")
}

func main() {
	// Load Config
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Reading config: %v", err)
	}
	if httpPort != "" {
		cfg.HTTPPort = httpPort
	}

	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Invalid log level %q: %v", cfg.LogLevel, err)
	}
	logger.SetLevel(level)

	// Connect Postgresql DB
	repo := repository.NewRepository(logger)
	logger.WithField("dsn", cfg.DatabaseURL).Info("Connecting to database")
	if err := repo.ConnectDB(cfg.DatabaseURL); err != nil {
		log.Fatalf("Connecting to database: %v", err)
	}
	if cfg.MigrateOnBoot {
		if err := repo.Migrate(); err != nil {
			log.Fatalf("Running migrations: %v", err)
		}
	}
	if cfg.SeedData {
		if err := repo.Seed(); err != nil {
			log.Fatalf("Seeding catalog data: %v", err)
		}
	}

	// Start Web Server
	webserver, err := server.NewWebServer(cfg.HTTPPort, logger, repo)
	if err != nil {
		log.Fatalf("Creating web server: %v", err)
	}
	if err := webserver.Start(); err != nil {
		log.Fatalf("Starting HTTP server: %v", err)
	}

	// Wait for interrupt signal to gracefully shut down the server
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	// Create deadline to wait for server shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := webserver.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("Shutting down HTTP web server")
	}
	logger.Info("HTTP web server gracefully stopped")
}
