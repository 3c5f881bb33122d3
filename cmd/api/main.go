package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"database/sql"

	"github.com/go-chi/cors"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/mkotov/card-wallet/internal/backup"
	"github.com/mkotov/card-wallet/internal/barcode"
	"github.com/mkotov/card-wallet/internal/brand"
	"github.com/mkotov/card-wallet/internal/config"
	"github.com/mkotov/card-wallet/internal/handler"
	"github.com/mkotov/card-wallet/internal/storage"
	"github.com/mkotov/card-wallet/internal/store"
	"github.com/sirupsen/logrus"
)

func main() {
	_ = godotenv.Load()

	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	// Initialize the durable slot: postgres when a database is
	// configured, a local file otherwise
	var slot storage.Slot
	if cfg.DatabaseURL != "" {
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			logger.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()
		if err := db.Ping(); err != nil {
			logger.Fatalf("Failed to ping database: %v", err)
		}
		slot, err = storage.NewPostgresSlot(db, cfg.StorageSlot)
		if err != nil {
			logger.Fatalf("Failed to initialize storage: %v", err)
		}
	} else {
		slot, err = storage.NewFileSlot(cfg.DataDir, cfg.StorageSlot)
		if err != nil {
			logger.Fatalf("Failed to initialize storage: %v", err)
		}
	}

	// Initialize layers
	var logos store.LogoResolver
	if cfg.LogoLookup {
		logos = brand.NewLogoResolver(logger, cfg.LogoTimeout)
	}
	cardStore := store.New(slot, logger, logos)
	h := handler.NewHandler(cardStore, barcode.TextRenderer{}, logger)

	// Optional scheduled backups
	if cfg.BackupSchedule != "" {
		var mailer *backup.Mailer
		if cfg.BackupEmail != "" {
			mailer = backup.NewMailer(cfg, logger)
		}
		scheduler := backup.NewScheduler(cardStore, cfg.BackupDir, mailer, logger)
		if err := scheduler.Start(cfg.BackupSchedule); err != nil {
			logger.Fatalf("Failed to start backup scheduler: %v", err)
		}
		defer scheduler.Stop()
	}

	// Setup router
	r := mux.NewRouter()
	h.Register(r)
	c := cors.New(cors.Options{
		AllowedOrigins: []string{cfg.CORSOrigin},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	})

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      c.Handler(r),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	logger.Infof("Starting server on %s", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("Server failed: %v", err)
	}
}
