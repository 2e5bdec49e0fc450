package main

import (
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"portfolio/internal/config"
	"portfolio/internal/database"
	"portfolio/internal/middleware"
	"portfolio/internal/modules/photo"
	"portfolio/internal/repository"
	"portfolio/internal/transcode"
)

func main() {
	// .env is optional; real deployments set env vars directly.
	_ = godotenv.Load()

	log := logrus.StandardLogger()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	if err := os.MkdirAll(cfg.ImageDir, 0755); err != nil {
		log.WithError(err).Fatal("failed to create image directory")
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := repository.Migrate(db); err != nil {
		log.WithError(err).Fatal("migration failed")
	}

	photoRepo := repository.NewPhotoRepository(db)
	encoder := transcode.NewEncoder(cfg.JPEGQuality)

	photoService := photo.NewService(photoRepo, encoder, cfg.ImageDir, cfg.MaxUploadBytes, log)
	photoHandler := photo.NewHandler(photoService)

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	v1 := r.Group("/api/v1")
	{
		photoHandler.RegisterRoutes(v1)

		v1.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"ok": true, "timestamp": time.Now()})
		})
	}

	// Transcoded images are served straight from disk; stored_filename
	// in a record is always a bare filename inside this directory.
	r.Static("/static/images", cfg.ImageDir)

	log.WithField("addr", cfg.Addr).Info("starting API server")
	if err := r.Run(cfg.Addr); err != nil {
		log.Fatal(err)
	}
}
