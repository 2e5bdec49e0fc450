package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

const (
	defaultAddr           = ":8080"
	defaultDatabaseURL    = "portfolio.db"
	defaultImageDir       = "./data/images"
	defaultMaxUploadBytes = "26214400" // 25 MB
	defaultJPEGQuality    = "90"
)

type Config struct {
	Addr           string
	DatabaseURL    string
	ImageDir       string
	MaxUploadBytes int64
	JPEGQuality    int
}

func Load() (*Config, error) {
	cfg := &Config{
		Addr:        strings.TrimSpace(getEnv("ADDR", defaultAddr)),
		DatabaseURL: strings.TrimSpace(getEnv("DATABASE_URL", defaultDatabaseURL)),
		ImageDir:    strings.TrimSpace(getEnv("IMAGE_DIR", defaultImageDir)),
	}

	var err error
	cfg.MaxUploadBytes, err = parseInt64Env("MAX_UPLOAD_BYTES", defaultMaxUploadBytes)
	if err != nil {
		return nil, err
	}

	quality, err := parseInt64Env("JPEG_QUALITY", defaultJPEGQuality)
	if err != nil {
		return nil, err
	}
	if quality < 1 || quality > 100 {
		return nil, fmt.Errorf("JPEG_QUALITY must be between 1 and 100, got %d", quality)
	}
	cfg.JPEGQuality = int(quality)

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseInt64Env(key, fallback string) (int64, error) {
	raw := getEnv(key, fallback)
	v, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	if v <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %d", key, v)
	}
	return v, nil
}
