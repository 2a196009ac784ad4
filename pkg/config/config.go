// Package config は環境変数からアプリケーション設定を読み込みます。
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// 既定値。環境変数で上書きできます。
const (
	DefaultTextModel    = "gemini-2.5-flash"
	DefaultImageModel   = "gemini-2.5-flash-image"
	DefaultFrameCount   = 5
	DefaultFrameDelayMS = 1000
	DefaultFrameTimeout = 120 * time.Second
	DefaultHTTPTimeout  = 30 * time.Second
	DefaultCacheTTL     = time.Hour
)

// Config はアプリケーション全体の設定を保持します。
type Config struct {
	APIKey       string
	TextModel    string
	ImageModel   string
	FrameCount   int
	FrameDelay   time.Duration
	FrameTimeout time.Duration
	HTTPTimeout  time.Duration
	CacheTTL     time.Duration
	AspectRatio  string
}

// Load は環境変数から設定を読み込みます。
// .env ファイルがあれば先に読み込みます（任意）。
func Load() (*Config, error) {
	// .envファイルの読み込みは任意（なくてもエラーにしない）
	godotenv.Load()

	cfg := &Config{
		APIKey:       os.Getenv("GEMINI_API_KEY"),
		TextModel:    getEnv("GIFKIT_TEXT_MODEL", DefaultTextModel),
		ImageModel:   getEnv("GIFKIT_IMAGE_MODEL", DefaultImageModel),
		FrameCount:   getEnvInt("GIFKIT_FRAME_COUNT", DefaultFrameCount),
		FrameDelay:   time.Duration(getEnvInt("GIFKIT_FRAME_DELAY_MS", DefaultFrameDelayMS)) * time.Millisecond,
		FrameTimeout: time.Duration(getEnvInt("GIFKIT_FRAME_TIMEOUT_SEC", int(DefaultFrameTimeout/time.Second))) * time.Second,
		HTTPTimeout:  time.Duration(getEnvInt("GIFKIT_HTTP_TIMEOUT_SEC", int(DefaultHTTPTimeout/time.Second))) * time.Second,
		CacheTTL:     DefaultCacheTTL,
		AspectRatio:  getEnv("GIFKIT_ASPECT_RATIO", ""),
	}

	if cfg.APIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY が設定されていません")
	}
	if cfg.FrameCount < 1 {
		return nil, fmt.Errorf("GIFKIT_FRAME_COUNT は1以上である必要があります: %d", cfg.FrameCount)
	}

	return cfg, nil
}

// getEnv は環境変数を取得し、未設定の場合はフォールバック値を返します。
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// getEnvInt は整数の環境変数を取得します。未設定や解析不能の場合はフォールバック値を返します。
func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return n
}
