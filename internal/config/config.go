package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// DefaultImageURL 是用户未提供头像时使用的占位图。
const DefaultImageURL = "https://img.freepik.com/free-icon/user_318-563642.jpg"

// AppConfig 汇总运行服务所需的基础配置。
type AppConfig struct {
	ListenAddr      string
	Port            string
	DatabaseDriver  string
	DatabaseURL     string
	DatabasePath    string
	SQLLog          bool
	SessionSecret   string
	GinMode         string
	LogLevel        string
	LogFormat       string
	DefaultImageURL string
	HomePostLimit   int
}

// Load 从环境变量读取应用配置，并为缺失项提供安全的默认值。
func Load() AppConfig {
	port := env("PORT", "8080")

	listenAddr := env("LISTEN_ADDR", "")
	if listenAddr == "" {
		listenAddr = fmt.Sprintf(":%s", port)
	}

	return AppConfig{
		ListenAddr:      listenAddr,
		Port:            port,
		DatabaseDriver:  strings.ToLower(env("DATABASE_DRIVER", "sqlite")),
		DatabaseURL:     env("DATABASE_URL", ""),
		DatabasePath:    env("DATABASE_PATH", "blogly.db"),
		SQLLog:          envBool("SQL_LOG", false),
		SessionSecret:   env("SESSION_SECRET", "blogly-dev-secret"),
		GinMode:         env("GIN_MODE", "release"),
		LogLevel:        strings.ToLower(env("LOG_LEVEL", "info")),
		LogFormat:       strings.ToLower(env("LOG_FORMAT", "console")),
		DefaultImageURL: env("DEFAULT_IMAGE_URL", DefaultImageURL),
		HomePostLimit:   envPositiveInt("HOME_POST_LIMIT", 5),
	}
}

func env(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func envBool(key string, fallback bool) bool {
	value := env(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func envPositiveInt(key string, fallback int) int {
	parsed, err := strconv.Atoi(env(key, ""))
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}
