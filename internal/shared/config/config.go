package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"gsnake-editor-api/internal/shared/utils"

	"github.com/joho/godotenv"
)

// Config is the startup-time snapshot of the process configuration. It is
// resolved exactly once by Load and threaded through constructors; nothing
// re-reads the environment after start. In particular the CORS allow-list
// takes effect on restart only, which is a documented property of the
// service, not an accident.
type Config struct {
	Server    ServerConfig
	CORS      CORSConfig
	Logging   LoggingConfig
	RateLimit RateLimitConfig
	Store     StoreConfig
	Sprite    SpriteConfig
}

type ServerConfig struct {
	Port         string
	Environment  string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type CORSConfig struct {
	// AllowedOrigins is an exact-match origin allow-list. Requests without
	// an Origin header bypass the check entirely.
	AllowedOrigins []string
	Debug          bool
}

type LoggingConfig struct {
	Level      string
	JSONFormat bool
}

type RateLimitConfig struct {
	Enabled           bool
	RequestsPerSecond float64
	BurstSize         int
}

type StoreConfig struct {
	// TTL is how long a stored test level stays readable.
	TTL time.Duration
}

type SpriteConfig struct {
	URL string
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, using system environment variables")
	}

	config := &Config{
		Server:    loadServerConfig(),
		CORS:      loadCORSConfig(),
		Logging:   loadLoggingConfig(),
		RateLimit: loadRateLimitConfig(),
		Store:     loadStoreConfig(),
		Sprite:    loadSpriteConfig(),
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

func loadServerConfig() ServerConfig {
	readTimeout, _ := strconv.Atoi(utils.GetEnv("SERVER_READ_TIMEOUT_SECONDS", "15"))
	writeTimeout, _ := strconv.Atoi(utils.GetEnv("SERVER_WRITE_TIMEOUT_SECONDS", "15"))
	idleTimeout, _ := strconv.Atoi(utils.GetEnv("SERVER_IDLE_TIMEOUT_SECONDS", "60"))

	return ServerConfig{
		Port:         utils.GetEnv("SERVER_PORT", "8080"),
		Environment:  utils.GetEnv("ENVIRONMENT", "development"),
		ReadTimeout:  time.Duration(readTimeout) * time.Second,
		WriteTimeout: time.Duration(writeTimeout) * time.Second,
		IdleTimeout:  time.Duration(idleTimeout) * time.Second,
	}
}

func loadCORSConfig() CORSConfig {
	raw := utils.GetEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000")

	var origins []string
	for _, origin := range strings.Split(raw, ",") {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			origins = append(origins, origin)
		}
	}

	return CORSConfig{
		AllowedOrigins: origins,
		Debug:          utils.GetEnv("CORS_DEBUG", "") == "true",
	}
}

func loadLoggingConfig() LoggingConfig {
	environment := utils.GetEnv("ENVIRONMENT", "development")

	return LoggingConfig{
		Level:      utils.GetEnv("LOG_LEVEL", "debug"),
		JSONFormat: environment == "production",
	}
}

func loadRateLimitConfig() RateLimitConfig {
	enabled := utils.GetEnv("RATE_LIMIT_ENABLED", "true") == "true"
	requestsPerSecond, _ := strconv.ParseFloat(utils.GetEnv("RATE_LIMIT_REQUESTS_PER_SECOND", "10"), 64)
	burstSize, _ := strconv.Atoi(utils.GetEnv("RATE_LIMIT_BURST_SIZE", "20"))

	return RateLimitConfig{
		Enabled:           enabled,
		RequestsPerSecond: requestsPerSecond,
		BurstSize:         burstSize,
	}
}

func loadStoreConfig() StoreConfig {
	ttlMinutes, _ := strconv.Atoi(utils.GetEnv("TEST_LEVEL_TTL_MINUTES", "60"))

	return StoreConfig{
		TTL: time.Duration(ttlMinutes) * time.Minute,
	}
}

func loadSpriteConfig() SpriteConfig {
	return SpriteConfig{
		URL: utils.GetEnv("SPRITE_URL", "http://localhost:3000/assets/snake-sprites.svg"),
	}
}

func (c *Config) validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("SERVER_PORT is required")
	}

	if len(c.CORS.AllowedOrigins) == 0 {
		return fmt.Errorf("CORS_ALLOWED_ORIGINS must contain at least one origin")
	}

	if c.Store.TTL <= 0 {
		return fmt.Errorf("TEST_LEVEL_TTL_MINUTES must be positive")
	}

	if c.Sprite.URL == "" {
		return fmt.Errorf("SPRITE_URL is required")
	}

	return nil
}
