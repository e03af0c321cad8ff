package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Server    ServerConfig
	API       APIConfig
	Extractor ExtractorConfig
	Cache     CacheConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Port            int           `envconfig:"API_PORT" default:"8080"`
	ReadTimeout     time.Duration `envconfig:"API_READ_TIMEOUT" default:"10s"`
	WriteTimeout    time.Duration `envconfig:"API_WRITE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `envconfig:"API_SHUTDOWN_TIMEOUT" default:"10s"`
}

type APIConfig struct {
	// Credit is the value of the credits block attached to every response.
	Credit string `envconfig:"API_CREDIT" default:"tubegate"`
	// PlaylistLimit caps the entries returned by the playlist listing
	// endpoint.
	PlaylistLimit int `envconfig:"API_PLAYLIST_LIMIT" default:"10"`
}

type ExtractorConfig struct {
	Binary  string        `envconfig:"YTDLP_BINARY" default:"yt-dlp"`
	Timeout time.Duration `envconfig:"YTDLP_TIMEOUT" default:"30s"`
}

type CacheConfig struct {
	// Backend selects the metadata cache implementation: memory or redis.
	Backend   string        `envconfig:"CACHE_BACKEND" default:"memory"`
	TTL       time.Duration `envconfig:"CACHE_TTL" default:"15m"`
	RedisAddr string        `envconfig:"CACHE_REDIS_ADDR" default:"localhost:6379"`
	RedisDB   int           `envconfig:"CACHE_REDIS_DB" default:"0"`
}

type RateLimitConfig struct {
	Limit  int           `envconfig:"RATE_LIMIT" default:"200"`
	Window time.Duration `envconfig:"RATE_WINDOW" default:"1h"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}
