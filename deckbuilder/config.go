package deckbuilder

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/hptcg/deckbuilder-api/deckbuilder/database"
)

func LoadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config: %w", err)
	}
	defer file.Close()

	var cfg Config
	if err = toml.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type Config struct {
	Log    LogConfig            `toml:"log"`
	Server ServerConfig         `toml:"server"`
	Mongo  database.MongoConfig `toml:"mongo"`
	JWT    JWTConfig            `toml:"jwt"`
	Import ImportConfig         `toml:"import"`
	Cache  CacheConfig          `toml:"cache"`
}

type LogConfig struct {
	Level     slog.Level `toml:"level"`
	Format    string     `toml:"format"`
	AddSource bool       `toml:"add_source"`
}

type ServerConfig struct {
	Port        int    `toml:"port"`
	CORSOrigins string `toml:"cors_origins"`
}

type JWTConfig struct {
	// Secret is base64 encoded in the config file.
	Secret           string `toml:"secret"`
	ExpiresInMinutes int    `toml:"expires_in_minutes"`
}

type ImportConfig struct {
	AssetsDir string `toml:"assets_dir"`
}

type CacheConfig struct {
	Capacity int `toml:"capacity"`
}
