// Package config loads bot configuration from the environment, with an
// optional .env file for local runs.
package config

import (
	"fmt"
	"log"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	DiscordToken     string `env:"DISCORD_TOKEN,required"`
	CommandPrefix    string `env:"COMMAND_PREFIX" envDefault:"."`
	OwnerID          string `env:"OWNER_ID"`
	PresenceIntent   bool   `env:"PRESENCE_INTENT" envDefault:"true"`
	MembersIntent    bool   `env:"MEMBERS_INTENT" envDefault:"true"`
	MessageCacheSize int    `env:"MESSAGE_CACHE_SIZE" envDefault:"1024"`
	HideDiagnostics  bool   `env:"GOSAKU_HIDE" envDefault:"false"`
}

func New() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("[INFO] No .env file found, falling back to system environment variables")
	}

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	return &cfg, nil
}
