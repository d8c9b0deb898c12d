package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
)

type Config struct {
	Address    string
	DBPath     string
	BcryptCost int
}

// Load reads the configuration from the environment, seeded from .env
// when one exists.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Debugf("no .env file loaded: %v", err)
	}

	return &Config{
		Address:    getString("CRUDKIT_ADDR", ":7070"),
		DBPath:     getString("CRUDKIT_DB_PATH", "database.db"),
		BcryptCost: getInt("CRUDKIT_BCRYPT_COST", 0),
	}
}

func getString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		log.Errorf("invalid integer for %s: %v", key, err)
		return fallback
	}
	return n
}
