package config

import (
	"fmt"
	"net"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the application configuration.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	Folder   string
	Trash    string
}

// Load reads configuration from environment variables and an optional .env
// file.
func Load() (*Config, error) {
	// Try to load .env file (ignore error if file doesn't exist)
	_ = godotenv.Load()

	cfg := &Config{
		Host:     os.Getenv("IMAP_HOST"),
		Port:     993,
		Username: os.Getenv("IMAP_USERNAME"),
		Password: os.Getenv("IMAP_PASSWORD"),
		Folder:   os.Getenv("IMAP_FOLDER"),
		Trash:    os.Getenv("IMAP_TRASH"),
	}

	if p := os.Getenv("IMAP_PORT"); p != "" {
		port, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("IMAP_PORT must be a number, got %q", p)
		}
		cfg.Port = port
	}

	// Validate required fields
	if cfg.Host == "" {
		return nil, fmt.Errorf("IMAP_HOST environment variable is required")
	}
	if cfg.Username == "" {
		return nil, fmt.Errorf("IMAP_USERNAME environment variable is required")
	}
	if cfg.Password == "" {
		return nil, fmt.Errorf("IMAP_PASSWORD environment variable is required (use an app-specific password if your provider issues them)")
	}

	if cfg.Folder == "" {
		cfg.Folder = "INBOX"
	}

	return cfg, nil
}

// Addr returns the host:port dial address.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
