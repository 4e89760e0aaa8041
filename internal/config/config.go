// internal/config/config.go
//
// Runtime configuration.
//
// Load resolves settings in this order, later steps winning:
//  1. built-in defaults
//  2. a .env file in the working directory (godotenv; missing file is fine)
//  3. an optional YAML file named by CONFIG_FILE
//  4. environment variables
//
// Environment variables:
//
//	PORT, LOG_LEVEL, LOG_FORMAT
//	WORDS_FILE, WORDS_URL, WORDS_DB, WORD_LENGTH
//	OPENERS (comma separated), SUGGESTION_LIMIT, GREY_MODE (conservative|strict)
//	JWT_SECRET, JWT_EXPIRES_HOURS, API_KEY_HASH
//	REDIS_ADDR, REDIS_PASSWORD, REDIS_CHANNEL, REDIS_TTL
//	CLIENT_ORIGIN

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds every tunable of the service.
type Config struct {
	Port      string `yaml:"port"`
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	WordsFile  string `yaml:"words_file"`
	WordsURL   string `yaml:"words_url"`
	WordsDB    string `yaml:"words_db"`
	WordLength int    `yaml:"word_length"`

	Openers         []string `yaml:"openers"`
	SuggestionLimit int      `yaml:"suggestion_limit"`
	GreyMode        string   `yaml:"grey_mode"`

	JWTSecret    string        `yaml:"jwt_secret"`
	TokenTTL     time.Duration `yaml:"token_ttl"`
	APIKeyHash   string        `yaml:"api_key_hash"`
	ClientOrigin string        `yaml:"client_origin"`

	RedisAddr     string        `yaml:"redis_addr"`
	RedisPassword string        `yaml:"redis_password"`
	RedisChannel  string        `yaml:"redis_channel"`
	RedisTTL      time.Duration `yaml:"redis_ttl"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Port:            "5175",
		LogLevel:        "info",
		WordLength:      5,
		SuggestionLimit: 3,
		GreyMode:        "conservative",
		JWTSecret:       "dev_secret_change_me",
		TokenTTL:        12 * time.Hour,
		ClientOrigin:    "http://localhost:5173",
		RedisChannel:    "quordle:suggestions",
		RedisTTL:        time.Hour,
	}
}

// Load reads .env, the optional YAML file and the environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return cfg, err
		}
	}
	if err := cfg.mergeEnv(os.Getenv); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	return nil
}

func (c *Config) mergeEnv(getenv func(string) string) error {
	str := func(k string, dst *string) {
		if v := strings.TrimSpace(getenv(k)); v != "" {
			*dst = v
		}
	}
	str("PORT", &c.Port)
	str("LOG_LEVEL", &c.LogLevel)
	str("LOG_FORMAT", &c.LogFormat)
	str("WORDS_FILE", &c.WordsFile)
	str("WORDS_URL", &c.WordsURL)
	str("WORDS_DB", &c.WordsDB)
	str("GREY_MODE", &c.GreyMode)
	str("JWT_SECRET", &c.JWTSecret)
	str("API_KEY_HASH", &c.APIKeyHash)
	str("CLIENT_ORIGIN", &c.ClientOrigin)
	str("REDIS_ADDR", &c.RedisAddr)
	str("REDIS_PASSWORD", &c.RedisPassword)
	str("REDIS_CHANNEL", &c.RedisChannel)

	if v := getenv("OPENERS"); v != "" {
		var ws []string
		for _, w := range strings.Split(v, ",") {
			if w = strings.ToLower(strings.TrimSpace(w)); w != "" {
				ws = append(ws, w)
			}
		}
		c.Openers = ws
	}

	for _, n := range []struct {
		key string
		dst *int
	}{
		{"WORD_LENGTH", &c.WordLength},
		{"SUGGESTION_LIMIT", &c.SuggestionLimit},
	} {
		if v := getenv(n.key); v != "" {
			i, err := strconv.Atoi(v)
			if err != nil || i <= 0 {
				return fmt.Errorf("config: %s must be a positive integer, got %q", n.key, v)
			}
			*n.dst = i
		}
	}

	if v := getenv("JWT_EXPIRES_HOURS"); v != "" {
		h, err := strconv.Atoi(v)
		if err != nil || h <= 0 {
			return fmt.Errorf("config: JWT_EXPIRES_HOURS must be a positive integer, got %q", v)
		}
		c.TokenTTL = time.Duration(h) * time.Hour
	}
	if v := getenv("REDIS_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("config: REDIS_TTL: %w", err)
		}
		c.RedisTTL = d
	}
	return nil
}
