package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"github.com/Alias1177/SeriesLens/models"
)

// Defaults for every configuration key
var defaults = map[string]any{
	"log_level":            "info",
	"log_file":             "",
	"http_addr":            ":8080",
	"allowed_origins":      []string{"http://localhost:5173"},
	"assistant_url":        "",
	"request_timeout":      30,
	"requests_per_sec":     5,
	"window_size":          10,
	"threshold_multiplier": 1.5,
	"telegram_bot_token":   "",
	"telegram_chat_ids":    "",
}

// Load initializes configuration from .env, an optional config file, environment variables and
// any flags already bound to v. A nil v uses a fresh instance.
func Load(v *viper.Viper, configFile string) (*models.Config, error) {
	// Load environment variables from .env file if present
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg(".env file not found, relying on actual environment variables")
	}

	if v == nil {
		v = viper.New()
	}
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", configFile, err)
		}
	}

	var cfg models.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	chatIDs, err := ParseChatIDs(v.GetString("telegram_chat_ids"))
	if err != nil {
		return nil, err
	}
	cfg.TelegramChatIDs = chatIDs

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ParseChatIDs splits a comma separated list of Telegram chat IDs
func ParseChatIDs(s string) ([]int64, error) {
	var ids []int64
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid telegram chat id %q: %w", part, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func validate(cfg *models.Config) error {
	var errs []error
	if cfg.RequestTimeout < 0 {
		errs = append(errs, fmt.Errorf("request_timeout must not be negative, got %d", cfg.RequestTimeout))
	}
	if cfg.RequestsPerSec < 0 {
		errs = append(errs, fmt.Errorf("requests_per_sec must not be negative, got %d", cfg.RequestsPerSec))
	}
	if cfg.WindowSize < 0 {
		errs = append(errs, fmt.Errorf("window_size must not be negative, got %d", cfg.WindowSize))
	}
	if cfg.ThresholdMultiplier < 0 {
		errs = append(errs, fmt.Errorf("threshold_multiplier must not be negative, got %g", cfg.ThresholdMultiplier))
	}
	return errors.Join(errs...)
}
