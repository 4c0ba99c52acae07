package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Environment variables read on top of the config file.
const (
	EnvBaseURL       = "QUIZDESK_API_BASE_URL"
	EnvTimeoutMs     = "QUIZDESK_API_TIMEOUT_MS"
	EnvRedirectDelay = "QUIZDESK_REDIRECT_DELAY_MS"
	EnvUIMode        = "QUIZDESK_UI_MODE"
)

// Load reads defaults, the optional config file and the environment, then
// normalizes and validates the result. An empty path searches upward from the
// working directory and tolerates a missing file.
func Load(path string) (Config, error) {
	vip := viper.New()
	vip.SetDefault("api.base_url", DefaultBaseURL)
	vip.SetDefault("api.timeout_ms", 0)
	vip.SetDefault("ui.mode", DefaultUIMode)
	vip.SetDefault("ui.redirect_delay_ms", DefaultRedirectDelayMs)

	bindings := map[string]string{
		"api.base_url":         EnvBaseURL,
		"api.timeout_ms":       EnvTimeoutMs,
		"ui.redirect_delay_ms": EnvRedirectDelay,
		"ui.mode":              EnvUIMode,
	}
	for key, env := range bindings {
		if err := vip.BindEnv(key, env); err != nil {
			return Config{}, fmt.Errorf("bind %s: %w", env, err)
		}
	}

	if path == "" {
		found, err := FindConfigPath("")
		if err != nil {
			return Config{}, err
		}
		path = found
	}
	if path != "" {
		vip.SetConfigFile(path)
		vip.SetConfigType("yaml")
		if err := vip.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := vip.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	Normalize(&cfg)
	if err := Validate(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
