package config

import "time"

// Defaults applied before the config file and environment are read.
const (
	DefaultBaseURL         = "http://localhost:3000/api"
	DefaultRedirectDelayMs = 3000
	DefaultUIMode          = "auto"
)

// Config is the process-wide quizdesk configuration.
type Config struct {
	API APIConfig `mapstructure:"api"`
	UI  UIConfig  `mapstructure:"ui"`
}

// APIConfig locates the remote catalog.
type APIConfig struct {
	BaseURL string `mapstructure:"base_url"`
	// TimeoutMs bounds each command; zero leaves requests unbounded.
	TimeoutMs int `mapstructure:"timeout_ms"`
}

// UIConfig tunes the front-ends.
type UIConfig struct {
	Mode            string `mapstructure:"mode"`
	RedirectDelayMs int    `mapstructure:"redirect_delay_ms"`
}

// RedirectDelay returns the post-save navigation delay. Zero navigates at once.
func (c Config) RedirectDelay() time.Duration {
	return time.Duration(c.UI.RedirectDelayMs) * time.Millisecond
}

// Timeout returns the per-command deadline, or zero for none.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.API.TimeoutMs) * time.Millisecond
}
