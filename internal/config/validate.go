package config

import (
	"fmt"
	"net/url"
	"strings"
)

// Issue is one invalid config field.
type Issue struct {
	Field   string
	Message string
}

// ValidationError lists every invalid field found by Validate.
type ValidationError struct {
	Issues []Issue
}

// Error renders one issue per line under a header.
func (err *ValidationError) Error() string {
	if err == nil || len(err.Issues) == 0 {
		return "invalid config"
	}
	lines := make([]string, 0, len(err.Issues)+1)
	lines = append(lines, "invalid config:")
	for _, issue := range err.Issues {
		lines = append(lines, fmt.Sprintf("  %s: %s", issue.Field, issue.Message))
	}
	return strings.Join(lines, "\n")
}

type issueCollector struct {
	issues []Issue
}

func (c *issueCollector) add(field, message string) {
	c.issues = append(c.issues, Issue{Field: field, Message: message})
}

func (c *issueCollector) result() error {
	if len(c.issues) == 0 {
		return nil
	}
	return &ValidationError{Issues: c.issues}
}

// UI modes accepted by ui.mode.
var uiModes = map[string]struct{}{"auto": {}, "live": {}, "plain": {}}

// Validate checks a normalized config.
func Validate(cfg *Config) error {
	collector := &issueCollector{}

	if cfg.API.BaseURL == "" {
		collector.add("api.base_url", "is required")
	} else if parsed, err := url.Parse(cfg.API.BaseURL); err != nil {
		collector.add("api.base_url", fmt.Sprintf("invalid url: %v", err))
	} else if (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		collector.add("api.base_url", "must be an absolute http or https url")
	}
	if cfg.API.TimeoutMs < 0 {
		collector.add("api.timeout_ms", "must be zero or positive")
	}
	if _, ok := uiModes[cfg.UI.Mode]; !ok {
		collector.add("ui.mode", fmt.Sprintf("unsupported mode %q (use auto, live or plain)", cfg.UI.Mode))
	}
	if cfg.UI.RedirectDelayMs < 0 {
		collector.add("ui.redirect_delay_ms", "must be zero or positive")
	}
	return collector.result()
}
