package config

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if err := c.Tenancy.validate(); err != nil {
		return fmt.Errorf("tenancy: %w", err)
	}
	if err := c.Locale.validate(); err != nil {
		return fmt.Errorf("locale: %w", err)
	}
	if !strings.HasPrefix(c.Menu.PagePrefix, "/") {
		return fmt.Errorf("menu.page_prefix must start with / (got %q)", c.Menu.PagePrefix)
	}
	return nil
}

func (t *TenancyConfig) validate() error {
	if t.TenantID != "" {
		if _, err := uuid.Parse(t.TenantID); err != nil {
			return fmt.Errorf("tenant_id %q is not a UUID: %w", t.TenantID, err)
		}
	}
	t.Shareable = ParseList(t.ShareableRaw)
	return nil
}

func (l *LocaleConfig) validate() error {
	if l.Default == "" {
		return fmt.Errorf("default locale must not be empty")
	}

	l.Supported = ParseList(l.SupportedRaw)
	if len(l.Supported) == 0 {
		return fmt.Errorf("supported locales must not be empty")
	}
	for _, loc := range l.Supported {
		if loc == l.Default {
			return nil
		}
	}
	return fmt.Errorf("default locale %q is not in supported locales %v", l.Default, l.Supported)
}

// ParseList parses a comma-separated string into a slice of trimmed,
// non-empty values. An empty string returns a nil slice.
func ParseList(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
