// Package i18n provides the configuration-backed locale context.
package i18n

import (
	"slices"

	"github.com/sitecraft/menu-backend/internal/config"
)

// Context is the config-backed implementation of domain.LocaleContext.
type Context struct {
	current   string
	supported []string
}

// FromConfig builds the locale context from validated configuration.
func FromConfig(cfg config.LocaleConfig) *Context {
	return &Context{current: cfg.Default, supported: slices.Clone(cfg.Supported)}
}

// WithLocale returns a copy serving the given locale when it is supported,
// otherwise the receiver unchanged. Used to honor a per-request locale.
func (c *Context) WithLocale(locale string) *Context {
	if locale == "" || !slices.Contains(c.supported, locale) {
		return c
	}
	return &Context{current: locale, supported: c.supported}
}

func (c *Context) CurrentLocale() string { return c.current }

func (c *Context) SupportedLocales() []string { return slices.Clone(c.supported) }
