package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Database: DatabaseConfig{DSN: "postgres://localhost/menus"},
		Log:      LogConfig{Level: "info", Format: "json"},
		Tenancy:  TenancyConfig{ShareableRaw: "menu,menuitem"},
		Locale:   LocaleConfig{Default: "en", SupportedRaw: "en,nl"},
		Menu:     MenuConfig{PagePrefix: "/pages"},
	}
}

func TestValidate_OK(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, []string{"menu", "menuitem"}, cfg.Tenancy.Shareable)
	assert.Equal(t, []string{"en", "nl"}, cfg.Locale.Supported)
}

func TestValidate_TenantIDMustBeUUID(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.Tenancy.TenantID = "acme"
	assert.ErrorContains(t, cfg.Validate(), "tenant_id")

	cfg.Tenancy.TenantID = "4b4adbd1-26b0-4a23-a9ad-54d3c7cfe0f1"
	assert.NoError(t, cfg.Validate())
}

func TestValidate_DefaultLocaleMustBeSupported(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.Locale.Default = "de"
	assert.ErrorContains(t, cfg.Validate(), "not in supported locales")
}

func TestValidate_EmptyLocales(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.Locale.SupportedRaw = " , "
	assert.ErrorContains(t, cfg.Validate(), "supported locales")
}

func TestValidate_PagePrefix(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.Menu.PagePrefix = "pages"
	assert.ErrorContains(t, cfg.Validate(), "page_prefix")
}

func TestParseList(t *testing.T) {
	t.Parallel()

	assert.Nil(t, ParseList(""))
	assert.Nil(t, ParseList("   "))
	assert.Equal(t, []string{"a", "b"}, ParseList(" a , b ,"))
}
