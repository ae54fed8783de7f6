package config

import (
	"time"
)

// Config is the root application configuration.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
	Tenancy  TenancyConfig  `yaml:"tenancy"`
	Locale   LocaleConfig   `yaml:"locale"`
	Menu     MenuConfig     `yaml:"menu"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// TenancyConfig holds multi-tenant settings. TenantID is the tenant the
// process acts for; empty means central administration with no tenant
// scoping. ShareableRaw lists the entity types a tenant may read from the
// central data set alongside its own.
type TenancyConfig struct {
	TenantID     string `yaml:"tenant_id" env:"TENANCY_TENANT_ID"`
	ShareableRaw string `yaml:"shareable" env:"TENANCY_SHAREABLE" env-default:"menu,menuitem"`

	// Shareable is parsed from ShareableRaw during validation.
	Shareable []string `yaml:"-" env:"-"`
}

// LocaleConfig holds content locale settings. Every item gets a translation
// row per supported locale.
type LocaleConfig struct {
	Default      string `yaml:"default"   env:"LOCALE_DEFAULT"   env-default:"en"`
	SupportedRaw string `yaml:"supported" env:"LOCALE_SUPPORTED" env-default:"en"`

	// Supported is parsed from SupportedRaw during validation.
	Supported []string `yaml:"-" env:"-"`
}

// MenuConfig holds menu service settings. PagePrefix is the path segment
// page URIs are generated under, per locale: <prefix>/<locale>/<page-id>.
type MenuConfig struct {
	PagePrefix string `yaml:"page_prefix" env:"MENU_PAGE_PREFIX" env-default:"/pages"`
}
