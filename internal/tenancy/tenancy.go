// Package tenancy provides the configuration-backed tenant context.
//
// Each process serves exactly one tenant (or none, for central
// administration). Entity types listed as shareable additionally expose
// tenant-less central records on single-record reads.
package tenancy

import (
	"github.com/google/uuid"

	"github.com/sitecraft/menu-backend/internal/config"
)

// Context is the config-backed implementation of domain.TenantContext.
type Context struct {
	tenantID  uuid.UUID
	active    bool
	shareable map[string]struct{}
}

// FromConfig builds the tenant context. The config is validated on load, so
// a non-empty tenant id is always parseable.
func FromConfig(cfg config.TenancyConfig) *Context {
	c := &Context{shareable: make(map[string]struct{}, len(cfg.Shareable))}
	for _, entity := range cfg.Shareable {
		c.shareable[entity] = struct{}{}
	}
	if cfg.TenantID != "" {
		c.tenantID = uuid.MustParse(cfg.TenantID)
		c.active = true
	}
	return c
}

// Central returns a context with no active tenant and no shareable entities.
func Central() *Context {
	return &Context{shareable: map[string]struct{}{}}
}

func (c *Context) CurrentTenantID() (uuid.UUID, bool) { return c.tenantID, c.active }

func (c *Context) IsShareable(entity string) bool {
	_, ok := c.shareable[entity]
	return ok
}
