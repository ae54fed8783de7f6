package tenancy

import (
	"testing"

	"github.com/google/uuid"

	"github.com/sitecraft/menu-backend/internal/config"
)

func TestFromConfig_ActiveTenant(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	c := FromConfig(config.TenancyConfig{
		TenantID:  id.String(),
		Shareable: []string{"menu", "menuitem"},
	})

	got, active := c.CurrentTenantID()
	if !active || got != id {
		t.Fatalf("CurrentTenantID() = %s, %v; want %s, true", got, active, id)
	}
	if !c.IsShareable("menu") || !c.IsShareable("menuitem") {
		t.Error("configured entities must be shareable")
	}
	if c.IsShareable("page") {
		t.Error("unlisted entity must not be shareable")
	}
}

func TestFromConfig_NoTenant(t *testing.T) {
	t.Parallel()

	c := FromConfig(config.TenancyConfig{Shareable: []string{"menu"}})
	if _, active := c.CurrentTenantID(); active {
		t.Error("empty tenant id must leave the context inactive")
	}
}

func TestCentral(t *testing.T) {
	t.Parallel()

	c := Central()
	if _, active := c.CurrentTenantID(); active {
		t.Error("central context has no tenant")
	}
	if c.IsShareable("menu") {
		t.Error("central context shares nothing")
	}
}
