package domain

import (
	"context"

	"github.com/google/uuid"
)

// TenantContext supplies the active tenant and the per-entity central-data
// configuration. It is passed explicitly into repository and service
// operations, never read from process-wide state.
type TenantContext interface {
	// CurrentTenantID returns the active tenant, or false when the caller
	// operates outside any tenant (central administration).
	CurrentTenantID() (uuid.UUID, bool)

	// IsShareable reports whether the entity type ("menu", "menuitem")
	// is configured to also expose tenant-less central records.
	IsShareable(entity string) bool
}

// LocaleContext supplies the active locale and the ordered list of locales
// the platform serves.
type LocaleContext interface {
	CurrentLocale() string
	SupportedLocales() []string
}

// URIGenerator computes the locale-specific URI of a page-linked menu item.
// Implementations must be pure from the caller's perspective.
type URIGenerator interface {
	GenerateURI(ctx context.Context, pageID uuid.UUID, parentID *uuid.UUID, locale string) (string, error)
}
