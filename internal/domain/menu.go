package domain

import (
	"time"

	"github.com/google/uuid"
)

// Menu is a named navigation menu owned by a tenant. A nil TenantID marks
// central data: a record visible to every tenant when the entity type is
// configured as shareable.
type Menu struct {
	ID        uuid.UUID  `db:"id"`
	TenantID  *uuid.UUID `db:"tenant_id"`
	Name      string     `db:"name"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`

	Translations []MenuTranslation `db:"-"`
	Items        []MenuItem        `db:"-"`
}

// Root returns the menu's designated root item: the single item with no
// parent, created together with the menu. Top-level entries attach to it
// when an update omits an explicit parent. Returns nil when Items are not
// loaded or the root is missing.
func (m *Menu) Root() *MenuItem {
	for i := range m.Items {
		if m.Items[i].ParentID == nil {
			return &m.Items[i]
		}
	}
	return nil
}

// MenuTranslation is the per-locale text of a menu. Title is nullable:
// legacy rows exist without one.
type MenuTranslation struct {
	ID     uuid.UUID `db:"id"`
	MenuID uuid.UUID `db:"menu_id"`
	Locale string    `db:"locale"`
	Title  *string   `db:"title"`
}

// PageMeta describes the pagination window of a list result.
type PageMeta struct {
	Total   int64
	Page    int
	PerPage int
}
