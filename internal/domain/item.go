package domain

import (
	"time"

	"github.com/google/uuid"
)

// LinkType says what a menu item points at.
type LinkType string

const (
	LinkTypePage LinkType = "page"
	LinkTypeURL  LinkType = "url"
	LinkTypeNone LinkType = "none"
)

func (t LinkType) String() string { return string(t) }

func (t LinkType) IsValid() bool {
	switch t {
	case LinkTypePage, LinkTypeURL, LinkTypeNone:
		return true
	}
	return false
}

// MenuItem is a node in a menu's navigation tree. Items form a tree per menu
// via ParentID; the single item with a nil ParentID is the menu's root.
// Position orders items within their sibling group.
type MenuItem struct {
	ID        uuid.UUID  `db:"id"`
	MenuID    uuid.UUID  `db:"menu_id"`
	ParentID  *uuid.UUID `db:"parent_id"`
	TenantID  *uuid.UUID `db:"tenant_id"`
	Class     *string    `db:"class"`
	Position  int        `db:"position"`
	LinkType  LinkType   `db:"link_type"`
	PageID    *uuid.UUID `db:"page_id"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`

	Translations []MenuItemTranslation `db:"-"`
}

// IsRoot reports whether the item is a menu's root item.
func (i *MenuItem) IsRoot() bool { return i.ParentID == nil }

// Translation returns the item's translation for the given locale, or nil.
func (i *MenuItem) Translation(locale string) *MenuItemTranslation {
	for idx := range i.Translations {
		if i.Translations[idx].Locale == locale {
			return &i.Translations[idx]
		}
	}
	return nil
}

// MenuItemTranslation is the per-locale text of a menu item. Title is
// nullable (legacy rows); URI is set only for page-linked items.
type MenuItemTranslation struct {
	ID     uuid.UUID `db:"id"`
	ItemID uuid.UUID `db:"item_id"`
	Locale string    `db:"locale"`
	Title  *string   `db:"title"`
	URI    *string   `db:"uri"`
}

// ReorderItem is one placement in an ordering recompute: the item, the parent
// it should sit under, and its position within that sibling group. A nil
// ParentID leaves the current parent unchanged.
type ReorderItem struct {
	ID       uuid.UUID
	ParentID *uuid.UUID
	Position int
}
