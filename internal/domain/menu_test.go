package domain

import (
	"testing"

	"github.com/google/uuid"
)

func TestMenu_Root(t *testing.T) {
	t.Parallel()

	menuID := uuid.New()
	rootID := uuid.New()

	menu := Menu{
		ID: menuID,
		Items: []MenuItem{
			{ID: uuid.New(), MenuID: menuID, ParentID: &rootID, Position: 0},
			{ID: rootID, MenuID: menuID, ParentID: nil},
			{ID: uuid.New(), MenuID: menuID, ParentID: &rootID, Position: 1},
		},
	}

	root := menu.Root()
	if root == nil {
		t.Fatal("Root() = nil, want the parentless item")
	}
	if root.ID != rootID {
		t.Errorf("Root().ID = %s, want %s", root.ID, rootID)
	}
	if !root.IsRoot() {
		t.Error("IsRoot() = false for the parentless item")
	}
}

func TestMenu_Root_NotLoaded(t *testing.T) {
	t.Parallel()

	menu := Menu{ID: uuid.New()}
	if menu.Root() != nil {
		t.Error("Root() should be nil when items are not loaded")
	}
}

func TestMenuItem_Translation(t *testing.T) {
	t.Parallel()

	title := "About us"
	item := MenuItem{
		Translations: []MenuItemTranslation{
			{Locale: "en", Title: &title},
			{Locale: "es", Title: nil}, // legacy rows may carry no title
		},
	}

	if tr := item.Translation("en"); tr == nil || tr.Title == nil || *tr.Title != "About us" {
		t.Errorf("Translation(en) = %+v, want title %q", tr, "About us")
	}
	if tr := item.Translation("es"); tr == nil || tr.Title != nil {
		t.Errorf("Translation(es) = %+v, want nil title", tr)
	}
	if tr := item.Translation("de"); tr != nil {
		t.Errorf("Translation(de) = %+v, want nil", tr)
	}
}

func TestLinkType_IsValid(t *testing.T) {
	t.Parallel()

	for _, lt := range []LinkType{LinkTypePage, LinkTypeURL, LinkTypeNone} {
		if !lt.IsValid() {
			t.Errorf("%s should be valid", lt)
		}
	}
	if LinkType("external").IsValid() {
		t.Error("unknown link type should be invalid")
	}
}

func TestAttributes_Clone(t *testing.T) {
	t.Parallel()

	attrs := Attributes{"name": "main", "position": 2}
	clone := attrs.Clone()
	clone["name"] = "footer"

	if attrs["name"] != "main" {
		t.Error("Clone() must not alias the original map")
	}
}
