package uri

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/sitecraft/menu-backend/internal/config"
)

func TestGenerateURI_LocaleDistinct(t *testing.T) {
	t.Parallel()

	g := FromConfig(config.MenuConfig{PagePrefix: "/pages"})
	pageID := uuid.New()

	en, err := g.GenerateURI(context.Background(), pageID, nil, "en")
	if err != nil {
		t.Fatalf("GenerateURI: %v", err)
	}
	nl, err := g.GenerateURI(context.Background(), pageID, nil, "nl")
	if err != nil {
		t.Fatalf("GenerateURI: %v", err)
	}

	if en == nl {
		t.Errorf("locales must produce distinct URIs, both %q", en)
	}
	if want := "/pages/en/" + pageID.String(); en != want {
		t.Errorf("en URI = %q, want %q", en, want)
	}
}

func TestGenerateURI_ParentSegment(t *testing.T) {
	t.Parallel()

	g := FromConfig(config.MenuConfig{PagePrefix: "/pages"})
	pageID := uuid.New()
	parentID := uuid.New()

	got, err := g.GenerateURI(context.Background(), pageID, &parentID, "en")
	if err != nil {
		t.Fatalf("GenerateURI: %v", err)
	}
	want := "/pages/en/" + parentID.String() + "/" + pageID.String()
	if got != want {
		t.Errorf("URI = %q, want %q", got, want)
	}
}
