// Package uri computes locale-specific URIs for page-linked menu items.
package uri

import (
	"context"
	"path"

	"github.com/google/uuid"

	"github.com/sitecraft/menu-backend/internal/config"
)

// PathGenerator derives page URIs from the configured prefix. The generated
// path is <prefix>/<locale>/[<parent-page-id>/]<page-id>, so every locale
// gets a distinct URI and nested pages carry their parent segment.
type PathGenerator struct {
	prefix string
}

// FromConfig builds the generator from validated configuration.
func FromConfig(cfg config.MenuConfig) *PathGenerator {
	return &PathGenerator{prefix: cfg.PagePrefix}
}

func (g *PathGenerator) GenerateURI(_ context.Context, pageID uuid.UUID, parentID *uuid.UUID, locale string) (string, error) {
	segments := []string{g.prefix, locale}
	if parentID != nil {
		segments = append(segments, parentID.String())
	}
	segments = append(segments, pageID.String())
	return path.Join(segments...), nil
}
