// Package menu implements the menu repository: the generic Spec-driven
// repository configured for the menus table, plus translation persistence
// and relation loading.
package menu

import (
	"context"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	postgres "github.com/sitecraft/menu-backend/internal/adapter/postgres"
	"github.com/sitecraft/menu-backend/internal/domain"
)

// Entity is the entity type name menus are registered under in the tenancy
// configuration.
const Entity = "menu"

var columns = []string{"id", "tenant_id", "name", "created_at", "updated_at"}

// Repo provides menu persistence backed by PostgreSQL.
type Repo struct {
	*postgres.Repo[domain.Menu]
}

// New creates the menu repository. hooks may be nil.
func New(db postgres.DB, hooks domain.EventHooks) *Repo {
	return &Repo{
		Repo: postgres.MustNewRepo[domain.Menu](db, postgres.Config[domain.Menu]{
			Entity:       Entity,
			Table:        "menus",
			Columns:      columns,
			TenantColumn: "tenant_id",
			Search:       &postgres.TranslationSearch{Table: "menu_translations", FK: "menu_id"},
			Relations: map[string]postgres.RelationLoader[domain.Menu]{
				"translations": loadTranslations,
				"items":        loadItems,
			},
			ID: func(m *domain.Menu) uuid.UUID { return m.ID },
		}, hooks),
	}
}

// ---------------------------------------------------------------------------
// Relation loaders
// ---------------------------------------------------------------------------

const translationsSQL = `
SELECT id, menu_id, locale, title
FROM menu_translations
WHERE menu_id = ANY($1)
ORDER BY menu_id, locale`

func loadTranslations(ctx context.Context, q postgres.Querier, recs []*domain.Menu) error {
	ids := menuIDs(recs)
	if len(ids) == 0 {
		return nil
	}

	var rows []domain.MenuTranslation
	if err := pgxscan.Select(ctx, q, &rows, translationsSQL, ids); err != nil {
		return fmt.Errorf("select menu translations: %w", err)
	}

	byMenu := make(map[uuid.UUID][]domain.MenuTranslation, len(recs))
	for _, tr := range rows {
		byMenu[tr.MenuID] = append(byMenu[tr.MenuID], tr)
	}
	for _, m := range recs {
		m.Translations = byMenu[m.ID]
	}
	return nil
}

const itemsSQL = `
SELECT id, menu_id, parent_id, tenant_id, class, position, link_type, page_id, created_at, updated_at
FROM menu_items
WHERE menu_id = ANY($1)
ORDER BY menu_id, position`

func loadItems(ctx context.Context, q postgres.Querier, recs []*domain.Menu) error {
	ids := menuIDs(recs)
	if len(ids) == 0 {
		return nil
	}

	var rows []domain.MenuItem
	if err := pgxscan.Select(ctx, q, &rows, itemsSQL, ids); err != nil {
		return fmt.Errorf("select menu items: %w", err)
	}

	byMenu := make(map[uuid.UUID][]domain.MenuItem, len(recs))
	for _, it := range rows {
		byMenu[it.MenuID] = append(byMenu[it.MenuID], it)
	}
	for _, m := range recs {
		m.Items = byMenu[m.ID]
	}
	return nil
}

// ---------------------------------------------------------------------------
// Translation persistence
// ---------------------------------------------------------------------------

const upsertTranslationSQL = `
INSERT INTO menu_translations (menu_id, locale, title)
VALUES ($1, $2, $3)
ON CONFLICT (menu_id, locale) DO UPDATE SET title = EXCLUDED.title`

// SaveTranslations upserts the given per-locale rows. A nil title is stored
// as NULL (legacy rows carry no title).
func (r *Repo) SaveTranslations(ctx context.Context, menuID uuid.UUID, trs []domain.MenuTranslation) error {
	q := r.Q(ctx)
	for _, tr := range trs {
		if _, err := q.Exec(ctx, upsertTranslationSQL, menuID, tr.Locale, tr.Title); err != nil {
			return fmt.Errorf("save menu translation %s: %w", tr.Locale, err)
		}
	}
	return nil
}

func menuIDs(recs []*domain.Menu) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(recs))
	for _, m := range recs {
		if m.ID != uuid.Nil {
			ids = append(ids, m.ID)
		}
	}
	return ids
}
