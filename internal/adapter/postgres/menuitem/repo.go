// Package menuitem implements the menu item repository: the generic
// Spec-driven repository configured for the menu_items table, plus the
// tree-specific queries the hierarchy manager needs (root lookup, sibling
// positions, placement updates).
package menuitem

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	postgres "github.com/sitecraft/menu-backend/internal/adapter/postgres"
	"github.com/sitecraft/menu-backend/internal/domain"
)

// Entity is the entity type name menu items are registered under in the
// tenancy configuration.
const Entity = "menuitem"

var columns = []string{
	"id", "menu_id", "parent_id", "tenant_id", "class",
	"position", "link_type", "page_id", "created_at", "updated_at",
}

var builder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Repo provides menu item persistence backed by PostgreSQL.
type Repo struct {
	*postgres.Repo[domain.MenuItem]
}

// New creates the menu item repository. hooks may be nil.
func New(db postgres.DB, hooks domain.EventHooks) *Repo {
	return &Repo{
		Repo: postgres.MustNewRepo[domain.MenuItem](db, postgres.Config[domain.MenuItem]{
			Entity:       Entity,
			Table:        "menu_items",
			Columns:      columns,
			TenantColumn: "tenant_id",
			Search:       &postgres.TranslationSearch{Table: "menu_item_translations", FK: "item_id"},
			Relations: map[string]postgres.RelationLoader[domain.MenuItem]{
				"translations": loadTranslations,
			},
			ID: func(i *domain.MenuItem) uuid.UUID { return i.ID },
		}, hooks),
	}
}

// ---------------------------------------------------------------------------
// Relation loaders
// ---------------------------------------------------------------------------

const translationsSQL = `
SELECT id, item_id, locale, title, uri
FROM menu_item_translations
WHERE item_id = ANY($1)
ORDER BY item_id, locale`

func loadTranslations(ctx context.Context, q postgres.Querier, recs []*domain.MenuItem) error {
	ids := make([]uuid.UUID, 0, len(recs))
	for _, it := range recs {
		if it.ID != uuid.Nil {
			ids = append(ids, it.ID)
		}
	}
	if len(ids) == 0 {
		return nil
	}

	var rows []domain.MenuItemTranslation
	if err := pgxscan.Select(ctx, q, &rows, translationsSQL, ids); err != nil {
		return fmt.Errorf("select item translations: %w", err)
	}

	byItem := make(map[uuid.UUID][]domain.MenuItemTranslation, len(recs))
	for _, tr := range rows {
		byItem[tr.ItemID] = append(byItem[tr.ItemID], tr)
	}
	for _, it := range recs {
		it.Translations = byItem[it.ID]
	}
	return nil
}

// ---------------------------------------------------------------------------
// Tree queries
// ---------------------------------------------------------------------------

const rootForMenuSQL = `
SELECT id, menu_id, parent_id, tenant_id, class, position, link_type, page_id, created_at, updated_at
FROM menu_items
WHERE menu_id = $1 AND parent_id IS NULL
ORDER BY created_at
LIMIT 1`

// RootForMenu returns the menu's designated root item: the single parentless
// item created together with the menu. Returns domain.ErrNotFound when the
// menu has none.
func (r *Repo) RootForMenu(ctx context.Context, menuID uuid.UUID) (*domain.MenuItem, error) {
	var item domain.MenuItem
	if err := pgxscan.Get(ctx, r.Q(ctx), &item, rootForMenuSQL, menuID); err != nil {
		return nil, postgres.MapError(err, Entity, menuID.String())
	}
	return &item, nil
}

const siblingsSQL = `
SELECT id, menu_id, parent_id, tenant_id, class, position, link_type, page_id, created_at, updated_at
FROM menu_items
WHERE menu_id = $1 AND parent_id = $2
ORDER BY position, created_at`

// Siblings returns the items of one sibling group ordered by position.
func (r *Repo) Siblings(ctx context.Context, menuID, parentID uuid.UUID) ([]domain.MenuItem, error) {
	var items []domain.MenuItem
	if err := pgxscan.Select(ctx, r.Q(ctx), &items, siblingsSQL, menuID, parentID); err != nil {
		return nil, postgres.MapError(err, Entity, parentID.String())
	}
	return items, nil
}

const nextPositionSQL = `
SELECT COALESCE(MAX(position) + 1, 0)
FROM menu_items
WHERE menu_id = $1 AND parent_id = $2`

// NextPosition returns the position for appending to a sibling group.
func (r *Repo) NextPosition(ctx context.Context, menuID, parentID uuid.UUID) (int, error) {
	var pos int
	if err := pgxscan.Get(ctx, r.Q(ctx), &pos, nextPositionSQL, menuID, parentID); err != nil {
		return 0, postgres.MapError(err, Entity, parentID.String())
	}
	return pos, nil
}

// SetPlacement moves an item to a position, and optionally under a new
// parent. A nil parentID keeps the current parent.
func (r *Repo) SetPlacement(ctx context.Context, id uuid.UUID, parentID *uuid.UUID, position int) error {
	b := builder.Update("menu_items").
		Set("position", position).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id})
	if parentID != nil {
		b = b.Set("parent_id", *parentID)
	}

	sqlStr, args, err := b.ToSql()
	if err != nil {
		return fmt.Errorf("build placement update: %w", err)
	}

	tag, err := r.Q(ctx).Exec(ctx, sqlStr, args...)
	if err != nil {
		return postgres.MapError(err, Entity, id.String())
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("menuitem %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Translation persistence
// ---------------------------------------------------------------------------

const upsertTranslationSQL = `
INSERT INTO menu_item_translations (item_id, locale, title, uri)
VALUES ($1, $2, $3, $4)
ON CONFLICT (item_id, locale)
DO UPDATE SET
    title = EXCLUDED.title,
    uri   = COALESCE(EXCLUDED.uri, menu_item_translations.uri)`

// SaveTranslations upserts the given per-locale rows. A nil title is stored
// as NULL; a nil uri leaves any existing uri untouched, so non-page links
// never clobber a previously generated one.
func (r *Repo) SaveTranslations(ctx context.Context, itemID uuid.UUID, trs []domain.MenuItemTranslation) error {
	q := r.Q(ctx)
	for _, tr := range trs {
		if _, err := q.Exec(ctx, upsertTranslationSQL, itemID, tr.Locale, tr.Title, tr.URI); err != nil {
			return fmt.Errorf("save item translation %s: %w", tr.Locale, err)
		}
	}
	return nil
}
