package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	"github.com/sitecraft/menu-backend/internal/domain"
	"github.com/sitecraft/menu-backend/internal/query"
)

// builder is the shared statement builder with PostgreSQL placeholders.
var builder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// TranslationSearch binds an entity to its translation table so the search
// filter can match per-locale titles.
type TranslationSearch struct {
	Table string // translation table, e.g. "menu_translations"
	FK    string // column referencing the parent, e.g. "menu_id"
}

// RelationLoader loads one named relation for a batch of records.
type RelationLoader[T any] func(ctx context.Context, q Querier, recs []*T) error

// Config describes the persisted shape of an entity for the generic
// repository.
type Config[T any] struct {
	Entity       string   // entity type name, used for tenancy lookups and error context
	Table        string
	Columns      []string // selectable columns
	TenantColumn string   // "" when the entity is not tenant scoped
	Search       *TranslationSearch
	Relations    map[string]RelationLoader[T]
	ID           func(*T) uuid.UUID
}

// Repo is the generic, Spec-driven repository. Entity repositories embed it
// and add their own queries on top. All query construction is parameter
// driven: the Spec decides relations, filters, projection, ordering and
// pagination; the tenant and locale contexts decide data visibility.
type Repo[T any] struct {
	db    DB
	cfg   Config[T]
	cols  map[string]struct{}
	hooks domain.EventHooks
}

// MustNewRepo creates a Repo and panics on an invalid config. Configs are
// static, so a bad one is a programming error.
func MustNewRepo[T any](db DB, cfg Config[T], hooks domain.EventHooks) *Repo[T] {
	if cfg.Entity == "" || cfg.Table == "" || len(cfg.Columns) == 0 || cfg.ID == nil {
		panic(fmt.Sprintf("postgres: incomplete repo config for table %q", cfg.Table))
	}
	if hooks == nil {
		hooks = domain.NopHooks{}
	}
	cols := make(map[string]struct{}, len(cfg.Columns))
	for _, c := range cfg.Columns {
		cols[c] = struct{}{}
	}
	return &Repo[T]{db: db, cfg: cfg, cols: cols, hooks: hooks}
}

// Q returns the context-scoped querier: the active transaction if one is
// carried by the context, otherwise the pool.
func (r *Repo[T]) Q(ctx context.Context) Querier {
	return QuerierFromCtx(ctx, r.db)
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// List returns records matching the spec. Clauses are applied in a fixed
// order: relations, filters (date, search, name), ordering, projection,
// pagination. All filters combine conjunctively except search, which is a
// single disjunctive group. PageMeta is non-nil only when the spec paginates.
func (r *Repo[T]) List(ctx context.Context, spec *query.Spec, tenant domain.TenantContext, locale domain.LocaleContext) ([]T, *domain.PageMeta, error) {
	if spec == nil {
		spec = &query.Spec{}
	}

	cols, err := r.projection(spec)
	if err != nil {
		return nil, nil, err
	}

	b := builder.Select(cols...).From(r.cfg.Table)
	b, err = r.applyFilters(b, spec, tenant, locale)
	if err != nil {
		return nil, nil, err
	}

	b, err = r.applyOrder(b, spec)
	if err != nil {
		return nil, nil, err
	}

	var meta *domain.PageMeta
	switch {
	case spec.Page > 0:
		total, err := r.count(ctx, spec, tenant, locale)
		if err != nil {
			return nil, nil, err
		}
		b = b.Limit(uint64(spec.Take)).Offset(uint64((spec.Page - 1) * spec.Take))
		meta = &domain.PageMeta{Total: total, Page: spec.Page, PerPage: spec.Take}
	case spec.Take > 0:
		b = b.Limit(uint64(spec.Take))
	}

	sqlStr, args, err := b.ToSql()
	if err != nil {
		return nil, nil, fmt.Errorf("build %s list query: %w", r.cfg.Entity, err)
	}

	var recs []T
	if err := pgxscan.Select(ctx, r.Q(ctx), &recs, sqlStr, args...); err != nil {
		return nil, nil, mapError(err, r.cfg.Entity, "list")
	}

	if err := r.loadRelations(ctx, spec, ptrs(recs)); err != nil {
		return nil, nil, err
	}

	return recs, meta, nil
}

// GetOne returns the first record whose match column (spec filter.field,
// default id) equals criteria. When the entity type is shareable and a
// tenant is active, default tenant scoping is bypassed in favor of a widened
// match: the tenant's own records OR central records with no tenant assigned.
func (r *Repo[T]) GetOne(ctx context.Context, criteria string, spec *query.Spec, tenant domain.TenantContext, locale domain.LocaleContext) (*T, error) {
	if spec == nil {
		spec = &query.Spec{}
	}

	widen := tenant != nil && tenant.IsShareable(r.cfg.Entity)
	rec, err := r.firstMatch(ctx, criteria, spec, tenant, widen, spec.Fields)
	if err != nil {
		return nil, err
	}

	if err := r.loadRelations(ctx, spec, []*T{rec}); err != nil {
		return nil, err
	}

	return rec, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create persists a new record from the attribute set. Hook order is fixed:
// Creating (may rewrite attrs) → INSERT → Created.
func (r *Repo[T]) Create(ctx context.Context, attrs domain.Attributes) (*T, error) {
	attrs, err := r.hooks.Creating(ctx, attrs)
	if err != nil {
		return nil, fmt.Errorf("%s creating hook: %w", r.cfg.Entity, err)
	}
	if err := r.validateAttrs(attrs); err != nil {
		return nil, err
	}

	sqlStr, args, err := builder.Insert(r.cfg.Table).
		SetMap(attrs).
		Suffix("RETURNING " + strings.Join(r.cfg.Columns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build %s insert: %w", r.cfg.Entity, err)
	}

	var rec T
	if err := pgxscan.Get(ctx, r.Q(ctx), &rec, sqlStr, args...); err != nil {
		return nil, mapError(err, r.cfg.Entity, "create")
	}

	if err := r.hooks.Created(ctx, &rec); err != nil {
		return nil, fmt.Errorf("%s created hook: %w", r.cfg.Entity, err)
	}

	return &rec, nil
}

// UpdateByCriteria loads the first record matching criteria, merges attrs
// onto it and persists. Returns ErrNotFound without writing when nothing
// matches. Hook order: Updating (may rewrite attrs) → UPDATE → Updated.
func (r *Repo[T]) UpdateByCriteria(ctx context.Context, criteria string, attrs domain.Attributes, spec *query.Spec, tenant domain.TenantContext) (*T, error) {
	if spec == nil {
		spec = &query.Spec{}
	}

	current, err := r.firstMatch(ctx, criteria, spec, tenant, false, nil)
	if err != nil {
		return nil, err
	}

	attrs, err = r.hooks.Updating(ctx, current, attrs)
	if err != nil {
		return nil, fmt.Errorf("%s updating hook: %w", r.cfg.Entity, err)
	}
	if err := r.validateAttrs(attrs); err != nil {
		return nil, err
	}

	b := builder.Update(r.cfg.Table).SetMap(attrs)
	if _, ok := attrs["updated_at"]; !ok {
		b = b.Set("updated_at", squirrel.Expr("now()"))
	}
	sqlStr, args, err := b.
		Where(squirrel.Eq{"id": r.cfg.ID(current)}).
		Suffix("RETURNING " + strings.Join(r.cfg.Columns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build %s update: %w", r.cfg.Entity, err)
	}

	var rec T
	if err := pgxscan.Get(ctx, r.Q(ctx), &rec, sqlStr, args...); err != nil {
		return nil, mapError(err, r.cfg.Entity, criteria)
	}

	if err := r.hooks.Updated(ctx, &rec); err != nil {
		return nil, fmt.Errorf("%s updated hook: %w", r.cfg.Entity, err)
	}

	return &rec, nil
}

// DeleteByCriteria deletes the first record matching criteria. Deleting a
// record that is already gone is a no-op, not an error.
func (r *Repo[T]) DeleteByCriteria(ctx context.Context, criteria string, spec *query.Spec, tenant domain.TenantContext) error {
	if spec == nil {
		spec = &query.Spec{}
	}

	current, err := r.firstMatch(ctx, criteria, spec, tenant, false, nil)
	if errors.Is(err, domain.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	sqlStr, args, err := builder.Delete(r.cfg.Table).
		Where(squirrel.Eq{"id": r.cfg.ID(current)}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build %s delete: %w", r.cfg.Entity, err)
	}

	if _, err := r.Q(ctx).Exec(ctx, sqlStr, args...); err != nil {
		return mapError(err, r.cfg.Entity, criteria)
	}
	return nil
}

// BulkUpdate applies the same attribute set to every id in the list.
// Best-effort single statement: the first error aborts everything.
func (r *Repo[T]) BulkUpdate(ctx context.Context, ids []uuid.UUID, attrs domain.Attributes) ([]T, error) {
	if len(ids) == 0 {
		return []T{}, nil
	}
	if err := r.validateAttrs(attrs); err != nil {
		return nil, err
	}

	b := builder.Update(r.cfg.Table).SetMap(attrs)
	if _, ok := attrs["updated_at"]; !ok {
		b = b.Set("updated_at", squirrel.Expr("now()"))
	}
	sqlStr, args, err := b.
		Where(squirrel.Expr("id = ANY(?)", ids)).
		Suffix("RETURNING " + strings.Join(r.cfg.Columns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build %s bulk update: %w", r.cfg.Entity, err)
	}

	var recs []T
	if err := pgxscan.Select(ctx, r.Q(ctx), &recs, sqlStr, args...); err != nil {
		return nil, mapError(err, r.cfg.Entity, "bulk update")
	}
	return recs, nil
}

// BulkDelete removes every id in the list in one statement.
func (r *Repo[T]) BulkDelete(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}

	sqlStr, args, err := builder.Delete(r.cfg.Table).
		Where(squirrel.Expr("id = ANY(?)", ids)).
		ToSql()
	if err != nil {
		return fmt.Errorf("build %s bulk delete: %w", r.cfg.Entity, err)
	}

	if _, err := r.Q(ctx).Exec(ctx, sqlStr, args...); err != nil {
		return mapError(err, r.cfg.Entity, "bulk delete")
	}
	return nil
}

// ---------------------------------------------------------------------------
// Query construction
// ---------------------------------------------------------------------------

// firstMatch resolves criteria to a single record. widen switches GetOne's
// shared-entity visibility (own tenant OR central) on; updates and deletes
// keep default scoping so a tenant can never mutate central data.
func (r *Repo[T]) firstMatch(ctx context.Context, criteria string, spec *query.Spec, tenant domain.TenantContext, widen bool, fields []string) (*T, error) {
	match, err := r.column(spec.MatchColumn())
	if err != nil {
		return nil, err
	}

	cols := r.cfg.Columns
	if len(fields) > 0 {
		if cols, err = r.validColumns(fields); err != nil {
			return nil, err
		}
	}

	b := builder.Select(cols...).From(r.cfg.Table).
		Where(squirrel.Eq{match: criteria})

	if r.cfg.TenantColumn != "" {
		if id, ok := currentTenant(tenant); ok {
			if widen {
				b = b.Where(squirrel.Or{
					squirrel.Eq{r.cfg.TenantColumn: id},
					squirrel.Eq{r.cfg.TenantColumn: nil},
				})
			} else {
				b = b.Where(squirrel.Eq{r.cfg.TenantColumn: id})
			}
		}
	}

	sqlStr, args, err := b.Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build %s lookup: %w", r.cfg.Entity, err)
	}

	var rec T
	if err := pgxscan.Get(ctx, r.Q(ctx), &rec, sqlStr, args...); err != nil {
		return nil, mapError(err, r.cfg.Entity, criteria)
	}
	return &rec, nil
}

func (r *Repo[T]) applyFilters(b squirrel.SelectBuilder, spec *query.Spec, tenant domain.TenantContext, locale domain.LocaleContext) (squirrel.SelectBuilder, error) {
	f := spec.Filter

	// Tenant scoping: an explicit pass-through filter wins over the active
	// tenant (central administration lists a specific tenant's data).
	if r.cfg.TenantColumn != "" {
		if f.TenantID != nil {
			b = b.Where(squirrel.Eq{r.cfg.TenantColumn: *f.TenantID})
		} else if id, ok := currentTenant(tenant); ok {
			b = b.Where(squirrel.Eq{r.cfg.TenantColumn: id})
		}
	}

	if f.Date != nil {
		field := f.Date.Field
		if field == "" {
			field = "created_at"
		}
		if _, err := r.column(field); err != nil {
			return b, err
		}
		if f.Date.From != nil {
			b = b.Where(squirrel.Expr(field+"::date >= ?", f.Date.From.Format("2006-01-02")))
		}
		if f.Date.To != nil {
			b = b.Where(squirrel.Expr(field+"::date <= ?", f.Date.To.Format("2006-01-02")))
		}
	}

	// Search is the single disjunctive group: a record matches on its
	// current-locale title, or on its id or timestamps.
	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		or := squirrel.Or{
			squirrel.Expr("id::text ILIKE ?", pattern),
			squirrel.Expr("created_at::text ILIKE ?", pattern),
			squirrel.Expr("updated_at::text ILIKE ?", pattern),
		}
		if s := r.cfg.Search; s != nil && locale != nil {
			titleMatch := squirrel.Expr(
				"EXISTS (SELECT 1 FROM "+s.Table+" tr WHERE tr."+s.FK+" = "+r.cfg.Table+".id AND tr.locale = ? AND tr.title ILIKE ?)",
				locale.CurrentLocale(), pattern,
			)
			or = append(squirrel.Or{titleMatch}, or...)
		}
		b = b.Where(or)
	}

	if f.Name != "" {
		if _, err := r.column("name"); err != nil {
			return b, err
		}
		b = b.Where(squirrel.Eq{"name": f.Name})
	}

	return b, nil
}

func (r *Repo[T]) applyOrder(b squirrel.SelectBuilder, spec *query.Spec) (squirrel.SelectBuilder, error) {
	field, way := "created_at", "DESC"
	if ord := spec.Filter.Order; ord != nil {
		if ord.Field != "" {
			field = ord.Field
		}
		if ord.Way == "asc" {
			way = "ASC"
		}
	}
	if _, err := r.column(field); err != nil {
		return b, err
	}
	return b.OrderBy(field + " " + way), nil
}

func (r *Repo[T]) count(ctx context.Context, spec *query.Spec, tenant domain.TenantContext, locale domain.LocaleContext) (int64, error) {
	b := builder.Select("COUNT(*)").From(r.cfg.Table)
	b, err := r.applyFilters(b, spec, tenant, locale)
	if err != nil {
		return 0, err
	}

	sqlStr, args, err := b.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build %s count: %w", r.cfg.Entity, err)
	}

	var total int64
	if err := pgxscan.Get(ctx, r.Q(ctx), &total, sqlStr, args...); err != nil {
		return 0, mapError(err, r.cfg.Entity, "count")
	}
	return total, nil
}

// loadRelations loads every requested relation for the batch. The spec
// resolves "*" to no relations (see query.Spec.Relations).
func (r *Repo[T]) loadRelations(ctx context.Context, spec *query.Spec, recs []*T) error {
	if len(recs) == 0 {
		return nil
	}
	for _, name := range spec.Relations() {
		loader, ok := r.cfg.Relations[name]
		if !ok {
			return fmt.Errorf("%w: unknown relation %q for %s", domain.ErrMalformedQuery, name, r.cfg.Entity)
		}
		if err := loader(ctx, r.Q(ctx), recs); err != nil {
			return fmt.Errorf("load %s relation %s: %w", r.cfg.Entity, name, err)
		}
	}
	return nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func (r *Repo[T]) projection(spec *query.Spec) ([]string, error) {
	if len(spec.Fields) == 0 {
		return r.cfg.Columns, nil
	}
	return r.validColumns(spec.Fields)
}

func (r *Repo[T]) validColumns(fields []string) ([]string, error) {
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		c, err := r.column(f)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// column whitelists a caller-supplied column name. Everything reaching SQL
// text (not a bind parameter) must pass through here.
func (r *Repo[T]) column(name string) (string, error) {
	if _, ok := r.cols[name]; !ok {
		return "", fmt.Errorf("%w: unknown column %q for %s", domain.ErrMalformedQuery, name, r.cfg.Entity)
	}
	return name, nil
}

func (r *Repo[T]) validateAttrs(attrs domain.Attributes) error {
	if len(attrs) == 0 {
		return domain.NewValidationError("attributes", "no attributes given")
	}
	for k := range attrs {
		if _, err := r.column(k); err != nil {
			return err
		}
	}
	return nil
}

func currentTenant(t domain.TenantContext) (uuid.UUID, bool) {
	if t == nil {
		return uuid.Nil, false
	}
	return t.CurrentTenantID()
}

func ptrs[T any](recs []T) []*T {
	out := make([]*T, len(recs))
	for i := range recs {
		out[i] = &recs[i]
	}
	return out
}
