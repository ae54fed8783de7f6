// Package menu implements the menu command service: transactional create,
// update and delete of menus together with their translations and root item,
// plus the spec-driven read path.
package menu

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/sitecraft/menu-backend/internal/domain"
	"github.com/sitecraft/menu-backend/internal/query"
)

// MenuRepo is the persistence surface the service needs for menus.
type MenuRepo interface {
	List(ctx context.Context, spec *query.Spec, tenant domain.TenantContext, locale domain.LocaleContext) ([]domain.Menu, *domain.PageMeta, error)
	GetOne(ctx context.Context, criteria string, spec *query.Spec, tenant domain.TenantContext, locale domain.LocaleContext) (*domain.Menu, error)
	Create(ctx context.Context, attrs domain.Attributes) (*domain.Menu, error)
	UpdateByCriteria(ctx context.Context, criteria string, attrs domain.Attributes, spec *query.Spec, tenant domain.TenantContext) (*domain.Menu, error)
	DeleteByCriteria(ctx context.Context, criteria string, spec *query.Spec, tenant domain.TenantContext) error
	SaveTranslations(ctx context.Context, menuID uuid.UUID, trs []domain.MenuTranslation) error
}

// ItemRepo creates the root item a new menu starts with.
type ItemRepo interface {
	Create(ctx context.Context, attrs domain.Attributes) (*domain.MenuItem, error)
}

// TxManager runs a function inside one database transaction.
type TxManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service is the menu command service.
type Service struct {
	menus  MenuRepo
	items  ItemRepo
	tx     TxManager
	tenant domain.TenantContext
	locale domain.LocaleContext
	log    *slog.Logger
}

func NewService(menus MenuRepo, items ItemRepo, tx TxManager, tenant domain.TenantContext, locale domain.LocaleContext, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{menus: menus, items: items, tx: tx, tenant: tenant, locale: locale, log: log}
}

// CreateInput carries the attributes of a new menu. Translations are keyed
// by locale; a nil title is stored as NULL.
type CreateInput struct {
	Name         string
	Translations []domain.MenuTranslation
}

// UpdateInput carries a partial menu update. Nil fields are left unchanged.
type UpdateInput struct {
	Name         *string
	Translations []domain.MenuTranslation
}

// Create persists a menu, its translations and its root item in one
// transaction. The root item is the parentless, link-less anchor top-level
// entries attach to.
func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Menu, error) {
	if in.Name == "" {
		return nil, domain.NewValidationError("name", "must not be empty")
	}

	var created *domain.Menu
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		attrs := domain.Attributes{"name": in.Name}
		if id, ok := s.tenant.CurrentTenantID(); ok {
			attrs["tenant_id"] = id
		}

		m, err := s.menus.Create(ctx, attrs)
		if err != nil {
			return err
		}

		if len(in.Translations) > 0 {
			if err := s.menus.SaveTranslations(ctx, m.ID, in.Translations); err != nil {
				return err
			}
		}

		rootAttrs := domain.Attributes{
			"menu_id":   m.ID,
			"link_type": domain.LinkTypeNone,
			"position":  0,
		}
		if id, ok := s.tenant.CurrentTenantID(); ok {
			rootAttrs["tenant_id"] = id
		}
		if _, err := s.items.Create(ctx, rootAttrs); err != nil {
			return fmt.Errorf("create root item: %w", err)
		}

		created = m
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.DebugContext(ctx, "menu created", slog.String("menu_id", created.ID.String()), slog.String("name", created.Name))
	return created, nil
}

// Update applies a partial update to the first menu matching criteria.
func (s *Service) Update(ctx context.Context, criteria string, in UpdateInput, spec *query.Spec) (*domain.Menu, error) {
	var updated *domain.Menu
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		attrs := domain.Attributes{}
		if in.Name != nil {
			attrs["name"] = *in.Name
		}

		if len(attrs) > 0 {
			m, err := s.menus.UpdateByCriteria(ctx, criteria, attrs, spec, s.tenant)
			if err != nil {
				return err
			}
			updated = m
		} else {
			m, err := s.menus.GetOne(ctx, criteria, spec, s.tenant, s.locale)
			if err != nil {
				return err
			}
			updated = m
		}

		if len(in.Translations) > 0 {
			return s.menus.SaveTranslations(ctx, updated.ID, in.Translations)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.DebugContext(ctx, "menu updated", slog.String("menu_id", updated.ID.String()))
	return updated, nil
}

// Delete removes the first menu matching criteria. Items and translations go
// with it (the store cascades). Deleting an absent menu is a no-op.
func (s *Service) Delete(ctx context.Context, criteria string, spec *query.Spec) error {
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		return s.menus.DeleteByCriteria(ctx, criteria, spec, s.tenant)
	})
	if err != nil {
		return err
	}
	s.log.DebugContext(ctx, "menu deleted", slog.String("criteria", criteria))
	return nil
}

// List returns menus matching the spec.
func (s *Service) List(ctx context.Context, spec *query.Spec) ([]domain.Menu, *domain.PageMeta, error) {
	return s.menus.List(ctx, spec, s.tenant, s.locale)
}

// Get returns the first menu matching criteria. Shareable central menus are
// visible alongside the tenant's own.
func (s *Service) Get(ctx context.Context, criteria string, spec *query.Spec) (*domain.Menu, error) {
	return s.menus.GetOne(ctx, criteria, spec, s.tenant, s.locale)
}
