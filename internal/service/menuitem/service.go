// Package menuitem implements the hierarchy manager: transactional create,
// update, reorder and bulk mutation of menu items, with root resolution and
// per-locale URI generation for page-linked items.
package menuitem

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/sitecraft/menu-backend/internal/domain"
	"github.com/sitecraft/menu-backend/internal/query"
)

// ItemRepo is the persistence surface the hierarchy manager needs.
type ItemRepo interface {
	List(ctx context.Context, spec *query.Spec, tenant domain.TenantContext, locale domain.LocaleContext) ([]domain.MenuItem, *domain.PageMeta, error)
	GetOne(ctx context.Context, criteria string, spec *query.Spec, tenant domain.TenantContext, locale domain.LocaleContext) (*domain.MenuItem, error)
	Create(ctx context.Context, attrs domain.Attributes) (*domain.MenuItem, error)
	UpdateByCriteria(ctx context.Context, criteria string, attrs domain.Attributes, spec *query.Spec, tenant domain.TenantContext) (*domain.MenuItem, error)
	DeleteByCriteria(ctx context.Context, criteria string, spec *query.Spec, tenant domain.TenantContext) error
	BulkUpdate(ctx context.Context, ids []uuid.UUID, attrs domain.Attributes) ([]domain.MenuItem, error)
	BulkDelete(ctx context.Context, ids []uuid.UUID) error
	RootForMenu(ctx context.Context, menuID uuid.UUID) (*domain.MenuItem, error)
	NextPosition(ctx context.Context, menuID, parentID uuid.UUID) (int, error)
	SetPlacement(ctx context.Context, id uuid.UUID, parentID *uuid.UUID, position int) error
	SaveTranslations(ctx context.Context, itemID uuid.UUID, trs []domain.MenuItemTranslation) error
}

// MenuRepo verifies that a referenced menu exists.
type MenuRepo interface {
	GetOne(ctx context.Context, criteria string, spec *query.Spec, tenant domain.TenantContext, locale domain.LocaleContext) (*domain.Menu, error)
}

// TxManager runs a function inside one database transaction.
type TxManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service is the menu item hierarchy manager.
type Service struct {
	items  ItemRepo
	menus  MenuRepo
	tx     TxManager
	uris   domain.URIGenerator
	tenant domain.TenantContext
	locale domain.LocaleContext
	log    *slog.Logger
}

func NewService(items ItemRepo, menus MenuRepo, tx TxManager, uris domain.URIGenerator, tenant domain.TenantContext, locale domain.LocaleContext, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{items: items, menus: menus, tx: tx, uris: uris, tenant: tenant, locale: locale, log: log}
}

// CreateInput carries the attributes of a new item. A nil ParentID attaches
// the item to the menu's root; a nil Position appends it to the end of its
// sibling group. Titles are keyed by locale.
type CreateInput struct {
	MenuID   uuid.UUID
	ParentID *uuid.UUID
	Class    *string
	LinkType domain.LinkType
	PageID   *uuid.UUID
	Position *int
	Titles   map[string]*string
}

// UpdateInput carries a partial item update. Nil fields are left unchanged;
// ParentID nil resolves to the menu's root, matching the create convention.
type UpdateInput struct {
	MenuID   uuid.UUID
	ParentID *uuid.UUID
	Class    *string
	LinkType *domain.LinkType
	PageID   *uuid.UUID
	Position *int
	Titles   map[string]*string
}

// Create inserts an item into the menu's tree in one transaction.
func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.MenuItem, error) {
	if !in.LinkType.IsValid() {
		return nil, domain.NewValidationError("link_type", fmt.Sprintf("unknown link type %q", in.LinkType))
	}
	if in.LinkType == domain.LinkTypePage && in.PageID == nil {
		return nil, domain.NewValidationError("page_id", "required for page links")
	}

	var created *domain.MenuItem
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.verifyMenu(ctx, in.MenuID); err != nil {
			return err
		}

		parentID, err := s.resolveParent(ctx, in.MenuID, in.ParentID)
		if err != nil {
			return err
		}

		position := 0
		if in.Position != nil {
			position = *in.Position
		} else if pos, err := s.items.NextPosition(ctx, in.MenuID, parentID); err == nil {
			position = pos
		} else {
			return err
		}

		attrs := domain.Attributes{
			"menu_id":   in.MenuID,
			"parent_id": parentID,
			"link_type": in.LinkType,
			"position":  position,
		}
		if in.Class != nil {
			attrs["class"] = *in.Class
		}
		if in.PageID != nil {
			attrs["page_id"] = *in.PageID
		}
		if id, ok := s.tenant.CurrentTenantID(); ok {
			attrs["tenant_id"] = id
		}

		item, err := s.items.Create(ctx, attrs)
		if err != nil {
			return err
		}

		trs, err := s.translations(ctx, item, in.Titles)
		if err != nil {
			return err
		}
		if len(trs) > 0 {
			if err := s.items.SaveTranslations(ctx, item.ID, trs); err != nil {
				return err
			}
		}

		created = item
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.DebugContext(ctx, "menu item created",
		slog.String("item_id", created.ID.String()),
		slog.String("menu_id", created.MenuID.String()))
	return created, nil
}

// Update applies a partial update to the first item matching criteria. The
// referenced menu must exist; page-linked items get a freshly generated URI
// per supported locale, url and plain items keep their stored URIs.
func (s *Service) Update(ctx context.Context, criteria string, in UpdateInput, spec *query.Spec) (*domain.MenuItem, error) {
	if in.LinkType != nil && !in.LinkType.IsValid() {
		return nil, domain.NewValidationError("link_type", fmt.Sprintf("unknown link type %q", *in.LinkType))
	}

	var updated *domain.MenuItem
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.verifyMenu(ctx, in.MenuID); err != nil {
			return err
		}

		parentID, err := s.resolveParent(ctx, in.MenuID, in.ParentID)
		if err != nil {
			return err
		}

		attrs := domain.Attributes{
			"menu_id":   in.MenuID,
			"parent_id": parentID,
		}
		if in.Class != nil {
			attrs["class"] = *in.Class
		}
		if in.LinkType != nil {
			attrs["link_type"] = *in.LinkType
		}
		if in.PageID != nil {
			attrs["page_id"] = *in.PageID
		}
		if in.Position != nil {
			attrs["position"] = *in.Position
		}

		item, err := s.items.UpdateByCriteria(ctx, criteria, attrs, spec, s.tenant)
		if err != nil {
			return err
		}

		trs, err := s.translations(ctx, item, in.Titles)
		if err != nil {
			return err
		}
		if len(trs) > 0 {
			if err := s.items.SaveTranslations(ctx, item.ID, trs); err != nil {
				return err
			}
		}

		updated = item
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.DebugContext(ctx, "menu item updated", slog.String("item_id", updated.ID.String()))
	return updated, nil
}

// UpdateOrders applies parent and position reassignments as one batch. Any
// failure rolls the whole batch back. Concurrent reorders of the same menu
// are last-writer-wins.
func (s *Service) UpdateOrders(ctx context.Context, orders []domain.ReorderItem) error {
	if len(orders) == 0 {
		return nil
	}

	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		for _, ord := range orders {
			if err := s.items.SetPlacement(ctx, ord.ID, ord.ParentID, ord.Position); err != nil {
				return fmt.Errorf("reorder item %s: %w", ord.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.DebugContext(ctx, "menu items reordered", slog.Int("count", len(orders)))
	return nil
}

// UpdateItems mutates every item matching the spec in two phases: select the
// matching ids, then apply one bulk update to exactly that id set. Rows that
// start matching between the phases are not picked up.
func (s *Service) UpdateItems(ctx context.Context, spec *query.Spec, attrs domain.Attributes) ([]domain.MenuItem, error) {
	var updated []domain.MenuItem
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		ids, err := s.matchingIDs(ctx, spec)
		if err != nil {
			return err
		}
		updated, err = s.items.BulkUpdate(ctx, ids, attrs)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log.DebugContext(ctx, "menu items bulk updated", slog.Int("count", len(updated)))
	return updated, nil
}

// DeleteItems removes every item matching the spec, two-phase like
// UpdateItems.
func (s *Service) DeleteItems(ctx context.Context, spec *query.Spec) error {
	var count int
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		ids, err := s.matchingIDs(ctx, spec)
		if err != nil {
			return err
		}
		count = len(ids)
		return s.items.BulkDelete(ctx, ids)
	})
	if err != nil {
		return err
	}

	s.log.DebugContext(ctx, "menu items bulk deleted", slog.Int("count", count))
	return nil
}

// Delete removes the first item matching criteria. Idempotent.
func (s *Service) Delete(ctx context.Context, criteria string, spec *query.Spec) error {
	return s.tx.RunInTx(ctx, func(ctx context.Context) error {
		return s.items.DeleteByCriteria(ctx, criteria, spec, s.tenant)
	})
}

// List returns items matching the spec.
func (s *Service) List(ctx context.Context, spec *query.Spec) ([]domain.MenuItem, *domain.PageMeta, error) {
	return s.items.List(ctx, spec, s.tenant, s.locale)
}

// Get returns the first item matching criteria.
func (s *Service) Get(ctx context.Context, criteria string, spec *query.Spec) (*domain.MenuItem, error) {
	return s.items.GetOne(ctx, criteria, spec, s.tenant, s.locale)
}

// ---------------------------------------------------------------------------
// Internals
// ---------------------------------------------------------------------------

// verifyMenu turns a dangling menu reference into a validation failure
// instead of a not-found, so callers can tell bad input from a missing item.
func (s *Service) verifyMenu(ctx context.Context, menuID uuid.UUID) error {
	_, err := s.menus.GetOne(ctx, menuID.String(), nil, s.tenant, s.locale)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.NewValidationError("menu_id", fmt.Sprintf("menu %s does not exist", menuID))
	}
	return err
}

// resolveParent maps an omitted parent to the menu's root item.
func (s *Service) resolveParent(ctx context.Context, menuID uuid.UUID, parentID *uuid.UUID) (uuid.UUID, error) {
	if parentID != nil {
		return *parentID, nil
	}
	root, err := s.items.RootForMenu(ctx, menuID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("resolve root of menu %s: %w", menuID, err)
	}
	return root.ID, nil
}

// translations builds the per-locale rows to persist. Page-linked items get
// a generated URI for every supported locale; other link types leave URI nil
// so stored values survive.
func (s *Service) translations(ctx context.Context, item *domain.MenuItem, titles map[string]*string) ([]domain.MenuItemTranslation, error) {
	isPage := item.LinkType == domain.LinkTypePage && item.PageID != nil
	if !isPage && len(titles) == 0 {
		return nil, nil
	}

	var trs []domain.MenuItemTranslation
	for _, locale := range s.locale.SupportedLocales() {
		tr := domain.MenuItemTranslation{ItemID: item.ID, Locale: locale}
		if title, ok := titles[locale]; ok {
			tr.Title = title
		}
		if isPage {
			uri, err := s.uris.GenerateURI(ctx, *item.PageID, item.ParentID, locale)
			if err != nil {
				return nil, fmt.Errorf("generate uri for locale %s: %w", locale, err)
			}
			tr.URI = &uri
		}
		trs = append(trs, tr)
	}
	return trs, nil
}

func (s *Service) matchingIDs(ctx context.Context, spec *query.Spec) ([]uuid.UUID, error) {
	recs, _, err := s.items.List(ctx, spec, s.tenant, s.locale)
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, 0, len(recs))
	for _, rec := range recs {
		ids = append(ids, rec.ID)
	}
	return ids, nil
}
