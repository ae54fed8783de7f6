package menu

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v2"

	"github.com/sitecraft/menu-backend/internal/domain"
	"github.com/sitecraft/menu-backend/internal/query"
)

func newRepo(t *testing.T) (*Repo, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	t.Cleanup(mock.Close)
	return New(mock, nil), mock
}

func menuRow(id uuid.UUID) *pgxmock.Rows {
	return pgxmock.NewRows([]string{"id", "tenant_id", "name", "created_at", "updated_at"}).
		AddRow(id, (*uuid.UUID)(nil), "main", time.Now(), time.Now())
}

func TestList_LoadsTranslations(t *testing.T) {
	t.Parallel()

	menuID := uuid.New()
	repo, mock := newRepo(t)
	mock.ExpectQuery(`FROM menus ORDER BY created_at DESC$`).
		WillReturnRows(menuRow(menuID))
	mock.ExpectQuery(`FROM menu_translations\s+WHERE menu_id = ANY\(\$1\)`).
		WithArgs([]uuid.UUID{menuID}).
		WillReturnRows(pgxmock.NewRows([]string{"id", "menu_id", "locale", "title"}).
			AddRow(uuid.New(), menuID, "en", strPtr("Main")).
			AddRow(uuid.New(), menuID, "nl", (*string)(nil)))

	recs, _, err := repo.List(context.Background(), &query.Spec{Includes: []string{"translations"}}, nil, nil)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(recs) != 1 || len(recs[0].Translations) != 2 {
		t.Fatalf("got %d menus / %d translations, want 1 / 2", len(recs), len(recs[0].Translations))
	}
	if tr := recs[0].Translations[1]; tr.Locale != "nl" || tr.Title != nil {
		t.Errorf("nl translation = %+v, want nil title preserved", tr)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestList_LoadsItems(t *testing.T) {
	t.Parallel()

	menuID := uuid.New()
	rootID := uuid.New()
	childID := uuid.New()
	repo, mock := newRepo(t)
	mock.ExpectQuery(`FROM menus ORDER BY created_at DESC$`).
		WillReturnRows(menuRow(menuID))
	mock.ExpectQuery(`FROM menu_items\s+WHERE menu_id = ANY\(\$1\)\s+ORDER BY menu_id, position`).
		WithArgs([]uuid.UUID{menuID}).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "menu_id", "parent_id", "tenant_id", "class", "position", "link_type", "page_id", "created_at", "updated_at",
		}).
			AddRow(rootID, menuID, (*uuid.UUID)(nil), (*uuid.UUID)(nil), (*string)(nil), 0, domain.LinkTypeNone, (*uuid.UUID)(nil), time.Now(), time.Now()).
			AddRow(childID, menuID, &rootID, (*uuid.UUID)(nil), (*string)(nil), 0, domain.LinkTypeURL, (*uuid.UUID)(nil), time.Now(), time.Now()))

	recs, _, err := repo.List(context.Background(), &query.Spec{Includes: []string{"items"}}, nil, nil)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(recs) != 1 || len(recs[0].Items) != 2 {
		t.Fatalf("got %d menus / %d items, want 1 / 2", len(recs), len(recs[0].Items))
	}
	root := recs[0].Root()
	if root == nil || root.ID != rootID {
		t.Errorf("Root() = %+v, want the parentless item", root)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestSaveTranslations_Upsert(t *testing.T) {
	t.Parallel()

	menuID := uuid.New()
	repo, mock := newRepo(t)
	mock.ExpectExec(`(?s)INSERT INTO menu_translations.*ON CONFLICT \(menu_id, locale\) DO UPDATE SET title = EXCLUDED\.title`).
		WithArgs(menuID, "en", strPtr("Main")).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(`INSERT INTO menu_translations`).
		WithArgs(menuID, "nl", (*string)(nil)).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := repo.SaveTranslations(context.Background(), menuID, []domain.MenuTranslation{
		{Locale: "en", Title: strPtr("Main")},
		{Locale: "nl"},
	})
	if err != nil {
		t.Fatalf("SaveTranslations: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func strPtr(s string) *string { return &s }
