// Command seeder provisions demo navigation menus through the full service
// stack: migrations, repositories, hooks, transactions. Intended for local
// development and staging environments.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"golang.org/x/sync/errgroup"

	"github.com/sitecraft/menu-backend/internal/adapter/postgres"
	pgmenu "github.com/sitecraft/menu-backend/internal/adapter/postgres/menu"
	pgmenuitem "github.com/sitecraft/menu-backend/internal/adapter/postgres/menuitem"
	"github.com/sitecraft/menu-backend/internal/app"
	"github.com/sitecraft/menu-backend/internal/config"
	"github.com/sitecraft/menu-backend/internal/domain"
	"github.com/sitecraft/menu-backend/internal/i18n"
	menusvc "github.com/sitecraft/menu-backend/internal/service/menu"
	itemsvc "github.com/sitecraft/menu-backend/internal/service/menuitem"
	"github.com/sitecraft/menu-backend/internal/tenancy"
	"github.com/sitecraft/menu-backend/internal/uri"
	"github.com/sitecraft/menu-backend/migrations"
)

type seedItem struct {
	linkType domain.LinkType
	titles   map[string]*string
}

type seedMenu struct {
	name  string
	title string
	items []seedItem
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}
	log := app.NewLogger(cfg.Log)

	if err := run(context.Background(), cfg, log); err != nil {
		log.Error("seed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := migrate(ctx, pool); err != nil {
		return err
	}

	tenant := tenancy.FromConfig(cfg.Tenancy)
	locale := i18n.FromConfig(cfg.Locale)
	uris := uri.FromConfig(cfg.Menu)
	tx := postgres.NewTxManager(pool)

	menuRepo := pgmenu.New(pool, nil)
	itemRepo := pgmenuitem.New(pool, nil)

	menus := menusvc.NewService(menuRepo, itemRepo, tx, tenant, locale, log)
	items := itemsvc.NewService(itemRepo, menuRepo, tx, uris, tenant, locale, log)

	seeds := demoMenus(locale.SupportedLocales())
	g, ctx := errgroup.WithContext(ctx)
	for _, seed := range seeds {
		seed := seed
		g.Go(func() error {
			return plant(ctx, menus, items, seed)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	log.Info("demo menus seeded", "count", len(seeds))
	return nil
}

func migrate(ctx context.Context, pool *pgxpool.Pool) error {
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()
	return goose.UpContext(ctx, db, ".")
}

func plant(ctx context.Context, menus *menusvc.Service, items *itemsvc.Service, seed seedMenu) error {
	m, err := menus.Create(ctx, menusvc.CreateInput{
		Name:         seed.name,
		Translations: []domain.MenuTranslation{{Locale: "en", Title: &seed.title}},
	})
	if err != nil {
		return err
	}

	for _, it := range seed.items {
		in := itemsvc.CreateInput{
			MenuID:   m.ID,
			LinkType: it.linkType,
			Titles:   it.titles,
		}
		if it.linkType == domain.LinkTypePage {
			pageID := uuid.New()
			in.PageID = &pageID
		}
		if _, err := items.Create(ctx, in); err != nil {
			return err
		}
	}
	return nil
}

func demoMenus(locales []string) []seedMenu {
	titles := func(base string) map[string]*string {
		out := make(map[string]*string, len(locales))
		for _, loc := range locales {
			t := base + " (" + loc + ")"
			out[loc] = &t
		}
		return out
	}

	return []seedMenu{
		{
			name:  "main",
			title: "Main navigation",
			items: []seedItem{
				{linkType: domain.LinkTypePage, titles: titles("Home")},
				{linkType: domain.LinkTypePage, titles: titles("About")},
				{linkType: domain.LinkTypeURL, titles: titles("Blog")},
			},
		},
		{
			name:  "footer",
			title: "Footer",
			items: []seedItem{
				{linkType: domain.LinkTypeURL, titles: titles("Privacy")},
				{linkType: domain.LinkTypeNone, titles: titles("Contact")},
			},
		},
		{
			name:  "sidebar",
			title: "Sidebar",
			items: []seedItem{
				{linkType: domain.LinkTypePage, titles: titles("Docs")},
			},
		},
	}
}
