// Command migrate applies the embedded schema migrations.
//
// Usage: migrate [up|down|status]   (default: up)
package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/sitecraft/menu-backend/internal/app"
	"github.com/sitecraft/menu-backend/internal/config"
	"github.com/sitecraft/menu-backend/migrations"
)

func main() {
	flag.Parse()
	command := flag.Arg(0)
	if command == "" {
		command = "up"
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}
	log := app.NewLogger(cfg.Log)

	if err := run(context.Background(), cfg.Database.DSN, command); err != nil {
		log.Error("migrate", "command", command, "error", err)
		os.Exit(1)
	}
	log.Info("migrations applied", "command", command)
}

func run(ctx context.Context, dsn, command string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	switch command {
	case "up":
		return goose.UpContext(ctx, db, ".")
	case "down":
		return goose.DownContext(ctx, db, ".")
	case "status":
		return goose.StatusContext(ctx, db, ".")
	default:
		return goose.RunContext(ctx, command, db, ".")
	}
}
