// Command migrator applies or rolls back the schema migrations for the
// admissions database. It reads the same CONFIG_PATH config as the
// service; the migrations section picks the source directory and the
// bookkeeping table.
//
// Usage: migrator [up|down|reset]. "down" rolls back one migration,
// "reset" rolls back everything.
package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/a2sv-g68/admissions-service/internal/config"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

func main() {
	cfg := config.MustLoad()

	m, err := migrate.New(
		"file://"+cfg.Migrations.Path,
		fmt.Sprintf("%s?sslmode=disable&x-migrations-table=%s", cfg.Postgres.URL(), cfg.Migrations.Table),
	)
	if err != nil {
		log.Fatalf("failed to prepare migrations: %v", err)
	}

	cmd := "up"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	if err := run(m, cmd); err != nil {
		log.Fatal(err)
	}
}

func run(m *migrate.Migrate, cmd string) error {
	var err error

	switch cmd {
	case "up":
		err = m.Up()
	case "down":
		err = m.Steps(-1)
	case "reset":
		err = m.Down()
	default:
		return fmt.Errorf("unknown command '%s': want 'up', 'down' or 'reset'", cmd)
	}

	if errors.Is(err, migrate.ErrNoChange) {
		log.Println("schema is already up to date")
		return nil
	}
	if err != nil {
		return fmt.Errorf("migration %s failed: %w", cmd, err)
	}

	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		log.Println("schema rolled back to empty")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	log.Printf("schema at version %d (dirty=%t)", version, dirty)

	return nil
}
