// Command migrate applies or rolls back the SQL migrations in ./migrations
// against backend.url.
//
//	migrate up
//	migrate down [steps]
package main

import (
	"errors"
	"flag"
	"log"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/khoahotran/portfolio-hub/internal/config"
)

func main() {
	source := flag.String("source", "file://migrations", "migration source URL")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("FATAL: %v", err)
	}

	m, err := migrate.New(*source, cfg.Backend.URL)
	if err != nil {
		log.Fatalf("FATAL: cannot create migrate instance: %v", err)
	}
	defer m.Close()

	switch cmd := flag.Arg(0); cmd {
	case "", "up":
		err = m.Up()
	case "down":
		steps := 1
		if s := flag.Arg(1); s != "" {
			if steps, err = strconv.Atoi(s); err != nil || steps < 1 {
				log.Fatalf("FATAL: invalid step count %q", s)
			}
		}
		err = m.Steps(-steps)
	default:
		log.Fatalf("FATAL: unknown command %q (want up or down)", cmd)
	}

	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		log.Fatalf("FATAL: migration failed: %v", err)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		log.Fatalf("FATAL: cannot read version: %v", err)
	}
	log.Printf("Migrations done. version=%d dirty=%t", version, dirty)
}
