package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"

	"github.com/14kear/polls-api/internal/config"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
)

func main() {
	var (
		action         string
		steps          int
		configPath     string
		migrationsPath string
	)

	flag.StringVar(&action, "action", "up", "migration action: up, down, force, version")
	flag.IntVar(&steps, "steps", 0, "number of steps (for up/down), target version for force")
	flag.StringVar(&configPath, "config", "config/local.yaml", "path to config file")
	flag.StringVar(&migrationsPath, "migrations", "migrations", "path to migrations directory")
	flag.Parse()

	cfg := config.Load(configPath)

	db, err := sql.Open("postgres", cfg.StoragePath)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		log.Fatal(err)
	}

	m, err := migrate.NewWithDatabaseInstance("file://"+migrationsPath, "postgres", driver)
	if err != nil {
		log.Fatal(err)
	}

	switch action {
	case "up":
		if steps > 0 {
			err = m.Steps(steps)
		} else {
			err = m.Up()
		}
	case "down":
		if steps > 0 {
			err = m.Steps(-steps)
		} else {
			err = m.Down()
		}
	case "force":
		err = m.Force(steps)
	case "version":
		version, dirty, err := m.Version()
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("Version: %d, Dirty: %v\n", version, dirty)
		return
	default:
		log.Fatalf("unknown action: %s", action)
	}

	if err != nil && err != migrate.ErrNoChange {
		log.Fatal(err)
	}

	fmt.Println("migration applied successfully")
}
