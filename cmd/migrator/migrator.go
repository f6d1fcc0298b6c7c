package main

import (
	"log"
	"os"

	"github.com/bombaybullionrefinery-maker/bombay-bullion-website/internal/config"
	"github.com/bombaybullionrefinery-maker/bombay-bullion-website/internal/database"
	"github.com/bombaybullionrefinery-maker/bombay-bullion-website/internal/migration"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatalf("usage: migrator up|down")
	}

	cfg := config.Load()
	migrate := &migration.Migrate{
		Db: &database.PostgreSQL{Cfg: cfg.Postgres},
	}

	switch os.Args[1] {
	case "up":
		if err := migrate.MigrateUp(); err != nil {
			log.Fatalf("migration up failed: %v", err)
		}
		log.Println("migration up success")
	case "down":
		if err := migrate.MigrateDown(); err != nil {
			log.Fatalf("migration down failed: %v", err)
		}
		log.Println("migration down success")
	default:
		log.Fatalf("unknown command: %s", os.Args[1])
	}
}
