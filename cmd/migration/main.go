package main

import (
	"log"
	"mediport-service/internal/app/config"
	"mediport-service/internal/app/drivers/database"
	"os"
	"path/filepath"

	migrate "github.com/rubenv/sql-migrate"
)

func main() {
	driverConfig := config.NewDriverConfig()

	db := database.NewPostgresDB(driverConfig)
	defer db.Close()

	wd, err := os.Getwd()
	if err != nil {
		log.Fatalf("Error getting working directory: %v", err)
	}

	migrations := &migrate.FileMigrationSource{
		Dir: filepath.Join(wd, "internal/migration"),
	}

	n, err := migrate.Exec(db, "postgres", migrations, migrate.Up)
	if err != nil {
		log.Fatalf("Error executing migration: %v", err)
	}

	log.Printf("Applied %d migrations!\n", n)
}
