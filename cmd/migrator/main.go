package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/UnknownOlympus/athena/internal/config"
	"github.com/UnknownOlympus/athena/internal/repository"
	"github.com/UnknownOlympus/athena/internal/services/employees"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose"
)

func main() {
	dir := flag.String("dir", "migrations", "directory with migration files")
	seed := flag.Int("seed", 0, "number of demo employees to insert after migrating up")
	flag.Parse()

	command := "up"
	var args []string
	if flag.NArg() > 0 {
		command = flag.Arg(0)
		args = flag.Args()[1:]
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err = cfg.ValidateDatabase(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	ctx := context.Background()
	dbpool, dbErr := repository.NewDatabase(ctx,
		cfg.Postgres.Host, cfg.Postgres.Port, cfg.Postgres.User, cfg.Postgres.Password, cfg.Postgres.Dbname)
	if dbErr != nil {
		log.Fatalf("Failed to connect to DB: %v", dbErr)
	}
	defer dbpool.Close()

	dtb := stdlib.OpenDBFromPool(dbpool)
	defer dtb.Close()

	if err = goose.SetDialect("postgres"); err != nil {
		log.Fatalf("Failed to set dialect: %v", err)
	}
	if migrationErr := goose.Run(command, dtb, *dir, args...); migrationErr != nil {
		log.Fatalf("goose %s: %v", command, migrationErr)
	}
	log.Printf("✅ goose %s finished", command)

	if *seed <= 0 || command != "up" {
		return
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	staff := employees.NewStaff(logger, repository.NewEmployeeRepository(dbpool, nil))
	created, err := staff.Seed(ctx, *seed)
	if err != nil {
		log.Fatalf("Failed to seed employees: %v", err)
	}
	log.Printf("✅ Seeded %d demo employees", len(created))
}
