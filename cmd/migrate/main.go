package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"finance-tracker-backend/config"
	"finance-tracker-backend/internal/database"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("migrate", flag.ContinueOnError)
	fs.SetOutput(stderr)

	driver := fs.String("driver", "", "Database driver, postgres or sqlite (defaults to DB_DRIVER)")
	dsn := fs.String("dsn", "", "Postgres URL or sqlite file path (defaults to the configured database)")
	steps := fs.Int("steps", 0, "Number of migrations to apply with the steps command; negative rolls back")

	if err := fs.Parse(args); err != nil {
		return err
	}

	command := fs.Arg(0)
	if command == "" {
		command = "up"
	}

	if *driver == "" || *dsn == "" {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if *driver == "" {
			*driver = cfg.DBDriver
		}
		if *dsn == "" {
			*dsn = cfg.MigrationURL()
		}
	}

	mg, err := database.NewMigrator(*driver, *dsn)
	if err != nil {
		return err
	}
	defer mg.Close()

	switch command {
	case "up":
		err = mg.Up()
	case "down":
		err = mg.Down()
	case "steps":
		if *steps == 0 {
			return fmt.Errorf("steps command needs a non-zero -steps value")
		}
		err = mg.Steps(*steps)
	case "version":
	default:
		fmt.Fprintln(stdout, "Usage: migrate [-driver <driver>] [-dsn <dsn>] [-steps <n>] up|down|steps|version")
		return fmt.Errorf("unknown command %q", command)
	}
	if err != nil {
		return err
	}

	version, dirty, err := mg.Version()
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	fmt.Fprintf(stdout, "Schema at version %d (dirty=%t)\n", version, dirty)
	return nil
}
