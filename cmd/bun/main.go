package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"

	"github.com/Black-And-White-Club/music-backend/config"
	"github.com/Black-And-White-Club/music-backend/db/bundb"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"
	"github.com/urfave/cli/v2"

	// Import for migrator creation
	musicmigrations "github.com/Black-And-White-Club/music-backend/app/modules/music/infrastructure/repositories/migrations"
)

// pgDuplicateDatabase is the SQLSTATE for CREATE DATABASE on an existing name.
const pgDuplicateDatabase = "42P04"

func main() {
	// Load configuration for database connection ONLY
	configFile := flag.String("config", "config.yaml", "Path to the configuration file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	cliApp := newCLIApp(cfg)
	if err := cliApp.Run(append([]string{os.Args[0]}, flag.Args()...)); err != nil {
		log.Fatal(err)
	}
}

func newCLIApp(cfg *config.Config) *cli.App {
	return &cli.App{
		Name:  "bun",
		Usage: "music database tooling",
		Commands: []*cli.Command{
			newDBCommand(cfg),
		},
	}
}

// withMigrators opens the configured database and hands fn one migrator per module.
func withMigrators(c *cli.Context, cfg *config.Config, fn func(migrators map[string]*migrate.Migrator) error) error {
	db, err := bundb.NewDB(c.Context, cfg.Database, nil, false)
	if err != nil {
		return err
	}
	defer db.Close()

	return fn(newMigrators(db))
}

func newMigrators(db *bun.DB) map[string]*migrate.Migrator {
	return map[string]*migrate.Migrator{
		"music": migrate.NewMigrator(db, musicmigrations.Migrations),
	}
}

func newDBCommand(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "db",
		Usage: "manage the database",
		Subcommands: []*cli.Command{
			{
				Name:  "create",
				Usage: "create the configured postgres database if it does not exist",
				Action: func(c *cli.Context) error {
					return createDatabase(c.Context, cfg.Database)
				},
			},
			{
				Name:  "init",
				Usage: "create the database, the migration tables and apply every migration",
				Action: func(c *cli.Context) error {
					if cfg.Database.Driver == config.DriverPostgres {
						if err := createDatabase(c.Context, cfg.Database); err != nil {
							return err
						}
					}
					return withMigrators(c, cfg, func(migrators map[string]*migrate.Migrator) error {
						for moduleName, migrator := range migrators {
							if err := migrator.Init(c.Context); err != nil {
								return fmt.Errorf("init migrations for module %s: %w", moduleName, err)
							}
							group, err := migrator.Migrate(c.Context)
							if err != nil {
								return fmt.Errorf("migrate module %s: %w", moduleName, err)
							}
							printGroup(c, moduleName, "Migrated", group)
						}
						fmt.Fprintln(c.App.Writer, "Database initialization completed")
						return nil
					})
				},
			},
			newMigrateCommand(cfg),
		},
	}
}

func newMigrateCommand(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "database migrations",
		Subcommands: []*cli.Command{
			{
				Name:  "init",
				Usage: "create migration tables",
				Action: func(c *cli.Context) error {
					return withMigrators(c, cfg, func(migrators map[string]*migrate.Migrator) error {
						for moduleName, migrator := range migrators {
							fmt.Fprintf(c.App.Writer, "Initializing migrations for module: %s\n", moduleName)
							if err := migrator.Init(c.Context); err != nil {
								return err
							}
						}
						return nil
					})
				},
			},
			{
				Name:  "migrate",
				Usage: "migrate database",
				Action: func(c *cli.Context) error {
					return withMigrators(c, cfg, func(migrators map[string]*migrate.Migrator) error {
						for moduleName, migrator := range migrators {
							if err := migrator.Lock(c.Context); err != nil {
								return err
							}
							group, err := migrator.Migrate(c.Context)
							if unlockErr := migrator.Unlock(c.Context); unlockErr != nil && err == nil {
								err = unlockErr
							}
							if err != nil {
								return err
							}
							printGroup(c, moduleName, "Migrated", group)
						}
						return nil
					})
				},
			},
			{
				Name:  "rollback",
				Usage: "rollback the last migration group",
				Action: func(c *cli.Context) error {
					return withMigrators(c, cfg, func(migrators map[string]*migrate.Migrator) error {
						for moduleName, migrator := range migrators {
							if err := migrator.Lock(c.Context); err != nil {
								return err
							}
							group, err := migrator.Rollback(c.Context)
							if unlockErr := migrator.Unlock(c.Context); unlockErr != nil && err == nil {
								err = unlockErr
							}
							if err != nil {
								return err
							}
							printGroup(c, moduleName, "Rolled back", group)
						}
						return nil
					})
				},
			},
			{
				Name:  "lock",
				Usage: "lock migrations",
				Action: func(c *cli.Context) error {
					return withMigrators(c, cfg, func(migrators map[string]*migrate.Migrator) error {
						for _, migrator := range migrators {
							if err := migrator.Lock(c.Context); err != nil {
								return err
							}
						}
						return nil
					})
				},
			},
			{
				Name:  "unlock",
				Usage: "unlock migrations",
				Action: func(c *cli.Context) error {
					return withMigrators(c, cfg, func(migrators map[string]*migrate.Migrator) error {
						for _, migrator := range migrators {
							if err := migrator.Unlock(c.Context); err != nil {
								return err
							}
						}
						return nil
					})
				},
			},
			{
				Name:  "mark_applied",
				Usage: "mark pending migrations as applied without running them",
				Action: func(c *cli.Context) error {
					return withMigrators(c, cfg, func(migrators map[string]*migrate.Migrator) error {
						for moduleName, migrator := range migrators {
							group, err := migrator.Migrate(c.Context, migrate.WithNopMigration())
							if err != nil {
								return err
							}
							printGroup(c, moduleName, "Marked as applied", group)
						}
						return nil
					})
				},
			},
			{
				Name:      "create_go",
				Usage:     "create Go migration",
				ArgsUsage: "<module> <name...>",
				Action: func(c *cli.Context) error {
					return withMigrators(c, cfg, func(migrators map[string]*migrate.Migrator) error {
						moduleName := c.Args().First()
						migrator, ok := migrators[moduleName]
						if !ok {
							return fmt.Errorf("invalid module name: %s", moduleName)
						}

						name := strings.Join(c.Args().Tail(), "_")
						mf, err := migrator.CreateGoMigration(c.Context, name)
						if err != nil {
							return err
						}
						fmt.Fprintf(c.App.Writer, "Created migration for module %s: %s (%s)\n", moduleName, mf.Name, mf.Path)
						return nil
					})
				},
			},
			{
				Name:      "create_sql",
				Usage:     "create up and down SQL migrations",
				ArgsUsage: "<module> <name...>",
				Action: func(c *cli.Context) error {
					return withMigrators(c, cfg, func(migrators map[string]*migrate.Migrator) error {
						moduleName := c.Args().First()
						migrator, ok := migrators[moduleName]
						if !ok {
							return fmt.Errorf("invalid module name: %s", moduleName)
						}

						name := strings.Join(c.Args().Tail(), "_")
						files, err := migrator.CreateSQLMigrations(c.Context, name)
						if err != nil {
							return err
						}
						for _, mf := range files {
							fmt.Fprintf(c.App.Writer, "Created migration for module %s: %s (%s)\n", moduleName, mf.Name, mf.Path)
						}
						return nil
					})
				},
			},
			{
				Name:  "status",
				Usage: "print migrations status",
				Action: func(c *cli.Context) error {
					return withMigrators(c, cfg, func(migrators map[string]*migrate.Migrator) error {
						for moduleName, migrator := range migrators {
							ms, err := migrator.MigrationsWithStatus(c.Context)
							if err != nil {
								return err
							}
							fmt.Fprintf(c.App.Writer, "Migrations for module: %s\n", moduleName)
							fmt.Fprintf(c.App.Writer, "  %s\n", ms)
							fmt.Fprintf(c.App.Writer, "  Applied: %s\n", ms.Applied())
							fmt.Fprintf(c.App.Writer, "  Unapplied: %s\n", ms.Unapplied())
						}
						return nil
					})
				},
			},
		},
	}
}

func printGroup(c *cli.Context, moduleName, verb string, group *migrate.MigrationGroup) {
	if group.IsZero() {
		fmt.Fprintf(c.App.Writer, "Nothing to do for module: %s\n", moduleName)
		return
	}
	fmt.Fprintf(c.App.Writer, "%s module: %s to %s\n", verb, moduleName, group)
}

// createDatabase connects to the server's maintenance database and creates the
// database named in the DSN. An existing database is not an error.
func createDatabase(ctx context.Context, dbCfg config.DatabaseConfig) error {
	if dbCfg.Driver != config.DriverPostgres {
		return fmt.Errorf("database creation is only supported for postgres")
	}

	adminDSN, name, err := maintenanceDSN(dbCfg.DSN)
	if err != nil {
		return err
	}

	adminCfg := dbCfg
	adminCfg.DSN = adminDSN
	db, err := bundb.NewDB(ctx, adminCfg, nil, false)
	if err != nil {
		return err
	}
	defer db.Close()

	_, err = db.ExecContext(ctx, "CREATE DATABASE ?", bun.Ident(name))
	var pgErr pgdriver.Error
	if errors.As(err, &pgErr) && pgErr.Field('C') == pgDuplicateDatabase {
		log.Printf("%s already exists", name)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to create database %s: %w", name, err)
	}
	log.Printf("Created database %s", name)
	return nil
}

// maintenanceDSN returns dsn pointed at the "postgres" database, plus the
// database name dsn originally targeted.
func maintenanceDSN(dsn string) (string, string, error) {
	u, err := url.Parse(dsn)
	if err != nil {
		return "", "", fmt.Errorf("invalid database url: %w", err)
	}
	name := strings.TrimPrefix(u.Path, "/")
	if name == "" {
		return "", "", fmt.Errorf("could not set up database: no target database in url")
	}
	u.Path = "/postgres"
	return u.String(), name, nil
}
