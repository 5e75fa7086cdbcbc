package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/spf13/pflag"
)

const storagePathFlag = "storage-path"

func main() {
	storagePath, migrationsPath := getFlagsValues()
	applyMigrations(storagePath, migrationsPath)
}

type migrateLogger struct {
	logger *slog.Logger
}

func (ml migrateLogger) Printf(format string, v ...any) {
	ml.logger.Info(fmt.Sprintf(format, v...))
}

func (ml migrateLogger) Verbose() bool {
	return true
}

func getFlagsValues() (storage, migrations string) {
	storagePath := pflag.StringP(
		storagePathFlag, "s", "", "postgres DSN without scheme",
	)
	migrationsPath := pflag.StringP(
		"migrations-path", "m", "migrations", "migrations directory",
	)
	pflag.Parse()

	if *storagePath == "" {
		slog.Error(fmt.Sprintf("--%s flag: required", storagePathFlag))
		fallDown()
	}
	return *storagePath, *migrationsPath
}

func applyMigrations(storagePath, migrationsPath string) {
	m, err := migrate.New(
		fmt.Sprintf("file://%s", migrationsPath),
		fmt.Sprintf("pgx5://%s", storagePath),
	)
	if err != nil {
		slog.Error("failed to migrate", "err", err)
		fallDown()
	}

	m.Log = migrateLogger{slog.Default()}

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			m.Log.Printf("no migrations to apply")
			return
		}
		slog.Error("failed to migrate", "err", err)
		fallDown()
	}
	m.Log.Printf("migrations applied")
}

func fallDown() {
	os.Exit(2)
}
