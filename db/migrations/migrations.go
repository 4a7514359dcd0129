package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/pressly/goose/v3"
)

//go:embed postgres/*.sql sqlite/*.sql
var migrationFS embed.FS

// dialects maps a database/sql driver name to the goose dialect and the
// embedded directory holding its migrations.
var dialects = map[string]struct{ dialect, dir string }{
	"postgres": {"postgres", "postgres"},
	"sqlite":   {"sqlite3", "sqlite"},
}

// Run applies every pending migration for driver.
func Run(ctx context.Context, db *sql.DB, driver string, logger *slog.Logger) error {
	dir, err := prepare(driver, logger)
	if err != nil {
		return err
	}

	logger.Info("running migrations", slog.String("driver", driver), slog.String("dir", dir))
	if err := goose.UpContext(ctx, db, dir); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}

// Version reports the latest applied migration.
func Version(ctx context.Context, db *sql.DB, driver string, logger *slog.Logger) (int64, error) {
	if _, err := prepare(driver, logger); err != nil {
		return 0, err
	}
	return goose.GetDBVersionContext(ctx, db)
}

func prepare(driver string, logger *slog.Logger) (string, error) {
	d, ok := dialects[driver]
	if !ok {
		return "", fmt.Errorf("no migrations for driver %q", driver)
	}
	if logger == nil {
		logger = slog.Default()
	}

	goose.SetBaseFS(migrationFS)
	goose.SetLogger(gooseLogger{logger})
	if err := goose.SetDialect(d.dialect); err != nil {
		return "", fmt.Errorf("set dialect: %w", err)
	}
	return d.dir, nil
}

// gooseLogger routes goose output through slog.
type gooseLogger struct {
	l *slog.Logger
}

func (g gooseLogger) Printf(format string, v ...any) {
	g.l.Info(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (g gooseLogger) Fatalf(format string, v ...any) {
	g.l.Error(strings.TrimSpace(fmt.Sprintf(format, v...)))
	os.Exit(1)
}
