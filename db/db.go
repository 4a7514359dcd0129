package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"quickbids/internal/apperror"
	"quickbids/internal/repository"
	"quickbids/models"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

func init() {
	// modernc registers itself as "sqlite", which sqlx does not know.
	sqlx.BindDriver(DriverSQLite, sqlx.QUESTION)
}

// Storage implements repository.Store on top of sqlx. Queries are written
// with ? placeholders and rebound for the active driver.
type Storage struct {
	db *sqlx.DB
	q  sqlx.ExtContext
}

var _ repository.Store = (*Storage)(nil)

func NewStorage(db *sqlx.DB) *Storage {
	return &Storage{db: db, q: db}
}

// Connect opens a pool for driver and verifies it with a ping.
func Connect(ctx context.Context, driver, dsn string) (*sqlx.DB, error) {
	switch driver {
	case DriverPostgres, DriverSQLite:
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	conn, err := sqlx.ConnectContext(ctx, driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", driver, err)
	}
	if driver == DriverSQLite {
		// one writer; also keeps in-memory databases alive on a single connection
		conn.SetMaxOpenConns(1)
	}
	return conn, nil
}

// WithTx runs fn against a Storage bound to a new transaction. Calls made
// on a Storage that is already transactional reuse the open transaction.
func (s *Storage) WithTx(ctx context.Context, fn func(tx repository.Repository) error) error {
	if _, ok := s.q.(*sqlx.Tx); ok {
		return fn(s)
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(&Storage{db: s.db, q: tx}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return errors.Join(err, fmt.Errorf("rollback: %w", rbErr))
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func (s *Storage) get(ctx context.Context, dest any, query string, args ...any) error {
	return sqlx.GetContext(ctx, s.q, dest, s.q.Rebind(query), args...)
}

func (s *Storage) selectAll(ctx context.Context, dest any, query string, args ...any) error {
	return sqlx.SelectContext(ctx, s.q, dest, s.q.Rebind(query), args...)
}

func (s *Storage) exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return s.q.ExecContext(ctx, s.q.Rebind(query), args...)
}

// insert runs an INSERT ... RETURNING id statement.
func (s *Storage) insert(ctx context.Context, query string, args ...any) (int64, error) {
	var id int64
	err := s.q.QueryRowxContext(ctx, s.q.Rebind(query), args...).Scan(&id)
	return id, err
}

// execOne runs a statement that must touch exactly the row identified by id.
func (s *Storage) execOne(ctx context.Context, resource string, id int64, query string, args ...any) error {
	res, err := s.exec(ctx, query, args...)
	if err != nil {
		return translate(err, resource, id)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s %d rows affected: %w", resource, id, err)
	}
	if n == 0 {
		return apperror.NotFound(resource, id)
	}
	return nil
}

// paginate renders the LIMIT/OFFSET tail for p.
func (s *Storage) paginate(p models.Page) (string, []any) {
	switch {
	case p.Limit > 0:
		return " LIMIT ? OFFSET ?", []any{p.Limit, p.Offset}
	case p.Offset > 0 && s.q.DriverName() == DriverSQLite:
		return " LIMIT -1 OFFSET ?", []any{p.Offset}
	case p.Offset > 0:
		return " OFFSET ?", []any{p.Offset}
	default:
		return "", nil
	}
}

// conditions accumulates AND-ed WHERE clauses.
type conditions struct {
	clauses []string
	args    []any
}

func (c *conditions) add(clause string, arg any) {
	c.clauses = append(c.clauses, clause)
	c.args = append(c.args, arg)
}

func (c *conditions) String() string {
	if len(c.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(c.clauses, " AND ")
}

// translate maps driver errors onto the apperror taxonomy.
func translate(err error, resource string, id any) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return apperror.NotFound(resource, id)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code.Name() {
		case "unique_violation":
			return apperror.Conflict(fmt.Sprintf("%s already exists", resource))
		case "foreign_key_violation":
			return apperror.NotFound("referenced "+resource+" row", id)
		}
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		switch sqliteConstraint(liteErr) {
		case "unique":
			return apperror.Conflict(fmt.Sprintf("%s already exists", resource))
		case "foreign_key":
			return apperror.NotFound("referenced "+resource+" row", id)
		}
	}

	return fmt.Errorf("%s: %w", resource, err)
}

// sqliteConstraint classifies a constraint failure, falling back to the
// message when extended result codes are off.
func sqliteConstraint(e *sqlite.Error) string {
	switch e.Code() {
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		return "unique"
	case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
		return "foreign_key"
	case sqlite3.SQLITE_CONSTRAINT:
		msg := e.Error()
		switch {
		case strings.Contains(msg, "UNIQUE constraint"):
			return "unique"
		case strings.Contains(msg, "FOREIGN KEY constraint"):
			return "foreign_key"
		}
	}
	return ""
}
