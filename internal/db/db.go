package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Dialect names the SQL flavour behind a DB.
type Dialect string

const (
	SQLite   Dialect = "sqlite"
	Postgres Dialect = "postgres"
)

// ErrUniqueViolation is matched (errors.Is) by errors returned from a write
// that broke a UNIQUE constraint, whatever the driver.
var ErrUniqueViolation = errors.New("unique constraint violation")

// Options tunes the connection pool.
type Options struct {
	MaxOpenConns int
}

// Querier is the subset shared by *DB and *Tx so repositories can run the
// same statements inside or outside a transaction.
type Querier interface {
	Exec(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRow(ctx context.Context, query string, args ...any) *sql.Row
	QueryRows(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// DB wraps the sql.DB for connection management
type DB struct {
	conn    *sql.DB
	dialect Dialect
}

// New opens a SQLite database (dsn is a file path or a file: URI).
func New(ctx context.Context, dsn string, opts *Options) (*DB, error) {
	return Open(ctx, SQLite, dsn, opts)
}

// Open creates a new DB connection for the given dialect and pings it.
func Open(ctx context.Context, dialect Dialect, dsn string, opts *Options) (*DB, error) {
	var (
		driver  string
		maxOpen int
	)
	if opts != nil {
		maxOpen = opts.MaxOpenConns
	}

	switch dialect {
	case SQLite:
		driver = "sqlite"
		dsn = withForeignKeys(dsn)
		// a single writer avoids SQLITE_BUSY and keeps :memory: databases
		// bound to one connection
		maxOpen = 1
	case Postgres:
		driver = "pgx"
	default:
		return nil, fmt.Errorf("unsupported dialect %q", dialect)
	}

	conn, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	if maxOpen > 0 {
		conn.SetMaxOpenConns(maxOpen)
	}
	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping db: %w", err)
	}
	return &DB{conn: conn, dialect: dialect}, nil
}

// withForeignKeys turns on FK enforcement (and so ON DELETE CASCADE) for
// every connection the pool opens.
func withForeignKeys(dsn string) string {
	if strings.Contains(dsn, "foreign_keys") {
		return dsn
	}
	if !strings.HasPrefix(dsn, "file:") {
		dsn = "file:" + dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=foreign_keys(1)"
}

// Close closes the DB connection
func (db *DB) Close() error {
	return db.conn.Close()
}

// Dialect reports which SQL flavour the connection speaks.
func (db *DB) Dialect() Dialect {
	return db.dialect
}

// Exec executes a query
func (db *DB) Exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	res, err := db.conn.ExecContext(ctx, rebind(db.dialect, query), args...)
	return res, translate(err)
}

// QueryRow executes a query that is expected to return at most one row
func (db *DB) QueryRow(ctx context.Context, query string, args ...any) *sql.Row {
	return db.conn.QueryRowContext(ctx, rebind(db.dialect, query), args...)
}

// QueryRows executes a query returning any number of rows
func (db *DB) QueryRows(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return db.conn.QueryContext(ctx, rebind(db.dialect, query), args...)
}

// GetConn returns the underlying sql.DB
func (db *DB) GetConn() *sql.DB {
	return db.conn
}

// Tx is a transaction speaking the same dialect as its DB.
type Tx struct {
	tx      *sql.Tx
	dialect Dialect
}

var _ Querier = (*DB)(nil)
var _ Querier = (*Tx)(nil)

func (t *Tx) Exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	res, err := t.tx.ExecContext(ctx, rebind(t.dialect, query), args...)
	return res, translate(err)
}

func (t *Tx) QueryRow(ctx context.Context, query string, args ...any) *sql.Row {
	return t.tx.QueryRowContext(ctx, rebind(t.dialect, query), args...)
}

func (t *Tx) QueryRows(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return t.tx.QueryContext(ctx, rebind(t.dialect, query), args...)
}

// WithTx runs fn inside a transaction. The transaction commits when fn
// returns nil and rolls back otherwise.
func (db *DB) WithTx(ctx context.Context, fn func(tx *Tx) error) error {
	sqlTx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(&Tx{tx: sqlTx, dialect: db.dialect}); err != nil {
		_ = sqlTx.Rollback()
		return err
	}
	if err := sqlTx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// rebind rewrites '?' placeholders to $n for postgres. Queries in this
// repository never carry a literal '?' inside string constants.
func rebind(d Dialect, query string) string {
	if d != Postgres || !strings.Contains(query, "?") {
		return query
	}
	var sb strings.Builder
	sb.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			sb.WriteByte('$')
			sb.WriteString(strconv.Itoa(n))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// UniqueError carries the driver message of a unique violation so callers
// can tell which constraint fired.
type UniqueError struct {
	Detail string
	err    error
}

func (e *UniqueError) Error() string { return e.err.Error() }
func (e *UniqueError) Unwrap() error { return e.err }
func (e *UniqueError) Is(target error) bool {
	return target == ErrUniqueViolation
}

func translate(err error) error {
	if err == nil {
		return nil
	}

	var se *sqlite.Error
	if errors.As(err, &se) {
		switch se.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return &UniqueError{Detail: se.Error(), err: err}
		case sqlite3.SQLITE_CONSTRAINT:
			if strings.Contains(se.Error(), "UNIQUE") {
				return &UniqueError{Detail: se.Error(), err: err}
			}
		}
		return err
	}

	var pe *pgconn.PgError
	if errors.As(err, &pe) && pe.Code == "23505" {
		return &UniqueError{Detail: pe.ConstraintName + " " + pe.Detail, err: err}
	}

	return err
}
