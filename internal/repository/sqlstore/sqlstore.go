package sqlstore

import (
	"database/sql"
	"errors"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/garnizeh/careerpages/internal/db"
	"github.com/garnizeh/careerpages/pkg/repository"
	"github.com/google/uuid"
)

// Store implements the repository interfaces on top of the internal DB
// wrapper. The SQL is written once with '?' placeholders and runs on both
// SQLite and Postgres.
type Store struct {
	conn   *db.DB
	logger *slog.Logger
}

// Ensure Store implements the public interfaces.
var _ repository.Store = (*Store)(nil)

func New(conn *db.DB, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(os.Stderr, nil))
	}
	return &Store{conn: conn, logger: logger}
}

func now() int64 {
	return time.Now().UTC().UnixMilli()
}

func newID() string {
	return uuid.NewString()
}

// uniqueErr maps a unique violation onto the repository sentinel for the
// column that fired, leaving other errors untouched.
func uniqueErr(err error) error {
	var ue *db.UniqueError
	if !errors.As(err, &ue) {
		return err
	}
	switch {
	case strings.Contains(ue.Detail, "slug"):
		return repository.ErrSlugTaken
	case strings.Contains(ue.Detail, "email"):
		return repository.ErrEmailTaken
	}
	return err
}

func nullString(s *string) sql.NullString {
	if s == nil || *s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	v := ns.String
	return &v
}
