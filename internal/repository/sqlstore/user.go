package sqlstore

import (
	"context"
	"database/sql"
	"errors"

	"github.com/garnizeh/careerpages/pkg/models"
)

func (s *Store) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return s.getUser(ctx, `SELECT id, email, password_hash, name, company_id, created_at FROM users WHERE id = ?`, id)
}

// GetUserByEmail matches the address exactly as stored.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getUser(ctx, `SELECT id, email, password_hash, name, company_id, created_at FROM users WHERE email = ?`, email)
}

func (s *Store) getUser(ctx context.Context, query string, arg string) (*models.User, error) {
	var u models.User
	row := s.conn.QueryRow(ctx, query, arg)
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.CompanyID, &u.Created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}

		return nil, err
	}

	return &u, nil
}
