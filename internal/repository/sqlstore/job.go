package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/garnizeh/careerpages/internal/db"
	"github.com/garnizeh/careerpages/pkg/models"
)

const jobColumns = `id, company_id, title, description, location, job_type, department, is_active, created_at, updated_at`

func scanJob(row interface{ Scan(...any) error }) (*models.Job, error) {
	var (
		j    models.Job
		dept sql.NullString
	)
	if err := row.Scan(&j.ID, &j.CompanyID, &j.Title, &j.Description, &j.Location, &j.JobType, &dept, &j.IsActive, &j.Created, &j.Updated); err != nil {
		return nil, err
	}
	j.Department = stringPtr(dept)
	return &j, nil
}

// CreateJob assigns the id. A zero Created is set to now; seeds may pass a
// back-dated value.
func (s *Store) CreateJob(ctx context.Context, j *models.Job) error {
	if j == nil {
		return fmt.Errorf("job is nil")
	}

	ts := now()
	if j.Created == 0 {
		j.Created = ts
	}
	j.Updated = ts
	j.ID = newID()

	if err := insertJob(ctx, s.conn, j); err != nil {
		j.ID = ""
		return err
	}
	return nil
}

func insertJob(ctx context.Context, q db.Querier, j *models.Job) error {
	_, err := q.Exec(ctx, `INSERT INTO jobs (`+jobColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		j.ID, j.CompanyID, j.Title, j.Description, j.Location, j.JobType, nullString(j.Department), j.IsActive, j.Created, j.Updated)
	return err
}

func (s *Store) GetJob(ctx context.Context, id string) (*models.Job, error) {
	j, err := scanJob(s.conn.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return j, nil
}

// UpdateJob never touches company_id: ownership cannot move between tenants.
func (s *Store) UpdateJob(ctx context.Context, j *models.Job) error {
	if j == nil {
		return fmt.Errorf("job is nil")
	}

	ts := now()
	_, err := s.conn.Exec(ctx, `UPDATE jobs SET title = ?, description = ?, location = ?, job_type = ?, department = ?, is_active = ?, updated_at = ? WHERE id = ?`,
		j.Title, j.Description, j.Location, j.JobType, nullString(j.Department), j.IsActive, ts, j.ID)
	if err != nil {
		return err
	}
	j.Updated = ts
	return nil
}

func (s *Store) DeleteJob(ctx context.Context, id string) error {
	_, err := s.conn.Exec(ctx, `DELETE FROM jobs WHERE id = ?`, id)
	return err
}

// ListJobsByCompany returns newest first.
func (s *Store) ListJobsByCompany(ctx context.Context, companyID string, activeOnly bool) ([]models.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE company_id = ?`
	args := []any{companyID}
	if activeOnly {
		query += ` AND is_active = ?`
		args = append(args, true)
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := s.conn.QueryRows(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Job{}
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *j)
	}

	return out, rows.Err()
}
