package sqlstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/garnizeh/careerpages/internal/db"
	"github.com/garnizeh/careerpages/pkg/models"
)

const sectionColumns = `id, company_id, section_type, title, content, sort_order, is_visible, created_at, updated_at`

func scanSection(row interface{ Scan(...any) error }) (*models.PageSection, error) {
	var (
		sec     models.PageSection
		content string
	)
	if err := row.Scan(&sec.ID, &sec.CompanyID, &sec.SectionType, &sec.Title, &content, &sec.Order, &sec.IsVisible, &sec.Created, &sec.Updated); err != nil {
		return nil, err
	}
	sec.Content = json.RawMessage(content)
	return &sec, nil
}

func insertSection(ctx context.Context, q db.Querier, sec *models.PageSection) error {
	_, err := q.Exec(ctx, `INSERT INTO page_sections (`+sectionColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sec.ID, sec.CompanyID, sec.SectionType, sec.Title, string(sec.Content), sec.Order, sec.IsVisible, sec.Created, sec.Updated)
	return err
}

func (s *Store) CreateSection(ctx context.Context, sec *models.PageSection) error {
	if sec == nil {
		return fmt.Errorf("section is nil")
	}

	ts := now()
	sec.ID = newID()
	sec.Created, sec.Updated = ts, ts
	if err := insertSection(ctx, s.conn, sec); err != nil {
		sec.ID = ""
		return err
	}
	return nil
}

func (s *Store) GetSection(ctx context.Context, id string) (*models.PageSection, error) {
	sec, err := scanSection(s.conn.QueryRow(ctx, `SELECT `+sectionColumns+` FROM page_sections WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return sec, nil
}

// UpdateSection leaves section_type and company_id as created.
func (s *Store) UpdateSection(ctx context.Context, sec *models.PageSection) error {
	if sec == nil {
		return fmt.Errorf("section is nil")
	}

	ts := now()
	_, err := s.conn.Exec(ctx, `UPDATE page_sections SET title = ?, content = ?, sort_order = ?, is_visible = ?, updated_at = ? WHERE id = ?`,
		sec.Title, string(sec.Content), sec.Order, sec.IsVisible, ts, sec.ID)
	if err != nil {
		return err
	}
	sec.Updated = ts
	return nil
}

func (s *Store) DeleteSection(ctx context.Context, id string) error {
	_, err := s.conn.Exec(ctx, `DELETE FROM page_sections WHERE id = ?`, id)
	return err
}

// ListSectionsByCompany orders by display order; equal orders fall back to
// creation time, then id, so the result is deterministic.
func (s *Store) ListSectionsByCompany(ctx context.Context, companyID string, visibleOnly bool) ([]models.PageSection, error) {
	query := `SELECT ` + sectionColumns + ` FROM page_sections WHERE company_id = ?`
	args := []any{companyID}
	if visibleOnly {
		query += ` AND is_visible = ?`
		args = append(args, true)
	}
	query += ` ORDER BY sort_order ASC, created_at ASC, id ASC`

	rows, err := s.conn.QueryRows(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.PageSection{}
	for rows.Next() {
		sec, err := scanSection(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *sec)
	}

	return out, rows.Err()
}
