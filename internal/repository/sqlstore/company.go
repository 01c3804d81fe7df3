package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/garnizeh/careerpages/pkg/models"
)

const companyColumns = `id, slug, name, description, logo_url, banner_url, video_url, theme_color, created_at, updated_at`

func scanCompany(row interface{ Scan(...any) error }) (*models.Company, error) {
	var (
		c                         models.Company
		desc, logo, banner, video sql.NullString
	)
	if err := row.Scan(&c.ID, &c.Slug, &c.Name, &desc, &logo, &banner, &video, &c.ThemeColor, &c.Created, &c.Updated); err != nil {
		return nil, err
	}
	c.Description = stringPtr(desc)
	c.LogoURL = stringPtr(logo)
	c.BannerURL = stringPtr(banner)
	c.VideoURL = stringPtr(video)
	return &c, nil
}

func (s *Store) GetCompanyByID(ctx context.Context, id string) (*models.Company, error) {
	c, err := scanCompany(s.conn.QueryRow(ctx, `SELECT `+companyColumns+` FROM companies WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return c, nil
}

// GetCompanyBySlug is an exact, case-sensitive match.
func (s *Store) GetCompanyBySlug(ctx context.Context, slug string) (*models.Company, error) {
	c, err := scanCompany(s.conn.QueryRow(ctx, `SELECT `+companyColumns+` FROM companies WHERE slug = ?`, slug))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return c, nil
}

func (s *Store) UpdateCompany(ctx context.Context, c *models.Company) error {
	if c == nil {
		return fmt.Errorf("company is nil")
	}
	if c.ThemeColor == "" {
		c.ThemeColor = models.DefaultThemeColor
	}

	ts := now()
	_, err := s.conn.Exec(ctx, `UPDATE companies SET slug = ?, name = ?, description = ?, logo_url = ?, banner_url = ?, video_url = ?, theme_color = ?, updated_at = ? WHERE id = ?`,
		c.Slug, c.Name, nullString(c.Description), nullString(c.LogoURL), nullString(c.BannerURL), nullString(c.VideoURL), c.ThemeColor, ts, c.ID)
	if err != nil {
		return uniqueErr(err)
	}
	c.Updated = ts
	return nil
}

// DeleteCompany removes the tenant; users, jobs and sections go with it
// through ON DELETE CASCADE.
func (s *Store) DeleteCompany(ctx context.Context, id string) error {
	_, err := s.conn.Exec(ctx, `DELETE FROM companies WHERE id = ?`, id)
	return err
}

func (s *Store) CompanyStats(ctx context.Context, id string) (*models.CompanyStats, error) {
	var st models.CompanyStats
	row := s.conn.QueryRow(ctx, `SELECT
		(SELECT COUNT(*) FROM jobs WHERE company_id = ?),
		(SELECT COUNT(*) FROM jobs WHERE company_id = ? AND is_active = ?),
		(SELECT COUNT(*) FROM page_sections WHERE company_id = ?)`, id, id, true, id)
	if err := row.Scan(&st.TotalJobs, &st.ActiveJobs, &st.PageSections); err != nil {
		return nil, err
	}
	return &st, nil
}
