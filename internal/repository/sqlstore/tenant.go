package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/garnizeh/careerpages/internal/db"
	"github.com/garnizeh/careerpages/pkg/models"
)

// tenantRows holds the generated values of a tenant write. They are copied
// onto the caller's structs only after the transaction commits.
type tenantRows struct {
	ts         int64
	companyID  string
	userID     string
	theme      string
	sectionIDs []string
	jobIDs     []string
	jobTimes   [][2]int64
}

func newTenantRows(c *models.Company, sections []models.PageSection, jobs []models.Job) *tenantRows {
	r := &tenantRows{
		ts:         now(),
		companyID:  newID(),
		userID:     newID(),
		theme:      c.ThemeColor,
		sectionIDs: make([]string, len(sections)),
		jobIDs:     make([]string, len(jobs)),
		jobTimes:   make([][2]int64, len(jobs)),
	}
	if r.theme == "" {
		r.theme = models.DefaultThemeColor
	}
	for i := range sections {
		r.sectionIDs[i] = newID()
	}
	for i := range jobs {
		r.jobIDs[i] = newID()
		created := jobs[i].Created
		if created == 0 {
			created = r.ts
		}
		r.jobTimes[i] = [2]int64{created, r.ts}
	}
	return r
}

// insert writes every row of the tenant through q. The caller's values are
// read, never written.
func (r *tenantRows) insert(ctx context.Context, q db.Querier, c *models.Company, u *models.User, sections []models.PageSection, jobs []models.Job) error {
	if _, err := q.Exec(ctx, `INSERT INTO companies (id, slug, name, description, logo_url, banner_url, video_url, theme_color, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.companyID, c.Slug, c.Name, nullString(c.Description), nullString(c.LogoURL), nullString(c.BannerURL), nullString(c.VideoURL), r.theme, r.ts, r.ts); err != nil {
		return fmt.Errorf("insert company: %w", uniqueErr(err))
	}

	if _, err := q.Exec(ctx, `INSERT INTO users (id, email, password_hash, name, company_id, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		r.userID, u.Email, u.PasswordHash, u.Name, r.companyID, r.ts); err != nil {
		return fmt.Errorf("insert user: %w", uniqueErr(err))
	}

	for i := range sections {
		sec := sections[i]
		sec.ID, sec.CompanyID = r.sectionIDs[i], r.companyID
		sec.Created, sec.Updated = r.ts, r.ts
		if err := insertSection(ctx, q, &sec); err != nil {
			return fmt.Errorf("insert section %s: %w", sec.SectionType, err)
		}
	}

	for i := range jobs {
		j := jobs[i]
		j.ID, j.CompanyID = r.jobIDs[i], r.companyID
		j.Created, j.Updated = r.jobTimes[i][0], r.jobTimes[i][1]
		if err := insertJob(ctx, q, &j); err != nil {
			return fmt.Errorf("insert job %q: %w", j.Title, err)
		}
	}
	return nil
}

// apply copies the committed values onto the caller's structs.
func (r *tenantRows) apply(c *models.Company, u *models.User, sections []models.PageSection, jobs []models.Job) {
	c.ID, c.ThemeColor, c.Created, c.Updated = r.companyID, r.theme, r.ts, r.ts
	u.ID, u.CompanyID, u.Created = r.userID, r.companyID, r.ts
	for i := range sections {
		sections[i].ID, sections[i].CompanyID = r.sectionIDs[i], r.companyID
		sections[i].Created, sections[i].Updated = r.ts, r.ts
	}
	for i := range jobs {
		jobs[i].ID, jobs[i].CompanyID = r.jobIDs[i], r.companyID
		jobs[i].Created, jobs[i].Updated = r.jobTimes[i][0], r.jobTimes[i][1]
	}
}

// CreateTenant inserts the company, its owning user and the default page
// sections in one transaction: either every row commits or none does.
func (s *Store) CreateTenant(ctx context.Context, c *models.Company, u *models.User, sections []models.PageSection) error {
	if c == nil || u == nil {
		return fmt.Errorf("company and user are required")
	}

	rows := newTenantRows(c, sections, nil)
	err := s.conn.WithTx(ctx, func(tx *db.Tx) error {
		return rows.insert(ctx, tx, c, u, sections, nil)
	})
	if err != nil {
		return err
	}

	rows.apply(c, u, sections, nil)
	s.logger.Info("tenant created", "company_id", rows.companyID, "slug", c.Slug)
	return nil
}

// ReplaceTenant deletes any company holding c.Slug and writes the tenant
// with its sections and jobs, all in one transaction. Jobs keep a non-zero
// Created.
func (s *Store) ReplaceTenant(ctx context.Context, c *models.Company, u *models.User, sections []models.PageSection, jobs []models.Job) error {
	if c == nil || u == nil {
		return fmt.Errorf("company and user are required")
	}

	rows := newTenantRows(c, sections, jobs)
	err := s.conn.WithTx(ctx, func(tx *db.Tx) error {
		var oldID string
		err := tx.QueryRow(ctx, `SELECT id FROM companies WHERE slug = ?`, c.Slug).Scan(&oldID)
		switch {
		case errors.Is(err, sql.ErrNoRows):
		case err != nil:
			return fmt.Errorf("lookup company: %w", err)
		default:
			if _, err := tx.Exec(ctx, `DELETE FROM companies WHERE id = ?`, oldID); err != nil {
				return fmt.Errorf("delete company: %w", err)
			}
		}
		return rows.insert(ctx, tx, c, u, sections, jobs)
	})
	if err != nil {
		return err
	}

	rows.apply(c, u, sections, jobs)
	s.logger.Info("tenant replaced", "company_id", rows.companyID, "slug", c.Slug, "jobs", len(jobs))
	return nil
}
