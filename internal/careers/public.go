package careers

import (
	"context"
	"fmt"

	"github.com/garnizeh/careerpages/pkg/models"
)

// ResolveCompanyBySlug is an exact, case-sensitive lookup.
func (s *Service) ResolveCompanyBySlug(ctx context.Context, slug string) (*models.Company, error) {
	if slug == "" {
		return nil, ErrNotFound
	}
	c, err := s.store.GetCompanyBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("resolve company: %w", err)
	}
	if c == nil {
		return nil, ErrNotFound
	}
	return c, nil
}

// ResolveVisibleSections returns visible sections by ascending order.
func (s *Service) ResolveVisibleSections(ctx context.Context, companyID string) ([]models.PageSection, error) {
	out, err := s.store.ListSectionsByCompany(ctx, companyID, true)
	if err != nil {
		return nil, fmt.Errorf("resolve sections: %w", err)
	}
	return out, nil
}

// ResolveActiveJobs returns active jobs, newest first.
func (s *Service) ResolveActiveJobs(ctx context.Context, companyID string) ([]models.Job, error) {
	out, err := s.store.ListJobsByCompany(ctx, companyID, true)
	if err != nil {
		return nil, fmt.Errorf("resolve jobs: %w", err)
	}
	return out, nil
}

// ResolveJobByID returns ErrNotFound for a missing job, a job owned by
// another company and an inactive job alike.
func (s *Service) ResolveJobByID(ctx context.Context, companyID, jobID string) (*models.Job, error) {
	j, err := s.store.GetJob(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("resolve job: %w", err)
	}
	if j == nil || j.CompanyID != companyID || !j.IsActive {
		return nil, ErrNotFound
	}
	return j, nil
}

// CareersPage is the read model of a public careers page.
type CareersPage struct {
	Company  *models.Company      `json:"company"`
	Sections []models.PageSection `json:"sections"`
	Jobs     []models.Job         `json:"jobs"`
	Facets   Facets               `json:"facets"`
	Filter   JobFilter            `json:"filter"`
	Total    int                  `json:"total"`
	Shown    int                  `json:"shown"`
	Preview  bool                 `json:"preview"`
}

// JobPage is the read model of a public job detail page.
type JobPage struct {
	Company *models.Company `json:"company"`
	Job     *models.Job     `json:"job"`
	Preview bool            `json:"preview"`
}

// previewing reports whether the viewer is signed in to the company whose
// page is shown.
func previewing(viewer *models.Principal, companyID string) bool {
	return viewer != nil && viewer.CompanyID == companyID
}

// CareersPage assembles the public page for slug. viewer may be nil.
func (s *Service) CareersPage(ctx context.Context, slug string, viewer *models.Principal, f JobFilter) (*CareersPage, error) {
	c, err := s.ResolveCompanyBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	secs, err := s.ResolveVisibleSections(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	jobs, err := s.ResolveActiveJobs(ctx, c.ID)
	if err != nil {
		return nil, err
	}

	shown := f.Apply(jobs)
	return &CareersPage{
		Company:  c,
		Sections: secs,
		Jobs:     shown,
		Facets:   BuildFacets(jobs),
		Filter:   f,
		Total:    len(jobs),
		Shown:    len(shown),
		Preview:  previewing(viewer, c.ID),
	}, nil
}

func (s *Service) JobPage(ctx context.Context, slug, jobID string, viewer *models.Principal) (*JobPage, error) {
	c, err := s.ResolveCompanyBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	j, err := s.ResolveJobByID(ctx, c.ID, jobID)
	if err != nil {
		return nil, err
	}
	return &JobPage{Company: c, Job: j, Preview: previewing(viewer, c.ID)}, nil
}
