package careers

import (
	"context"
	"fmt"

	"github.com/garnizeh/careerpages/pkg/models"
)

type Dashboard struct {
	Company     *models.Company     `json:"company"`
	Stats       models.CompanyStats `json:"stats"`
	CareersPath string              `json:"careersPath"`
}

// DashboardJob is a job row with its display status.
type DashboardJob struct {
	models.Job
	Status string `json:"status"`
}

// CareersPath is the public URL path of a company's careers page.
func CareersPath(slug string) string {
	return "/" + slug + "/careers"
}

func (s *Service) Dashboard(ctx context.Context, p *models.Principal) (*Dashboard, error) {
	if p == nil {
		return nil, ErrUnauthenticated
	}
	c, err := s.GetCompany(ctx, p, p.CompanyID)
	if err != nil {
		return nil, err
	}
	st, err := s.store.CompanyStats(ctx, c.ID)
	if err != nil {
		return nil, fmt.Errorf("company stats: %w", err)
	}
	return &Dashboard{Company: c, Stats: *st, CareersPath: CareersPath(c.Slug)}, nil
}

// DashboardJobs lists every job, inactive included, with its status label.
func (s *Service) DashboardJobs(ctx context.Context, p *models.Principal) ([]DashboardJob, error) {
	jobs, err := s.ListJobs(ctx, p)
	if err != nil {
		return nil, err
	}
	out := make([]DashboardJob, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, DashboardJob{Job: j, Status: j.Status()})
	}
	return out, nil
}
