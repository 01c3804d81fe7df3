package careers

import (
	"context"
	"fmt"
	"strings"

	"github.com/garnizeh/careerpages/internal/auth"
	"github.com/garnizeh/careerpages/pkg/models"
)

// JobInput is the body of job create and update. CompanyID may be omitted;
// when present it must be the caller's company. IsActive keeps its current
// value on update when omitted.
type JobInput struct {
	CompanyID   *string `json:"companyId"`
	Title       string  `json:"title" validate:"notblank"`
	Description string  `json:"description" validate:"notblank"`
	Location    string  `json:"location" validate:"notblank"`
	JobType     string  `json:"jobType" validate:"notblank"`
	Department  *string `json:"department"`
	IsActive    *bool   `json:"isActive"`
}

var jobMessages = map[string]string{
	"notblank": "Missing required fields",
}

func (in *JobInput) normalize() {
	in.Title = strings.TrimSpace(in.Title)
	in.Location = strings.TrimSpace(in.Location)
	in.JobType = strings.TrimSpace(in.JobType)
	in.Department = optional(in.Department)
}

// ListJobs returns every job of the caller's company, inactive included,
// newest first.
func (s *Service) ListJobs(ctx context.Context, p *models.Principal) ([]models.Job, error) {
	if p == nil {
		return nil, ErrUnauthenticated
	}
	jobs, err := s.store.ListJobsByCompany(ctx, p.CompanyID, false)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	return jobs, nil
}

func (s *Service) CreateJob(ctx context.Context, p *models.Principal, in JobInput) (*models.Job, error) {
	if p == nil {
		return nil, ErrUnauthenticated
	}
	companyID := p.CompanyID
	if in.CompanyID != nil {
		companyID = *in.CompanyID
	}
	if err := auth.Authorize(p, companyID); err != nil {
		return nil, err
	}

	in.normalize()
	if err := s.check(in, jobMessages); err != nil {
		return nil, err
	}

	j := &models.Job{
		CompanyID:   companyID,
		Title:       in.Title,
		Description: in.Description,
		Location:    in.Location,
		JobType:     in.JobType,
		Department:  in.Department,
		IsActive:    true,
	}
	if in.IsActive != nil {
		j.IsActive = *in.IsActive
	}

	if err := s.store.CreateJob(ctx, j); err != nil {
		return nil, fmt.Errorf("create job: %w", err)
	}
	return j, nil
}

// ownedJob loads a job and checks it belongs to the caller.
func (s *Service) ownedJob(ctx context.Context, p *models.Principal, jobID string) (*models.Job, error) {
	if p == nil {
		return nil, ErrUnauthenticated
	}
	j, err := s.store.GetJob(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("get job: %w", err)
	}
	if j == nil {
		return nil, ErrNotFound
	}
	if err := auth.Authorize(p, j.CompanyID); err != nil {
		return nil, err
	}
	return j, nil
}

func (s *Service) GetJob(ctx context.Context, p *models.Principal, jobID string) (*models.Job, error) {
	return s.ownedJob(ctx, p, jobID)
}

func (s *Service) UpdateJob(ctx context.Context, p *models.Principal, jobID string, in JobInput) (*models.Job, error) {
	j, err := s.ownedJob(ctx, p, jobID)
	if err != nil {
		return nil, err
	}
	if in.CompanyID != nil && *in.CompanyID != j.CompanyID {
		return nil, ErrUnauthorized
	}

	in.normalize()
	if err := s.check(in, jobMessages); err != nil {
		return nil, err
	}

	j.Title = in.Title
	j.Description = in.Description
	j.Location = in.Location
	j.JobType = in.JobType
	j.Department = in.Department
	if in.IsActive != nil {
		j.IsActive = *in.IsActive
	}

	if err := s.store.UpdateJob(ctx, j); err != nil {
		return nil, fmt.Errorf("update job: %w", err)
	}
	return j, nil
}

func (s *Service) DeleteJob(ctx context.Context, p *models.Principal, jobID string) error {
	j, err := s.ownedJob(ctx, p, jobID)
	if err != nil {
		return err
	}
	if err := s.store.DeleteJob(ctx, j.ID); err != nil {
		return fmt.Errorf("delete job: %w", err)
	}
	return nil
}
