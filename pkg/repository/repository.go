package repository

import (
	"context"
	"errors"

	"github.com/garnizeh/careerpages/pkg/models"
)

// Repository interfaces for domain entities. These are the public contracts
// consumers should depend on; concrete implementations live under internal/.
//
// Getters return (nil, nil) when the row does not exist.

var (
	// ErrSlugTaken is returned when a write violates the unique company slug.
	ErrSlugTaken = errors.New("company slug already taken")
	// ErrEmailTaken is returned when a write violates the unique user email.
	ErrEmailTaken = errors.New("email already registered")
)

type TenantRepo interface {
	// CreateTenant writes the company, its first user and the default
	// sections in a single transaction. IDs and timestamps are filled in.
	CreateTenant(ctx context.Context, c *models.Company, u *models.User, sections []models.PageSection) error
	// ReplaceTenant removes any company with the same slug and writes the
	// tenant, its sections and jobs in a single transaction.
	ReplaceTenant(ctx context.Context, c *models.Company, u *models.User, sections []models.PageSection, jobs []models.Job) error
}

type CompanyRepo interface {
	GetCompanyByID(ctx context.Context, id string) (*models.Company, error)
	GetCompanyBySlug(ctx context.Context, slug string) (*models.Company, error)
	UpdateCompany(ctx context.Context, c *models.Company) error
	DeleteCompany(ctx context.Context, id string) error
	CompanyStats(ctx context.Context, id string) (*models.CompanyStats, error)
}

type UserRepo interface {
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

type JobRepo interface {
	CreateJob(ctx context.Context, j *models.Job) error
	GetJob(ctx context.Context, id string) (*models.Job, error)
	UpdateJob(ctx context.Context, j *models.Job) error
	DeleteJob(ctx context.Context, id string) error
	ListJobsByCompany(ctx context.Context, companyID string, activeOnly bool) ([]models.Job, error)
}

type SectionRepo interface {
	CreateSection(ctx context.Context, s *models.PageSection) error
	GetSection(ctx context.Context, id string) (*models.PageSection, error)
	UpdateSection(ctx context.Context, s *models.PageSection) error
	DeleteSection(ctx context.Context, id string) error
	ListSectionsByCompany(ctx context.Context, companyID string, visibleOnly bool) ([]models.PageSection, error)
}

// Store groups every repository the careers service needs.
type Store interface {
	TenantRepo
	CompanyRepo
	UserRepo
	JobRepo
	SectionRepo
}
