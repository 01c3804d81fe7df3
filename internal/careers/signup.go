package careers

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/garnizeh/careerpages/internal/auth"
	"github.com/garnizeh/careerpages/internal/sections"
	"github.com/garnizeh/careerpages/pkg/models"
	"github.com/garnizeh/careerpages/pkg/repository"
)

type SignupInput struct {
	Name        string `json:"name" validate:"notblank"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	CompanyName string `json:"companyName" validate:"notblank"`
	CompanySlug string `json:"companySlug" validate:"required,slug"`
}

var signupMessages = map[string]string{
	"required":         "All fields are required",
	"notblank":         "All fields are required",
	"email.email":      "Invalid email address",
	"password.min":     "Password must be at least 8 characters",
	"companySlug.slug": "Company slug can only contain lowercase letters, numbers, and hyphens",
}

// SignupResult is the tenant created by Signup and the principal of its
// first user.
type SignupResult struct {
	Company   *models.Company   `json:"company"`
	User      *models.User      `json:"user"`
	Principal *models.Principal `json:"-"`
}

const (
	errEmailRegistered = "Email already registered"
	errSlugTaken       = "Company URL slug already taken. Please choose another."
)

// Signup creates a company, its first user and the default page sections
// in one transaction.
func (s *Service) Signup(ctx context.Context, in SignupInput) (*SignupResult, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.CompanyName = strings.TrimSpace(in.CompanyName)
	in.CompanySlug = strings.TrimSpace(in.CompanySlug)

	if err := s.check(in, signupMessages); err != nil {
		return nil, err
	}
	// bcrypt only reads the first 72 bytes.
	if len(in.Password) > auth.MaxPasswordBytes {
		return nil, invalid("password", "Password must be at most 72 bytes")
	}
	if reservedSlugs[in.CompanySlug] {
		return nil, invalid("companySlug", "This company slug is reserved. Please choose another.")
	}

	existingUser, err := s.store.GetUserByEmail(ctx, in.Email)
	if err != nil {
		return nil, fmt.Errorf("lookup email: %w", err)
	}
	if existingUser != nil {
		return nil, conflict(errEmailRegistered)
	}
	existingCompany, err := s.store.GetCompanyBySlug(ctx, in.CompanySlug)
	if err != nil {
		return nil, fmt.Errorf("lookup slug: %w", err)
	}
	if existingCompany != nil {
		return nil, conflict(errSlugTaken)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	logo := placeholderLogo(in.CompanyName)
	company := &models.Company{
		Slug:       in.CompanySlug,
		Name:       in.CompanyName,
		LogoURL:    &logo,
		ThemeColor: models.DefaultThemeColor,
	}
	user := &models.User{Name: in.Name, Email: in.Email, PasswordHash: hash}

	defaults, err := defaultSections(in.CompanyName)
	if err != nil {
		return nil, err
	}

	// the unique constraints still guard against a concurrent signup that
	// passed the checks above
	if err := s.store.CreateTenant(ctx, company, user, defaults); err != nil {
		switch {
		case errors.Is(err, repository.ErrEmailTaken):
			return nil, conflict(errEmailRegistered)
		case errors.Is(err, repository.ErrSlugTaken):
			return nil, conflict(errSlugTaken)
		}
		return nil, fmt.Errorf("create tenant: %w", err)
	}

	s.logger.Info("signup", "company_id", company.ID, "slug", company.Slug)
	return &SignupResult{
		Company:   company,
		User:      user,
		Principal: &models.Principal{UserID: user.ID, CompanyID: company.ID, CompanySlug: company.Slug},
	}, nil
}

func placeholderLogo(name string) string {
	return "https://via.placeholder.com/200x60/4F46E5/FFFFFF?text=" + strings.ReplaceAll(url.QueryEscape(name), "+", "%20")
}

func defaultSections(companyName string) ([]models.PageSection, error) {
	about, err := sections.Encode(sections.AboutContent{
		Text: fmt.Sprintf("Welcome to %s! We're building something amazing.", companyName),
	})
	if err != nil {
		return nil, err
	}
	benefits, err := sections.Encode(sections.BenefitsContent{Benefits: []sections.Benefit{
		{Icon: "🏥", Title: "Health Insurance", Description: "Comprehensive coverage"},
		{Icon: "💰", Title: "Competitive Salary", Description: "Market-leading compensation"},
		{Icon: "🏖️", Title: "Flexible PTO", Description: "Take time off when you need it"},
	}})
	if err != nil {
		return nil, err
	}

	return []models.PageSection{
		{SectionType: sections.AboutUs, Title: "About " + companyName, Content: about, Order: 1, IsVisible: true},
		{SectionType: sections.Benefits, Title: "Benefits & Perks", Content: benefits, Order: 2, IsVisible: true},
	}, nil
}
