package careers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/garnizeh/careerpages/internal/auth"
	"github.com/garnizeh/careerpages/pkg/models"
	"github.com/garnizeh/careerpages/pkg/repository"
)

// CompanyInput is the settings form. Optional fields left blank are cleared.
type CompanyInput struct {
	Name        string  `json:"name" validate:"notblank"`
	Slug        string  `json:"slug" validate:"required,slug"`
	Description *string `json:"description"`
	LogoURL     *string `json:"logoUrl" validate:"omitempty,url"`
	BannerURL   *string `json:"bannerUrl" validate:"omitempty,url"`
	VideoURL    *string `json:"videoUrl" validate:"omitempty,url"`
	ThemeColor  string  `json:"themeColor" validate:"omitempty,hexcolor"`
}

var companyMessages = map[string]string{
	"required":            "Name and slug are required",
	"notblank":            "Name and slug are required",
	"slug.slug":           "Slug can only contain lowercase letters, numbers, and hyphens",
	"url":                 "URLs must be absolute, e.g. https://example.com/logo.png",
	"themeColor.hexcolor": "Theme color must be a hex colour such as #4F46E5",
}

const errSlugTakenByOther = "This slug is already taken by another company"

func (s *Service) GetCompany(ctx context.Context, p *models.Principal, companyID string) (*models.Company, error) {
	if err := auth.Authorize(p, companyID); err != nil {
		return nil, err
	}

	c, err := s.store.GetCompanyByID(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("get company: %w", err)
	}
	if c == nil {
		return nil, ErrNotFound
	}
	return c, nil
}

// UpdateCompany saves the settings form. Callers compare the returned slug
// with the principal's to know whether the session must be re-issued.
func (s *Service) UpdateCompany(ctx context.Context, p *models.Principal, companyID string, in CompanyInput) (*models.Company, error) {
	if err := auth.Authorize(p, companyID); err != nil {
		return nil, err
	}

	in.Name = strings.TrimSpace(in.Name)
	in.Slug = strings.TrimSpace(in.Slug)
	in.Description = optional(in.Description)
	in.LogoURL = optional(in.LogoURL)
	in.BannerURL = optional(in.BannerURL)
	in.VideoURL = optional(in.VideoURL)
	in.ThemeColor = strings.TrimSpace(in.ThemeColor)
	if err := s.check(in, companyMessages); err != nil {
		return nil, err
	}

	c, err := s.store.GetCompanyByID(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("get company: %w", err)
	}
	if c == nil {
		return nil, ErrNotFound
	}

	if in.Slug != c.Slug {
		if reservedSlugs[in.Slug] {
			return nil, invalid("slug", "This slug is reserved. Please choose another.")
		}
		other, err := s.store.GetCompanyBySlug(ctx, in.Slug)
		if err != nil {
			return nil, fmt.Errorf("lookup slug: %w", err)
		}
		if other != nil && other.ID != companyID {
			return nil, conflict(errSlugTakenByOther)
		}
	}

	c.Name = in.Name
	c.Slug = in.Slug
	c.Description = in.Description
	c.LogoURL = in.LogoURL
	c.BannerURL = in.BannerURL
	c.VideoURL = in.VideoURL
	c.ThemeColor = in.ThemeColor
	if c.ThemeColor == "" {
		c.ThemeColor = models.DefaultThemeColor
	}

	if err := s.store.UpdateCompany(ctx, c); err != nil {
		if errors.Is(err, repository.ErrSlugTaken) {
			return nil, conflict(errSlugTakenByOther)
		}
		return nil, fmt.Errorf("update company: %w", err)
	}
	return c, nil
}
