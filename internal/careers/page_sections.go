package careers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/garnizeh/careerpages/internal/auth"
	"github.com/garnizeh/careerpages/internal/sections"
	"github.com/garnizeh/careerpages/pkg/models"
)

// SectionInput is the body of section create and update. Content may be a
// JSON object or a string holding one. Order and IsVisible keep their
// current values on update when omitted.
type SectionInput struct {
	CompanyID   *string         `json:"companyId"`
	SectionType string          `json:"sectionType" validate:"notblank"`
	Title       string          `json:"title" validate:"notblank"`
	Content     json.RawMessage `json:"content"`
	Order       *int            `json:"order"`
	IsVisible   *bool           `json:"isVisible"`
}

var sectionMessages = map[string]string{
	"notblank": "Missing required fields",
}

const errContentJSON = "Content must be valid JSON"

// content checks the section type and normalizes and schema-checks the
// content document.
func (s *Service) content(ctx context.Context, sectionType string, raw []byte) ([]byte, error) {
	if !sections.Valid(sectionType) {
		return nil, invalid("sectionType", fmt.Sprintf("Unknown section type %q", sectionType))
	}
	if len(strings.TrimSpace(string(raw))) == 0 || string(raw) == "null" || string(raw) == `""` {
		return nil, invalid("content", "Missing required fields")
	}

	doc, err := sections.Normalize(raw)
	if err != nil {
		return nil, invalid("content", errContentJSON)
	}
	if err := s.schemas.Validate(ctx, sectionType, doc); err != nil {
		var se *sections.SchemaError
		if errors.As(err, &se) {
			return nil, invalid("content", se.Error())
		}
		if errors.Is(err, sections.ErrInvalidJSON) {
			return nil, invalid("content", errContentJSON)
		}
		return nil, err
	}
	return doc, nil
}

// ListSections returns every section of the caller's company, hidden ones
// included, in display order.
func (s *Service) ListSections(ctx context.Context, p *models.Principal) ([]models.PageSection, error) {
	if p == nil {
		return nil, ErrUnauthenticated
	}
	out, err := s.store.ListSectionsByCompany(ctx, p.CompanyID, false)
	if err != nil {
		return nil, fmt.Errorf("list sections: %w", err)
	}
	return out, nil
}

func (s *Service) CreateSection(ctx context.Context, p *models.Principal, in SectionInput) (*models.PageSection, error) {
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

	in.SectionType = strings.TrimSpace(in.SectionType)
	in.Title = strings.TrimSpace(in.Title)
	if err := s.check(in, sectionMessages); err != nil {
		return nil, err
	}
	doc, err := s.content(ctx, in.SectionType, in.Content)
	if err != nil {
		return nil, err
	}

	sec := &models.PageSection{
		CompanyID:   companyID,
		SectionType: in.SectionType,
		Title:       in.Title,
		Content:     doc,
		Order:       1,
		IsVisible:   true,
	}
	if in.Order != nil && *in.Order != 0 {
		sec.Order = *in.Order
	}
	if in.IsVisible != nil {
		sec.IsVisible = *in.IsVisible
	}

	if err := s.store.CreateSection(ctx, sec); err != nil {
		return nil, fmt.Errorf("create section: %w", err)
	}
	return sec, nil
}

func (s *Service) ownedSection(ctx context.Context, p *models.Principal, sectionID string) (*models.PageSection, error) {
	if p == nil {
		return nil, ErrUnauthenticated
	}
	sec, err := s.store.GetSection(ctx, sectionID)
	if err != nil {
		return nil, fmt.Errorf("get section: %w", err)
	}
	if sec == nil {
		return nil, ErrNotFound
	}
	if err := auth.Authorize(p, sec.CompanyID); err != nil {
		return nil, err
	}
	return sec, nil
}

func (s *Service) GetSection(ctx context.Context, p *models.Principal, sectionID string) (*models.PageSection, error) {
	return s.ownedSection(ctx, p, sectionID)
}

func (s *Service) UpdateSection(ctx context.Context, p *models.Principal, sectionID string, in SectionInput) (*models.PageSection, error) {
	sec, err := s.ownedSection(ctx, p, sectionID)
	if err != nil {
		return nil, err
	}
	if in.CompanyID != nil && *in.CompanyID != sec.CompanyID {
		return nil, ErrUnauthorized
	}

	in.SectionType = strings.TrimSpace(in.SectionType)
	in.Title = strings.TrimSpace(in.Title)
	if err := s.check(in, sectionMessages); err != nil {
		return nil, err
	}
	if in.SectionType != sec.SectionType {
		return nil, invalid("sectionType", "Section type cannot be changed after creation")
	}
	doc, err := s.content(ctx, sec.SectionType, in.Content)
	if err != nil {
		return nil, err
	}

	sec.Title = in.Title
	sec.Content = doc
	if in.Order != nil {
		sec.Order = *in.Order
		if sec.Order == 0 {
			sec.Order = 1
		}
	}
	if in.IsVisible != nil {
		sec.IsVisible = *in.IsVisible
	}

	if err := s.store.UpdateSection(ctx, sec); err != nil {
		return nil, fmt.Errorf("update section: %w", err)
	}
	return sec, nil
}

func (s *Service) DeleteSection(ctx context.Context, p *models.Principal, sectionID string) error {
	sec, err := s.ownedSection(ctx, p, sectionID)
	if err != nil {
		return err
	}
	if err := s.store.DeleteSection(ctx, sec.ID); err != nil {
		return fmt.Errorf("delete section: %w", err)
	}
	return nil
}
