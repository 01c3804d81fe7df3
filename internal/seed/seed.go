// Package seed loads a sample tenant from YAML into the store.
package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"strings"
	"text/template"
	"time"

	"github.com/garnizeh/careerpages/internal/auth"
	"github.com/garnizeh/careerpages/internal/sections"
	"github.com/garnizeh/careerpages/pkg/models"
	"github.com/garnizeh/careerpages/pkg/repository"
	"gopkg.in/yaml.v3"
)

type Tenant struct {
	Company struct {
		Slug        string `yaml:"slug"`
		Name        string `yaml:"name"`
		Description string `yaml:"description"`
		LogoURL     string `yaml:"logoUrl"`
		BannerURL   string `yaml:"bannerUrl"`
		VideoURL    string `yaml:"videoUrl"`
		ThemeColor  string `yaml:"themeColor"`
	} `yaml:"company"`
	User struct {
		Email    string `yaml:"email"`
		Name     string `yaml:"name"`
		Password string `yaml:"password"`
	} `yaml:"user"`
	Sections            []Section `yaml:"sections"`
	DescriptionTemplate string    `yaml:"descriptionTemplate"`
	Jobs                []Job     `yaml:"jobs"`
}

type Section struct {
	Type    string         `yaml:"type"`
	Title   string         `yaml:"title"`
	Order   int            `yaml:"order"`
	Visible *bool          `yaml:"visible"`
	Content map[string]any `yaml:"content"`
}

type Job struct {
	Title           string `yaml:"title"`
	WorkPolicy      string `yaml:"workPolicy"`
	Location        string `yaml:"location"`
	Department      string `yaml:"department"`
	EmploymentType  string `yaml:"employmentType"`
	ExperienceLevel string `yaml:"experienceLevel"`
	SalaryRange     string `yaml:"salaryRange"`
	Description     string `yaml:"description"`
	PostedDaysAgo   int    `yaml:"postedDaysAgo"`
	Active          *bool  `yaml:"active"`
}

// Load reads and decodes a tenant file from fsys.
func Load(fsys fs.FS, name string) (*Tenant, error) {
	b, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("read seed %s: %w", name, err)
	}
	var t Tenant
	if err := yaml.Unmarshal(b, &t); err != nil {
		return nil, fmt.Errorf("decode seed %s: %w", name, err)
	}
	if t.Company.Slug == "" || t.User.Email == "" {
		return nil, fmt.Errorf("seed %s: company slug and user email are required", name)
	}
	return &t, nil
}

// Result summarizes what Apply wrote.
type Result struct {
	Company  *models.Company
	Sections int
	Jobs     int
}

// Apply replaces any company with the same slug by the seeded tenant. The
// replacement is one transaction: on error the previous tenant is intact.
// Section content is checked against its schema before anything is written.
func Apply(ctx context.Context, store repository.TenantRepo, hasher *auth.Hasher, schemas *sections.Loader, t *Tenant) (*Result, error) {
	secs, err := t.pageSections(ctx, schemas)
	if err != nil {
		return nil, err
	}
	jobs, err := t.jobs(time.Now())
	if err != nil {
		return nil, err
	}

	hash, err := hasher.Hash(t.User.Password)
	if err != nil {
		return nil, err
	}

	c := &models.Company{
		Slug:        t.Company.Slug,
		Name:        t.Company.Name,
		Description: strPtr(t.Company.Description),
		LogoURL:     strPtr(t.Company.LogoURL),
		BannerURL:   strPtr(t.Company.BannerURL),
		VideoURL:    strPtr(t.Company.VideoURL),
		ThemeColor:  t.Company.ThemeColor,
	}
	u := &models.User{Email: t.User.Email, Name: t.User.Name, PasswordHash: hash}
	if err := store.ReplaceTenant(ctx, c, u, secs, jobs); err != nil {
		return nil, fmt.Errorf("replace tenant %s: %w", c.Slug, err)
	}

	return &Result{Company: c, Sections: len(secs), Jobs: len(jobs)}, nil
}

func (t *Tenant) pageSections(ctx context.Context, schemas *sections.Loader) ([]models.PageSection, error) {
	out := make([]models.PageSection, 0, len(t.Sections))
	for _, s := range t.Sections {
		raw, err := json.Marshal(s.Content)
		if err != nil {
			return nil, fmt.Errorf("section %q: %w", s.Title, err)
		}
		if err := schemas.Validate(ctx, s.Type, raw); err != nil {
			return nil, fmt.Errorf("section %q: %w", s.Title, err)
		}
		visible := true
		if s.Visible != nil {
			visible = *s.Visible
		}
		order := s.Order
		if order == 0 {
			order = 1
		}
		out = append(out, models.PageSection{
			SectionType: s.Type,
			Title:       s.Title,
			Content:     raw,
			Order:       order,
			IsVisible:   visible,
		})
	}
	return out, nil
}

func (t *Tenant) jobs(now time.Time) ([]models.Job, error) {
	var tmpl *template.Template
	if t.DescriptionTemplate != "" {
		var err error
		tmpl, err = template.New("description").Funcs(template.FuncMap{"lower": strings.ToLower}).Parse(t.DescriptionTemplate)
		if err != nil {
			return nil, fmt.Errorf("parse description template: %w", err)
		}
	}

	out := make([]models.Job, 0, len(t.Jobs))
	for _, j := range t.Jobs {
		desc := j.Description
		if desc == "" && tmpl != nil {
			var sb strings.Builder
			if err := tmpl.Execute(&sb, j); err != nil {
				return nil, fmt.Errorf("render description for %q: %w", j.Title, err)
			}
			desc = sb.String()
		}
		if desc == "" {
			return nil, fmt.Errorf("job %q has no description", j.Title)
		}

		active := true
		if j.Active != nil {
			active = *j.Active
		}
		out = append(out, models.Job{
			Title:       j.Title,
			Description: strings.TrimSpace(desc),
			Location:    j.Location,
			JobType:     j.EmploymentType,
			Department:  strPtr(j.Department),
			IsActive:    active,
			Created:     now.AddDate(0, 0, -j.PostedDaysAgo).UTC().UnixMilli(),
		})
	}
	return out, nil
}

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
