// Package render draws the public careers pages as HTML.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/garnizeh/careerpages/internal/careers"
	"github.com/garnizeh/careerpages/internal/sections"
	"github.com/garnizeh/careerpages/pkg/models"
)

//go:embed templates/*.html
var templateFS embed.FS

// Renderer holds the parsed page templates.
type Renderer struct {
	careers  *template.Template
	job      *template.Template
	notFound *template.Template
}

// sectionView pairs a section with its decoded content.
type sectionView struct {
	models.PageSection
	Decoded *sections.Decoded
}

type careersView struct {
	*careers.CareersPage
	Sections []sectionView
	Year     int
}

type jobView struct {
	*careers.JobPage
	Year int
}

func funcs() template.FuncMap {
	return map[string]any{
		"markdown": Markdown,
		"embed":    EmbedURL,
		"deref": func(s *string) string {
			if s == nil {
				return ""
			}
			return *s
		},
		"date": func(ms int64) string {
			return time.UnixMilli(ms).UTC().Format("January 2, 2006")
		},
		"theme": func(c *models.Company) string {
			if c == nil || c.ThemeColor == "" {
				return models.DefaultThemeColor
			}
			return c.ThemeColor
		},
		"selected": func(a, b string) bool { return a == b },
	}
}

func New() (*Renderer, error) {
	parse := func(page string) (*template.Template, error) {
		t, err := template.New("layout.html").Funcs(funcs()).ParseFS(templateFS, "templates/layout.html", "templates/"+page)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", page, err)
		}
		return t, nil
	}

	r := &Renderer{}
	var err error
	if r.careers, err = parse("careers.html"); err != nil {
		return nil, err
	}
	if r.job, err = parse("job.html"); err != nil {
		return nil, err
	}
	if r.notFound, err = parse("notfound.html"); err != nil {
		return nil, err
	}
	return r, nil
}

// execute renders into a buffer first so a template error never leaves a
// half-written page.
func execute(w io.Writer, t *template.Template, data any) error {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return err
	}
	_, err := buf.WriteTo(w)
	return err
}

// CareersPage renders the public listing. Sections whose content cannot be
// decoded are skipped.
func (r *Renderer) CareersPage(w io.Writer, page *careers.CareersPage) error {
	views := make([]sectionView, 0, len(page.Sections))
	for _, s := range page.Sections {
		d, err := sections.Decode(s.SectionType, s.Content)
		if err != nil {
			continue
		}
		views = append(views, sectionView{PageSection: s, Decoded: d})
	}
	return execute(w, r.careers, careersView{CareersPage: page, Sections: views, Year: time.Now().Year()})
}

func (r *Renderer) JobPage(w io.Writer, page *careers.JobPage) error {
	return execute(w, r.job, jobView{JobPage: page, Year: time.Now().Year()})
}

func (r *Renderer) NotFound(w io.Writer) error {
	return execute(w, r.notFound, nil)
}
