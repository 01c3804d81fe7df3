// Package sections defines the page section types and the shape of their
// content. Each type has a JSON schema that content must satisfy on write
// and a typed struct it decodes into for rendering.
package sections

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/qri-io/jsonschema"
)

const (
	AboutUs       = "about_us"
	LifeAtCompany = "life_at_company"
	Benefits      = "benefits"
	Values        = "values"
)

// Types lists the section types in display-label order.
var Types = []string{AboutUs, LifeAtCompany, Benefits, Values}

var labels = map[string]string{
	AboutUs:       "About Us",
	LifeAtCompany: "Life at Company",
	Benefits:      "Benefits & Perks",
	Values:        "Company Values",
}

var (
	ErrUnknownType = errors.New("unknown section type")
	ErrInvalidJSON = errors.New("invalid JSON content")
)

// SchemaError lists the schema violations of a content document.
type SchemaError struct {
	SectionType string
	Problems    []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("content does not match %s schema: %s", e.SectionType, strings.Join(e.Problems, "; "))
}

// Valid reports whether t is a known section type.
func Valid(t string) bool {
	_, ok := labels[t]
	return ok
}

// Label is the human readable name of a section type.
func Label(t string) string {
	if l, ok := labels[t]; ok {
		return l
	}
	return t
}

//go:embed schemas/*.json
var schemaFS embed.FS

// Loader holds the compiled content schema of every section type.
type Loader struct {
	mu    sync.RWMutex
	cache map[string]*jsonschema.Schema
}

// NewLoader compiles the embedded schemas.
func NewLoader() (*Loader, error) {
	l := &Loader{cache: make(map[string]*jsonschema.Schema)}
	if err := l.Reload(); err != nil {
		return nil, err
	}
	return l, nil
}

// Reload recompiles all schemas.
func (l *Loader) Reload() error {
	newCache := make(map[string]*jsonschema.Schema, len(Types))
	for _, t := range Types {
		b, err := schemaFS.ReadFile("schemas/" + t + ".json")
		if err != nil {
			return fmt.Errorf("read schema %s: %w", t, err)
		}
		rs := &jsonschema.Schema{}
		if err := json.Unmarshal(b, rs); err != nil {
			return fmt.Errorf("compile schema %s: %w", t, err)
		}
		newCache[t] = rs
	}

	l.mu.Lock()
	l.cache = newCache
	l.mu.Unlock()
	return nil
}

// GetSchema returns the compiled schema for a section type.
func (l *Loader) GetSchema(sectionType string) (*jsonschema.Schema, bool) {
	l.mu.RLock()
	s, ok := l.cache[sectionType]
	l.mu.RUnlock()

	return s, ok
}

// Validate checks raw against the schema of sectionType. raw must already be
// a JSON document (see Normalize).
func (l *Loader) Validate(ctx context.Context, sectionType string, raw []byte) error {
	s, ok := l.GetSchema(sectionType)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownType, sectionType)
	}
	if !json.Valid(raw) {
		return ErrInvalidJSON
	}

	verrs, err := s.ValidateBytes(ctx, raw)
	if err != nil {
		return fmt.Errorf("validate content: %w", err)
	}
	if len(verrs) == 0 {
		return nil
	}

	problems := make([]string, 0, len(verrs))
	for _, ke := range verrs {
		msg := ke.Message
		if ke.PropertyPath != "" && ke.PropertyPath != "/" {
			msg = ke.PropertyPath + ": " + msg
		}
		problems = append(problems, msg)
	}
	return &SchemaError{SectionType: sectionType, Problems: problems}
}

// Normalize accepts content either as a JSON document or as a JSON string
// whose value is a JSON document, and returns the compacted document.
func Normalize(raw []byte) (json.RawMessage, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || !json.Valid(raw) {
		return nil, ErrInvalidJSON
	}

	if raw[0] == '"' {
		var inner string
		if err := json.Unmarshal(raw, &inner); err != nil {
			return nil, ErrInvalidJSON
		}
		inner = strings.TrimSpace(inner)
		if inner == "" || !json.Valid([]byte(inner)) {
			return nil, ErrInvalidJSON
		}
		raw = []byte(inner)
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return nil, ErrInvalidJSON
	}
	return json.RawMessage(buf.Bytes()), nil
}
