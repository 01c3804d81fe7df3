// Package careers holds the tenant rules of the careers-page builder:
// signup, company settings, job and page section management for the
// dashboard, and the read side used by public careers pages.
package careers

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"reflect"
	"regexp"
	"strings"

	"github.com/garnizeh/careerpages/internal/auth"
	"github.com/garnizeh/careerpages/internal/sections"
	"github.com/garnizeh/careerpages/pkg/repository"
	"github.com/go-playground/validator/v10"
)

var slugRe = regexp.MustCompile(`^[a-z0-9-]+$`)

// reservedSlugs collide with top level routes.
var reservedSlugs = map[string]bool{
	"api":       true,
	"health":    true,
	"version":   true,
	"static":    true,
	"login":     true,
	"signup":    true,
	"dashboard": true,
}

type Service struct {
	store    repository.Store
	hasher   *auth.Hasher
	schemas  *sections.Loader
	validate *validator.Validate
	logger   *slog.Logger
}

func New(store repository.Store, hasher *auth.Hasher, schemas *sections.Loader, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(os.Stderr, nil))
	}
	return &Service{
		store:    store,
		hasher:   hasher,
		schemas:  schemas,
		validate: newValidator(),
		logger:   logger,
	}
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slugRe.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return v
}

// check validates v and turns the first field error into a ValidationError.
// messages is keyed by "field.tag" or by "tag" alone.
func (s *Service) check(v any, messages map[string]string) error {
	err := s.validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("validate input: %w", err)
	}

	fe := verrs[0]
	if msg, ok := messages[fe.Field()+"."+fe.Tag()]; ok {
		return invalid(fe.Field(), msg)
	}
	if msg, ok := messages[fe.Tag()]; ok {
		return invalid(fe.Field(), msg)
	}
	return invalid(fe.Field(), fmt.Sprintf("%s is invalid", fe.Field()))
}

// ValidSlug reports whether slug may name a company.
func ValidSlug(slug string) bool {
	return slugRe.MatchString(slug) && !reservedSlugs[slug]
}

// optional normalizes an optional text field: blank becomes nil.
func optional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
