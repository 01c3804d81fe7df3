package auth

import (
	"errors"

	"github.com/garnizeh/careerpages/pkg/models"
)

var (
	// ErrUnauthenticated means the request carries no valid session.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrUnauthorized means the session belongs to another company.
	ErrUnauthorized = errors.New("unauthorized")
)

// Authorize checks that the principal may touch data owned by companyID.
func Authorize(p *models.Principal, companyID string) error {
	if p == nil {
		return ErrUnauthenticated
	}
	if p.CompanyID != companyID {
		return ErrUnauthorized
	}
	return nil
}
