package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/garnizeh/careerpages/pkg/models"
	"github.com/garnizeh/careerpages/pkg/repository"
	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidCredentials covers both an unknown email and a wrong password.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrInvalidToken is returned by Parse for any token that fails
// verification.
var ErrInvalidToken = errors.New("invalid or expired token")

// Claims is the session token payload.
type Claims struct {
	UserID      string `json:"userId"`
	CompanyID   string `json:"companyId"`
	CompanySlug string `json:"companySlug"`
	jwt.RegisteredClaims
}

// passwordChecker is the part of *Hasher used to authenticate.
type passwordChecker interface {
	Verify(password, hash string) bool
	dummyHash() string
}

// Issuer authenticates users and signs HS256 session tokens.
type Issuer struct {
	users     repository.UserRepo
	companies repository.CompanyRepo
	hasher    passwordChecker
	secret    []byte
	duration  time.Duration
	now       func() time.Time
}

func NewIssuer(users repository.UserRepo, companies repository.CompanyRepo, hasher *Hasher, secret string, duration time.Duration) *Issuer {
	return &Issuer{
		users:     users,
		companies: companies,
		hasher:    hasher,
		secret:    []byte(secret),
		duration:  duration,
		now:       time.Now,
	}
}

// Duration is the lifetime of issued tokens.
func (i *Issuer) Duration() time.Duration {
	return i.duration
}

// Authenticate looks the user up by exact email and checks the password.
func (i *Issuer) Authenticate(ctx context.Context, email, password string) (*models.Principal, error) {
	u, err := i.users.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if u == nil {
		i.hasher.Verify(password, i.hasher.dummyHash())
		return nil, ErrInvalidCredentials
	}
	if !i.hasher.Verify(password, u.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	c, err := i.companies.GetCompanyByID(ctx, u.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("lookup company: %w", err)
	}
	if c == nil {
		return nil, ErrInvalidCredentials
	}

	return &models.Principal{UserID: u.ID, CompanyID: c.ID, CompanySlug: c.Slug}, nil
}

// Issue signs a token for p.
func (i *Issuer) Issue(p *models.Principal) (string, error) {
	if p == nil {
		return "", errors.New("principal is nil")
	}
	now := i.now()
	claims := Claims{
		UserID:      p.UserID,
		CompanyID:   p.CompanyID,
		CompanySlug: p.CompanySlug,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.duration)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return s, nil
}

// Parse verifies signature, algorithm and expiry and returns the principal.
func (i *Issuer) Parse(tokenString string) (*models.Principal, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.UserID == "" || claims.CompanyID == "" {
		return nil, ErrInvalidToken
	}

	return &models.Principal{UserID: claims.UserID, CompanyID: claims.CompanyID, CompanySlug: claims.CompanySlug}, nil
}
