package auth_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/garnizeh/careerpages/internal/auth"
	"github.com/garnizeh/careerpages/pkg/models"
	"github.com/garnizeh/careerpages/pkg/repository/mock"
	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret"

func TestHasher(t *testing.T) {
	h := auth.NewHasher(4)

	hash, err := h.Hash("password123")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if hash == "password123" {
		t.Fatalf("hash must not equal the plain password")
	}
	if !h.Verify("password123", hash) {
		t.Fatalf("expected Verify to accept the right password")
	}
	if h.Verify("password124", hash) {
		t.Fatalf("expected Verify to reject a wrong password")
	}
	if h.Verify("password123", "not-a-bcrypt-hash") {
		t.Fatalf("expected Verify to reject a malformed hash")
	}
}

func TestHasher_PasswordLength(t *testing.T) {
	h := auth.NewHasher(4)
	if _, err := h.Hash(strings.Repeat("a", auth.MaxPasswordBytes)); err != nil {
		t.Fatalf("Hash at the limit: %v", err)
	}
	if _, err := h.Hash(strings.Repeat("a", auth.MaxPasswordBytes+1)); !errors.Is(err, auth.ErrPasswordTooLong) {
		t.Fatalf("expected ErrPasswordTooLong, got %v", err)
	}
}

func TestNewHasher_OutOfRangeCost(t *testing.T) {
	// an out of range cost must not make Hash fail
	h := auth.NewHasher(99)
	if _, err := h.Hash("x"); err != nil {
		t.Fatalf("Hash with clamped cost: %v", err)
	}
}

func TestAuthorize(t *testing.T) {
	p := &models.Principal{UserID: "u1", CompanyID: "c1", CompanySlug: "acme"}

	cases := []struct {
		name string
		p    *models.Principal
		id   string
		want error
	}{
		{name: "NoSession", p: nil, id: "c1", want: auth.ErrUnauthenticated},
		{name: "OtherCompany", p: p, id: "c2", want: auth.ErrUnauthorized},
		{name: "EmptyResourceCompany", p: p, id: "", want: auth.ErrUnauthorized},
		{name: "SameCompany", p: p, id: "c1", want: nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := auth.Authorize(tc.p, tc.id); !errors.Is(err, tc.want) {
				t.Fatalf("Authorize = %v, want %v", err, tc.want)
			}
		})
	}
}

func newIssuer(t *testing.T, d time.Duration) (*auth.Issuer, *models.Company, *models.User) {
	t.Helper()
	store := mock.NewStore()
	h := auth.NewHasher(4)
	hash, err := h.Hash("password123")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	c := &models.Company{Slug: "acme", Name: "Acme"}
	u := &models.User{Email: "jane@acme.test", Name: "Jane", PasswordHash: hash}
	if err := store.CreateTenant(context.Background(), c, u, nil); err != nil {
		t.Fatalf("CreateTenant: %v", err)
	}
	return auth.NewIssuer(store, store, h, testSecret, d), c, u
}

func TestAuthenticate(t *testing.T) {
	iss, c, u := newIssuer(t, time.Hour)
	ctx := context.Background()

	p, err := iss.Authenticate(ctx, "jane@acme.test", "password123")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if p.UserID != u.ID || p.CompanyID != c.ID || p.CompanySlug != "acme" {
		t.Fatalf("unexpected principal: %#v", p)
	}

	_, errWrongPass := iss.Authenticate(ctx, "jane@acme.test", "nope")
	_, errUnknown := iss.Authenticate(ctx, "nobody@acme.test", "password123")
	_, errCase := iss.Authenticate(ctx, "JANE@acme.test", "password123")
	for _, err := range []error{errWrongPass, errUnknown, errCase} {
		if !errors.Is(err, auth.ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	}
	if errWrongPass.Error() != errUnknown.Error() {
		t.Fatalf("wrong password and unknown email must look the same")
	}
}

func TestIssueAndParse(t *testing.T) {
	iss, c, u := newIssuer(t, time.Hour)
	p := &models.Principal{UserID: u.ID, CompanyID: c.ID, CompanySlug: c.Slug}

	tok, err := iss.Issue(p)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if strings.Count(tok, ".") != 2 {
		t.Fatalf("expected a compact JWS, got %q", tok)
	}

	got, err := iss.Parse(tok)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if *got != *p {
		t.Fatalf("round trip mismatch: got %#v want %#v", got, p)
	}

	// payload carries exactly the principal plus iat/exp
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tok, claims); err != nil {
		t.Fatalf("ParseUnverified: %v", err)
	}
	want := map[string]bool{"userId": true, "companyId": true, "companySlug": true, "iat": true, "exp": true}
	if len(claims) != len(want) {
		t.Fatalf("unexpected claim set: %v", claims)
	}
	for k := range claims {
		if !want[k] {
			t.Fatalf("unexpected claim %q", k)
		}
	}
}

func TestParse_Rejects(t *testing.T) {
	iss, c, u := newIssuer(t, time.Hour)
	p := &models.Principal{UserID: u.ID, CompanyID: c.ID, CompanySlug: c.Slug}

	expiredIss, _, _ := newIssuer(t, -time.Minute)
	expired, err := expiredIss.Issue(p)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	other := auth.NewIssuer(nil, nil, auth.NewHasher(4), "another-secret", time.Hour)
	foreign, err := other.Issue(p)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"userId": u.ID, "companyId": c.ID, "exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none: %v", err)
	}

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId": u.ID, "companyId": c.ID,
	}).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	cases := map[string]string{
		"Expired":     expired,
		"WrongSecret": foreign,
		"AlgNone":     none,
		"NoExpiry":    noExp,
		"Garbage":     "not.a.token",
		"Empty":       "",
	}
	for name, tok := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := iss.Parse(tok); !errors.Is(err, auth.ErrInvalidToken) {
				t.Fatalf("expected ErrInvalidToken, got %v", err)
			}
		})
	}
}
