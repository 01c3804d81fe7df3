package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/garnizeh/careerpages/internal/auth"
	"github.com/garnizeh/careerpages/internal/careers"
	"github.com/garnizeh/careerpages/internal/config"
	"github.com/garnizeh/careerpages/pkg/models"
)

// sessionHeader carries a re-issued token to bearer clients.
const sessionHeader = "X-Session-Token"

type AuthHandler struct {
	svc    *careers.Service
	issuer *auth.Issuer
	cookie config.CookieConfig
}

// NewAuthHandler creates a new AuthHandler with required dependencies.
func NewAuthHandler(svc *careers.Service, issuer *auth.Issuer, cookie config.CookieConfig) *AuthHandler {
	return &AuthHandler{svc: svc, issuer: issuer, cookie: cookie}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token     string            `json:"token"`
	Principal *models.Principal `json:"user"`
	ExpiresAt int64             `json:"expiresAt"`
}

type signupResponse struct {
	Success bool            `json:"success"`
	Company *models.Company `json:"company"`
	User    *models.User    `json:"user"`
	Token   string          `json:"token"`
}

// startSession signs a token for p and sets the session cookie.
func (h *AuthHandler) startSession(w http.ResponseWriter, p *models.Principal) (string, time.Time, error) {
	tok, err := h.issuer.Issue(p)
	if err != nil {
		return "", time.Time{}, err
	}
	exp := time.Now().Add(h.issuer.Duration())
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookie.Name,
		Value:    tok,
		Path:     "/",
		Expires:  exp,
		MaxAge:   int(h.issuer.Duration().Seconds()),
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return tok, exp, nil
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req careers.SignupInput
	if !decode(w, r, &req) {
		return
	}

	res, err := h.svc.Signup(r.Context(), req)
	if err != nil {
		writeError(w, r, "signup", err)
		return
	}

	tok, _, err := h.startSession(w, res.Principal)
	if err != nil {
		writeError(w, r, "signup token", err)
		return
	}

	writeJSON(w, http.StatusCreated, signupResponse{Success: true, Company: res.Company, User: res.User, Token: tok})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decode(w, r, &req) {
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		writeErrorMessage(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	p, err := h.issuer.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			writeErrorMessage(w, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		writeError(w, r, "login", err)
		return
	}

	tok, exp, err := h.startSession(w, p)
	if err != nil {
		writeError(w, r, "login token", err)
		return
	}

	writeJSON(w, http.StatusOK, authResponse{Token: tok, Principal: p, ExpiresAt: exp.UnixMilli()})
}

// Logout clears the session cookie. Tokens are stateless: a bearer client
// signs out by discarding its token.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookie.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, map[string]string{"message": "signed out"})
}

func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	p := PrincipalFrom(r.Context())
	if p == nil {
		writeError(w, r, "session", careers.ErrUnauthenticated)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": p})
}
