package api_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/garnizeh/careerpages/api"
	"github.com/garnizeh/careerpages/internal/auth"
	"github.com/garnizeh/careerpages/internal/careers"
	"github.com/garnizeh/careerpages/internal/config"
	"github.com/garnizeh/careerpages/internal/db/dbtest"
	"github.com/garnizeh/careerpages/internal/render"
	"github.com/garnizeh/careerpages/internal/repository/sqlstore"
	"github.com/garnizeh/careerpages/internal/sections"
	"github.com/gorilla/mux"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	// verify no goroutine leaks across tests in this package
	api.SetLogger(slog.New(slog.NewJSONHandler(io.Discard, nil)))
	goleak.VerifyTestMain(m)
}

const cookieName = "careers_session"

type testServer struct {
	router *mux.Router
	issuer *auth.Issuer
}

// newTestServer wires the full stack over a fresh in-memory database.
func newTestServer(t *testing.T) *testServer {
	t.Helper()

	store := sqlstore.New(dbtest.Open(t), nil)
	hasher := auth.NewHasher(4)
	loader, err := sections.NewLoader()
	if err != nil {
		t.Fatalf("schema loader: %v", err)
	}
	pages, err := render.New()
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}
	svc := careers.New(store, hasher, loader, nil)
	issuer := auth.NewIssuer(store, store, hasher, "testsecret", time.Hour)

	cfg := &config.Config{Cookie: config.CookieConfig{Name: cookieName}}
	return &testServer{
		router: api.SetupRoutes(cfg, "test", "now", svc, issuer, pages),
		issuer: issuer,
	}
}

type response struct {
	status int
	header http.Header
	body   []byte
}

func (r response) decode(t *testing.T, v any) {
	t.Helper()
	if err := json.Unmarshal(r.body, v); err != nil {
		t.Fatalf("decode %s: %v", string(r.body), err)
	}
}

// do sends a request through the router. A string body is sent as is, any
// other non-nil body is JSON encoded.
func (s *testServer) do(t *testing.T, method, path, token string, body any, headers ...string) response {
	t.Helper()

	var rdr io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		rdr = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		rdr = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, rdr)
	if rdr != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	res := w.Result()
	defer res.Body.Close()
	b, _ := io.ReadAll(res.Body)
	return response{status: res.StatusCode, header: res.Header, body: b}
}

type tenant struct {
	Token   string `json:"token"`
	Company struct {
		ID   string `json:"id"`
		Slug string `json:"slug"`
	} `json:"company"`
}

func (s *testServer) signup(t *testing.T, slug string) tenant {
	t.Helper()
	res := s.do(t, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"name":        "Owner",
		"email":       "owner@" + slug + ".test",
		"password":    "password123",
		"companyName": "Company " + slug,
		"companySlug": slug,
	})
	if res.status != http.StatusCreated {
		t.Fatalf("signup %s: want 201 got %d: %s", slug, res.status, res.body)
	}
	var tn tenant
	res.decode(t, &tn)
	if tn.Token == "" || tn.Company.ID == "" {
		t.Fatalf("signup %s: incomplete response %s", slug, res.body)
	}
	return tn
}

func TestMainNotFound(t *testing.T) {
	s := newTestServer(t)
	res := s.do(t, http.MethodGet, "/nope", "", nil)
	if res.status != http.StatusNotFound {
		t.Fatalf("want 404 got %d", res.status)
	}
	if !bytes.Contains(res.body, []byte(`"error"`)) {
		t.Fatalf("expected json error body, got %s", res.body)
	}
}
