package api_test

import (
	"net/http"
	"strings"
	"testing"
)

type job struct {
	ID        string `json:"id"`
	CompanyID string `json:"companyId"`
	Title     string `json:"title"`
	IsActive  bool   `json:"isActive"`
}

type section struct {
	ID          string         `json:"id"`
	SectionType string         `json:"sectionType"`
	Content     map[string]any `json:"content"`
	Order       int            `json:"order"`
}

func newJob(title string) map[string]any {
	return map[string]any{
		"title":       title,
		"description": "## About\n- ship things",
		"location":    "Remote",
		"jobType":     "Full-time",
		"department":  "Engineering",
	}
}

func (s *testServer) createJob(t *testing.T, token, title string) job {
	t.Helper()
	res := s.do(t, http.MethodPost, "/api/jobs", token, newJob(title))
	if res.status != http.StatusCreated {
		t.Fatalf("create job: want 201 got %d: %s", res.status, res.body)
	}
	var j job
	res.decode(t, &j)
	return j
}

func TestProtectedRoutesRequireSession(t *testing.T) {
	s := newTestServer(t)

	paths := []struct{ method, path string }{
		{http.MethodGet, "/api/jobs"},
		{http.MethodPost, "/api/jobs"},
		{http.MethodGet, "/api/jobs/x"},
		{http.MethodGet, "/api/page-sections"},
		{http.MethodGet, "/api/company/x"},
		{http.MethodGet, "/api/dashboard"},
		{http.MethodGet, "/api/dashboard/jobs"},
	}
	for _, p := range paths {
		res := s.do(t, p.method, p.path, "", nil)
		if res.status != http.StatusUnauthorized {
			t.Fatalf("%s %s: want 401 got %d", p.method, p.path, res.status)
		}
		res = s.do(t, p.method, p.path, "bad.token.here", nil)
		if res.status != http.StatusUnauthorized {
			t.Fatalf("%s %s with bad token: want 401 got %d", p.method, p.path, res.status)
		}
	}
}

func TestJobsHandlers_CrossTenant(t *testing.T) {
	s := newTestServer(t)
	a := s.signup(t, "alpha")
	b := s.signup(t, "beta")

	j := s.createJob(t, a.Token, "Alpha Engineer")
	if j.CompanyID != a.Company.ID || !j.IsActive {
		t.Fatalf("unexpected job %+v", j)
	}

	for _, m := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
		var body any
		if m == http.MethodPut {
			body = newJob("Hijacked")
		}
		res := s.do(t, m, "/api/jobs/"+j.ID, b.Token, body)
		if res.status != http.StatusForbidden {
			t.Fatalf("%s as other tenant: want 403 got %d: %s", m, res.status, res.body)
		}
	}

	// creating into another company is refused
	in := newJob("Sneaky")
	in["companyId"] = a.Company.ID
	res := s.do(t, http.MethodPost, "/api/jobs", b.Token, in)
	if res.status != http.StatusForbidden {
		t.Fatalf("create for other tenant: want 403 got %d", res.status)
	}

	// the job is untouched
	res = s.do(t, http.MethodGet, "/api/jobs/"+j.ID, a.Token, nil)
	var got job
	res.decode(t, &got)
	if got.Title != "Alpha Engineer" {
		t.Fatalf("job modified by other tenant: %+v", got)
	}

	res = s.do(t, http.MethodGet, "/api/jobs", b.Token, nil)
	var list []job
	res.decode(t, &list)
	if len(list) != 0 {
		t.Fatalf("other tenant sees jobs: %s", res.body)
	}
}

func TestJobsHandlers_CRUD(t *testing.T) {
	s := newTestServer(t)
	a := s.signup(t, "acme")

	res := s.do(t, http.MethodPost, "/api/jobs", a.Token, map[string]any{"title": "No details"})
	if res.status != http.StatusBadRequest || !strings.Contains(string(res.body), "Missing required fields") {
		t.Fatalf("create invalid: got %d %s", res.status, res.body)
	}

	j := s.createJob(t, a.Token, "Engineer")

	upd := newJob("Senior Engineer")
	upd["isActive"] = false
	res = s.do(t, http.MethodPut, "/api/jobs/"+j.ID, a.Token, upd)
	if res.status != http.StatusOK {
		t.Fatalf("update: want 200 got %d: %s", res.status, res.body)
	}
	var got job
	res.decode(t, &got)
	if got.Title != "Senior Engineer" || got.IsActive {
		t.Fatalf("update not applied: %+v", got)
	}

	res = s.do(t, http.MethodGet, "/api/dashboard/jobs", a.Token, nil)
	if res.status != http.StatusOK || !strings.Contains(string(res.body), `"status":"Inactive"`) {
		t.Fatalf("dashboard jobs: got %d %s", res.status, res.body)
	}

	res = s.do(t, http.MethodDelete, "/api/jobs/"+j.ID, a.Token, nil)
	if res.status != http.StatusOK || !strings.Contains(string(res.body), `"success":true`) {
		t.Fatalf("delete: got %d %s", res.status, res.body)
	}
	res = s.do(t, http.MethodGet, "/api/jobs/"+j.ID, a.Token, nil)
	if res.status != http.StatusNotFound {
		t.Fatalf("get deleted: want 404 got %d", res.status)
	}
}

func TestSectionsHandlers(t *testing.T) {
	s := newTestServer(t)
	a := s.signup(t, "acme")
	b := s.signup(t, "beta")

	res := s.do(t, http.MethodGet, "/api/page-sections", a.Token, nil)
	var defaults []section
	res.decode(t, &defaults)
	if len(defaults) != 2 {
		t.Fatalf("expected 2 default sections, got %s", res.body)
	}

	create := map[string]any{
		"sectionType": "values",
		"title":       "Our Values",
		"content":     map[string]any{"values": []map[string]string{{"title": "Trust"}}},
		"order":       3,
	}
	res = s.do(t, http.MethodPost, "/api/page-sections", a.Token, create)
	if res.status != http.StatusCreated {
		t.Fatalf("create section: want 201 got %d: %s", res.status, res.body)
	}
	var sec section
	res.decode(t, &sec)
	if sec.Order != 3 || sec.SectionType != "values" || sec.Content["values"] == nil {
		t.Fatalf("unexpected section %s", res.body)
	}

	// content given as a JSON string round-trips to the same object
	create["content"] = `{"values":[{"title":"Trust"}]}`
	res = s.do(t, http.MethodPost, "/api/page-sections", a.Token, create)
	if res.status != http.StatusCreated {
		t.Fatalf("create with string content: got %d %s", res.status, res.body)
	}

	create["content"] = "{bad"
	res = s.do(t, http.MethodPost, "/api/page-sections", a.Token, create)
	if res.status != http.StatusBadRequest || !strings.Contains(string(res.body), "valid JSON") {
		t.Fatalf("create with bad content: got %d %s", res.status, res.body)
	}

	create["sectionType"] = "hero"
	create["content"] = map[string]any{}
	res = s.do(t, http.MethodPost, "/api/page-sections", a.Token, create)
	if res.status != http.StatusBadRequest {
		t.Fatalf("create with unknown type: want 400 got %d", res.status)
	}

	for _, m := range []string{http.MethodGet, http.MethodDelete} {
		res = s.do(t, m, "/api/page-sections/"+sec.ID, b.Token, nil)
		if res.status != http.StatusForbidden {
			t.Fatalf("%s section as other tenant: want 403 got %d", m, res.status)
		}
	}

	res = s.do(t, http.MethodPut, "/api/page-sections/"+sec.ID, a.Token, map[string]any{
		"sectionType": "values",
		"title":       "Values",
		"content":     map[string]any{"values": []map[string]string{{"title": "Craft"}}},
		"isVisible":   false,
	})
	if res.status != http.StatusOK || !strings.Contains(string(res.body), "Craft") {
		t.Fatalf("update section: got %d %s", res.status, res.body)
	}

	res = s.do(t, http.MethodDelete, "/api/page-sections/"+sec.ID, a.Token, nil)
	if res.status != http.StatusOK {
		t.Fatalf("delete section: want 200 got %d", res.status)
	}
}

func TestCompanyHandlers(t *testing.T) {
	s := newTestServer(t)
	a := s.signup(t, "acme")
	b := s.signup(t, "beta")

	res := s.do(t, http.MethodGet, "/api/company/"+a.Company.ID, b.Token, nil)
	if res.status != http.StatusForbidden {
		t.Fatalf("get other company: want 403 got %d", res.status)
	}

	res = s.do(t, http.MethodPut, "/api/company/"+a.Company.ID, a.Token, map[string]any{"name": "Acme", "slug": "beta"})
	if res.status != http.StatusBadRequest || !strings.Contains(string(res.body), "already taken") {
		t.Fatalf("slug conflict: got %d %s", res.status, res.body)
	}

	res = s.do(t, http.MethodPut, "/api/company/"+a.Company.ID, a.Token, map[string]any{"name": "Acme Corp", "slug": "acme-corp"})
	if res.status != http.StatusOK {
		t.Fatalf("update company: want 200 got %d: %s", res.status, res.body)
	}
	tok := res.header.Get("X-Session-Token")
	if tok == "" {
		t.Fatalf("slug change did not re-issue the session")
	}
	p, err := s.issuer.Parse(tok)
	if err != nil || p.CompanySlug != "acme-corp" || p.CompanyID != a.Company.ID {
		t.Fatalf("re-issued token: %+v %v", p, err)
	}

	res = s.do(t, http.MethodGet, "/api/dashboard", tok, nil)
	if res.status != http.StatusOK || !strings.Contains(string(res.body), "/acme-corp/careers") {
		t.Fatalf("dashboard: got %d %s", res.status, res.body)
	}
}

// TestCareersFlow walks a tenant from signup to a public listing.
func TestCareersFlow(t *testing.T) {
	s := newTestServer(t)
	a := s.signup(t, "acme")

	eng := s.createJob(t, a.Token, "Engineer")
	hidden := s.createJob(t, a.Token, "Hidden Role")
	upd := newJob("Hidden Role")
	upd["isActive"] = false
	if res := s.do(t, http.MethodPut, "/api/jobs/"+hidden.ID, a.Token, upd); res.status != http.StatusOK {
		t.Fatalf("deactivate: got %d", res.status)
	}

	res := s.do(t, http.MethodGet, "/acme/careers", "", nil, "Accept", "text/html")
	if res.status != http.StatusOK {
		t.Fatalf("careers page: want 200 got %d", res.status)
	}
	html := string(res.body)
	if !strings.Contains(html, "Engineer") || strings.Contains(html, "Hidden Role") {
		t.Fatalf("careers page listing wrong jobs")
	}
	if strings.Contains(html, "Preview mode") {
		t.Fatalf("anonymous visitor sees preview banner")
	}

	res = s.do(t, http.MethodGet, "/acme/careers?format=json", a.Token, nil)
	var page struct {
		Jobs    []job `json:"jobs"`
		Total   int   `json:"total"`
		Preview bool  `json:"preview"`
	}
	res.decode(t, &page)
	if page.Total != 1 || len(page.Jobs) != 1 || page.Jobs[0].ID != eng.ID || !page.Preview {
		t.Fatalf("json careers page: %s", res.body)
	}

	res = s.do(t, http.MethodGet, "/acme/careers?q=pilot", "", nil, "Accept", "application/json")
	res.decode(t, &page)
	if len(page.Jobs) != 0 || page.Total != 1 {
		t.Fatalf("filtered listing: %s", res.body)
	}

	res = s.do(t, http.MethodGet, "/acme/careers/jobs/"+eng.ID, "", nil)
	if res.status != http.StatusOK || !strings.Contains(string(res.body), "Engineer") {
		t.Fatalf("job page: got %d", res.status)
	}

	res = s.do(t, http.MethodGet, "/acme/careers/jobs/"+hidden.ID, "", nil)
	if res.status != http.StatusNotFound || !strings.Contains(string(res.body), "Page not found") {
		t.Fatalf("inactive job: want html 404 got %d", res.status)
	}

	other := s.signup(t, "other")
	otherJob := s.createJob(t, other.Token, "Other Engineer")
	res = s.do(t, http.MethodGet, "/acme/careers/jobs/"+otherJob.ID, "", nil, "Accept", "application/json")
	if res.status != http.StatusNotFound {
		t.Fatalf("cross-tenant job: want 404 got %d", res.status)
	}

	res = s.do(t, http.MethodGet, "/nobody/careers", "", nil)
	if res.status != http.StatusNotFound {
		t.Fatalf("unknown slug: want 404 got %d", res.status)
	}
}
