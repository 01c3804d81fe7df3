package mock

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/garnizeh/careerpages/pkg/models"
	"github.com/garnizeh/careerpages/pkg/repository"
)

// Store is an in-memory repository.Store for tests. The *Err fields make
// the matching method fail without touching state.
type Store struct {
	mu        sync.Mutex
	seq       int
	companies map[string]*models.Company
	users     map[string]*models.User
	jobs      map[string]*models.Job
	sections  map[string]*models.PageSection

	CreateTenantErr  error
	ReplaceTenantErr error
	GetCompanyErr    error
	UpdateCompanyErr error
	GetUserErr       error
	CreateJobErr     error
	GetJobErr        error
	UpdateJobErr     error
	DeleteJobErr     error
	ListJobsErr      error
	CreateSectionErr error
	GetSectionErr    error
	UpdateSectionErr error
	DeleteSectionErr error
	ListSectionsErr  error
	StatsErr         error
}

var _ repository.Store = (*Store)(nil)

func NewStore() *Store {
	return &Store{
		companies: map[string]*models.Company{},
		users:     map[string]*models.User{},
		jobs:      map[string]*models.Job{},
		sections:  map[string]*models.PageSection{},
	}
}

func (m *Store) nextID(prefix string) string {
	m.seq++
	return fmt.Sprintf("%s-%d", prefix, m.seq)
}

// tick is strictly increasing so ordering by timestamp is stable in tests.
func (m *Store) tick() int64 {
	return time.Now().UnixMilli()*1000 + int64(m.seq)
}

func (m *Store) CreateTenant(ctx context.Context, c *models.Company, u *models.User, sections []models.PageSection) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CreateTenantErr != nil {
		return m.CreateTenantErr
	}
	if err := m.checkUnique(c, u, ""); err != nil {
		return err
	}
	m.insertTenant(c, u, sections, nil)
	return nil
}

// ReplaceTenant either replaces the tenant completely or leaves the store
// unchanged.
func (m *Store) ReplaceTenant(ctx context.Context, c *models.Company, u *models.User, sections []models.PageSection, jobs []models.Job) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ReplaceTenantErr != nil {
		return m.ReplaceTenantErr
	}

	var oldID string
	for id, existing := range m.companies {
		if existing.Slug == c.Slug {
			oldID = id
		}
	}
	if err := m.checkUnique(c, u, oldID); err != nil {
		return err
	}
	if oldID != "" {
		m.deleteCompany(oldID)
	}
	m.insertTenant(c, u, sections, jobs)
	return nil
}

// checkUnique ignores rows owned by the company being replaced.
func (m *Store) checkUnique(c *models.Company, u *models.User, replacing string) error {
	for id, existing := range m.companies {
		if id != replacing && existing.Slug == c.Slug {
			return repository.ErrSlugTaken
		}
	}
	for _, existing := range m.users {
		if existing.CompanyID != replacing && existing.Email == u.Email {
			return repository.ErrEmailTaken
		}
	}
	return nil
}

func (m *Store) insertTenant(c *models.Company, u *models.User, sections []models.PageSection, jobs []models.Job) {
	ts := m.tick()
	c.ID = m.nextID("company")
	c.Created, c.Updated = ts, ts
	if c.ThemeColor == "" {
		c.ThemeColor = models.DefaultThemeColor
	}
	u.ID = m.nextID("user")
	u.CompanyID = c.ID
	u.Created = ts
	cc, uc := *c, *u
	m.companies[c.ID] = &cc
	m.users[u.ID] = &uc

	for i := range sections {
		sec := &sections[i]
		sec.ID = m.nextID("section")
		sec.CompanyID = c.ID
		sec.Created, sec.Updated = ts, ts
		sc := *sec
		m.sections[sec.ID] = &sc
	}
	for i := range jobs {
		j := &jobs[i]
		j.ID = m.nextID("job")
		j.CompanyID = c.ID
		if j.Created == 0 {
			j.Created = ts
		}
		j.Updated = ts
		jc := *j
		m.jobs[j.ID] = &jc
	}
}

func (m *Store) GetCompanyByID(ctx context.Context, id string) (*models.Company, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetCompanyErr != nil {
		return nil, m.GetCompanyErr
	}
	if c, ok := m.companies[id]; ok {
		cc := *c
		return &cc, nil
	}
	return nil, nil
}

func (m *Store) GetCompanyBySlug(ctx context.Context, slug string) (*models.Company, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetCompanyErr != nil {
		return nil, m.GetCompanyErr
	}
	for _, c := range m.companies {
		if c.Slug == slug {
			cc := *c
			return &cc, nil
		}
	}
	return nil, nil
}

func (m *Store) UpdateCompany(ctx context.Context, c *models.Company) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UpdateCompanyErr != nil {
		return m.UpdateCompanyErr
	}
	for _, existing := range m.companies {
		if existing.Slug == c.Slug && existing.ID != c.ID {
			return repository.ErrSlugTaken
		}
	}
	if _, ok := m.companies[c.ID]; !ok {
		return nil
	}
	if c.ThemeColor == "" {
		c.ThemeColor = models.DefaultThemeColor
	}
	c.Updated = m.tick()
	cc := *c
	m.companies[c.ID] = &cc
	return nil
}

func (m *Store) DeleteCompany(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleteCompany(id)
	return nil
}

func (m *Store) deleteCompany(id string) {
	delete(m.companies, id)
	for k, u := range m.users {
		if u.CompanyID == id {
			delete(m.users, k)
		}
	}
	for k, j := range m.jobs {
		if j.CompanyID == id {
			delete(m.jobs, k)
		}
	}
	for k, s := range m.sections {
		if s.CompanyID == id {
			delete(m.sections, k)
		}
	}
}

func (m *Store) CompanyStats(ctx context.Context, id string) (*models.CompanyStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.StatsErr != nil {
		return nil, m.StatsErr
	}
	var st models.CompanyStats
	for _, j := range m.jobs {
		if j.CompanyID != id {
			continue
		}
		st.TotalJobs++
		if j.IsActive {
			st.ActiveJobs++
		}
	}
	for _, s := range m.sections {
		if s.CompanyID == id {
			st.PageSections++
		}
	}
	return &st, nil
}

func (m *Store) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetUserErr != nil {
		return nil, m.GetUserErr
	}
	if u, ok := m.users[id]; ok {
		uc := *u
		return &uc, nil
	}
	return nil, nil
}

func (m *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetUserErr != nil {
		return nil, m.GetUserErr
	}
	for _, u := range m.users {
		if u.Email == email {
			uc := *u
			return &uc, nil
		}
	}
	return nil, nil
}

func (m *Store) CreateJob(ctx context.Context, j *models.Job) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CreateJobErr != nil {
		return m.CreateJobErr
	}
	if _, ok := m.companies[j.CompanyID]; !ok {
		return fmt.Errorf("company %s does not exist", j.CompanyID)
	}
	j.ID = m.nextID("job")
	ts := m.tick()
	if j.Created == 0 {
		j.Created = ts
	}
	j.Updated = ts
	jc := *j
	m.jobs[j.ID] = &jc
	return nil
}

func (m *Store) GetJob(ctx context.Context, id string) (*models.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetJobErr != nil {
		return nil, m.GetJobErr
	}
	if j, ok := m.jobs[id]; ok {
		jc := *j
		return &jc, nil
	}
	return nil, nil
}

func (m *Store) UpdateJob(ctx context.Context, j *models.Job) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UpdateJobErr != nil {
		return m.UpdateJobErr
	}
	existing, ok := m.jobs[j.ID]
	if !ok {
		return nil
	}
	j.CompanyID = existing.CompanyID
	j.Created = existing.Created
	j.Updated = m.tick()
	jc := *j
	m.jobs[j.ID] = &jc
	return nil
}

func (m *Store) DeleteJob(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.DeleteJobErr != nil {
		return m.DeleteJobErr
	}
	delete(m.jobs, id)
	return nil
}

func (m *Store) ListJobsByCompany(ctx context.Context, companyID string, activeOnly bool) ([]models.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListJobsErr != nil {
		return nil, m.ListJobsErr
	}
	out := []models.Job{}
	for _, j := range m.jobs {
		if j.CompanyID != companyID || (activeOnly && !j.IsActive) {
			continue
		}
		out = append(out, *j)
	}
	sort.Slice(out, func(a, b int) bool {
		if out[a].Created != out[b].Created {
			return out[a].Created > out[b].Created
		}
		return out[a].ID > out[b].ID
	})
	return out, nil
}

func (m *Store) CreateSection(ctx context.Context, s *models.PageSection) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CreateSectionErr != nil {
		return m.CreateSectionErr
	}
	if _, ok := m.companies[s.CompanyID]; !ok {
		return fmt.Errorf("company %s does not exist", s.CompanyID)
	}
	s.ID = m.nextID("section")
	ts := m.tick()
	s.Created, s.Updated = ts, ts
	sc := *s
	m.sections[s.ID] = &sc
	return nil
}

func (m *Store) GetSection(ctx context.Context, id string) (*models.PageSection, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetSectionErr != nil {
		return nil, m.GetSectionErr
	}
	if s, ok := m.sections[id]; ok {
		sc := *s
		return &sc, nil
	}
	return nil, nil
}

func (m *Store) UpdateSection(ctx context.Context, s *models.PageSection) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UpdateSectionErr != nil {
		return m.UpdateSectionErr
	}
	existing, ok := m.sections[s.ID]
	if !ok {
		return nil
	}
	s.CompanyID = existing.CompanyID
	s.SectionType = existing.SectionType
	s.Created = existing.Created
	s.Updated = m.tick()
	sc := *s
	m.sections[s.ID] = &sc
	return nil
}

func (m *Store) DeleteSection(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.DeleteSectionErr != nil {
		return m.DeleteSectionErr
	}
	delete(m.sections, id)
	return nil
}

func (m *Store) ListSectionsByCompany(ctx context.Context, companyID string, visibleOnly bool) ([]models.PageSection, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListSectionsErr != nil {
		return nil, m.ListSectionsErr
	}
	out := []models.PageSection{}
	for _, s := range m.sections {
		if s.CompanyID != companyID || (visibleOnly && !s.IsVisible) {
			continue
		}
		out = append(out, *s)
	}
	sort.Slice(out, func(a, b int) bool {
		if out[a].Order != out[b].Order {
			return out[a].Order < out[b].Order
		}
		if out[a].Created != out[b].Created {
			return out[a].Created < out[b].Created
		}
		return out[a].ID < out[b].ID
	})
	return out, nil
}
