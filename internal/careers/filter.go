package careers

import (
	"sort"
	"strings"

	"github.com/garnizeh/careerpages/pkg/models"
)

// JobFilter narrows the public job listing. Empty fields and "all" match
// everything.
type JobFilter struct {
	Query      string `json:"q,omitempty"`
	Department string `json:"department,omitempty"`
	Location   string `json:"location,omitempty"`
	JobType    string `json:"type,omitempty"`
}

// Facets are the distinct values a listing can be filtered by, sorted.
type Facets struct {
	Departments []string `json:"departments"`
	Locations   []string `json:"locations"`
	JobTypes    []string `json:"jobTypes"`
}

func matchAll(v string) bool {
	return v == "" || v == "all"
}

// Active reports whether any criterion is set.
func (f JobFilter) Active() bool {
	return strings.TrimSpace(f.Query) != "" || !matchAll(f.Department) || !matchAll(f.Location) || !matchAll(f.JobType)
}

// Match applies the search text to title, department and location, case
// insensitively, and the other fields as exact matches.
func (f JobFilter) Match(j models.Job) bool {
	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" {
		hit := strings.Contains(strings.ToLower(j.Title), q) ||
			strings.Contains(strings.ToLower(j.Location), q) ||
			(j.Department != nil && strings.Contains(strings.ToLower(*j.Department), q))
		if !hit {
			return false
		}
	}
	if !matchAll(f.Department) && (j.Department == nil || *j.Department != f.Department) {
		return false
	}
	if !matchAll(f.Location) && j.Location != f.Location {
		return false
	}
	if !matchAll(f.JobType) && j.JobType != f.JobType {
		return false
	}
	return true
}

// Apply keeps the order of jobs.
func (f JobFilter) Apply(jobs []models.Job) []models.Job {
	out := make([]models.Job, 0, len(jobs))
	for _, j := range jobs {
		if f.Match(j) {
			out = append(out, j)
		}
	}
	return out
}

func BuildFacets(jobs []models.Job) Facets {
	depts := map[string]struct{}{}
	locs := map[string]struct{}{}
	types := map[string]struct{}{}
	for _, j := range jobs {
		if j.Department != nil {
			depts[*j.Department] = struct{}{}
		}
		locs[j.Location] = struct{}{}
		types[j.JobType] = struct{}{}
	}
	return Facets{
		Departments: sortedKeys(depts),
		Locations:   sortedKeys(locs),
		JobTypes:    sortedKeys(types),
	}
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
