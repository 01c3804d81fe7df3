package careers_test

import (
	"testing"

	"github.com/garnizeh/careerpages/internal/careers"
	"github.com/garnizeh/careerpages/pkg/models"
	"github.com/stretchr/testify/assert"
)

func TestJobFilter(t *testing.T) {
	eng, sales := "Engineering", "Sales"
	jobs := []models.Job{
		{ID: "1", Title: "Backend Engineer", Location: "Berlin, Germany", JobType: "Full-time", Department: &eng},
		{ID: "2", Title: "Account Executive", Location: "Remote", JobType: "Contract", Department: &sales},
		{ID: "3", Title: "Designer", Location: "Remote", JobType: "Full-time"},
	}

	ids := func(js []models.Job) []string {
		out := []string{}
		for _, j := range js {
			out = append(out, j.ID)
		}
		return out
	}

	cases := []struct {
		name   string
		filter careers.JobFilter
		want   []string
	}{
		{name: "NoFilter", filter: careers.JobFilter{}, want: []string{"1", "2", "3"}},
		{name: "AllMeansAny", filter: careers.JobFilter{Department: "all", Location: "all", JobType: "all"}, want: []string{"1", "2", "3"}},
		{name: "QueryTitleCaseInsensitive", filter: careers.JobFilter{Query: "ENGINEER"}, want: []string{"1"}},
		{name: "QueryDepartment", filter: careers.JobFilter{Query: "sales"}, want: []string{"2"}},
		{name: "QueryLocation", filter: careers.JobFilter{Query: "germany"}, want: []string{"1"}},
		{name: "Department", filter: careers.JobFilter{Department: "Engineering"}, want: []string{"1"}},
		{name: "Location", filter: careers.JobFilter{Location: "Remote"}, want: []string{"2", "3"}},
		{name: "Type", filter: careers.JobFilter{JobType: "Full-time"}, want: []string{"1", "3"}},
		{name: "Combined", filter: careers.JobFilter{Location: "Remote", JobType: "Full-time"}, want: []string{"3"}},
		{name: "NoMatch", filter: careers.JobFilter{Query: "pilot"}, want: []string{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ids(tc.filter.Apply(jobs)))
		})
	}

	assert.False(t, careers.JobFilter{Department: "all"}.Active())
	assert.True(t, careers.JobFilter{Query: "x"}.Active())

	f := careers.BuildFacets(jobs)
	assert.Equal(t, []string{"Engineering", "Sales"}, f.Departments)
	assert.Equal(t, []string{"Berlin, Germany", "Remote"}, f.Locations)
	assert.Equal(t, []string{"Contract", "Full-time"}, f.JobTypes)
}
