package db

import "testing"

func TestRebind(t *testing.T) {
	cases := []struct {
		dialect Dialect
		in      string
		want    string
	}{
		{SQLite, `SELECT * FROM jobs WHERE id = ? AND company_id = ?`, `SELECT * FROM jobs WHERE id = ? AND company_id = ?`},
		{Postgres, `SELECT * FROM jobs WHERE id = ? AND company_id = ?`, `SELECT * FROM jobs WHERE id = $1 AND company_id = $2`},
		{Postgres, `SELECT 1`, `SELECT 1`},
	}
	for _, c := range cases {
		if got := rebind(c.dialect, c.in); got != c.want {
			t.Fatalf("rebind(%s, %q) = %q, want %q", c.dialect, c.in, got, c.want)
		}
	}
}

func TestWithForeignKeys(t *testing.T) {
	cases := map[string]string{
		"careers.db":                        "file:careers.db?_pragma=foreign_keys(1)",
		":memory:":                          "file::memory:?_pragma=foreign_keys(1)",
		"file:x.db?cache=shared":            "file:x.db?cache=shared&_pragma=foreign_keys(1)",
		"file:y.db?_pragma=foreign_keys(0)": "file:y.db?_pragma=foreign_keys(0)",
	}
	for in, want := range cases {
		if got := withForeignKeys(in); got != want {
			t.Fatalf("withForeignKeys(%q) = %q, want %q", in, got, want)
		}
	}
}
