package repo

import (
	"strings"
	"testing"
	"time"
)

func TestWorkItemsQuery_OpenWork(t *testing.T) {
	q, args, err := workItemsQuery(psql, OpenWork())
	if err != nil {
		t.Fatalf("workItemsQuery: %v", err)
	}
	for _, want := range []string{"workflow_status NOT IN ($1,$2)", "ORDER BY updated_at ASC", "LIMIT 20"} {
		if !strings.Contains(q, want) {
			t.Errorf("query %q missing %q", q, want)
		}
	}
	if len(args) != 2 || args[0] != "published" || args[1] != "maintenance" {
		t.Errorf("args = %v", args)
	}
}

func TestManualsQuery_Placeholders(t *testing.T) {
	q, args, err := manualsQuery(sqlite, "changelog", ManualFilter{Status: "current", IDs: []string{"hr", "payroll"}})
	if err != nil {
		t.Fatalf("manualsQuery: %v", err)
	}
	if !strings.Contains(q, "status = ?") || !strings.Contains(q, "manual_id IN (?,?)") {
		t.Errorf("query = %q", q)
	}
	if len(args) != 3 {
		t.Errorf("args = %v", args)
	}
}

func TestParseTime(t *testing.T) {
	cases := map[string]time.Time{
		"2025-03-04T05:06:07Z":                         time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC),
		"2025-03-04T07:06:07+02:00":                    time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC),
		"2025-03-04 05:06:07":                          time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC),
		"2025-03-04":                                   time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC),
		"2025-03-04 05:06:07+00:00":                    time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC),
		"2025-03-04 05:06:07 +0000 UTC":                time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC),
		"2025-03-04 07:06:07.5 +0200 EET":              time.Date(2025, 3, 4, 5, 6, 7, 5e8, time.UTC),
		"2025-03-04 05:06:07 +0000 UTC m=+0.000123456": time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC),
	}
	for in, want := range cases {
		got, ok := parseTime(in)
		if !ok || !got.Equal(want) {
			t.Errorf("parseTime(%q) = %v, %v; want %v", in, got, ok, want)
		}
	}
	if _, ok := parseTime("  "); ok {
		t.Errorf("blank should not parse")
	}
}

func TestSQLiteDSN(t *testing.T) {
	cases := map[string]string{
		"release.db":                     "release.db?_time_format=sqlite",
		"file:release.db?cache=shared":   "file:release.db?cache=shared&_time_format=sqlite",
		"release.db?_time_format=sqlite": "release.db?_time_format=sqlite",
	}
	for in, want := range cases {
		if got := sqliteDSN(in); got != want {
			t.Errorf("sqliteDSN(%q) = %q, want %q", in, got, want)
		}
	}
}
