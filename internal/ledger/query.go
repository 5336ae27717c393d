package ledger

import (
	"strings"

	"github.com/inovacc/fieldlog/internal/model"
)

// Filter selects reports. Zero fields match everything.
type Filter struct {
	Technician string
	// Project is a project entry or bare code; only the code before " - "
	// is matched
	Project string
	// Date is YYYY-MM-DD
	Date string
}

// ProjectCode returns the code part of the project filter.
func (f Filter) ProjectCode() string {
	code, _, _ := strings.Cut(f.Project, " - ")
	return strings.TrimSpace(code)
}

// IsZero reports whether the filter matches everything.
func (f Filter) IsZero() bool {
	return f == Filter{}
}

// Match reports whether r passes the filter.
func (f Filter) Match(r model.WorkReport) bool {
	if f.Technician != "" && r.Technician != f.Technician {
		return false
	}

	if code := f.ProjectCode(); code != "" && !strings.Contains(r.ProjectNum, code) {
		return false
	}

	if f.Date != "" && r.Date != f.Date {
		return false
	}

	return true
}

// Apply returns the matching reports in document order.
func (f Filter) Apply(reports []model.WorkReport) []model.WorkReport {
	out := make([]model.WorkReport, 0, len(reports))

	for _, r := range reports {
		if f.Match(r) {
			out = append(out, r)
		}
	}

	return out
}

// RecentReports returns up to n of technician's most recent reports.
func RecentReports(d model.Document, technician string, n int) []model.WorkReport {
	out := Filter{Technician: technician}.Apply(d.Reports)
	if n >= 0 && len(out) > n {
		out = out[:n]
	}

	return out
}
