package ledger

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/inovacc/fieldlog/internal/model"
)

var projectNumRe = regexp.MustCompile(`^\d{5}$`)

// ValidateReport checks the fields a report cannot be filed without.
func ValidateReport(r model.WorkReport) error {
	if !projectNumRe.MatchString(r.ProjectNum) {
		return fmt.Errorf("%w: %q", ErrInvalidProject, r.ProjectNum)
	}

	if strings.TrimSpace(r.Vehicle) == "" {
		return ErrVehicleRequired
	}

	return nil
}

// SaveReport files report on behalf of technician. A report without an id
// is new and goes first; a known id is replaced in place. Either way the
// report is attributed to technician, whatever it carried before.
func SaveReport(report model.WorkReport, technician string) model.Mutation {
	return func(d model.Document) (model.Document, error) {
		if strings.TrimSpace(technician) == "" {
			return d, fmt.Errorf("technician: %w", ErrEmptyName)
		}

		if err := ValidateReport(report); err != nil {
			return d, err
		}

		r := report.Clone()
		r.Technician = technician

		if r.ID == "" {
			r.ID = uuid.NewString()
		}

		if i := reportIndex(d.Reports, r.ID); i >= 0 {
			d.Reports[i] = r
			return d, nil
		}

		d.Reports = append([]model.WorkReport{r}, d.Reports...)

		return d, nil
	}
}

// DeleteReport removes the report with the given id.
func DeleteReport(id string) model.Mutation {
	return func(d model.Document) (model.Document, error) {
		i := reportIndex(d.Reports, id)
		if i < 0 {
			return d, fmt.Errorf("report %q: %w", id, ErrNotFound)
		}

		d.Reports = append(d.Reports[:i], d.Reports[i+1:]...)

		return d, nil
	}
}

func reportIndex(reports []model.WorkReport, id string) int {
	for i, r := range reports {
		if r.ID == id {
			return i
		}
	}

	return -1
}
