package cmd

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/pflag"

	"github.com/inovacc/fieldlog/internal/ledger"
)

// enumValue is a string flag restricted to a fixed set of values.
type enumValue struct {
	target  *string
	allowed []string
}

var _ pflag.Value = (*enumValue)(nil)

func newEnumValue(target *string, allowed ...string) *enumValue {
	return &enumValue{target: target, allowed: allowed}
}

func (e *enumValue) String() string {
	if e.target == nil {
		return ""
	}

	return *e.target
}

func (e *enumValue) Set(v string) error {
	if !slices.Contains(e.allowed, v) {
		return fmt.Errorf("must be one of %s", strings.Join(e.allowed, ", "))
	}

	*e.target = v

	return nil
}

func (e *enumValue) Type() string {
	return "string"
}

// addFilterFlags registers the report filter flags on fs.
func addFilterFlags(fs *pflag.FlagSet, f *ledger.Filter) {
	fs.StringVar(&f.Technician, "tech", "", "Only reports by this technician")
	fs.StringVar(&f.Project, "project", "", "Only reports for this project (code or list entry)")
	fs.StringVar(&f.Date, "date", "", "Only reports on this date, YYYY-MM-DD")
}
