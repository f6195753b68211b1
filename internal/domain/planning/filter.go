package planning

import (
	"time"

	"github.com/cmlabs-hris/capacity-planner-go/internal/pkg/validator"
)

// FilterMode selects how the reporting period is derived.
type FilterMode string

const (
	// ModeMonth selects allocations by exact month-label equality.
	ModeMonth FilterMode = "month"
	// ModeDateRange selects allocations by date overlap and prorates them.
	ModeDateRange FilterMode = "dateRange"
)

// DepartmentAll disables the department filter.
const DepartmentAll = "All"

// Filter is the engine's external input from the dashboard UI.
type Filter struct {
	Mode       FilterMode `json:"mode"`
	Month      string     `json:"month"` // "Mon YYYY", month mode only
	Start      time.Time  `json:"start"` // range mode only
	End        time.Time  `json:"end"`
	Department string     `json:"department"`
	IncludeEnv bool       `json:"include_env"`
	IncludePnb bool       `json:"include_pnb"`
}

// monthLabelLayout matches the sheet's month tags, e.g. "Jan 2025".
const monthLabelLayout = "Jan 2006"

// Validate checks the filter is internally consistent for its mode.
func (f *Filter) Validate() error {
	var errs validator.ValidationErrors

	switch f.Mode {
	case ModeMonth:
		if f.Month == "" {
			errs = append(errs, validator.ValidationError{
				Field:   "month",
				Message: "month is required in month mode",
			})
		} else if _, err := time.Parse(monthLabelLayout, f.Month); err != nil {
			errs = append(errs, validator.ValidationError{
				Field:   "month",
				Message: "month must be in \"Mon YYYY\" form, e.g. \"Jan 2025\"",
			})
		}
	case ModeDateRange:
		if f.Start.IsZero() {
			errs = append(errs, validator.ValidationError{
				Field:   "start",
				Message: "start date is required in dateRange mode",
			})
		}
		if f.End.IsZero() {
			errs = append(errs, validator.ValidationError{
				Field:   "end",
				Message: "end date is required in dateRange mode",
			})
		}
		if !f.Start.IsZero() && !f.End.IsZero() && f.Start.After(f.End) {
			errs = append(errs, validator.ValidationError{
				Field:   "end",
				Message: "end date must not be before start date",
			})
		}
	default:
		errs = append(errs, validator.ValidationError{
			Field:   "mode",
			Message: "mode must be \"month\" or \"dateRange\"",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// DepartmentMatches reports whether an employee in dept passes the filter.
func (f *Filter) DepartmentMatches(dept string) bool {
	return f.Department == "" || f.Department == DepartmentAll || f.Department == dept
}
