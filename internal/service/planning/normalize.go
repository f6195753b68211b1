package planning

import (
	"strconv"
	"strings"
	"time"

	"github.com/cmlabs-hris/capacity-planner-go/internal/domain/planning"
	"github.com/cmlabs-hris/capacity-planner-go/internal/pkg/sheet"
)

// NormalizeName converts either "Last, First" or "First Last" into the
// canonical uppercase "FIRST LAST" form both tables are joined on.
func NormalizeName(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	if idx := strings.Index(raw, ","); idx >= 0 {
		last := strings.TrimSpace(raw[:idx])
		first := strings.TrimSpace(raw[idx+1:])
		return strings.ToUpper(strings.TrimSpace(first + " " + last))
	}
	return strings.ToUpper(raw)
}

// ParsePercent parses a billing target that may arrive as "80%", "0.8" or
// "80". Values above 1 are assumed to be on the 0-100 scale. The result is
// clamped to [0,1]; anything unparseable is 0.
func ParsePercent(raw string) float64 {
	raw = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(raw), "%"))
	if raw == "" {
		return 0
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	if v > 1 {
		v /= 100
	}
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// ParseHours parses an hour quantity; non-numeric input degrades to 0.
func ParseHours(raw string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

// date layouts the sheets use. "Jan-2" also accepts zero-padded days.
const (
	layoutFullDate = "01/02/2006"
	layoutMonthDay = "Jan-2"
)

// ParseDate parses "MM/DD/YYYY" or "Mon-DD". The short form carries no year,
// so refYear (the year at parse time) is assumed. Unparseable input yields
// the zero time, never an error.
func ParseDate(raw string, refYear int) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}
	}

	if t, err := time.ParseInLocation(layoutFullDate, raw, time.Local); err == nil {
		return t
	}
	if t, err := time.ParseInLocation(layoutMonthDay, raw, time.Local); err == nil {
		return time.Date(refYear, t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
	}
	return time.Time{}
}

// Roster/allocation sheet column names. Column order is not guaranteed,
// rows are read by header name.
const (
	colName        = "Name"
	colDepartment  = "Department"
	colTitle       = "Title"
	colBillable    = "Percentage Billable"
	colResource    = "Resource"
	colProjectTask = "Project (from Task)"
	colEstimated   = "Estimated Hours"
	colStartDate   = "Start Date"
	colEndDate     = "End Date"
	colMonth       = "Month"
)

// NormalizeRoster builds the roster map from the raw roster table. Rows
// without a name are skipped; later duplicates overwrite earlier ones.
func NormalizeRoster(table *sheet.Table) planning.Roster {
	roster := make(planning.Roster, len(table.Rows))
	for _, row := range table.Rows {
		name := NormalizeName(row.Get(colName))
		if name == "" {
			continue
		}
		roster[name] = planning.Person{
			Name:          name,
			Department:    row.Get(colDepartment),
			Title:         row.Get(colTitle),
			BillingTarget: ParsePercent(row.Get(colBillable)),
		}
	}
	return roster
}

// NormalizeAllocations converts raw allocation rows into typed records.
// refYear resolves the year-less "Mon-DD" date form.
func NormalizeAllocations(table *sheet.Table, refYear int) []planning.Allocation {
	allocs := make([]planning.Allocation, 0, len(table.Rows))
	for _, row := range table.Rows {
		resource := row.Get(colResource)
		if resource == "" {
			continue
		}
		allocs = append(allocs, planning.Allocation{
			Resource:           resource,
			NormalizedResource: NormalizeName(resource),
			Project:            row.Get(colProjectTask),
			Task:               row.Get(colName),
			Start:              ParseDate(row.Get(colStartDate), refYear),
			End:                ParseDate(row.Get(colEndDate), refYear),
			Hours:              ParseHours(row.Get(colEstimated)),
			Month:              row.Get(colMonth),
		})
	}
	return allocs
}
