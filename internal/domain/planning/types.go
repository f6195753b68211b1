package planning

import "time"

// Person is one roster row after normalization. Name is the canonical
// uppercase "FIRST LAST" form the allocation table is matched against.
type Person struct {
	Name          string  `json:"name"`
	Department    string  `json:"department"`
	Title         string  `json:"title"`
	BillingTarget float64 `json:"billing_target"` // fraction in [0,1]
}

// Roster is the normalized roster keyed by canonical name.
type Roster map[string]Person

// Allocation is one allocation row after normalization. A zero Start/End
// means the source cell was empty or unparseable.
type Allocation struct {
	Resource           string    `json:"resource"`
	NormalizedResource string    `json:"normalized_resource"`
	Project            string    `json:"project"`
	Task               string    `json:"task"`
	Start              time.Time `json:"start"`
	End                time.Time `json:"end"`
	Hours              float64   `json:"hours"`
	Month              string    `json:"month"` // categorical "Mon YYYY" label from the sheet
}

// Period is the resolved reporting window.
type Period struct {
	Start        time.Time `json:"start"`
	End          time.Time `json:"end"`
	BusinessDays int       `json:"business_days"`
}

// Category classifies an allocation by its task label.
type Category string

const (
	CategoryPTO      Category = "PTO"
	CategoryINT      Category = "INT"
	CategoryENV      Category = "ENV"
	CategoryPNB      Category = "PNB"
	CategoryBillable Category = "BILLABLE"
)

// Billable reports whether hours in this category count toward the
// utilization target. ENV overhead is billable when included at all.
func (c Category) Billable() bool {
	switch c {
	case CategoryPTO, CategoryINT, CategoryPNB:
		return false
	default:
		return true
	}
}

// ProjectLine is one row of an employee's per-project breakdown, grouped by
// (truncated project name, category).
type ProjectLine struct {
	Project  string  `json:"project"`
	Task     string  `json:"task"`
	Hours    float64 `json:"hours"`
	Billable bool    `json:"billable"`
}

// EmployeeMetrics is the per-employee aggregate.
//
// Invariant: TotalBookedHours = BookedBillableHours + BookedNonBillableHours.
// PTO and INT hours are tracked separately and excluded from both.
type EmployeeMetrics struct {
	Name          string  `json:"name"`
	DisplayName   string  `json:"display_name"`
	Department    string  `json:"department"`
	Title         string  `json:"title"`
	BillingTarget float64 `json:"billing_target"`

	TotalBookedHours       float64 `json:"total_booked_hours"`
	BookedBillableHours    float64 `json:"booked_billable_hours"`
	BookedNonBillableHours float64 `json:"booked_non_billable_hours"`
	PTOHours               float64 `json:"pto_hours"`
	INTHours               float64 `json:"int_hours"`

	RequiredBillableHours float64 `json:"required_billable_hours"`
	PercentToTarget       float64 `json:"percent_to_target"`
	PotentialHours        float64 `json:"potential_hours"`
	UtilizationPercent    float64 `json:"utilization_percent"`

	Projects []ProjectLine `json:"projects"`
}

// DepartmentMetrics rolls qualifying employees of one department up.
type DepartmentMetrics struct {
	Department            string  `json:"department"`
	Headcount             int     `json:"headcount"`
	BookedBillableHours   float64 `json:"booked_billable_hours"`
	RequiredBillableHours float64 `json:"required_billable_hours"`
	UtilizationPercent    float64 `json:"utilization_percent"`
}

// OverallMetrics rolls all qualifying employees up.
type OverallMetrics struct {
	Headcount             int     `json:"headcount"`
	BookedBillableHours   float64 `json:"booked_billable_hours"`
	RequiredBillableHours float64 `json:"required_billable_hours"`
	UtilizationPercent    float64 `json:"utilization_percent"`
}

// Report is one complete computation pass. Every pass rebuilds it from
// scratch; nothing is mutated after it is returned.
type Report struct {
	ID          string              `json:"id"`
	GeneratedAt string              `json:"generated_at"`
	Period      Period              `json:"period"`
	Employees   []EmployeeMetrics   `json:"employees"`
	Departments []DepartmentMetrics `json:"departments"`
	Overall     OverallMetrics      `json:"overall"`
}

// FilterOptions lists the distinct values a dashboard can filter on,
// derived from the current snapshot.
type FilterOptions struct {
	Departments []string `json:"departments"`
	Months      []string `json:"months"`
}
