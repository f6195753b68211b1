package planning

import (
	"sort"
	"strings"

	"github.com/cmlabs-hris/capacity-planner-go/internal/domain/planning"
	"github.com/cmlabs-hris/capacity-planner-go/internal/pkg/metrics"
)

// Constants are the fixed full-time schedule values the ratios are derived
// from. They describe a standard schedule (2080 hours over 260 business
// days), never the data.
type Constants struct {
	AnnualBillableHours float64
	AnnualBusinessDays  float64
	// NoiseFloorHours excludes employees with negligible billable activity
	// from department and overall rollups.
	NoiseFloorHours float64
}

// lineKey groups an employee's breakdown by truncated project and category.
// A struct key avoids the collisions string concatenation invites.
type lineKey struct {
	Project  string
	Category planning.Category
}

type employeeAccum struct {
	person planning.Person

	total       float64
	billable    float64
	nonBillable float64
	pto         float64
	internal    float64

	lines map[lineKey]*planning.ProjectLine
}

// truncateProject keeps everything before the first colon of a project or
// task label, e.g. "ProjX: Build" -> "ProjX".
func truncateProject(label string) string {
	if idx := strings.Index(label, ":"); idx >= 0 {
		return strings.TrimSpace(label[:idx])
	}
	return strings.TrimSpace(label)
}

// selectAllocations picks the allocations that belong to the period. Month
// mode is an exact-match test on the sheet's categorical month label, hours
// untouched. Range mode is the overlap/prorate path.
func selectAllocations(allocs []planning.Allocation, f *planning.Filter, period planning.Period) []planning.Allocation {
	selected := make([]planning.Allocation, 0, len(allocs))
	for _, a := range allocs {
		switch f.Mode {
		case planning.ModeMonth:
			if a.Month == f.Month {
				selected = append(selected, a)
			}
		case planning.ModeDateRange:
			prorated, ok := Prorate(a, period)
			if !ok {
				metrics.RowsDroppedTotal.WithLabelValues("no_overlap").Inc()
				continue
			}
			selected = append(selected, prorated)
		}
	}
	return selected
}

// Aggregate folds classified, prorated allocations into per-employee totals
// and rolls those into department and overall summaries. The fold builds
// fresh maps every pass; the returned slices are sorted so identical inputs
// produce identical output.
func Aggregate(roster planning.Roster, allocs []planning.Allocation, period planning.Period, f *planning.Filter, consts Constants, intMode INTMatchMode) planning.Report {
	selected := selectAllocations(allocs, f, period)

	accums := make(map[string]*employeeAccum)
	for _, a := range selected {
		cat := Classify(a.Task, intMode)
		if !Included(cat, f) {
			metrics.RowsDroppedTotal.WithLabelValues("toggle_excluded").Inc()
			continue
		}

		person, ok := roster[a.NormalizedResource]
		if !ok {
			metrics.RowsDroppedTotal.WithLabelValues("no_roster_match").Inc()
			continue
		}
		if !f.DepartmentMatches(person.Department) {
			metrics.RowsDroppedTotal.WithLabelValues("department_filter").Inc()
			continue
		}

		acc, ok := accums[person.Name]
		if !ok {
			acc = &employeeAccum{person: person, lines: make(map[lineKey]*planning.ProjectLine)}
			accums[person.Name] = acc
		}

		switch cat {
		case planning.CategoryPTO:
			acc.pto += a.Hours
		case planning.CategoryINT:
			acc.internal += a.Hours
		default:
			acc.total += a.Hours
			if cat.Billable() {
				acc.billable += a.Hours
			} else {
				acc.nonBillable += a.Hours
			}
		}

		// PTO and INT stay out of the hour totals but still show up in the
		// per-project breakdown as non-billable lines.
		key := lineKey{Project: truncateProject(a.Project), Category: cat}
		line, ok := acc.lines[key]
		if !ok {
			line = &planning.ProjectLine{
				Project:  key.Project,
				Task:     a.Task,
				Billable: cat.Billable(),
			}
			acc.lines[key] = line
		}
		line.Hours += a.Hours
	}

	hoursPerDay := 0.0
	if consts.AnnualBusinessDays > 0 {
		hoursPerDay = consts.AnnualBillableHours / consts.AnnualBusinessDays
	}
	periodDays := float64(period.BusinessDays)

	employees := make([]planning.EmployeeMetrics, 0, len(accums))
	for _, acc := range accums {
		required := acc.person.BillingTarget * hoursPerDay * periodDays
		potential := hoursPerDay * periodDays

		em := planning.EmployeeMetrics{
			Name:                   acc.person.Name,
			DisplayName:            displayName(acc.person.Name),
			Department:             acc.person.Department,
			Title:                  acc.person.Title,
			BillingTarget:          acc.person.BillingTarget,
			TotalBookedHours:       acc.total,
			BookedBillableHours:    acc.billable,
			BookedNonBillableHours: acc.nonBillable,
			PTOHours:               acc.pto,
			INTHours:               acc.internal,
			RequiredBillableHours:  required,
			PercentToTarget:        ratioPercent(acc.billable, required),
			PotentialHours:         potential,
			UtilizationPercent:     ratioPercent(acc.total, potential),
		}

		em.Projects = make([]planning.ProjectLine, 0, len(acc.lines))
		for _, line := range acc.lines {
			em.Projects = append(em.Projects, *line)
		}
		sort.Slice(em.Projects, func(i, j int) bool {
			if em.Projects[i].Project != em.Projects[j].Project {
				return em.Projects[i].Project < em.Projects[j].Project
			}
			return em.Projects[i].Task < em.Projects[j].Task
		})

		employees = append(employees, em)
	}
	sort.Slice(employees, func(i, j int) bool { return employees[i].Name < employees[j].Name })

	departments, overall := rollup(employees, consts.NoiseFloorHours)

	return planning.Report{
		Period:      period,
		Employees:   employees,
		Departments: departments,
		Overall:     overall,
	}
}

// rollup sums employees at or above the billable noise floor into department
// and overall summaries.
func rollup(employees []planning.EmployeeMetrics, noiseFloor float64) ([]planning.DepartmentMetrics, planning.OverallMetrics) {
	byDept := make(map[string]*planning.DepartmentMetrics)
	var overall planning.OverallMetrics

	for _, em := range employees {
		if em.BookedBillableHours < noiseFloor {
			continue
		}

		dept, ok := byDept[em.Department]
		if !ok {
			dept = &planning.DepartmentMetrics{Department: em.Department}
			byDept[em.Department] = dept
		}
		dept.Headcount++
		dept.BookedBillableHours += em.BookedBillableHours
		dept.RequiredBillableHours += em.RequiredBillableHours

		overall.Headcount++
		overall.BookedBillableHours += em.BookedBillableHours
		overall.RequiredBillableHours += em.RequiredBillableHours
	}

	departments := make([]planning.DepartmentMetrics, 0, len(byDept))
	for _, dept := range byDept {
		dept.UtilizationPercent = ratioPercent(dept.BookedBillableHours, dept.RequiredBillableHours)
		departments = append(departments, *dept)
	}
	sort.Slice(departments, func(i, j int) bool { return departments[i].Department < departments[j].Department })

	overall.UtilizationPercent = ratioPercent(overall.BookedBillableHours, overall.RequiredBillableHours)
	return departments, overall
}

// ratioPercent is num/denom*100 with a zero denominator yielding 0, never
// NaN or Inf.
func ratioPercent(num, denom float64) float64 {
	if denom == 0 {
		return 0
	}
	return num / denom * 100
}

// displayName renders the canonical uppercase key as "First Last".
func displayName(canonical string) string {
	words := strings.Fields(strings.ToLower(canonical))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
