package planning

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/cmlabs-hris/capacity-planner-go/internal/domain/planning"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testConstants = Constants{
	AnnualBillableHours: 2080,
	AnnualBusinessDays:  260,
	NoiseFloorHours:     1,
}

func testRoster() planning.Roster {
	return planning.Roster{
		"JANE DOE":   {Name: "JANE DOE", Department: "Eng", Title: "Engineer", BillingTarget: 0.8},
		"JOHN SMITH": {Name: "JOHN SMITH", Department: "Design", Title: "Designer", BillingTarget: 0.5},
	}
}

func rangeFilter(start, end time.Time) planning.Filter {
	return planning.Filter{
		Mode:       planning.ModeDateRange,
		Start:      start,
		End:        end,
		Department: planning.DepartmentAll,
	}
}

func TestAggregateEndToEnd(t *testing.T) {
	// Roster: Jane Doe, Eng, 80% target. One 100h allocation fully inside
	// the period. Jan 1-10 2025 spans 8 business days.
	allocs := []planning.Allocation{{
		Resource:           "Jane Doe",
		NormalizedResource: "JANE DOE",
		Project:            "ProjX: Build",
		Task:               "ProjX: Build",
		Start:              time.Date(2025, time.January, 1, 0, 0, 0, 0, time.Local),
		End:                time.Date(2025, time.January, 10, 0, 0, 0, 0, time.Local),
		Hours:              100,
	}}
	f := rangeFilter(allocs[0].Start, allocs[0].End)
	period := ResolvePeriod(&f)
	require.Equal(t, 8, period.BusinessDays)

	report := Aggregate(testRoster(), allocs, period, &f, testConstants, INTMatchBracket)
	require.Len(t, report.Employees, 1)

	em := report.Employees[0]
	assert.Equal(t, "JANE DOE", em.Name)
	assert.Equal(t, "Jane Doe", em.DisplayName)
	assert.Equal(t, 100.0, em.BookedBillableHours)
	assert.Equal(t, 100.0, em.TotalBookedHours)
	assert.InDelta(t, 51.2, em.RequiredBillableHours, 1e-9)
	assert.InDelta(t, 195.3125, em.PercentToTarget, 1e-9)
	assert.InDelta(t, 64.0, em.PotentialHours, 1e-9)
	assert.InDelta(t, 156.25, em.UtilizationPercent, 1e-9)

	require.Len(t, em.Projects, 1)
	assert.Equal(t, "ProjX", em.Projects[0].Project)
	assert.True(t, em.Projects[0].Billable)

	require.Len(t, report.Departments, 1)
	assert.Equal(t, "Eng", report.Departments[0].Department)
	assert.InDelta(t, 195.3125, report.Departments[0].UtilizationPercent, 1e-9)
	assert.Equal(t, 1, report.Overall.Headcount)
	assert.InDelta(t, 195.3125, report.Overall.UtilizationPercent, 1e-9)
}

func TestAggregateInvariantTotals(t *testing.T) {
	start := time.Date(2025, time.January, 6, 0, 0, 0, 0, time.Local)
	end := time.Date(2025, time.January, 10, 0, 0, 0, 0, time.Local)
	allocs := []planning.Allocation{
		{NormalizedResource: "JANE DOE", Project: "ProjX: Build", Task: "ProjX: Build", Start: start, End: end, Hours: 20},
		{NormalizedResource: "JANE DOE", Project: "[ENV] Tooling", Task: "[ENV] Tooling", Start: start, End: end, Hours: 5},
		{NormalizedResource: "JANE DOE", Project: "PNB: Talk", Task: "PNB: Talk", Start: start, End: end, Hours: 3},
		{NormalizedResource: "JANE DOE", Project: "[PTO] Vacation", Task: "[PTO] Vacation", Start: start, End: end, Hours: 8},
		{NormalizedResource: "JANE DOE", Project: "[INT] Sync", Task: "[INT] Sync", Start: start, End: end, Hours: 2},
	}
	f := rangeFilter(start, end)
	f.IncludeEnv = true
	f.IncludePnb = true
	period := ResolvePeriod(&f)

	report := Aggregate(testRoster(), allocs, period, &f, testConstants, INTMatchBracket)
	require.Len(t, report.Employees, 1)
	em := report.Employees[0]

	// PTO and INT sit outside both billable buckets.
	assert.Equal(t, 25.0, em.BookedBillableHours) // ProjX + ENV
	assert.Equal(t, 3.0, em.BookedNonBillableHours)
	assert.Equal(t, em.BookedBillableHours+em.BookedNonBillableHours, em.TotalBookedHours)
	assert.Equal(t, 8.0, em.PTOHours)
	assert.Equal(t, 2.0, em.INTHours)

	// But they still appear in the breakdown as non-billable lines.
	projects := make(map[string]planning.ProjectLine)
	for _, line := range em.Projects {
		projects[line.Project] = line
	}
	require.Contains(t, projects, "[PTO] Vacation")
	assert.False(t, projects["[PTO] Vacation"].Billable)
	require.Contains(t, projects, "[INT] Sync")
	assert.False(t, projects["[INT] Sync"].Billable)
}

func TestAggregateMonthModeSelectsByLabel(t *testing.T) {
	// Month mode matches the categorical label, not date overlap: the
	// second allocation's dates fall in January but its label says Feb.
	allocs := []planning.Allocation{
		{NormalizedResource: "JANE DOE", Project: "A", Task: "A", Hours: 10, Month: "Jan 2025"},
		{NormalizedResource: "JANE DOE", Project: "B", Task: "B", Hours: 7, Month: "Feb 2025",
			Start: time.Date(2025, time.January, 6, 0, 0, 0, 0, time.Local),
			End:   time.Date(2025, time.January, 10, 0, 0, 0, 0, time.Local)},
	}
	f := planning.Filter{Mode: planning.ModeMonth, Month: "Jan 2025", Department: planning.DepartmentAll}
	period := ResolvePeriod(&f)

	report := Aggregate(testRoster(), allocs, period, &f, testConstants, INTMatchBracket)
	require.Len(t, report.Employees, 1)
	assert.Equal(t, 10.0, report.Employees[0].TotalBookedHours)
}

func TestAggregateDropsUnrosteredAndFiltered(t *testing.T) {
	start := time.Date(2025, time.January, 6, 0, 0, 0, 0, time.Local)
	end := time.Date(2025, time.January, 10, 0, 0, 0, 0, time.Local)
	allocs := []planning.Allocation{
		{NormalizedResource: "JANE DOE", Project: "A", Task: "A", Start: start, End: end, Hours: 10},
		{NormalizedResource: "NO SUCH PERSON", Project: "B", Task: "B", Start: start, End: end, Hours: 10},
		{NormalizedResource: "JOHN SMITH", Project: "C", Task: "C", Start: start, End: end, Hours: 10},
	}
	f := rangeFilter(start, end)
	f.Department = "Eng"
	period := ResolvePeriod(&f)

	report := Aggregate(testRoster(), allocs, period, &f, testConstants, INTMatchBracket)
	require.Len(t, report.Employees, 1)
	assert.Equal(t, "JANE DOE", report.Employees[0].Name)
}

func TestAggregateNoiseFloor(t *testing.T) {
	start := time.Date(2025, time.January, 6, 0, 0, 0, 0, time.Local)
	end := time.Date(2025, time.January, 10, 0, 0, 0, 0, time.Local)
	allocs := []planning.Allocation{
		{NormalizedResource: "JANE DOE", Project: "A", Task: "A", Start: start, End: end, Hours: 10},
		// Below the 1h floor: excluded from rollups, still reported per-employee.
		{NormalizedResource: "JOHN SMITH", Project: "B", Task: "B", Start: start, End: end, Hours: 0.5},
	}
	f := rangeFilter(start, end)
	period := ResolvePeriod(&f)

	report := Aggregate(testRoster(), allocs, period, &f, testConstants, INTMatchBracket)
	require.Len(t, report.Employees, 2)
	require.Len(t, report.Departments, 1)
	assert.Equal(t, "Eng", report.Departments[0].Department)
	assert.Equal(t, 1, report.Overall.Headcount)
}

func TestAggregatePnbToggleMonotonic(t *testing.T) {
	start := time.Date(2025, time.January, 6, 0, 0, 0, 0, time.Local)
	end := time.Date(2025, time.January, 10, 0, 0, 0, 0, time.Local)
	allocs := []planning.Allocation{
		{NormalizedResource: "JANE DOE", Project: "A", Task: "A", Start: start, End: end, Hours: 10},
		{NormalizedResource: "JANE DOE", Project: "PNB: Talk", Task: "PNB: Talk", Start: start, End: end, Hours: 4},
		{NormalizedResource: "JOHN SMITH", Project: "C", Task: "C", Start: start, End: end, Hours: 6},
	}
	period := ResolvePeriod(&planning.Filter{Mode: planning.ModeDateRange, Start: start, End: end})

	off := rangeFilter(start, end)
	on := rangeFilter(start, end)
	on.IncludePnb = true

	reportOff := Aggregate(testRoster(), allocs, period, &off, testConstants, INTMatchBracket)
	reportOn := Aggregate(testRoster(), allocs, period, &on, testConstants, INTMatchBracket)

	byName := func(r planning.Report, name string) planning.EmployeeMetrics {
		for _, em := range r.Employees {
			if em.Name == name {
				return em
			}
		}
		t.Fatalf("employee %s not found", name)
		return planning.EmployeeMetrics{}
	}

	janeOff, janeOn := byName(reportOff, "JANE DOE"), byName(reportOn, "JANE DOE")
	assert.GreaterOrEqual(t, janeOn.TotalBookedHours, janeOff.TotalBookedHours)
	assert.Equal(t, janeOff.BookedBillableHours, janeOn.BookedBillableHours)

	johnOff, johnOn := byName(reportOff, "JOHN SMITH"), byName(reportOn, "JOHN SMITH")
	assert.Equal(t, johnOff.BookedBillableHours, johnOn.BookedBillableHours)
	assert.Equal(t, johnOff.TotalBookedHours, johnOn.TotalBookedHours)
}

func TestAggregateIdempotent(t *testing.T) {
	start := time.Date(2025, time.January, 6, 0, 0, 0, 0, time.Local)
	end := time.Date(2025, time.January, 17, 0, 0, 0, 0, time.Local)
	allocs := []planning.Allocation{
		{NormalizedResource: "JANE DOE", Project: "ProjX: Build", Task: "ProjX: Build", Start: start, End: end, Hours: 40},
		{NormalizedResource: "JANE DOE", Project: "ProjY: Ship", Task: "ProjY: Ship", Start: start, End: end, Hours: 12},
		{NormalizedResource: "JOHN SMITH", Project: "ProjX: Design", Task: "ProjX: Design", Start: start, End: end, Hours: 25},
		{NormalizedResource: "JOHN SMITH", Project: "[PTO] Leave", Task: "[PTO] Leave", Start: start, End: end, Hours: 8},
	}
	f := rangeFilter(start, end)
	period := ResolvePeriod(&f)

	first := Aggregate(testRoster(), allocs, period, &f, testConstants, INTMatchBracket)
	second := Aggregate(testRoster(), allocs, period, &f, testConstants, INTMatchBracket)

	firstJSON, err := json.Marshal(first)
	require.NoError(t, err)
	secondJSON, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, string(firstJSON), string(secondJSON))
}

func TestAggregateGroupsByProjectAndCategory(t *testing.T) {
	start := time.Date(2025, time.January, 6, 0, 0, 0, 0, time.Local)
	end := time.Date(2025, time.January, 10, 0, 0, 0, 0, time.Local)
	allocs := []planning.Allocation{
		{NormalizedResource: "JANE DOE", Project: "ProjX: Build", Task: "ProjX: Build", Start: start, End: end, Hours: 10},
		{NormalizedResource: "JANE DOE", Project: "ProjX: Test", Task: "ProjX: Test", Start: start, End: end, Hours: 5},
		{NormalizedResource: "JANE DOE", Project: "ProjY: Plan", Task: "ProjY: Plan", Start: start, End: end, Hours: 2},
	}
	f := rangeFilter(start, end)
	period := ResolvePeriod(&f)

	report := Aggregate(testRoster(), allocs, period, &f, testConstants, INTMatchBracket)
	require.Len(t, report.Employees, 1)

	// Both ProjX tasks share a (project, category) group.
	projects := report.Employees[0].Projects
	require.Len(t, projects, 2)
	assert.Equal(t, "ProjX", projects[0].Project)
	assert.Equal(t, 15.0, projects[0].Hours)
	assert.Equal(t, "ProjY", projects[1].Project)
}
