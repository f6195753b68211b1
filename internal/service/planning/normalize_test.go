package planning

import (
	"strings"
	"testing"
	"time"

	"github.com/cmlabs-hris/capacity-planner-go/internal/pkg/sheet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeName(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"Smith, John", "JOHN SMITH"},
		{"john smith", "JOHN SMITH"},
		{"Smith ,  John ", "JOHN SMITH"},
		{"Doe, Jane", "JANE DOE"},
		{"Jane Doe", "JANE DOE"},
		{"", ""},
		{"   ", ""},
	}
	for _, c := range cases {
		got := NormalizeName(c.input)
		if got != c.want {
			t.Errorf("NormalizeName(%q) = %q, want %q", c.input, got, c.want)
		}
	}
}

func TestNormalizeNameAgreesAcrossForms(t *testing.T) {
	assert.Equal(t, NormalizeName("Smith, John"), NormalizeName("john smith"))
}

func TestParsePercent(t *testing.T) {
	cases := []struct {
		input string
		want  float64
	}{
		{"50%", 0.5},
		{"0.5", 0.5},
		{"150", 1.0}, // clamped
		{"80", 0.8},
		{"1", 1.0}, // exactly 1 stays a fraction, only >1 is rescaled
		{"", 0},
		{"abc", 0},
		{"-10", 0},
		{" 75 % ", 0.75},
		{"100%", 1.0},
		{"0", 0},
	}
	for _, c := range cases {
		got := ParsePercent(c.input)
		if got != c.want {
			t.Errorf("ParsePercent(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestParseHours(t *testing.T) {
	cases := []struct {
		input string
		want  float64
	}{
		{"100", 100},
		{"12.5", 12.5},
		{"", 0},
		{"n/a", 0},
		{"-4", 0},
	}
	for _, c := range cases {
		got := ParseHours(c.input)
		if got != c.want {
			t.Errorf("ParseHours(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestParseDate(t *testing.T) {
	full := ParseDate("01/10/2025", 2024)
	assert.Equal(t, time.Date(2025, time.January, 10, 0, 0, 0, 0, time.Local), full)

	short := ParseDate("Mar-5", 2025)
	assert.Equal(t, time.Date(2025, time.March, 5, 0, 0, 0, 0, time.Local), short)

	padded := ParseDate("Mar-05", 2025)
	assert.Equal(t, short, padded)

	assert.True(t, ParseDate("", 2025).IsZero())
	assert.True(t, ParseDate("not a date", 2025).IsZero())
	assert.True(t, ParseDate("13/40/2025", 2025).IsZero())
}

func TestNormalizeRoster(t *testing.T) {
	input := strings.Join([]string{
		"Name,Department,Title,Percentage Billable,Extra Column",
		`"Doe, Jane",Eng,Engineer,80%,ignored`,
		"John Smith,Design,Designer,0.5,",
		",Ops,Nobody,100%,",
	}, "\n")
	table, err := sheet.ParseTable(strings.NewReader(input))
	require.NoError(t, err)

	roster := NormalizeRoster(table)
	require.Len(t, roster, 2)

	jane := roster["JANE DOE"]
	assert.Equal(t, "Eng", jane.Department)
	assert.Equal(t, "Engineer", jane.Title)
	assert.Equal(t, 0.8, jane.BillingTarget)

	john := roster["JOHN SMITH"]
	assert.Equal(t, 0.5, john.BillingTarget)
}

func TestNormalizeAllocations(t *testing.T) {
	input := strings.Join([]string{
		"Resource,Name,Project (from Task),Estimated Hours,Start Date,End Date,Month",
		`Jane Doe,ProjX: Build,ProjX: Build,100,01/01/2025,01/10/2025,Jan 2025`,
		`Jane Doe,[PTO] Vacation,[PTO] Vacation,16,Feb-3,Feb-4,Feb 2025`,
		`,Orphan,Orphan,8,,,`,
	}, "\n")
	table, err := sheet.ParseTable(strings.NewReader(input))
	require.NoError(t, err)

	allocs := NormalizeAllocations(table, 2025)
	require.Len(t, allocs, 2)

	first := allocs[0]
	assert.Equal(t, "JANE DOE", first.NormalizedResource)
	assert.Equal(t, "ProjX: Build", first.Project)
	assert.Equal(t, 100.0, first.Hours)
	assert.Equal(t, "Jan 2025", first.Month)
	assert.Equal(t, time.Date(2025, time.January, 1, 0, 0, 0, 0, time.Local), first.Start)

	second := allocs[1]
	assert.Equal(t, time.Date(2025, time.February, 3, 0, 0, 0, 0, time.Local), second.Start)
	assert.Equal(t, time.Date(2025, time.February, 4, 0, 0, 0, 0, time.Local), second.End)
}
