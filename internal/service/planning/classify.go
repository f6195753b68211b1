package planning

import (
	"strings"

	"github.com/cmlabs-hris/capacity-planner-go/internal/domain/planning"
)

// INTMatchMode controls how an internal-work task label is recognized. The
// source sheets have carried both conventions over time, so it is policy,
// not a hardcoded rule.
type INTMatchMode string

const (
	// INTMatchBracket recognizes the "[INT]" tag or the exact label "INT".
	INTMatchBracket INTMatchMode = "bracket"
	// INTMatchSubstring recognizes "INT" anywhere in the label.
	INTMatchSubstring INTMatchMode = "substring"
)

// Bracket tags are case-sensitive; the PNB prefix is not.
const (
	tagPTO    = "[PTO]"
	tagINT    = "[INT]"
	tagENV    = "[ENV]"
	pnbPrefix = "pnb:"
)

// Classify buckets a task label into exactly one category, testing in fixed
// priority order: PTO, then INT, then ENV, then PNB. A label carrying both
// "[PTO]" and "PNB:" is PTO.
func Classify(task string, intMode INTMatchMode) planning.Category {
	switch {
	case strings.Contains(task, tagPTO):
		return planning.CategoryPTO
	case matchesINT(task, intMode):
		return planning.CategoryINT
	case strings.Contains(task, tagENV):
		return planning.CategoryENV
	case strings.HasPrefix(strings.ToLower(task), pnbPrefix):
		return planning.CategoryPNB
	default:
		return planning.CategoryBillable
	}
}

func matchesINT(task string, mode INTMatchMode) bool {
	if mode == INTMatchSubstring {
		return strings.Contains(task, "INT")
	}
	return strings.Contains(task, tagINT) || strings.TrimSpace(task) == "INT"
}

// Included reports whether an allocation of the given category survives the
// include toggles at all. When ENV or PNB is toggled off, its rows are
// dropped from aggregation entirely, not just marked non-billable.
func Included(cat planning.Category, f *planning.Filter) bool {
	switch cat {
	case planning.CategoryENV:
		return f.IncludeEnv
	case planning.CategoryPNB:
		return f.IncludePnb
	default:
		return true
	}
}
