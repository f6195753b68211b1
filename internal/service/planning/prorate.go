package planning

import (
	"github.com/cmlabs-hris/capacity-planner-go/internal/domain/planning"
	"github.com/cmlabs-hris/capacity-planner-go/internal/pkg/workdays"
)

// Prorate scales an allocation's hours down to the share of its own
// business-day span that falls inside the period:
//
//	prorated = hours * overlapBusinessDays / allocationBusinessDays
//
// A 10-business-day allocation of 40 hours with 3 business days in-period
// contributes 12 hours no matter how long the period itself is.
//
// The second return is false when the allocation contributes nothing:
// missing dates, no overlap, a zero-length span, or a non-positive result.
func Prorate(alloc planning.Allocation, period planning.Period) (planning.Allocation, bool) {
	if alloc.Start.IsZero() || alloc.End.IsZero() {
		return planning.Allocation{}, false
	}

	allocStart := workdays.Midnight(alloc.Start)
	allocEnd := workdays.Midnight(alloc.End)

	overlapStart := allocStart
	if period.Start.After(overlapStart) {
		overlapStart = period.Start
	}
	overlapEnd := allocEnd
	if period.End.Before(overlapEnd) {
		overlapEnd = period.End
	}
	if overlapStart.After(overlapEnd) {
		return planning.Allocation{}, false
	}

	totalDays := workdays.Between(allocStart, allocEnd)
	if totalDays == 0 {
		return planning.Allocation{}, false
	}
	overlapDays := workdays.Between(overlapStart, overlapEnd)

	prorated := alloc.Hours * float64(overlapDays) / float64(totalDays)
	if prorated <= 0 {
		return planning.Allocation{}, false
	}

	out := alloc
	out.Hours = prorated
	return out, true
}
