package planning

import (
	"time"

	"github.com/cmlabs-hris/capacity-planner-go/internal/domain/planning"
	"github.com/cmlabs-hris/capacity-planner-go/internal/pkg/workdays"
)

// monthLabelLayout matches the sheet's month tags, e.g. "Jan 2025".
const monthLabelLayout = "Jan 2006"

// ResolvePeriod derives the reporting window for a filter. Month mode spans
// the whole named calendar month; range mode uses the explicit inclusive
// bounds. The business-day count sizes the required/potential hour
// denominators in both modes.
func ResolvePeriod(f *planning.Filter) planning.Period {
	var start, end time.Time

	switch f.Mode {
	case planning.ModeMonth:
		parsed, err := time.ParseInLocation(monthLabelLayout, f.Month, time.Local)
		if err != nil {
			return planning.Period{}
		}
		start = parsed
		end = parsed.AddDate(0, 1, -1)
	case planning.ModeDateRange:
		start = workdays.Midnight(f.Start)
		end = workdays.Midnight(f.End)
	default:
		return planning.Period{}
	}

	return planning.Period{
		Start:        start,
		End:          end,
		BusinessDays: workdays.Between(start, end),
	}
}
