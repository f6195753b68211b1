package planning

import "context"

// PlannerService defines the interface for capacity planning operations
type PlannerService interface {
	// Refresh fetches both source tables and replaces the snapshot.
	// Either fetch failing aborts the refresh; the prior snapshot stays.
	Refresh(ctx context.Context) error

	// BuildReport computes a utilization report for the filter from the
	// current snapshot, refreshing first if the snapshot is missing or stale.
	BuildReport(ctx context.Context, filter Filter) (*Report, error)

	// Options returns the distinct departments and month labels the
	// dashboard can filter on.
	Options(ctx context.Context) (*FilterOptions, error)

	// ExportCSV renders the report as the fixed-header CSV download.
	ExportCSV(ctx context.Context, filter Filter) ([]byte, error)

	// ExportXLSX renders the report as an Excel workbook.
	ExportXLSX(ctx context.Context, filter Filter) ([]byte, error)
}
