package planning

import "errors"

var (
	// ErrNoSnapshot means no source refresh has ever succeeded.
	ErrNoSnapshot = errors.New("no source snapshot available")

	// ErrSourceUnavailable wraps a failed roster or allocation fetch.
	ErrSourceUnavailable = errors.New("source table unavailable")

	// ErrUnknownExportFormat is returned for export formats other than
	// csv and xlsx.
	ErrUnknownExportFormat = errors.New("unknown export format")
)
