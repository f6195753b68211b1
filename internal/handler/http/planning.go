package http

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/cmlabs-hris/capacity-planner-go/internal/domain/planning"
	"github.com/cmlabs-hris/capacity-planner-go/internal/handler/http/response"
)

type PlanningHandler interface {
	// GetReport returns the filtered utilization report
	GetReport(w http.ResponseWriter, r *http.Request)
	// ExportReport streams the report as a csv or xlsx download
	ExportReport(w http.ResponseWriter, r *http.Request)
	// GetOptions returns the department and month filter choices
	GetOptions(w http.ResponseWriter, r *http.Request)
	// Refresh forces a source re-fetch
	Refresh(w http.ResponseWriter, r *http.Request)
}

type planningHandlerImpl struct {
	plannerService planning.PlannerService
}

func NewPlanningHandler(plannerService planning.PlannerService) PlanningHandler {
	return &planningHandlerImpl{plannerService: plannerService}
}

// filter date inputs arrive the way the sheets carry them, with the ISO
// form accepted as well.
var filterDateLayouts = []string{"01/02/2006", "2006-01-02"}

func parseFilterDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	for _, layout := range filterDateLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", raw)
}

// filterFromQuery builds the engine filter from the dashboard's query
// string. Defaults: month mode over the current month, all departments,
// ENV and PNB excluded.
func filterFromQuery(r *http.Request) (planning.Filter, map[string]string) {
	q := r.URL.Query()

	f := planning.Filter{
		Mode:       planning.FilterMode(q.Get("mode")),
		Month:      q.Get("month"),
		Department: q.Get("department"),
	}
	if f.Mode == "" {
		f.Mode = planning.ModeMonth
	}
	if f.Mode == planning.ModeMonth && f.Month == "" {
		f.Month = time.Now().Format("Jan 2006")
	}
	if f.Department == "" {
		f.Department = planning.DepartmentAll
	}

	details := make(map[string]string)
	var err error
	if f.Start, err = parseFilterDate(q.Get("start")); err != nil {
		details["start"] = "start must be MM/DD/YYYY or YYYY-MM-DD"
	}
	if f.End, err = parseFilterDate(q.Get("end")); err != nil {
		details["end"] = "end must be MM/DD/YYYY or YYYY-MM-DD"
	}

	if v := q.Get("include_env"); v != "" {
		if f.IncludeEnv, err = strconv.ParseBool(v); err != nil {
			details["include_env"] = "include_env must be a boolean"
		}
	}
	if v := q.Get("include_pnb"); v != "" {
		if f.IncludePnb, err = strconv.ParseBool(v); err != nil {
			details["include_pnb"] = "include_pnb must be a boolean"
		}
	}

	if len(details) == 0 {
		return f, nil
	}
	return f, details
}

// GetReport handles GET /report
func (h *planningHandlerImpl) GetReport(w http.ResponseWriter, r *http.Request) {
	filter, details := filterFromQuery(r)
	if details != nil {
		response.BadRequest(w, "Invalid filter parameters", details)
		return
	}

	result, err := h.plannerService.BuildReport(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ExportReport handles GET /report/export?format=csv|xlsx
func (h *planningHandlerImpl) ExportReport(w http.ResponseWriter, r *http.Request) {
	filter, details := filterFromQuery(r)
	if details != nil {
		response.BadRequest(w, "Invalid filter parameters", details)
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = "csv"
	}

	var (
		body        []byte
		contentType string
		filename    string
		err         error
	)
	switch format {
	case "csv":
		body, err = h.plannerService.ExportCSV(r.Context(), filter)
		contentType = "text/csv"
		filename = "utilization.csv"
	case "xlsx":
		body, err = h.plannerService.ExportXLSX(r.Context(), filter)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		filename = "utilization.xlsx"
	default:
		response.HandleError(w, planning.ErrUnknownExportFormat)
		return
	}
	if err != nil {
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

// GetOptions handles GET /options
func (h *planningHandlerImpl) GetOptions(w http.ResponseWriter, r *http.Request) {
	result, err := h.plannerService.Options(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Refresh handles POST /refresh
func (h *planningHandlerImpl) Refresh(w http.ResponseWriter, r *http.Request) {
	if err := h.plannerService.Refresh(r.Context()); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Sources refreshed", nil)
}
