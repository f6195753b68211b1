package planning

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/capacity-planner-go/internal/domain/planning"
	"github.com/xuri/excelize/v2"
)

// exportHeader is the fixed column set of the utilization download. Hours
// render with 2 decimals, the target as a whole percent, % of target with 2
// decimals.
var exportHeader = []string{
	"First Last", "Title", "Department", "Required Hrs", "Hrs Booked",
	"Target %", "% of Target", "PTO Hrs", "INT Hrs",
}

func exportRow(em planning.EmployeeMetrics) []string {
	return []string{
		em.DisplayName,
		em.Title,
		em.Department,
		fmt.Sprintf("%.2f", em.RequiredBillableHours),
		fmt.Sprintf("%.2f", em.BookedBillableHours),
		fmt.Sprintf("%.0f", em.BillingTarget*100),
		fmt.Sprintf("%.2f", em.PercentToTarget),
		fmt.Sprintf("%.2f", em.PTOHours),
		fmt.Sprintf("%.2f", em.INTHours),
	}
}

// csvField quotes a field when it contains a comma or quote.
func csvField(v string) string {
	if strings.ContainsAny(v, ",\"") {
		return `"` + strings.ReplaceAll(v, `"`, `""`) + `"`
	}
	return v
}

// ExportCSV renders one employee row per line under the fixed header.
func (s *PlannerServiceImpl) ExportCSV(ctx context.Context, filter planning.Filter) ([]byte, error) {
	report, err := s.BuildReport(ctx, filter)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteString(strings.Join(exportHeader, ", "))
	buf.WriteByte('\n')
	for _, em := range report.Employees {
		fields := exportRow(em)
		for i, f := range fields {
			fields[i] = csvField(f)
		}
		buf.WriteString(strings.Join(fields, ","))
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}

const xlsxSheetName = "Utilization"

// ExportXLSX renders the same table as an Excel workbook.
func (s *PlannerServiceImpl) ExportXLSX(ctx context.Context, filter planning.Filter) ([]byte, error) {
	report, err := s.BuildReport(ctx, filter)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(xlsxSheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to drop default sheet: %w", err)
	}

	header := make([]interface{}, len(exportHeader))
	for i, h := range exportHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(xlsxSheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	for i, em := range report.Employees {
		fields := exportRow(em)
		row := make([]interface{}, len(fields))
		for j, v := range fields {
			row[j] = v
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(xlsxSheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}
