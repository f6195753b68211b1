// Package sheet reads the published spreadsheet tables the planner consumes.
// The source exports rows as comma-separated text where double quotes may
// enclose commas; a quote character toggles an "inside quotes" state rather
// than splitting the field.
package sheet

import (
	"bufio"
	"io"
	"strings"
)

// Record is one data row keyed by the header row. Columns absent from the
// header read as "".
type Record map[string]string

// Get returns the trimmed value of a named column.
func (r Record) Get(column string) string {
	return strings.TrimSpace(r[column])
}

// Table is a parsed sheet: the header row plus every data row.
type Table struct {
	Headers []string
	Rows    []Record
}

// SplitRow splits a single CSV line honoring the quote-toggle rule. Quote
// characters themselves are not part of the field value.
func SplitRow(line string) []string {
	var (
		fields  []string
		current strings.Builder
		quoted  bool
	)

	for _, ch := range line {
		switch {
		case ch == '"':
			quoted = !quoted
		case ch == ',' && !quoted:
			fields = append(fields, current.String())
			current.Reset()
		default:
			current.WriteRune(ch)
		}
	}
	fields = append(fields, current.String())

	for i, f := range fields {
		fields[i] = strings.TrimSpace(f)
	}
	return fields
}

// ParseTable reads a whole CSV export. The first non-empty line is the
// header; unknown columns are kept (callers ignore them), short rows leave
// trailing columns empty.
func ParseTable(r io.Reader) (*Table, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	table := &Table{}
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		if table.Headers == nil {
			table.Headers = SplitRow(line)
			continue
		}

		fields := SplitRow(line)
		row := make(Record, len(table.Headers))
		for i, h := range table.Headers {
			if i < len(fields) {
				row[h] = fields[i]
			}
		}
		table.Rows = append(table.Rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return table, nil
}
