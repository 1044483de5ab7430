// Package csvio implements the CSV wire format used by the transfer flows:
// fixed six-column header, conditional quoting, and a quoted-span scanner
// that accepts fields spanning physical lines.
package csvio

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Header columns in export order. Import accepts any column order as long as
// all six names are present.
var Header = []string{"ID", "CreateDate", "Company", "JobPosition", "Link", "Status"}

var ErrBadHeader = errors.New("invalid CSV header")

// Row is one record in wire form. All fields are raw text; interpretation
// (ID parsing, date parsing, status resolution) happens in the importer.
type Row struct {
	ID          string
	CreateDate  string
	Company     string
	JobPosition string
	Link        string
	Status      string
}

type SkippedRow struct {
	Line   int
	Reason string
}

type DecodeResult struct {
	Rows    []Row
	Skipped []SkippedRow
}

// Escape wraps the field in double quotes, doubling internal quotes, iff it
// contains a comma, a double quote, or a newline. The rule is the exact
// inverse of Unescape so encode/decode round-trips.
func Escape(field string) string {
	if strings.ContainsAny(field, ",\"\n") {
		return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
	}
	return field
}

// Unescape strips one layer of surrounding quotes and collapses doubled
// quotes. Unquoted fields pass through unchanged.
func Unescape(field string) string {
	if len(field) >= 2 && strings.HasPrefix(field, `"`) && strings.HasSuffix(field, `"`) {
		field = field[1 : len(field)-1]
	}
	return strings.ReplaceAll(field, `""`, `"`)
}

// Encode renders the header line plus one line per row, fields in Header
// order. ID and CreateDate are machine-generated and emitted verbatim; the
// free-form columns go through Escape.
func Encode(rows []Row) string {
	var b strings.Builder
	b.WriteString(strings.Join(Header, ","))
	for _, r := range rows {
		b.WriteByte('\n')
		b.WriteString(r.ID)
		b.WriteByte(',')
		b.WriteString(r.CreateDate)
		b.WriteByte(',')
		b.WriteString(Escape(r.Company))
		b.WriteByte(',')
		b.WriteString(Escape(r.JobPosition))
		b.WriteByte(',')
		b.WriteString(Escape(r.Link))
		b.WriteByte(',')
		b.WriteString(Escape(r.Status))
	}
	return b.String()
}

// Decode parses CSV text into rows. The header row must contain all six
// expected column names in any order. Records whose field count does not
// match the header, or whose Company or JobPosition is empty after trimming,
// are reported in Skipped rather than aborting the decode.
func Decode(text string) (DecodeResult, error) {
	records := splitRecords(text)
	if len(records) == 0 {
		return DecodeResult{}, ErrBadHeader
	}

	header := records[0]
	colIdx := make(map[string]int, len(header))
	for i, h := range header {
		colIdx[strings.TrimSpace(h)] = i
	}
	for _, want := range Header {
		if _, ok := colIdx[want]; !ok {
			return DecodeResult{}, fmt.Errorf("%w: missing column %s", ErrBadHeader, want)
		}
	}

	res := DecodeResult{Rows: make([]Row, 0, len(records)-1)}
	for i, rec := range records[1:] {
		line := i + 2
		if len(rec) != len(header) {
			res.Skipped = append(res.Skipped, SkippedRow{
				Line:   line,
				Reason: fmt.Sprintf("field count %d, expected %d", len(rec), len(header)),
			})
			continue
		}

		field := func(name string) string {
			return strings.TrimSpace(rec[colIdx[name]])
		}
		row := Row{
			ID:          field("ID"),
			CreateDate:  field("CreateDate"),
			Company:     field("Company"),
			JobPosition: field("JobPosition"),
			Link:        field("Link"),
			Status:      field("Status"),
		}
		if row.Company == "" || row.JobPosition == "" {
			res.Skipped = append(res.Skipped, SkippedRow{Line: line, Reason: "empty Company or JobPosition"})
			continue
		}
		res.Rows = append(res.Rows, row)
	}

	return res, nil
}

// splitRecords scans the whole text character by character. A double quote
// toggles the quoted span; commas and newlines inside a span belong to the
// field, so quoted fields may cross physical lines.
func splitRecords(text string) [][]string {
	var (
		records  [][]string
		fields   []string
		current  strings.Builder
		inQuotes bool
		sawAny   bool
	)

	endField := func() {
		fields = append(fields, Unescape(current.String()))
		current.Reset()
	}
	endRecord := func() {
		endField()
		blank := len(fields) == 1 && strings.TrimSpace(fields[0]) == ""
		if !blank {
			records = append(records, fields)
		}
		fields = nil
		sawAny = false
	}

	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case c == '"':
			inQuotes = !inQuotes
			current.WriteByte(c)
			sawAny = true
		case c == ',' && !inQuotes:
			endField()
			sawAny = true
		case c == '\n' && !inQuotes:
			endRecord()
		case c == '\r' && !inQuotes && i+1 < len(text) && text[i+1] == '\n':
			// consumed with the following newline
		default:
			current.WriteByte(c)
			sawAny = true
		}
	}
	if sawAny || current.Len() > 0 || len(fields) > 0 {
		endRecord()
	}

	return records
}

// ExportFilename names a download after the day it was produced.
func ExportFilename(now time.Time) string {
	return "job_search_" + now.UTC().Format("2006-01-02") + ".csv"
}
