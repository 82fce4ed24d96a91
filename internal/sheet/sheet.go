// Package sheet maps between records and spreadsheet rows. The xlsx format
// itself is excelize's problem; this package only decides what the rows mean.
package sheet

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"apptrack-engine/internal/domain"
)

const sheetName = "Job Entries"

// Decode reads the first sheet of an xlsx stream into header-keyed rows.
// Row 1 is the header row; unrecognized headers are kept (the normalizer
// ignores them), short rows are padded with blanks. A broken file fails the
// whole decode — imports are atomic at the file level.
func Decode(r io.Reader) ([]map[string]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	headers := rows[0]
	out := make([]map[string]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		m := make(map[string]string, len(headers))
		for i, h := range headers {
			if h == "" {
				continue
			}
			if i < len(row) {
				m[h] = row[i]
			} else {
				m[h] = ""
			}
		}
		out = append(out, m)
	}
	return out, nil
}

// Encode writes one row per record under the internal field names, on a
// single sheet. Caller owns Close.
func Encode(records []domain.Record) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, err
	}

	for col, name := range domain.FieldNames {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheetName, cell, name); err != nil {
			return nil, err
		}
	}

	for i, rec := range records {
		for col, v := range recordValues(rec) {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return nil, err
			}
		}
	}
	return f, nil
}

// ExportFilename embeds the export date, matching the format users already
// have on disk from older exports.
func ExportFilename(t time.Time) string {
	return fmt.Sprintf("job_tracker_export_%s.xlsx", t.Format(domain.DateLayout))
}

// recordValues returns field values in domain.FieldNames order.
func recordValues(r domain.Record) []string {
	return []string{
		r.ID, string(r.Category), string(r.Source), r.ContactName,
		r.OrganizationName, r.EndClient, r.Location, string(r.Position),
		string(r.EmploymentType), r.Email, r.Phone, r.AppliedDate,
		r.InvitationLink, r.InterviewTime, r.Notes, string(r.Status),
	}
}
