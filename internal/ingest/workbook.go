package ingest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Structural errors. They abort validation before any row is processed.
var (
	ErrUnreadableWorkbook = errors.New("unreadable workbook")
	ErrNoRecognizedSheets = errors.New("no recognized question sheets")
)

// Workbook is the read side of a spreadsheet.
type Workbook interface {
	SheetNames() []string
	Rows(sheet string) ([][]string, error)
}

// OpenFunc opens a workbook from its binary content.
type OpenFunc func(r io.Reader) (Workbook, error)

// Orchestrator validates whole workbooks sheet by sheet, row by row.
type Orchestrator struct {
	log  *slog.Logger
	open OpenFunc
}

// NewOrchestrator creates an Orchestrator. open is used by ValidateReader.
func NewOrchestrator(logger *slog.Logger, open OpenFunc) *Orchestrator {
	return &Orchestrator{
		log:  logger.With("service", "ingest"),
		open: open,
	}
}

// ValidateReader opens the workbook in r and validates it.
// A file that cannot be opened yields ErrUnreadableWorkbook.
func (o *Orchestrator) ValidateReader(ctx context.Context, r io.Reader) (*Report, error) {
	wb, err := o.open(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableWorkbook, err)
	}
	if c, ok := wb.(io.Closer); ok {
		defer func() { _ = c.Close() }()
	}
	return o.Validate(ctx, wb)
}

// Validate runs every recognized sheet of wb through the row validator.
// Unrecognized sheets are skipped; a workbook with none of the four
// recognized sheets yields ErrNoRecognizedSheets.
func (o *Orchestrator) Validate(ctx context.Context, wb Workbook) (*Report, error) {
	type target struct {
		name string
		role SheetRole
	}

	var targets []target
	for _, name := range wb.SheetNames() {
		role, ok := SheetRoleOf(name)
		if !ok {
			o.log.DebugContext(ctx, "skipping unrecognized sheet", slog.String("sheet", name))
			continue
		}
		targets = append(targets, target{name: name, role: role})
	}
	if len(targets) == 0 {
		return nil, ErrNoRecognizedSheets
	}

	report := &Report{}
	validator := NewRowValidator()

	for _, t := range targets {
		raw, err := wb.Rows(t.name)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnreadableWorkbook, err)
		}

		stats := SheetStats{Sheet: t.name, Role: t.role}
		for _, row := range SheetRows(t.name, t.role, raw) {
			stats.Rows++
			v := validator.Validate(row)
			if v.Accepted() {
				stats.Accepted++
				report.Accepted = append(report.Accepted, AcceptedRow{
					Sheet: row.Sheet, Role: row.Role, Row: row.Number, Data: v.Data,
				})
				continue
			}
			stats.Rejected++
			report.Rejected = append(report.Rejected, RejectedRow{
				Sheet: row.Sheet, Role: row.Role, Row: row.Number, Reason: v.Reason, Original: v.Data,
			})
			o.log.DebugContext(ctx, "row rejected",
				slog.String("sheet", row.Sheet),
				slog.Int("row", row.Number),
				slog.String("reason", string(v.Reason)),
			)
		}

		report.Sheets = append(report.Sheets, stats)
		o.log.InfoContext(ctx, "sheet validated",
			slog.String("sheet", t.name),
			slog.String("role", string(t.role)),
			slog.Int("rows", stats.Rows),
			slog.Int("accepted", stats.Accepted),
			slog.Int("rejected", stats.Rejected),
		)
	}

	return report, nil
}

// SheetRows canonicalizes the header row of raw and returns every
// non-empty data row keyed by canonical header. Columns with an empty
// header are ignored. When two columns canonicalize to the same header the
// first non-empty value wins. Row numbers are 1-based positions in raw.
func SheetRows(sheet string, role SheetRole, raw [][]string) []Row {
	hdr := headerRowIndex(raw)
	if hdr < 0 {
		return nil
	}

	headers := make([]string, len(raw[hdr]))
	for i, h := range raw[hdr] {
		if strings.TrimSpace(h) != "" {
			headers[i] = CanonicalizeHeader(h)
		}
	}

	var rows []Row
	for i := hdr + 1; i < len(raw); i++ {
		cells := raw[i]
		if isBlank(cells) {
			continue
		}

		m := make(map[string]string, len(headers))
		for col, h := range headers {
			if h == "" {
				continue
			}
			var v string
			if col < len(cells) {
				v = strings.TrimSpace(cells[col])
			}
			if prev, ok := m[h]; ok && prev != "" {
				continue
			}
			m[h] = v
		}

		rows = append(rows, Row{Sheet: sheet, Role: role, Number: i + 1, Cells: m})
	}
	return rows
}

// headerRowIndex returns the first row naming the question column, so blank
// or title rows above the header are skipped. Without such a row the first
// non-blank row is the header. Returns -1 for a sheet with no content.
func headerRowIndex(raw [][]string) int {
	first := -1
	for i, cells := range raw {
		if isBlank(cells) {
			continue
		}
		if first < 0 {
			first = i
		}
		for _, c := range cells {
			if strings.TrimSpace(c) != "" && CanonicalizeHeader(c) == HeaderQuestion {
				return i
			}
		}
	}
	return first
}

func isBlank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
