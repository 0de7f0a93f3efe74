package ingest

import "fmt"

// AcceptedRow is a row that passed validation, with its derived fields.
type AcceptedRow struct {
	Sheet string
	Role  SheetRole
	Row   int
	Data  RowData
}

// RejectedRow is a row that failed validation. Original keeps the row
// cells and whatever was derived before the failing check.
type RejectedRow struct {
	Sheet    string
	Role     SheetRole
	Row      int
	Reason   Reason
	Original RowData
}

// SheetStats counts the rows of one sheet.
type SheetStats struct {
	Sheet    string
	Role     SheetRole
	Rows     int
	Accepted int
	Rejected int
}

// Report is the partitioned result of validating a workbook. Both
// partitions are in sheet order, then source row order.
type Report struct {
	Accepted []AcceptedRow
	Rejected []RejectedRow
	Sheets   []SheetStats
}

// Total returns the number of data rows that were validated.
func (r *Report) Total() int {
	return len(r.Accepted) + len(r.Rejected)
}

// ReasonCounts tallies rejections by reason.
func (r *Report) ReasonCounts() map[Reason]int {
	counts := make(map[Reason]int)
	for _, rej := range r.Rejected {
		counts[rej.Reason]++
	}
	return counts
}

// RejectionMessages renders one human-readable line per rejected row.
func (r *Report) RejectionMessages() []string {
	msgs := make([]string, 0, len(r.Rejected))
	for _, rej := range r.Rejected {
		msgs = append(msgs, rej.Message())
	}
	return msgs
}

// Message renders the rejection as "sheet QCM row 4: missing explanation".
func (r RejectedRow) Message() string {
	return fmt.Sprintf("sheet %s row %d: %s", r.Sheet, r.Row, r.Reason)
}
