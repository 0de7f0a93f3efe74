package ingest

import (
	"strconv"
	"strings"

	"github.com/wassimTlili/med-q-main-sub002/internal/domain"
)

// ExportMode selects which partition of a Report is exported.
type ExportMode int

const (
	ExportAccepted ExportMode = iota
	ExportRejected
)

func (m ExportMode) String() string {
	if m == ExportRejected {
		return "rejected"
	}
	return "accepted"
}

// Table is a single-sheet export ready to be written as a workbook.
//
// Exports are review artifacts. Option text and explanations are flattened
// into display strings and the column set differs from the import headers,
// so an exported workbook cannot be fed back to the importer as is.
type Table struct {
	Sheet  string
	Header []string
	Rows   [][]string
}

var exportColumns = []string{
	"Sheet", "Row", "Subject", "Course", "Case", "Case text", "Question #", "Question",
	"Option A", "Option B", "Option C", "Option D", "Option E",
	"Correct", "Answer", "Explanation", "Media URL", "Media type",
}

// ExportTable lays out one partition of r in the fixed export column order.
// Rejected exports carry an extra trailing "Reason" column.
func ExportTable(r *Report, mode ExportMode) Table {
	header := append([]string(nil), exportColumns...)
	t := Table{Sheet: "Accepted"}

	switch mode {
	case ExportRejected:
		t.Sheet = "Rejected"
		header = append(header, "Reason")
		for _, rej := range r.Rejected {
			row := exportRow(rej.Sheet, rej.Row, rej.Original)
			t.Rows = append(t.Rows, append(row, string(rej.Reason)))
		}
	default:
		for _, acc := range r.Accepted {
			t.Rows = append(t.Rows, exportRow(acc.Sheet, acc.Row, acc.Data))
		}
	}

	t.Header = header
	return t
}

func exportRow(sheet string, number int, d RowData) []string {
	question := d.Question
	if question == "" {
		question = d.Cell(HeaderQuestion)
	}

	row := []string{
		sheet,
		strconv.Itoa(number),
		d.Cell(HeaderSubject),
		d.Cell(HeaderCourse),
		d.Cell(HeaderCase),
		d.Cell(HeaderCaseText),
		d.Cell(HeaderNumber),
		question,
	}

	for i, letter := range OptionLetters {
		row = append(row, optionDisplay(d, i, letter))
	}

	answer := d.Cell(HeaderAnswer)
	if len(d.Correct) > 0 {
		answer = ""
	}

	return append(row,
		strings.Join(d.Correct, ", "),
		answer,
		d.Cell(HeaderExplanation),
		d.MediaURL,
		string(d.MediaType),
	)
}

// optionDisplay prefers the parsed option and falls back to the raw cell
// when validation stopped before options were parsed.
func optionDisplay(d RowData, i int, letter string) string {
	var o domain.Option
	if i < len(d.Options) {
		o = d.Options[i]
	} else {
		o = domain.Option{
			Text:        d.Cell(OptionHeader(letter)),
			Explanation: d.Cell(OptionExplanationHeader(letter)),
		}
	}

	if o.Explanation == "" {
		return o.Text
	}
	return o.Text + " | " + o.Explanation
}
