package ingest

import (
	"strings"

	"github.com/wassimTlili/med-q-main-sub002/internal/domain"
)

// Reason explains why a row was rejected.
type Reason string

const (
	ReasonMissingCoreFields   Reason = "missing core fields"
	ReasonMissingOptions      Reason = "missing options"
	ReasonInvalidAnswerMarker Reason = "invalid answer marker"
	ReasonMissingCorrect      Reason = "missing correct answers"
	ReasonMissingExplanation  Reason = "missing explanation"
	ReasonMissingAnswer       Reason = "missing answer"
	ReasonDuplicateRow        Reason = "duplicate row"
)

// Row is one data row of a recognized sheet, keyed by canonical header.
type Row struct {
	Sheet  string
	Role   SheetRole
	Number int // 1-based sheet row
	Cells  map[string]string
}

// RowData is a row together with the fields derived while validating it.
// Derived fields are filled only as far as validation progressed.
type RowData struct {
	Cells     map[string]string
	Question  string
	MediaURL  string
	MediaType domain.MediaType
	Options   []domain.Option
	Correct   []string
}

// Cell returns the trimmed value of a canonical column.
func (d RowData) Cell(header string) string {
	return strings.TrimSpace(d.Cells[header])
}

// Verdict is the outcome of validating one row. An empty Reason means the
// row was accepted.
type Verdict struct {
	Data   RowData
	Reason Reason
}

func (v Verdict) Accepted() bool { return v.Reason == "" }

// RowValidator applies the per-role rules to rows of one workbook.
// It carries the duplicate memory, so use a fresh one per workbook.
type RowValidator struct {
	dedup *Deduplicator
}

// NewRowValidator creates a RowValidator with an empty duplicate memory.
func NewRowValidator() *RowValidator {
	return &RowValidator{dedup: NewDeduplicator()}
}

// Validate runs the checks in order and stops at the first failure:
// core fields, media extraction, role-specific rules, then duplicates.
// Only accepted rows are remembered for duplicate detection.
func (v *RowValidator) Validate(row Row) Verdict {
	data := RowData{Cells: row.Cells}
	reject := func(r Reason) Verdict { return Verdict{Data: data, Reason: r} }

	data.Question = data.Cell(HeaderQuestion)
	if data.Cell(HeaderSubject) == "" || data.Cell(HeaderCourse) == "" || data.Question == "" {
		return reject(ReasonMissingCoreFields)
	}

	media := ExtractMedia(data.Question)
	data.Question = media.CleanedText
	if explicit := data.Cell(HeaderImage); explicit != "" {
		data.MediaURL = explicit
		data.MediaType = domain.MediaTypeImage
		if mt, ok := ClassifyMediaURL(explicit); ok {
			data.MediaType = mt
		}
	} else if media.Found() {
		data.MediaURL = media.URL
		data.MediaType = media.Type
	}

	switch {
	case row.Role.IsChoice():
		parsed := ParseOptions(row.Cells)
		data.Options = parsed.Options
		data.Correct = parsed.Correct

		if parsed.NoAnswer {
			return reject(ReasonInvalidAnswerMarker)
		}
		if parsed.Filled() < 2 {
			return reject(ReasonMissingOptions)
		}
		if len(parsed.Correct) == 0 {
			return reject(ReasonMissingCorrect)
		}
		if data.Cell(HeaderExplanation) == "" && !anyOptionExplained(parsed.Options) {
			return reject(ReasonMissingExplanation)
		}

	case row.Role.IsOpen():
		if data.Cell(HeaderAnswer) == "" {
			return reject(ReasonMissingAnswer)
		}
		if data.Cell(HeaderExplanation) == "" {
			return reject(ReasonMissingExplanation)
		}
	}

	if !v.dedup.Register(row.Sheet, Fingerprint(row.Cells)) {
		return reject(ReasonDuplicateRow)
	}

	return Verdict{Data: data}
}

func anyOptionExplained(opts []domain.Option) bool {
	for _, o := range opts {
		if o.Explanation != "" {
			return true
		}
	}
	return false
}
