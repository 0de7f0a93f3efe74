package importer

import (
	"crypto/sha256"
	"encoding/hex"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/wassimTlili/med-q-main-sub002/internal/domain"
	"github.com/wassimTlili/med-q-main-sub002/internal/ingest"
)

// MapRow converts an accepted row into the flat record stored for lectureID.
// Case membership is kept as plain columns; grouping happens at read time.
func MapRow(row ingest.AcceptedRow, lectureID uuid.UUID) domain.QuestionRecord {
	d := row.Data
	typ := row.Role.QuestionType()

	rec := domain.QuestionRecord{
		ID:        uuid.New(),
		LectureID: lectureID,
		Type:      typ,
		Text:      d.Question,
		DedupKey:  DedupKey(lectureID, typ, d.Cells),
	}

	if row.Role.IsChoice() {
		rec.Options = d.Options
		rec.CorrectOptionIDs = d.Correct
	} else {
		rec.AnswerText = optional(d.Cell(ingest.HeaderAnswer))
	}

	rec.Explanation = optional(d.Cell(ingest.HeaderExplanation))
	if d.MediaURL != "" {
		url, mt := d.MediaURL, d.MediaType
		rec.MediaURL = &url
		rec.MediaType = &mt
	}

	rec.CaseGroupID = optional(d.Cell(ingest.HeaderCase))
	rec.CaseNarrativeText = optional(d.Cell(ingest.HeaderCaseText))
	rec.OrderWithinCase = parseNumber(d.Cell(ingest.HeaderCaseOrder))
	rec.OrdinalNumber = parseNumber(d.Cell(ingest.HeaderNumber))

	return rec
}

// DedupKey identifies a question by lecture, type and row content, so that
// importing the same workbook twice does not duplicate questions.
func DedupKey(lectureID uuid.UUID, typ domain.QuestionType, cells map[string]string) string {
	h := sha256.New()
	h.Write([]byte(lectureID.String()))
	h.Write([]byte{0x1f})
	h.Write([]byte(typ))
	h.Write([]byte{0x1f})
	h.Write([]byte(ingest.Fingerprint(cells)))
	return hex.EncodeToString(h.Sum(nil))
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// parseNumber accepts "3" as well as spreadsheet renderings like "3.0".
func parseNumber(s string) *int {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		return &n
	}
	f, err := strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
	if err != nil || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return nil
	}
	n := int(f)
	return &n
}
