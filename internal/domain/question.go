package domain

import (
	"time"

	"github.com/google/uuid"
)

// Option is one answer choice of a multiple-choice question.
// Label is the ordinal letter ("A".."E").
type Option struct {
	Label       string `json:"label"`
	Text        string `json:"text"`
	IsCorrect   bool   `json:"is_correct"`
	Explanation string `json:"explanation,omitempty"`
}

// QuestionRecord is a flat, persisted question. Clinical cases and multi-part
// open questions are not stored as nested structures; they are rebuilt at
// read time from CaseGroupID / CaseNarrativeText.
type QuestionRecord struct {
	ID                uuid.UUID    `json:"id"`
	LectureID         uuid.UUID    `json:"lecture_id"`
	Type              QuestionType `json:"type"`
	Text              string       `json:"text"`
	Options           []Option     `json:"options,omitempty"`
	CorrectOptionIDs  []string     `json:"correct_option_ids,omitempty"`
	AnswerText        *string      `json:"answer_text,omitempty"`
	Explanation       *string      `json:"explanation,omitempty"`
	MediaURL          *string      `json:"media_url,omitempty"`
	MediaType         *MediaType   `json:"media_type,omitempty"`
	CaseGroupID       *string      `json:"case_group_id,omitempty"`
	CaseNarrativeText *string      `json:"case_narrative_text,omitempty"`
	OrderWithinCase   *int         `json:"order_within_case,omitempty"`
	OrdinalNumber     *int         `json:"ordinal_number,omitempty"`
	DedupKey          string       `json:"-"`
	CreatedAt         time.Time    `json:"created_at"`
}

// OrderWithinCaseValue returns OrderWithinCase, treating nil as 0.
func (q QuestionRecord) OrderWithinCaseValue() int {
	if q.OrderWithinCase == nil {
		return 0
	}
	return *q.OrderWithinCase
}

// OrdinalValue returns OrdinalNumber, treating nil as 0.
func (q QuestionRecord) OrdinalValue() int {
	if q.OrdinalNumber == nil {
		return 0
	}
	return *q.OrdinalNumber
}
