package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wassimTlili/med-q-main-sub002/internal/domain"
)

func optionCells(answer string, opts ...string) map[string]string {
	cells := map[string]string{HeaderAnswer: answer}
	for i, o := range opts {
		cells[OptionHeader(OptionLetters[i])] = o
	}
	return cells
}

func TestParseOptions_TrailingEmptiesDropped(t *testing.T) {
	t.Parallel()

	got := ParseOptions(optionCells("A", "Paris", "Lyon", "", ""))

	assert.Equal(t, []domain.Option{
		{Label: "A", Text: "Paris", IsCorrect: true},
		{Label: "B", Text: "Lyon", IsCorrect: false},
	}, got.Options)
	assert.Equal(t, []string{"A"}, got.Correct)
	assert.False(t, got.NoAnswer)
	assert.Equal(t, 2, got.Filled())
}

func TestParseOptions_InteriorGapKept(t *testing.T) {
	t.Parallel()

	got := ParseOptions(optionCells("a, d", "Un", "", "Trois", "Quatre"))

	assert.Len(t, got.Options, 4)
	assert.Equal(t, "B", got.Options[1].Label)
	assert.Empty(t, got.Options[1].Text)
	assert.Equal(t, 3, got.Filled())
	assert.Equal(t, []string{"A", "D"}, got.Correct)
}

func TestParseOptions_AnswerOnEmptyOrMissingSlotIgnored(t *testing.T) {
	t.Parallel()

	got := ParseOptions(optionCells("B+E", "Un", "", "Trois"))

	assert.Empty(t, got.Correct)
	for _, o := range got.Options {
		assert.False(t, o.IsCorrect, o.Label)
	}
}

func TestParseOptions_OptionExplanations(t *testing.T) {
	t.Parallel()

	cells := optionCells("C", "Un", "Deux", "Trois")
	cells[OptionExplanationHeader("C")] = "  parce que  "

	got := ParseOptions(cells)
	assert.Equal(t, "parce que", got.Options[2].Explanation)
	assert.True(t, got.Options[2].IsCorrect)
}

func TestParseOptions_NoAnswerMarker(t *testing.T) {
	t.Parallel()

	for _, key := range []string{"?", " ?? ", "Pas de réponse", "AUCUNE REPONSE", "no answer"} {
		got := ParseOptions(optionCells(key, "Un", "Deux"))
		assert.True(t, got.NoAnswer, key)
		assert.Empty(t, got.Correct, key)
	}
}

func TestAnswerLetters(t *testing.T) {
	t.Parallel()

	tests := []struct {
		key  string
		want []string
	}{
		{"A", []string{"A"}},
		{"a, c", []string{"A", "C"}},
		{"B/D", []string{"B", "D"}},
		{"A+E", []string{"A", "E"}},
		{"ACD", []string{"A", "C", "D"}},
		{"A) C.", []string{"A", "C"}},
		{"A;B C", []string{"A", "B", "C"}},
		{"F", nil},
		{"vrai", nil},
		{"", nil},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, AnswerLetters(tt.key))
		})
	}
}
