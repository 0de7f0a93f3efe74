package ingest

import (
	"regexp"
	"strings"

	"github.com/wassimTlili/med-q-main-sub002/internal/domain"
)

// ParsedOptions is the option list and answer key of a multiple-choice row.
type ParsedOptions struct {
	// Options runs from A up to the last non-empty slot. An empty slot
	// followed by a filled one is kept with empty Text.
	Options []domain.Option
	// Correct holds the labels of correct options in A..E order.
	Correct []string
	// NoAnswer is set when the answer key explicitly says there is no answer.
	NoAnswer bool
}

// Filled returns the number of options with non-empty text.
func (p ParsedOptions) Filled() int {
	n := 0
	for _, o := range p.Options {
		if o.Text != "" {
			n++
		}
	}
	return n
}

var answerSeparators = regexp.MustCompile(`[,/+;\s]+`)

var noAnswerPhrases = map[string]bool{
	"pas de reponse": true,
	"aucune reponse": true,
	"sans reponse":   true,
	"no answer":      true,
	"none":           true,
}

// ParseOptions reads the option columns A..E and the answer key of a
// canonicalized row.
func ParseOptions(cells map[string]string) ParsedOptions {
	slots := make([]domain.Option, len(OptionLetters))
	last := -1
	for i, letter := range OptionLetters {
		slots[i] = domain.Option{
			Label:       letter,
			Text:        strings.TrimSpace(cells[OptionHeader(letter)]),
			Explanation: strings.TrimSpace(cells[OptionExplanationHeader(letter)]),
		}
		if slots[i].Text != "" {
			last = i
		}
	}

	var p ParsedOptions
	if last >= 0 {
		p.Options = slots[:last+1]
	}

	key := strings.TrimSpace(cells[HeaderAnswer])
	if IsNoAnswerMarker(key) {
		p.NoAnswer = true
		return p
	}

	marked := make(map[string]bool, len(OptionLetters))
	for _, letter := range AnswerLetters(key) {
		marked[letter] = true
	}
	for i := range p.Options {
		o := &p.Options[i]
		if o.Text != "" && marked[o.Label] {
			o.IsCorrect = true
			p.Correct = append(p.Correct, o.Label)
		}
	}

	return p
}

// IsNoAnswerMarker reports whether an answer key explicitly states that the
// question has no answer ("?" or a phrase such as "pas de réponse").
func IsNoAnswerMarker(key string) bool {
	key = strings.TrimSpace(key)
	if key == "" {
		return false
	}
	if strings.Trim(key, "? ") == "" {
		return true
	}
	return noAnswerPhrases[Normalize(key)]
}

// AnswerLetters extracts option letters from an answer key such as
// "A, C", "b/d", "A+E" or "ACD". Tokens that are not made only of the
// letters A..E (after dropping a trailing ")" or ".") are ignored.
func AnswerLetters(key string) []string {
	var letters []string
	for _, tok := range answerSeparators.Split(strings.ToUpper(key), -1) {
		tok = strings.TrimRight(tok, ").:")
		if tok == "" || !isLetterRun(tok) {
			continue
		}
		for _, r := range tok {
			letters = append(letters, string(r))
		}
	}
	return letters
}

func isLetterRun(tok string) bool {
	for _, r := range tok {
		if r < 'A' || r > 'E' {
			return false
		}
	}
	return true
}
