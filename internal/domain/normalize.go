package domain

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// NormalizeText prepares text for storage and comparison:
//   - trims leading/trailing whitespace
//   - converts to lowercase
//   - compresses runs of whitespace into a single space
//
// Diacritics, hyphens, and apostrophes are preserved. Use FoldText when
// accents must be ignored.
func NormalizeText(text string) string {
	return strings.ToLower(strings.Join(strings.Fields(text), " "))
}

// ligatures are not decomposed by NFD and are common in French medical vocabulary.
var ligatures = strings.NewReplacer(
	"œ", "oe", "Œ", "OE",
	"æ", "ae", "Æ", "AE",
	"ß", "ss",
)

// FoldAccents strips combining marks (é -> e, ï -> i) and expands the
// œ/æ ligatures. Case is left untouched.
// Ligatures are expanded after mark removal, so accented ligatures such as
// "ǽ" fold to "ae" in a single pass.
func FoldAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return ligatures.Replace(s)
	}
	return ligatures.Replace(out)
}

// FoldText is NormalizeText followed by FoldAccents.
func FoldText(text string) string {
	return FoldAccents(NormalizeText(text))
}
