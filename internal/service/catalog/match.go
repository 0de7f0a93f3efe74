package catalog

import (
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
	"github.com/google/uuid"

	"github.com/wassimTlili/med-q-main-sub002/internal/domain"
)

type candidate struct {
	id   uuid.UUID
	name string
	idx  int
}

// bestMatch finds the candidate matching input in the strongest tier:
//  1. equal ignoring case and repeated whitespace;
//  2. one name contains the other, ignoring case;
//  3. one name contains the other after accent folding.
//
// Several candidates in the winning tier are ranked by edit distance between
// the folded names, then by shorter name, then by name, then by id.
func bestMatch(input string, cands []candidate) (candidate, bool) {
	lowerIn := domain.NormalizeText(input)
	foldIn := domain.FoldText(input)
	if lowerIn == "" || len(cands) == 0 {
		return candidate{}, false
	}

	tiers := []func(c candidate) bool{
		func(c candidate) bool { return domain.NormalizeText(c.name) == lowerIn },
		func(c candidate) bool { return containsEither(domain.NormalizeText(c.name), lowerIn) },
		func(c candidate) bool { return containsEither(domain.FoldText(c.name), foldIn) },
	}

	for _, inTier := range tiers {
		var hits []candidate
		for _, c := range cands {
			if inTier(c) {
				hits = append(hits, c)
			}
		}
		if len(hits) > 0 {
			return closest(foldIn, hits), true
		}
	}
	return candidate{}, false
}

func containsEither(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}

func closest(foldIn string, hits []candidate) candidate {
	best := hits[0]
	bestDist := levenshtein.ComputeDistance(foldIn, domain.FoldText(best.name))
	for _, c := range hits[1:] {
		d := levenshtein.ComputeDistance(foldIn, domain.FoldText(c.name))
		if d < bestDist || (d == bestDist && less(c, best)) {
			best, bestDist = c, d
		}
	}
	return best
}

func less(a, b candidate) bool {
	la, lb := utf8.RuneCountInString(a.name), utf8.RuneCountInString(b.name)
	if la != lb {
		return la < lb
	}
	if a.name != b.name {
		return a.name < b.name
	}
	return a.id.String() < b.id.String()
}
