// Package grouping rebuilds the display structure of a lecture from its flat
// question records: standalone questions, multi-part open questions sharing a
// case id, and clinical cases sharing a case id or an identical narrative.
//
// Reconstruct is a pure function. It keeps no state between calls and may be
// called concurrently.
package grouping

import (
	"cmp"
	"slices"
	"strconv"
	"strings"

	"github.com/wassimTlili/med-q-main-sub002/internal/domain"
)

// CaseGroup is a set of questions displayed together under one case.
type CaseGroup struct {
	Key           string                  `json:"key"`
	NarrativeText string                  `json:"narrative_text,omitempty"`
	Members       []domain.QuestionRecord `json:"members"`
}

// DisplayUnit is either a single question or a group. Exactly one of
// Question and Group is set.
type DisplayUnit struct {
	Question *domain.QuestionRecord `json:"question,omitempty"`
	Group    *CaseGroup             `json:"group,omitempty"`
}

// IsGroup reports whether the unit is a CaseGroup.
func (u DisplayUnit) IsGroup() bool { return u.Group != nil }

// Size returns the number of questions in the unit.
func (u DisplayUnit) Size() int {
	if u.Group != nil {
		return len(u.Group.Members)
	}
	if u.Question != nil {
		return 1
	}
	return 0
}

// CountQuestions returns the number of questions referenced by units.
// For the output of Reconstruct it equals the number of input records.
func CountQuestions(units []DisplayUnit) int {
	n := 0
	for _, u := range units {
		n += u.Size()
	}
	return n
}

// groupKey identifies a group. Synthetic keys are made up for vignettes
// grouped by narrative text and are only meaningful within one call.
type groupKey struct {
	value     string
	synthetic bool
	seq       int
}

func (k groupKey) String() string {
	if k.synthetic {
		return "narrative-" + strconv.Itoa(k.seq)
	}
	return k.value
}

type bucket struct {
	key     groupKey
	members []domain.QuestionRecord
}

// Reconstruct orders the records of one lecture for display:
// single-choice questions, standalone open questions, open-question groups,
// clinical cases, then clinical questions that could not be grouped.
//
// Records of an unknown type are shown with the single-choice questions.
// A group needs at least two members; a lone member is shown standalone.
// Standalone questions are ordered by OrdinalNumber, group members by
// OrderWithinCase (missing values count as 0, ties keep input order), and
// groups by key. Every input record appears in exactly one unit and the
// input slice is not modified.
func Reconstruct(records []domain.QuestionRecord) []DisplayUnit {
	var single, openSolo, vignetteSolo []domain.QuestionRecord
	openGroups := newGrouper()
	vignetteGroups := newGrouper()
	narrativeSeq := make(map[string]int)

	for _, rec := range records {
		switch {
		case rec.Type.IsVignette():
			if id := trimmed(rec.CaseGroupID); id != "" {
				vignetteGroups.add(groupKey{value: id}, rec)
			} else if text := trimmed(rec.CaseNarrativeText); text != "" {
				seq, ok := narrativeSeq[text]
				if !ok {
					seq = len(narrativeSeq) + 1
					narrativeSeq[text] = seq
				}
				vignetteGroups.add(groupKey{synthetic: true, seq: seq}, rec)
			} else {
				vignetteSolo = append(vignetteSolo, rec)
			}
		case rec.Type.IsOpen():
			if id := trimmed(rec.CaseGroupID); id != "" {
				openGroups.add(groupKey{value: id}, rec)
			} else {
				openSolo = append(openSolo, rec)
			}
		default:
			single = append(single, rec)
		}
	}

	openUnits, openLone := openGroups.units()
	vignetteUnits, vignetteLone := vignetteGroups.units()
	openSolo = append(openSolo, openLone...)
	vignetteSolo = append(vignetteSolo, vignetteLone...)

	out := make([]DisplayUnit, 0, len(records))
	out = appendStandalone(out, single)
	out = appendStandalone(out, openSolo)
	out = append(out, openUnits...)
	out = append(out, vignetteUnits...)
	out = appendStandalone(out, vignetteSolo)
	return out
}

type grouper struct {
	order   []groupKey
	buckets map[groupKey]*bucket
}

func newGrouper() *grouper {
	return &grouper{buckets: make(map[groupKey]*bucket)}
}

func (g *grouper) add(key groupKey, rec domain.QuestionRecord) {
	b, ok := g.buckets[key]
	if !ok {
		b = &bucket{key: key}
		g.buckets[key] = b
		g.order = append(g.order, key)
	}
	b.members = append(b.members, rec)
}

// units returns the sorted groups with at least two members, plus the
// members of singleton groups in first-appearance order.
func (g *grouper) units() ([]DisplayUnit, []domain.QuestionRecord) {
	var (
		groups []*bucket
		lone   []domain.QuestionRecord
	)
	for _, key := range g.order {
		b := g.buckets[key]
		if len(b.members) < 2 {
			lone = append(lone, b.members...)
			continue
		}
		groups = append(groups, b)
	}

	slices.SortStableFunc(groups, func(a, b *bucket) int { return compareKeys(a.key, b.key) })

	units := make([]DisplayUnit, 0, len(groups))
	for _, b := range groups {
		slices.SortStableFunc(b.members, func(x, y domain.QuestionRecord) int {
			return cmp.Compare(x.OrderWithinCaseValue(), y.OrderWithinCaseValue())
		})
		units = append(units, DisplayUnit{Group: &CaseGroup{
			Key:           b.key.String(),
			NarrativeText: narrativeOf(b.members),
			Members:       b.members,
		}})
	}
	return units, lone
}

func appendStandalone(out []DisplayUnit, recs []domain.QuestionRecord) []DisplayUnit {
	slices.SortStableFunc(recs, func(a, b domain.QuestionRecord) int {
		return cmp.Compare(a.OrdinalValue(), b.OrdinalValue())
	})
	for i := range recs {
		out = append(out, DisplayUnit{Question: &recs[i]})
	}
	return out
}

// compareKeys is a total order over group keys: integer case ids by value
// (ties by text, so "7" and "07" stay distinct), then other explicit ids by
// text, then synthetic keys by creation order.
func compareKeys(a, b groupKey) int {
	if a.synthetic != b.synthetic {
		if a.synthetic {
			return 1
		}
		return -1
	}
	if a.synthetic {
		return cmp.Compare(a.seq, b.seq)
	}

	ai, aErr := strconv.Atoi(a.value)
	bi, bErr := strconv.Atoi(b.value)
	switch {
	case aErr == nil && bErr == nil:
		if c := cmp.Compare(ai, bi); c != 0 {
			return c
		}
	case aErr == nil:
		return -1
	case bErr == nil:
		return 1
	}
	return strings.Compare(a.value, b.value)
}

func narrativeOf(members []domain.QuestionRecord) string {
	for _, m := range members {
		if t := trimmed(m.CaseNarrativeText); t != "" {
			return t
		}
	}
	return ""
}

func trimmed(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}
