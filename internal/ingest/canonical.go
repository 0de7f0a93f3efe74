// Package ingest turns question bank workbooks into validated rows.
//
// A workbook holds up to four recognized sheets (see SheetRole). Each sheet's
// header row is canonicalized into a fixed vocabulary, then every data row is
// validated against the rules of its sheet role and checked for exact
// duplicates within the sheet. The result is a Report partitioned into
// accepted and rejected rows, which can be exported back to a workbook for
// review.
package ingest

import (
	"strings"
	"unicode"

	"github.com/wassimTlili/med-q-main-sub002/internal/domain"
)

// SheetRole is the canonical name of a recognized sheet.
type SheetRole string

const (
	RoleChoice         SheetRole = "qcm"
	RoleOpen           SheetRole = "qroc"
	RoleVignetteChoice SheetRole = "cas qcm"
	RoleVignetteOpen   SheetRole = "cas qroc"
)

// QuestionType maps the sheet role to the persisted question type.
func (r SheetRole) QuestionType() domain.QuestionType {
	switch r {
	case RoleOpen:
		return domain.QuestionTypeOpen
	case RoleVignetteChoice:
		return domain.QuestionTypeVignetteChoice
	case RoleVignetteOpen:
		return domain.QuestionTypeVignetteOpen
	default:
		return domain.QuestionTypeSingleChoice
	}
}

func (r SheetRole) IsChoice() bool { return r == RoleChoice || r == RoleVignetteChoice }

func (r SheetRole) IsOpen() bool { return r == RoleOpen || r == RoleVignetteOpen }

func (r SheetRole) IsVignette() bool { return r == RoleVignetteChoice || r == RoleVignetteOpen }

// Canonical header names. Every value is already in normalized form, so it
// canonicalizes to itself.
const (
	HeaderSubject     = "matiere"
	HeaderCourse      = "cours"
	HeaderQuestion    = "texte de la question"
	HeaderAnswer      = "reponse"
	HeaderExplanation = "explication"
	HeaderLevel       = "niveau"
	HeaderSemester    = "semestre"
	HeaderCase        = "cas"
	HeaderCaseText    = "texte du cas"
	HeaderCaseOrder   = "numero dans le cas"
	HeaderNumber      = "numero"
	HeaderImage       = "image"
)

// OptionLetters are the ordinal labels of the option columns.
var OptionLetters = [...]string{"A", "B", "C", "D", "E"}

// OptionHeader returns the canonical option column for a letter ("A" -> "option a").
func OptionHeader(letter string) string { return "option " + strings.ToLower(letter) }

// OptionExplanationHeader returns the canonical per-option explanation column.
func OptionExplanationHeader(letter string) string { return "explication " + strings.ToLower(letter) }

var sheetAliases = map[string]SheetRole{
	"qcm":                RoleChoice,
	"qcms":               RoleChoice,
	"mcq":                RoleChoice,
	"questions qcm":      RoleChoice,
	"qroc":               RoleOpen,
	"qrocs":              RoleOpen,
	"qroc s":             RoleOpen,
	"open":               RoleOpen,
	"questions ouvertes": RoleOpen,
	"cas qcm":            RoleVignetteChoice,
	"cas qcms":           RoleVignetteChoice,
	"cas clinique qcm":   RoleVignetteChoice,
	"cas cliniques qcm":  RoleVignetteChoice,
	"clinic mcq":         RoleVignetteChoice,
	"clinical mcq":       RoleVignetteChoice,
	"cas qroc":           RoleVignetteOpen,
	"cas qrocs":          RoleVignetteOpen,
	"cas clinique qroc":  RoleVignetteOpen,
	"cas cliniques qroc": RoleVignetteOpen,
	"clinic croq":        RoleVignetteOpen,
	"clinic qroc":        RoleVignetteOpen,
	"clinical qroc":      RoleVignetteOpen,
}

var headerAliases = map[string]string{
	HeaderSubject:           HeaderSubject,
	"subject":               HeaderSubject,
	"specialite":            HeaderSubject,
	"specialty":             HeaderSubject,
	"module":                HeaderSubject,
	HeaderCourse:            HeaderCourse,
	"course":                HeaderCourse,
	"lecture":               HeaderCourse,
	"chapitre":              HeaderCourse,
	"lecon":                 HeaderCourse,
	HeaderQuestion:          HeaderQuestion,
	"question":              HeaderQuestion,
	"enonce":                HeaderQuestion,
	"texte question":        HeaderQuestion,
	"question text":         HeaderQuestion,
	"intitule":              HeaderQuestion,
	HeaderAnswer:            HeaderAnswer,
	"reponse s":             HeaderAnswer,
	"reponses":              HeaderAnswer,
	"bonne reponse":         HeaderAnswer,
	"bonnes reponses":       HeaderAnswer,
	"answer":                HeaderAnswer,
	"answers":               HeaderAnswer,
	"correct answer":        HeaderAnswer,
	HeaderExplanation:       HeaderExplanation,
	"explanation":           HeaderExplanation,
	"commentaire":           HeaderExplanation,
	"justification":         HeaderExplanation,
	HeaderLevel:             HeaderLevel,
	"level":                 HeaderLevel,
	HeaderSemester:          HeaderSemester,
	"semester":              HeaderSemester,
	HeaderCase:              HeaderCase,
	"case":                  HeaderCase,
	"cas clinique":          HeaderCase,
	"numero du cas":         HeaderCase,
	"case number":           HeaderCase,
	"case id":               HeaderCase,
	HeaderCaseText:          HeaderCaseText,
	"texte cas":             HeaderCaseText,
	"enonce du cas":         HeaderCaseText,
	"case text":             HeaderCaseText,
	"vignette":              HeaderCaseText,
	HeaderCaseOrder:         HeaderCaseOrder,
	"ordre":                 HeaderCaseOrder,
	"ordre dans le cas":     HeaderCaseOrder,
	"question du cas":       HeaderCaseOrder,
	"order":                 HeaderCaseOrder,
	HeaderNumber:            HeaderNumber,
	"n":                     HeaderNumber,
	"no":                    HeaderNumber,
	"num":                   HeaderNumber,
	"numero de la question": HeaderNumber,
	"question number":       HeaderNumber,
	HeaderImage:             HeaderImage,
	"media":                 HeaderImage,
	"image url":             HeaderImage,
	"url image":             HeaderImage,
	"lien image":            HeaderImage,
}

func init() {
	for _, l := range OptionLetters {
		lower := strings.ToLower(l)
		opt := OptionHeader(l)
		expl := OptionExplanationHeader(l)

		headerAliases[opt] = opt
		headerAliases[lower] = opt
		headerAliases["choix "+lower] = opt
		headerAliases["proposition "+lower] = opt
		headerAliases["reponse "+lower] = opt

		headerAliases[expl] = expl
		headerAliases["explication option "+lower] = expl
		headerAliases["explanation "+lower] = expl
		headerAliases["commentaire "+lower] = expl
	}
}

// Normalize lower-cases s, strips diacritics, collapses every run of
// non-alphanumeric characters into one space and trims the result.
// Normalize is idempotent.
func Normalize(s string) string {
	folded := domain.FoldAccents(strings.ToLower(s))

	var b strings.Builder
	b.Grow(len(folded))
	pendingSpace := false
	for _, r := range folded {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingSpace && b.Len() > 0 {
				b.WriteByte(' ')
			}
			pendingSpace = false
			b.WriteRune(r)
			continue
		}
		pendingSpace = true
	}
	return b.String()
}

// CanonicalizeHeader maps a raw column header to its canonical name.
// Unknown headers are returned in normalized form.
func CanonicalizeHeader(raw string) string {
	n := Normalize(raw)
	if c, ok := headerAliases[n]; ok {
		return c
	}
	return n
}

// CanonicalizeSheetName maps a raw sheet name to its canonical form and
// reports whether it names a recognized sheet role.
func CanonicalizeSheetName(raw string) (string, bool) {
	n := Normalize(raw)
	if role, ok := sheetAliases[n]; ok {
		return string(role), true
	}
	return n, false
}

// SheetRoleOf resolves a raw sheet name to its role.
func SheetRoleOf(raw string) (SheetRole, bool) {
	c, ok := CanonicalizeSheetName(raw)
	return SheetRole(c), ok
}
