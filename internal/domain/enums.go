package domain

// QuestionType identifies how a question is answered and whether it belongs
// to a clinical case.
type QuestionType string

const (
	QuestionTypeSingleChoice   QuestionType = "mcq"
	QuestionTypeOpen           QuestionType = "qroc"
	QuestionTypeVignetteChoice QuestionType = "clinic_mcq"
	QuestionTypeVignetteOpen   QuestionType = "clinic_croq"
)

func (t QuestionType) String() string { return string(t) }

func (t QuestionType) IsValid() bool {
	switch t {
	case QuestionTypeSingleChoice, QuestionTypeOpen, QuestionTypeVignetteChoice, QuestionTypeVignetteOpen:
		return true
	}
	return false
}

// IsChoice reports whether answers are picked among options.
func (t QuestionType) IsChoice() bool {
	return t == QuestionTypeSingleChoice || t == QuestionTypeVignetteChoice
}

// IsOpen reports whether the answer is free text.
func (t QuestionType) IsOpen() bool {
	return t == QuestionTypeOpen || t == QuestionTypeVignetteOpen
}

// IsVignette reports whether the question belongs to a clinical case.
func (t QuestionType) IsVignette() bool {
	return t == QuestionTypeVignetteChoice || t == QuestionTypeVignetteOpen
}

// MediaType classifies an embedded media reference.
type MediaType string

const (
	MediaTypeImage MediaType = "image"
	MediaTypeAudio MediaType = "audio"
)

func (m MediaType) String() string { return string(m) }

func (m MediaType) IsValid() bool {
	return m == MediaTypeImage || m == MediaTypeAudio
}
