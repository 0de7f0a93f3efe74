//go:build integration

package question_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wassimTlili/med-q-main-sub002/internal/adapter/postgres/question"
	"github.com/wassimTlili/med-q-main-sub002/internal/adapter/postgres/testhelper"
	"github.com/wassimTlili/med-q-main-sub002/internal/domain"
)

func ptr[T any](v T) *T { return &v }

func TestRepo_InsertBatch_SkipsDuplicatesAndRoundTrips(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := question.New(pool)
	ctx := context.Background()

	subject := testhelper.SeedSubject(t, pool, testhelper.UniqueName("Cardiologie"))
	lecture := testhelper.SeedCourse(t, pool, subject.ID, "Insuffisance cardiaque")

	image := domain.MediaTypeImage
	mcq := domain.QuestionRecord{
		ID:        uuid.New(),
		LectureID: lecture.ID,
		Type:      domain.QuestionTypeSingleChoice,
		Text:      "Signe le plus précoce ?",
		Options: []domain.Option{
			{Label: "A", Text: "Dyspnée", IsCorrect: true, Explanation: "Classique"},
			{Label: "B", Text: "Oedèmes"},
		},
		CorrectOptionIDs: []string{"A"},
		Explanation:      ptr("Voir cours"),
		MediaURL:         ptr("https://cdn.example.com/ecg.png"),
		MediaType:        &image,
		OrdinalNumber:    ptr(2),
		DedupKey:         uuid.NewString(),
	}
	vignette := domain.QuestionRecord{
		ID:                uuid.New(),
		LectureID:         lecture.ID,
		Type:              domain.QuestionTypeVignetteOpen,
		Text:              "Quel traitement ?",
		AnswerText:        ptr("Diurétiques"),
		CaseGroupID:       ptr("1"),
		CaseNarrativeText: ptr("Patient de 70 ans"),
		OrderWithinCase:   ptr(1),
		DedupKey:          uuid.NewString(),
	}

	n, err := repo.InsertBatch(ctx, []domain.QuestionRecord{mcq, vignette})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	dup := mcq
	dup.ID = uuid.New()
	n, err = repo.InsertBatch(ctx, []domain.QuestionRecord{dup})
	require.NoError(t, err)
	assert.Equal(t, 0, n, "same dedup key must be skipped")

	got, err := repo.ListByLecture(ctx, lecture.ID)
	require.NoError(t, err)
	require.Len(t, got, 2)

	byID := map[uuid.UUID]domain.QuestionRecord{}
	for _, q := range got {
		byID[q.ID] = q
	}

	gotMCQ := byID[mcq.ID]
	assert.Equal(t, mcq.Options, gotMCQ.Options)
	assert.Equal(t, []string{"A"}, gotMCQ.CorrectOptionIDs)
	require.NotNil(t, gotMCQ.MediaType)
	assert.Equal(t, domain.MediaTypeImage, *gotMCQ.MediaType)
	assert.Equal(t, 2, gotMCQ.OrdinalValue())
	assert.Nil(t, gotMCQ.CaseGroupID)

	gotCase := byID[vignette.ID]
	assert.Equal(t, domain.QuestionTypeVignetteOpen, gotCase.Type)
	assert.Empty(t, gotCase.Options)
	require.NotNil(t, gotCase.CaseNarrativeText)
	assert.Equal(t, "Patient de 70 ans", *gotCase.CaseNarrativeText)
	assert.Equal(t, 1, gotCase.OrderWithinCaseValue())
}

func TestRepo_ListByLecture_Empty(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := question.New(pool)

	got, err := repo.ListByLecture(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
