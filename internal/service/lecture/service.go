// Package lecture loads a lecture's stored questions and rebuilds the
// ordered display units shown to students.
package lecture

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/wassimTlili/med-q-main-sub002/internal/domain"
	"github.com/wassimTlili/med-q-main-sub002/internal/service/grouping"
)

// defaultConcurrency bounds parallel lecture loads in LecturesUnits.
const defaultConcurrency = 4

type questionRepo interface {
	ListByLecture(ctx context.Context, lectureID uuid.UUID) ([]domain.QuestionRecord, error)
}

// View is a lecture's questions in display order.
type View struct {
	LectureID uuid.UUID              `json:"lecture_id"`
	Units     []grouping.DisplayUnit `json:"units"`
	// QuestionCount is the progress denominator: every stored question
	// appears exactly once across Units.
	QuestionCount int `json:"question_count"`
}

// Service reads lectures.
type Service struct {
	questions   questionRepo
	log         *slog.Logger
	concurrency int
}

// NewService creates a new lecture Service. concurrency <= 0 uses a default.
func NewService(log *slog.Logger, questions questionRepo, concurrency int) *Service {
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	return &Service{
		questions:   questions,
		log:         log.With("service", "lecture"),
		concurrency: concurrency,
	}
}

// LectureUnits loads one lecture and reconstructs its display units.
func (s *Service) LectureUnits(ctx context.Context, lectureID uuid.UUID) (View, error) {
	if lectureID == uuid.Nil {
		return View{}, domain.NewValidationError("lecture_id", "required")
	}

	records, err := s.questions.ListByLecture(ctx, lectureID)
	if err != nil {
		return View{}, fmt.Errorf("load lecture %s: %w", lectureID, err)
	}

	units := grouping.Reconstruct(records)
	view := View{
		LectureID:     lectureID,
		Units:         units,
		QuestionCount: grouping.CountQuestions(units),
	}

	s.log.DebugContext(ctx, "lecture reconstructed",
		slog.String("lecture_id", lectureID.String()),
		slog.Int("questions", len(records)),
		slog.Int("units", len(units)),
	)
	return view, nil
}

// LecturesUnits loads several lectures concurrently. Results keep the order
// of ids. The first failure cancels the remaining loads.
func (s *Service) LecturesUnits(ctx context.Context, ids []uuid.UUID) ([]View, error) {
	views := make([]View, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i, id := range ids {
		g.Go(func() error {
			v, err := s.LectureUnits(gctx, id)
			if err != nil {
				return err
			}
			views[i] = v
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return views, nil
}
