// Package importer commits validated workbook rows: it resolves catalog
// names, maps rows to question records and inserts them in batches.
package importer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/wassimTlili/med-q-main-sub002/internal/domain"
	"github.com/wassimTlili/med-q-main-sub002/internal/ingest"
	"github.com/wassimTlili/med-q-main-sub002/internal/service/catalog"
	"github.com/wassimTlili/med-q-main-sub002/pkg/ctxutil"
)

type catalogService interface {
	NewMatcher(ctx context.Context, mode catalog.Mode) (*catalog.Matcher, error)
}

type questionRepo interface {
	InsertBatch(ctx context.Context, records []domain.QuestionRecord) (int, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type runRecorder interface {
	Create(ctx context.Context, run domain.ImportRun) error
}

// Result summarizes one import run. It is returned even when some rows or
// batches failed.
type Result struct {
	RunID    uuid.UUID `json:"run_id"`
	Source   string    `json:"source"`
	DryRun   bool      `json:"dry_run"`
	Total    int       `json:"total"`    // data rows in the workbook
	Rejected int       `json:"rejected"` // rows that failed validation
	Imported int       `json:"imported"` // records inserted (or, in a dry run, that would be)
	Skipped  int       `json:"skipped"`  // records already present
	Failed   int       `json:"failed"`   // accepted rows lost to catalog or batch errors

	CreatedSubjects int `json:"created_subjects"`
	CreatedCourses  int `json:"created_courses"`

	// Errors has one line per rejected row, per row whose catalog names
	// could not be resolved and per failed batch, in that order.
	Errors   []string      `json:"errors,omitempty"`
	Duration time.Duration `json:"duration_ns"`
}

// HasErrors reports whether anything was rejected or failed.
func (r Result) HasErrors() bool {
	return len(r.Errors) > 0
}

// Importer commits the accepted partition of a validation report.
type Importer struct {
	log       *slog.Logger
	catalog   catalogService
	questions questionRepo
	tx        txManager
	runs      runRecorder
	cfg       Config
}

// New creates a new Importer. runs may be nil, in which case committed runs
// are not recorded.
func New(log *slog.Logger, catalogs catalogService, questions questionRepo, tx txManager, runs runRecorder, cfg Config) *Importer {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultConfig().BatchSize
	}
	return &Importer{
		log:       log.With("service", "importer"),
		catalog:   catalogs,
		questions: questions,
		tx:        tx,
		runs:      runs,
		cfg:       cfg,
	}
}

// Run commits report.Accepted of the workbook named source. Row and batch
// failures are collected in the Result; the returned error is set only when
// the run could not start.
func (im *Importer) Run(ctx context.Context, source string, report *ingest.Report) (Result, error) {
	start := time.Now()

	runID, ok := ctxutil.RunIDFromCtx(ctx)
	if !ok {
		runID = uuid.New()
		ctx = ctxutil.WithRunID(ctx, runID)
	}
	log := im.log.With(slog.String("run_id", runID.String()))

	result := Result{
		RunID:    runID,
		Source:   source,
		DryRun:   im.cfg.DryRun,
		Total:    report.Total(),
		Rejected: len(report.Rejected),
		Errors:   report.RejectionMessages(),
	}

	log.InfoContext(ctx, "import started",
		slog.Int("total", result.Total),
		slog.Int("accepted", len(report.Accepted)),
		slog.Int("rejected", result.Rejected),
		slog.Bool("dry_run", im.cfg.DryRun),
	)

	matcher, err := im.catalog.NewMatcher(ctx, im.mode())
	if err != nil {
		result.Failed = len(report.Accepted)
		result.Duration = time.Since(start)
		return result, fmt.Errorf("import: %w", err)
	}

	records := make([]domain.QuestionRecord, 0, len(report.Accepted))
	for _, row := range report.Accepted {
		lectureID, err := resolveLecture(ctx, matcher, row)
		if err != nil {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("sheet %s row %d: %v", row.Sheet, row.Row, err))
			log.WarnContext(ctx, "catalog resolution failed",
				slog.String("sheet", row.Sheet),
				slog.Int("row", row.Row),
				slog.String("error", err.Error()),
			)
			continue
		}
		records = append(records, MapRow(row, lectureID))
	}
	result.CreatedSubjects = matcher.CreatedSubjects()
	result.CreatedCourses = matcher.CreatedCourses()

	if im.cfg.DryRun {
		result.Imported = len(records)
	} else {
		im.commit(ctx, log, records, &result)
	}

	result.Duration = time.Since(start)
	if !im.cfg.DryRun {
		im.record(ctx, log, start, result)
	}
	log.InfoContext(ctx, "import completed",
		slog.Int("total", result.Total),
		slog.Int("imported", result.Imported),
		slog.Int("skipped", result.Skipped),
		slog.Int("rejected", result.Rejected),
		slog.Int("failed", result.Failed),
		slog.Int("created_subjects", result.CreatedSubjects),
		slog.Int("created_courses", result.CreatedCourses),
		slog.Duration("duration", result.Duration),
	)
	return result, nil
}

func (im *Importer) mode() catalog.Mode {
	switch {
	case im.cfg.DryRun:
		return catalog.ModeDryRun
	case im.cfg.SkipCatalogCreate:
		return catalog.ModeExistingOnly
	default:
		return catalog.ModeCreate
	}
}

// commit inserts records batch by batch. A failed batch is rolled back and
// counted as failed; later batches are still attempted.
func (im *Importer) commit(ctx context.Context, log *slog.Logger, records []domain.QuestionRecord, result *Result) {
	forEachBatch(records, im.cfg.BatchSize, func(n, offset int, batch []domain.QuestionRecord) {
		var inserted int
		err := im.tx.RunInTx(ctx, func(ctx context.Context) error {
			var err error
			inserted, err = im.questions.InsertBatch(ctx, batch)
			return err
		})
		if err != nil {
			result.Failed += len(batch)
			result.Errors = append(result.Errors,
				fmt.Sprintf("batch %d (records %d-%d): %v", n, offset+1, offset+len(batch), err))
			log.WarnContext(ctx, "batch failed",
				slog.Int("batch", n),
				slog.Int("size", len(batch)),
				slog.String("error", err.Error()),
			)
			return
		}
		result.Imported += inserted
		result.Skipped += len(batch) - inserted
	})
}

// record stores the run summary. The import itself already happened, so a
// failure here is only logged.
func (im *Importer) record(ctx context.Context, log *slog.Logger, start time.Time, r Result) {
	if im.runs == nil {
		return
	}
	err := im.runs.Create(ctx, domain.ImportRun{
		ID:              r.RunID,
		Source:          r.Source,
		Total:           r.Total,
		Rejected:        r.Rejected,
		Imported:        r.Imported,
		Skipped:         r.Skipped,
		Failed:          r.Failed,
		CreatedSubjects: r.CreatedSubjects,
		CreatedCourses:  r.CreatedCourses,
		Errors:          r.Errors,
		Duration:        r.Duration,
		StartedAt:       start.UTC(),
	})
	if err != nil {
		log.WarnContext(ctx, "record import run", slog.String("error", err.Error()))
	}
}

func resolveLecture(ctx context.Context, m *catalog.Matcher, row ingest.AcceptedRow) (uuid.UUID, error) {
	subject, err := m.ResolveSubject(ctx, row.Data.Cell(ingest.HeaderSubject))
	if err != nil {
		return uuid.Nil, fmt.Errorf("resolve subject: %w", err)
	}
	course, err := m.ResolveCourse(ctx, subject.ID, row.Data.Cell(ingest.HeaderCourse))
	if err != nil {
		return uuid.Nil, fmt.Errorf("resolve course: %w", err)
	}
	return course.ID, nil
}

// forEachBatch calls fn for consecutive slices of at most size items.
// n is the 1-based batch number and offset the index of its first item.
func forEachBatch[T any](items []T, size int, fn func(n, offset int, batch []T)) {
	if size <= 0 {
		size = 50
	}
	for i, n := 0, 1; i < len(items); i, n = i+size, n+1 {
		end := min(i+size, len(items))
		fn(n, i, items[i:end])
	}
}
