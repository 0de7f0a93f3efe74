// Package question implements the flat question record repository using PostgreSQL.
package question

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/wassimTlili/med-q-main-sub002/internal/adapter/postgres"
	"github.com/wassimTlili/med-q-main-sub002/internal/domain"
)

// Repo provides question persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new question repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

var columns = []string{
	"id", "lecture_id", "type", "text", "options", "correct_option_ids",
	"answer_text", "explanation", "media_url", "media_type",
	"case_group_id", "case_narrative_text", "order_within_case", "ordinal_number",
	"dedup_key", "created_at",
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// InsertBatch inserts question records with one pgx.Batch. Records whose
// dedup_key already exists are skipped via ON CONFLICT DO NOTHING.
// Returns the number of actually inserted rows.
func (r *Repo) InsertBatch(ctx context.Context, records []domain.QuestionRecord) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	batch := &pgx.Batch{}
	for _, rec := range records {
		options, err := json.Marshal(nonNilOptions(rec.Options))
		if err != nil {
			return 0, fmt.Errorf("marshal options for question %s: %w", rec.ID, err)
		}

		createdAt := rec.CreatedAt
		if createdAt.IsZero() {
			createdAt = time.Now().UTC()
		}

		query, args, err := postgres.Builder.
			Insert("questions").
			Columns(columns...).
			Values(
				rec.ID, rec.LectureID, string(rec.Type), rec.Text, string(options), nonNilStrings(rec.CorrectOptionIDs),
				rec.AnswerText, rec.Explanation, rec.MediaURL, mediaTypeToString(rec.MediaType),
				rec.CaseGroupID, rec.CaseNarrativeText, rec.OrderWithinCase, rec.OrdinalNumber,
				rec.DedupKey, createdAt,
			).
			Suffix("ON CONFLICT (dedup_key) DO NOTHING").
			ToSql()
		if err != nil {
			return 0, fmt.Errorf("build insert question: %w", err)
		}

		batch.Queue(query, args...)
	}

	n, err := postgres.SendBatchExec(ctx, postgres.QuerierFromCtx(ctx, r.pool), batch)
	if err != nil {
		return n, postgres.MapError(err, "question batch", fmt.Sprintf("(%d rows)", len(records)))
	}
	return n, nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// ListByLecture returns every question of a lecture in insertion order.
// Returns an empty slice (not nil) when the lecture has no questions.
func (r *Repo) ListByLecture(ctx context.Context, lectureID uuid.UUID) ([]domain.QuestionRecord, error) {
	query, args, err := postgres.Builder.
		Select(columns...).
		From("questions").
		Where("lecture_id = ?", lectureID).
		OrderBy("created_at", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list questions: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list questions for lecture %s: %w", lectureID, err)
	}

	records, err := pgx.CollectRows(rows, scanQuestion)
	if err != nil {
		return nil, fmt.Errorf("scan questions for lecture %s: %w", lectureID, err)
	}
	if records == nil {
		records = []domain.QuestionRecord{}
	}

	return records, nil
}

// ---------------------------------------------------------------------------
// Converters
// ---------------------------------------------------------------------------

func scanQuestion(row pgx.CollectableRow) (domain.QuestionRecord, error) {
	var (
		q         domain.QuestionRecord
		typ       string
		options   []byte
		mediaType *string
	)

	err := row.Scan(
		&q.ID, &q.LectureID, &typ, &q.Text, &options, &q.CorrectOptionIDs,
		&q.AnswerText, &q.Explanation, &q.MediaURL, &mediaType,
		&q.CaseGroupID, &q.CaseNarrativeText, &q.OrderWithinCase, &q.OrdinalNumber,
		&q.DedupKey, &q.CreatedAt,
	)
	if err != nil {
		return q, err
	}

	q.Type = domain.QuestionType(typ)
	if mediaType != nil {
		mt := domain.MediaType(*mediaType)
		q.MediaType = &mt
	}
	if len(options) > 0 {
		if err := json.Unmarshal(options, &q.Options); err != nil {
			return q, fmt.Errorf("decode options of question %s: %w", q.ID, err)
		}
	}

	return q, nil
}

func mediaTypeToString(mt *domain.MediaType) *string {
	if mt == nil {
		return nil
	}
	s := string(*mt)
	return &s
}

func nonNilOptions(opts []domain.Option) []domain.Option {
	if opts == nil {
		return []domain.Option{}
	}
	return opts
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
