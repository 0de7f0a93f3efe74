package importer

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/wassimTlili/med-q-main-sub002/internal/domain"
)

// catalogRepoMock is an in-memory catalog that records create calls.
type catalogRepoMock struct {
	mu sync.Mutex

	subjects []domain.Subject
	courses  []domain.Course
	listErr  error

	subjectCreates int
	courseCreates  int
}

func (m *catalogRepoMock) ListSubjects(context.Context) ([]domain.Subject, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Subject(nil), m.subjects...), m.listErr
}

func (m *catalogRepoMock) ListCourses(context.Context) ([]domain.Course, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Course(nil), m.courses...), m.listErr
}

func (m *catalogRepoMock) CreateSubject(_ context.Context, name string) (domain.Subject, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subjectCreates++
	s := domain.Subject{ID: uuid.New(), Name: name}
	m.subjects = append(m.subjects, s)
	return s, nil
}

func (m *catalogRepoMock) CreateCourse(_ context.Context, name string, subjectID uuid.UUID) (domain.Course, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.courseCreates++
	c := domain.Course{ID: uuid.New(), SubjectID: subjectID, Name: name}
	m.courses = append(m.courses, c)
	return c, nil
}

// questionRepoMock records inserted batches. failOn holds 1-based call
// numbers that return failErr; skipPerBatch simulates existing dedup keys.
type questionRepoMock struct {
	mu sync.Mutex

	batches      [][]domain.QuestionRecord
	failOn       map[int]bool
	failErr      error
	skipPerBatch int
}

func (m *questionRepoMock) InsertBatch(_ context.Context, records []domain.QuestionRecord) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.batches = append(m.batches, records)
	if m.failOn[len(m.batches)] {
		return 0, m.failErr
	}
	return len(records) - min(m.skipPerBatch, len(records)), nil
}

func (m *questionRepoMock) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.batches)
}

// txManagerMock runs fn directly and counts transactions.
type txManagerMock struct {
	runs int
}

func (m *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	m.runs++
	return fn(ctx)
}

// runRecorderMock keeps recorded runs in memory.
type runRecorderMock struct {
	created []domain.ImportRun
	err     error
}

func (m *runRecorderMock) Create(_ context.Context, run domain.ImportRun) error {
	if m.err != nil {
		return m.err
	}
	m.created = append(m.created, run)
	return nil
}
