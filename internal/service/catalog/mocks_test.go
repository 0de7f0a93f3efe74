package catalog

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/wassimTlili/med-q-main-sub002/internal/domain"
)

// catalogRepoMock is a hand-written fake recording create calls.
type catalogRepoMock struct {
	mu sync.Mutex

	subjects []domain.Subject
	courses  []domain.Course

	ListErr          error
	CreateSubjectErr error
	CreateCourseErr  error

	createdSubjects []string
	createdCourses  []string
}

func (m *catalogRepoMock) ListSubjects(ctx context.Context) ([]domain.Subject, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return append([]domain.Subject(nil), m.subjects...), nil
}

func (m *catalogRepoMock) ListCourses(ctx context.Context) ([]domain.Course, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return append([]domain.Course(nil), m.courses...), nil
}

func (m *catalogRepoMock) CreateSubject(ctx context.Context, name string) (domain.Subject, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.createdSubjects = append(m.createdSubjects, name)
	if m.CreateSubjectErr != nil {
		return domain.Subject{}, m.CreateSubjectErr
	}
	s := domain.Subject{ID: uuid.New(), Name: name}
	m.subjects = append(m.subjects, s)
	return s, nil
}

func (m *catalogRepoMock) CreateCourse(ctx context.Context, name string, subjectID uuid.UUID) (domain.Course, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.createdCourses = append(m.createdCourses, name)
	if m.CreateCourseErr != nil {
		return domain.Course{}, m.CreateCourseErr
	}
	c := domain.Course{ID: uuid.New(), SubjectID: subjectID, Name: name}
	m.courses = append(m.courses, c)
	return c, nil
}
