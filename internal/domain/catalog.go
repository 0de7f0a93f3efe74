package domain

import (
	"time"

	"github.com/google/uuid"
)

// Subject is a top-level catalog entry (a medical specialty such as "Cardiologie").
type Subject struct {
	ID        uuid.UUID
	Name      string
	CreatedAt time.Time
}

// Course belongs to a subject and groups the questions of one lecture.
type Course struct {
	ID        uuid.UUID
	SubjectID uuid.UUID
	Name      string
	CreatedAt time.Time
}
