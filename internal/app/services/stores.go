package services

import (
	"context"
	"time"

	"github.com/aravind/rollbook/internal/app/models"
	"github.com/aravind/rollbook/internal/pkg/helpers"
)

// The services operate against narrow store interfaces so the aggregation
// logic can be exercised without a database. The pgx repositories in
// internal/app/repositories are the production implementations.

// CourseStore persists courses and their member lists.
type CourseStore interface {
	Create(ctx context.Context, course *models.Course) error
	GetByCode(ctx context.Context, code string) (*models.Course, error)
	ListByMember(ctx context.Context, email string) ([]*models.Course, error)
	AddTA(ctx context.Context, code, email string) (*models.Course, error)
	RemoveTA(ctx context.Context, code, email string) (*models.Course, error)
}

// StudentStore persists course rosters.
type StudentStore interface {
	Create(ctx context.Context, student *models.Student) error
	GetByID(ctx context.Context, id string) (*models.Student, error)
	ListByCourse(ctx context.Context, courseCode string) ([]*models.Student, error)
	ListByCourseAndRollNumbers(ctx context.Context, courseCode string, rollNumbers []string) ([]*models.Student, error)
}

// AttendanceStore persists class sessions and attendance records.
type AttendanceStore interface {
	RecordSession(ctx context.Context, courseCode string, studentIDs []string, heldAt time.Time) (*models.ClassSession, []*models.AttendanceRecord, error)
	CountSessions(ctx context.Context, courseCode string, window helpers.DateRange) (int, error)
	ListSessions(ctx context.Context, courseCode string, window helpers.DateRange) ([]*models.ClassSession, error)
	CountForStudent(ctx context.Context, studentID string, window helpers.DateRange) (int, error)
	CountsByStudent(ctx context.Context, courseCode string, window helpers.DateRange) (map[string]int, error)
}

// StatsCache is an optional read-through cache for course-level statistics.
type StatsCache interface {
	GetJSON(ctx context.Context, key string, dest interface{}) bool
	SetJSON(ctx context.Context, key string, value interface{})
	InvalidateCourse(ctx context.Context, courseCode string)
}
