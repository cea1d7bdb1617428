package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/aravind/rollbook/internal/app/models"
	"github.com/aravind/rollbook/internal/pkg/apperrors"
	"github.com/aravind/rollbook/internal/pkg/validation"
)

// StudentService handles roster operations
type StudentService struct {
	studentStore StudentStore
	courseStore  CourseStore
	cache        StatsCache
}

// NewStudentService creates a new student service instance. cache may be nil
// when caching is disabled.
func NewStudentService(studentStore StudentStore, courseStore CourseStore, cache StatsCache) *StudentService {
	return &StudentService{
		studentStore: studentStore,
		courseStore:  courseStore,
		cache:        cache,
	}
}

// AddStudent enrolls a student into a course. The roll number must be unique
// within the course.
func (s *StudentService) AddStudent(ctx context.Context, courseCode, name, rollNo string) (*models.Student, error) {
	name = strings.TrimSpace(name)
	rollNo = strings.TrimSpace(rollNo)

	if !validation.IsStudentName(name) {
		return nil, apperrors.NewCustomError(apperrors.ErrInvalidStudentName,
			"student name is required and must be at most 70 characters")
	}
	if !validation.IsRollNo(rollNo) {
		return nil, apperrors.NewCustomError(apperrors.ErrInvalidRollNumber,
			"roll number is required and must be at most 12 characters")
	}

	if _, err := s.courseStore.GetByCode(ctx, courseCode); err != nil {
		return nil, err
	}

	student := &models.Student{
		CourseCode: courseCode,
		RollNo:     rollNo,
		Name:       name,
	}

	if err := s.studentStore.Create(ctx, student); err != nil {
		return nil, err
	}

	// Roster size is a denominator in every course-level statistic, so
	// cached entries are stale the moment the roster grows.
	if s.cache != nil {
		s.cache.InvalidateCourse(ctx, courseCode)
	}

	return student, nil
}

// GetStudents lists the roster of a course, ordered by roll number.
func (s *StudentService) GetStudents(ctx context.Context, courseCode string) ([]*models.Student, error) {
	if _, err := s.courseStore.GetByCode(ctx, courseCode); err != nil {
		return nil, err
	}

	students, err := s.studentStore.ListByCourse(ctx, courseCode)
	if err != nil {
		return nil, fmt.Errorf("error retrieving students: %w", err)
	}

	if students == nil {
		students = []*models.Student{}
	}
	return students, nil
}
