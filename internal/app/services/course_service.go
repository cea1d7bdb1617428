package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/aravind/rollbook/internal/app/models"
	"github.com/aravind/rollbook/internal/app/models/dto"
	"github.com/aravind/rollbook/internal/pkg/apperrors"
	"github.com/aravind/rollbook/internal/pkg/validation"
)

// CourseService handles course and member-list operations
type CourseService struct {
	courseStore CourseStore
}

// NewCourseService creates a new course service instance
func NewCourseService(courseStore CourseStore) *CourseService {
	return &CourseService{
		courseStore: courseStore,
	}
}

// CreateCourse creates a new course with validated member lists.
func (s *CourseService) CreateCourse(ctx context.Context, req *dto.CreateCourseRequest) (*models.Course, error) {
	code := strings.TrimSpace(req.CourseCode)
	if !validation.IsCourseCode(code) {
		return nil, apperrors.NewCustomError(apperrors.ErrInvalidCourseCode,
			fmt.Sprintf("invalid course code %q", req.CourseCode))
	}

	teachers, err := normalizeEmails(req.Teachers)
	if err != nil {
		return nil, err
	}
	if len(teachers) == 0 {
		return nil, apperrors.NewValidationError("at least one teacher email is required")
	}

	tas, err := normalizeEmails(req.TAs)
	if err != nil {
		return nil, err
	}

	course := &models.Course{
		Code:     code,
		Teachers: teachers,
		TAs:      tas,
	}

	if err := s.courseStore.Create(ctx, course); err != nil {
		return nil, err
	}

	return course, nil
}

// GetCoursesByMember lists every course where the email is a teacher or TA.
func (s *CourseService) GetCoursesByMember(ctx context.Context, email string) ([]*models.Course, error) {
	if !validation.IsEmail(email) {
		return nil, apperrors.NewCustomError(apperrors.ErrInvalidEmail,
			fmt.Sprintf("invalid email %q", email))
	}

	courses, err := s.courseStore.ListByMember(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("error retrieving courses: %w", err)
	}

	if courses == nil {
		courses = []*models.Course{}
	}
	return courses, nil
}

// AddTA adds an assistant email to the course. Adding an email that is
// already present leaves the course unchanged.
func (s *CourseService) AddTA(ctx context.Context, courseCode, email string) (*models.Course, error) {
	if !validation.IsEmail(email) {
		return nil, apperrors.NewCustomError(apperrors.ErrInvalidEmail,
			fmt.Sprintf("invalid email %q", email))
	}

	if _, err := s.courseStore.GetByCode(ctx, courseCode); err != nil {
		return nil, err
	}

	return s.courseStore.AddTA(ctx, courseCode, email)
}

// RemoveTA removes an assistant email from the course. Removing an absent
// email leaves the course unchanged.
func (s *CourseService) RemoveTA(ctx context.Context, courseCode, email string) (*models.Course, error) {
	if !validation.IsEmail(email) {
		return nil, apperrors.NewCustomError(apperrors.ErrInvalidEmail,
			fmt.Sprintf("invalid email %q", email))
	}

	if _, err := s.courseStore.GetByCode(ctx, courseCode); err != nil {
		return nil, err
	}

	return s.courseStore.RemoveTA(ctx, courseCode, email)
}

// normalizeEmails trims, deduplicates and validates an email list, keeping
// first-seen order.
func normalizeEmails(emails []string) ([]string, error) {
	seen := make(map[string]struct{}, len(emails))
	out := make([]string, 0, len(emails))
	for _, email := range emails {
		email = strings.TrimSpace(email)
		if !validation.IsEmail(email) {
			return nil, apperrors.NewCustomError(apperrors.ErrInvalidEmail,
				fmt.Sprintf("invalid email %q", email))
		}
		if _, ok := seen[email]; ok {
			continue
		}
		seen[email] = struct{}{}
		out = append(out, email)
	}
	return out, nil
}
