package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aravind/rollbook/internal/app/models"
	"github.com/aravind/rollbook/internal/pkg/apperrors"
	"github.com/aravind/rollbook/internal/pkg/dberrors"
)

// CourseRepository handles database operations for courses
type CourseRepository struct {
	db *pgxpool.Pool
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{
		db: db,
	}
}

// Create inserts a new course with an empty session history.
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	query := `
		INSERT INTO courses (course_code, teachers, tas, total_classes)
		VALUES ($1, $2, $3, 0)
	`

	_, err := r.db.Exec(ctx, query, course.Code, course.Teachers, course.TAs)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrCourseAlreadyExists
		}
		return fmt.Errorf("error creating course: %w", err)
	}

	course.TotalClasses = 0
	return nil
}

// GetByCode retrieves a course by its code
func (r *CourseRepository) GetByCode(ctx context.Context, code string) (*models.Course, error) {
	query := `
		SELECT course_code, teachers, tas, total_classes
		FROM courses
		WHERE course_code = $1
	`

	var course models.Course
	err := r.db.QueryRow(ctx, query, code).Scan(
		&course.Code,
		&course.Teachers,
		&course.TAs,
		&course.TotalClasses,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}

	return &course, nil
}

// ListByMember retrieves all courses where the email appears as a teacher or TA
func (r *CourseRepository) ListByMember(ctx context.Context, email string) ([]*models.Course, error) {
	query := `
		SELECT course_code, teachers, tas, total_classes
		FROM courses
		WHERE $1 = ANY(teachers) OR $1 = ANY(tas)
		ORDER BY course_code
	`

	rows, err := r.db.Query(ctx, query, email)
	if err != nil {
		return nil, fmt.Errorf("error listing courses: %w", err)
	}
	defer rows.Close()

	var courses []*models.Course
	for rows.Next() {
		var course models.Course
		if err := rows.Scan(
			&course.Code,
			&course.Teachers,
			&course.TAs,
			&course.TotalClasses,
		); err != nil {
			return nil, err
		}
		courses = append(courses, &course)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return courses, nil
}

// AddTA appends a TA email to the course. Adding an email that is already
// present is a no-op; the updated course is returned either way.
func (r *CourseRepository) AddTA(ctx context.Context, code, email string) (*models.Course, error) {
	query := `
		UPDATE courses
		SET tas = array_append(tas, $2)
		WHERE course_code = $1 AND NOT ($2 = ANY(tas))
	`

	if _, err := r.db.Exec(ctx, query, code, email); err != nil {
		return nil, fmt.Errorf("error adding TA: %w", err)
	}

	return r.GetByCode(ctx, code)
}

// RemoveTA removes every occurrence of the TA email from the course.
// Removing an absent email is a no-op.
func (r *CourseRepository) RemoveTA(ctx context.Context, code, email string) (*models.Course, error) {
	query := `
		UPDATE courses
		SET tas = array_remove(tas, $2)
		WHERE course_code = $1
	`

	if _, err := r.db.Exec(ctx, query, code, email); err != nil {
		return nil, fmt.Errorf("error removing TA: %w", err)
	}

	return r.GetByCode(ctx, code)
}
