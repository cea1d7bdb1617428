package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aravind/rollbook/internal/app/models"
	"github.com/aravind/rollbook/internal/pkg/apperrors"
	"github.com/aravind/rollbook/internal/pkg/dberrors"
)

// StudentRepository handles database operations for students
type StudentRepository struct {
	db *pgxpool.Pool
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{
		db: db,
	}
}

// Create enrolls a student. A generated id is assigned when the caller did
// not provide one. Duplicate roll numbers within the course are rejected.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	if student.ID == "" {
		student.ID = uuid.NewString()
	}

	query := `
		INSERT INTO students (id, course_code, roll_no, name)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.db.Exec(ctx, query, student.ID, student.CourseCode, student.RollNo, student.Name)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "uix_course_roll") {
			return apperrors.ErrRollNumberExists
		}
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrCourseNotFound
		}
		return fmt.Errorf("error creating student: %w", err)
	}

	return nil
}

// GetByID retrieves a student by id
func (r *StudentRepository) GetByID(ctx context.Context, id string) (*models.Student, error) {
	query := `
		SELECT id, course_code, roll_no, name
		FROM students
		WHERE id = $1
	`

	var student models.Student
	err := r.db.QueryRow(ctx, query, id).Scan(
		&student.ID,
		&student.CourseCode,
		&student.RollNo,
		&student.Name,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	return &student, nil
}

// ListByCourse retrieves all students enrolled in a course
func (r *StudentRepository) ListByCourse(ctx context.Context, courseCode string) ([]*models.Student, error) {
	query := `
		SELECT id, course_code, roll_no, name
		FROM students
		WHERE course_code = $1
		ORDER BY roll_no
	`

	rows, err := r.db.Query(ctx, query, courseCode)
	if err != nil {
		return nil, fmt.Errorf("error listing students: %w", err)
	}
	defer rows.Close()

	return scanStudents(rows)
}

// ListByCourseAndRollNumbers resolves roll numbers to enrolled students.
// Roll numbers with no matching enrollment are absent from the result.
func (r *StudentRepository) ListByCourseAndRollNumbers(ctx context.Context, courseCode string, rollNumbers []string) ([]*models.Student, error) {
	if len(rollNumbers) == 0 {
		return nil, nil
	}

	query := `
		SELECT id, course_code, roll_no, name
		FROM students
		WHERE course_code = $1 AND roll_no = ANY($2)
		ORDER BY roll_no
	`

	rows, err := r.db.Query(ctx, query, courseCode, rollNumbers)
	if err != nil {
		return nil, fmt.Errorf("error resolving roll numbers: %w", err)
	}
	defer rows.Close()

	return scanStudents(rows)
}

func scanStudents(rows pgx.Rows) ([]*models.Student, error) {
	var students []*models.Student
	for rows.Next() {
		var student models.Student
		if err := rows.Scan(
			&student.ID,
			&student.CourseCode,
			&student.RollNo,
			&student.Name,
		); err != nil {
			return nil, err
		}
		students = append(students, &student)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return students, nil
}
