package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/aravind/rollbook/internal/app/models"
	"github.com/aravind/rollbook/internal/db"
	"github.com/aravind/rollbook/internal/pkg/helpers"
)

// AttendanceRepository handles database operations for class sessions and
// attendance records. It owns the whole repository's only write transaction.
type AttendanceRepository struct {
	db *db.PostgresDB
}

// NewAttendanceRepository creates a new attendance repository
func NewAttendanceRepository(database *db.PostgresDB) *AttendanceRepository {
	return &AttendanceRepository{
		db: database,
	}
}

// RecordSession persists one class session, one attendance row per student,
// and the audit counter bump in a single transaction. A failure anywhere
// rolls the whole batch back; there are no partial sessions.
func (r *AttendanceRepository) RecordSession(ctx context.Context, courseCode string, studentIDs []string, heldAt time.Time) (*models.ClassSession, []*models.AttendanceRecord, error) {
	session := &models.ClassSession{
		ID:         uuid.NewString(),
		CourseCode: courseCode,
		HeldAt:     heldAt,
	}

	records := make([]*models.AttendanceRecord, 0, len(studentIDs))

	err := r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO class_sessions (id, course_code, held_at)
			VALUES ($1, $2, $3)
		`, session.ID, session.CourseCode, session.HeldAt)
		if err != nil {
			return fmt.Errorf("error inserting session: %w", err)
		}

		for _, studentID := range studentIDs {
			record := &models.AttendanceRecord{
				ID:        uuid.NewString(),
				StudentID: studentID,
				SessionID: session.ID,
				ClassDate: session.HeldAt,
			}

			_, err := tx.Exec(ctx, `
				INSERT INTO attendance (id, student_id, session_id)
				VALUES ($1, $2, $3)
			`, record.ID, record.StudentID, record.SessionID)
			if err != nil {
				return fmt.Errorf("error inserting attendance record: %w", err)
			}

			records = append(records, record)
		}

		_, err = tx.Exec(ctx, `
			UPDATE courses
			SET total_classes = total_classes + 1
			WHERE course_code = $1
		`, courseCode)
		if err != nil {
			return fmt.Errorf("error incrementing class counter: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	return session, records, nil
}

// CountSessions returns the number of class sessions held for a course
// within the window, both bounds inclusive.
func (r *AttendanceRepository) CountSessions(ctx context.Context, courseCode string, window helpers.DateRange) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM class_sessions
		WHERE course_code = $1
		  AND ($2::timestamptz IS NULL OR held_at >= $2)
		  AND ($3::timestamptz IS NULL OR held_at <= $3)
	`

	var count int
	err := r.db.Pool.QueryRow(ctx, query, courseCode, window.Start, window.End).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting sessions: %w", err)
	}

	return count, nil
}

// ListSessions returns a course's sessions within the window, newest first.
func (r *AttendanceRepository) ListSessions(ctx context.Context, courseCode string, window helpers.DateRange) ([]*models.ClassSession, error) {
	query := `
		SELECT id, course_code, held_at
		FROM class_sessions
		WHERE course_code = $1
		  AND ($2::timestamptz IS NULL OR held_at >= $2)
		  AND ($3::timestamptz IS NULL OR held_at <= $3)
		ORDER BY held_at DESC
	`

	rows, err := r.db.Pool.Query(ctx, query, courseCode, window.Start, window.End)
	if err != nil {
		return nil, fmt.Errorf("error listing sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*models.ClassSession
	for rows.Next() {
		var session models.ClassSession
		if err := rows.Scan(&session.ID, &session.CourseCode, &session.HeldAt); err != nil {
			return nil, err
		}
		sessions = append(sessions, &session)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return sessions, nil
}

// CountForStudent returns how many sessions the student attended within the
// window. The window filters on the session timestamp, not insertion time.
func (r *AttendanceRepository) CountForStudent(ctx context.Context, studentID string, window helpers.DateRange) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM attendance a
		JOIN class_sessions s ON s.id = a.session_id
		WHERE a.student_id = $1
		  AND ($2::timestamptz IS NULL OR s.held_at >= $2)
		  AND ($3::timestamptz IS NULL OR s.held_at <= $3)
	`

	var count int
	err := r.db.Pool.QueryRow(ctx, query, studentID, window.Start, window.End).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting attendance: %w", err)
	}

	return count, nil
}

// CountsByStudent returns the attended-session count for every student
// enrolled in the course, zero included.
func (r *AttendanceRepository) CountsByStudent(ctx context.Context, courseCode string, window helpers.DateRange) (map[string]int, error) {
	query := `
		SELECT st.id, COUNT(s.id)
		FROM students st
		LEFT JOIN attendance a ON a.student_id = st.id
		LEFT JOIN class_sessions s ON s.id = a.session_id
		  AND ($2::timestamptz IS NULL OR s.held_at >= $2)
		  AND ($3::timestamptz IS NULL OR s.held_at <= $3)
		WHERE st.course_code = $1
		GROUP BY st.id
	`

	rows, err := r.db.Pool.Query(ctx, query, courseCode, window.Start, window.End)
	if err != nil {
		return nil, fmt.Errorf("error aggregating attendance: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var studentID string
		var count int
		if err := rows.Scan(&studentID, &count); err != nil {
			return nil, err
		}
		counts[studentID] = count
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return counts, nil
}
