package services

import (
	"context"
	"time"

	"github.com/aravind/rollbook/internal/app/models"
	"github.com/aravind/rollbook/internal/metrics"
	"github.com/aravind/rollbook/internal/pkg/helpers"
	"github.com/aravind/rollbook/internal/pkg/logger"
)

// AttendanceService records class sessions. It is the only writer in the
// system; everything else is a pure query.
type AttendanceService struct {
	courseStore     CourseStore
	studentStore    StudentStore
	attendanceStore AttendanceStore
	cache           StatsCache
	// allowEmptySessions keeps the session (and the audit counter bump) even
	// when no roll number resolved to an enrolled student.
	allowEmptySessions bool
}

// NewAttendanceService creates a new attendance service instance. cache may
// be nil when caching is disabled.
func NewAttendanceService(courseStore CourseStore, studentStore StudentStore, attendanceStore AttendanceStore, cache StatsCache, allowEmptySessions bool) *AttendanceService {
	return &AttendanceService{
		courseStore:        courseStore,
		studentStore:       studentStore,
		attendanceStore:    attendanceStore,
		cache:              cache,
		allowEmptySessions: allowEmptySessions,
	}
}

// MarkAttendance records one class session for the course and one attendance
// record per resolved roll number, all stamped with a single shared
// timestamp. Roll numbers not enrolled in the course are skipped silently.
//
// A call that resolves zero students records no session unless the service
// was configured to allow empty sessions.
func (s *AttendanceService) MarkAttendance(ctx context.Context, courseCode string, rollNumbers []string) ([]*models.AttendanceRecord, error) {
	course, err := s.courseStore.GetByCode(ctx, courseCode)
	if err != nil {
		return nil, err
	}

	students, err := s.studentStore.ListByCourseAndRollNumbers(ctx, course.Code, rollNumbers)
	if err != nil {
		return nil, err
	}

	if len(students) == 0 && !s.allowEmptySessions {
		logger.Info().Str("course", course.Code).Int("requested", len(rollNumbers)).
			Msg("No roll numbers resolved, skipping session")
		return []*models.AttendanceRecord{}, nil
	}

	studentIDs := make([]string, 0, len(students))
	for _, student := range students {
		studentIDs = append(studentIDs, student.ID)
	}

	session, records, err := s.attendanceStore.RecordSession(ctx, course.Code, studentIDs, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	metrics.SessionsRecorded.Inc()
	metrics.AttendanceMarked.Add(float64(len(records)))

	if s.cache != nil {
		s.cache.InvalidateCourse(ctx, course.Code)
	}

	logger.Info().Str("course", course.Code).Str("session", session.ID).
		Int("present", len(records)).Int("requested", len(rollNumbers)).
		Msg("Attendance recorded")

	if records == nil {
		records = []*models.AttendanceRecord{}
	}
	return records, nil
}

// GetSessions lists a course's class sessions within the window, newest
// first.
func (s *AttendanceService) GetSessions(ctx context.Context, courseCode string, window helpers.DateRange) ([]*models.ClassSession, error) {
	if _, err := s.courseStore.GetByCode(ctx, courseCode); err != nil {
		return nil, err
	}

	sessions, err := s.attendanceStore.ListSessions(ctx, courseCode, window)
	if err != nil {
		return nil, err
	}

	if sessions == nil {
		sessions = []*models.ClassSession{}
	}
	return sessions, nil
}
