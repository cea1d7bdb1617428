package services

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/aravind/rollbook/internal/app/models"
	"github.com/aravind/rollbook/internal/app/models/dto"
	"github.com/aravind/rollbook/internal/pkg/helpers"
)

// StatsService is the attendance aggregation engine. All percentages use the
// course's session count inside the window as the denominator; a window with
// no sessions yields 0 everywhere, never a division by zero.
type StatsService struct {
	courseStore     CourseStore
	studentStore    StudentStore
	attendanceStore AttendanceStore
	cache           StatsCache
	// lowThreshold is the percentage strictly below which a student shows up
	// in the low-attendance report.
	lowThreshold float64
}

// NewStatsService creates a new stats service instance. cache may be nil
// when caching is disabled.
func NewStatsService(courseStore CourseStore, studentStore StudentStore, attendanceStore AttendanceStore, cache StatsCache, lowThreshold float64) *StatsService {
	return &StatsService{
		courseStore:     courseStore,
		studentStore:    studentStore,
		attendanceStore: attendanceStore,
		cache:           cache,
		lowThreshold:    lowThreshold,
	}
}

// SessionCount returns the number of class sessions held for the course
// within the window. This is the authoritative "total classes" figure; the
// denormalized course counter is audit-only.
func (s *StatsService) SessionCount(ctx context.Context, courseCode string, window helpers.DateRange) (int, error) {
	if _, err := s.courseStore.GetByCode(ctx, courseCode); err != nil {
		return 0, err
	}
	return s.attendanceStore.CountSessions(ctx, courseCode, window)
}

// StudentStats computes one student's attended count and percentage over the
// window, using the student's course session count as denominator.
func (s *StatsService) StudentStats(ctx context.Context, studentID string, window helpers.DateRange) (*dto.StudentStatsResponse, error) {
	student, err := s.studentStore.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	// The foreign key makes a missing course a data-integrity fault, but the
	// contract is NotFound, not a crash.
	if _, err := s.courseStore.GetByCode(ctx, student.CourseCode); err != nil {
		return nil, err
	}

	totalClasses, err := s.attendanceStore.CountSessions(ctx, student.CourseCode, window)
	if err != nil {
		return nil, err
	}

	attended, err := s.attendanceStore.CountForStudent(ctx, student.ID, window)
	if err != nil {
		return nil, err
	}

	return &dto.StudentStatsResponse{
		StudentID:            student.ID,
		StudentName:          student.Name,
		RollNo:               student.RollNo,
		CourseCode:           student.CourseCode,
		TotalClasses:         totalClasses,
		AttendedClasses:      attended,
		AttendancePercentage: Percentage(attended, totalClasses),
		StartDate:            helpers.FormatTimePtr(window.Start),
		EndDate:              helpers.FormatTimePtr(window.End),
	}, nil
}

// CourseStats aggregates attendance across the whole roster. The aggregate
// percentage is attendance events over the course's possible attendance,
// sessions times enrolled students.
func (s *StatsService) CourseStats(ctx context.Context, courseCode string, window helpers.DateRange) (*dto.CourseStatsResponse, error) {
	key := statsKey(courseCode, "course", window)
	if s.cache != nil {
		var cached dto.CourseStatsResponse
		if s.cache.GetJSON(ctx, key, &cached) {
			return &cached, nil
		}
	}

	students, counts, totalClasses, err := s.rosterCounts(ctx, courseCode, window)
	if err != nil {
		return nil, err
	}

	totalAttendance := 0
	for _, student := range students {
		totalAttendance += counts[student.ID]
	}

	resp := &dto.CourseStatsResponse{
		CourseCode:           courseCode,
		TotalClasses:         totalClasses,
		TotalAttendance:      totalAttendance,
		TotalStudents:        len(students),
		AttendancePercentage: Percentage(totalAttendance, totalClasses*len(students)),
		StartDate:            helpers.FormatTimePtr(window.Start),
		EndDate:              helpers.FormatTimePtr(window.End),
	}

	if s.cache != nil {
		s.cache.SetJSON(ctx, key, resp)
	}
	return resp, nil
}

// CoursePercentages lists every enrolled student with attended count and
// percentage over the shared session-count denominator.
func (s *StatsService) CoursePercentages(ctx context.Context, courseCode string, window helpers.DateRange) (*dto.CoursePercentageResponse, error) {
	key := statsKey(courseCode, "percentage", window)
	if s.cache != nil {
		var cached dto.CoursePercentageResponse
		if s.cache.GetJSON(ctx, key, &cached) {
			return &cached, nil
		}
	}

	students, counts, totalClasses, err := s.rosterCounts(ctx, courseCode, window)
	if err != nil {
		return nil, err
	}

	resp := &dto.CoursePercentageResponse{
		CourseCode:    courseCode,
		TotalStudents: len(students),
		StartDate:     helpers.FormatTimePtr(window.Start),
		EndDate:       helpers.FormatTimePtr(window.End),
		Students:      rosterPercentages(students, counts, totalClasses),
		TotalClasses:  totalClasses,
	}

	if s.cache != nil {
		s.cache.SetJSON(ctx, key, resp)
	}
	return resp, nil
}

// LowAttendance returns the subset of the roster strictly below the
// configured threshold.
func (s *StatsService) LowAttendance(ctx context.Context, courseCode string, window helpers.DateRange) (*dto.LowAttendanceResponse, error) {
	key := statsKey(courseCode, "low", window)
	if s.cache != nil {
		var cached dto.LowAttendanceResponse
		if s.cache.GetJSON(ctx, key, &cached) {
			return &cached, nil
		}
	}

	students, counts, totalClasses, err := s.rosterCounts(ctx, courseCode, window)
	if err != nil {
		return nil, err
	}

	low := make([]dto.StudentPercentage, 0)
	for _, line := range rosterPercentages(students, counts, totalClasses) {
		if line.AttendancePercentage < s.lowThreshold {
			low = append(low, line)
		}
	}

	resp := &dto.LowAttendanceResponse{
		CourseCode:    courseCode,
		TotalClasses:  totalClasses,
		TotalStudents: len(students),
		Threshold:     s.lowThreshold,
		StartDate:     helpers.FormatTimePtr(window.Start),
		EndDate:       helpers.FormatTimePtr(window.End),
		Students:      low,
	}

	if s.cache != nil {
		s.cache.SetJSON(ctx, key, resp)
	}
	return resp, nil
}

// rosterCounts loads the inputs every course-level computation shares: the
// roster, each student's attended count, and the session total.
func (s *StatsService) rosterCounts(ctx context.Context, courseCode string, window helpers.DateRange) ([]*models.Student, map[string]int, int, error) {
	if _, err := s.courseStore.GetByCode(ctx, courseCode); err != nil {
		return nil, nil, 0, err
	}

	students, err := s.studentStore.ListByCourse(ctx, courseCode)
	if err != nil {
		return nil, nil, 0, err
	}

	counts, err := s.attendanceStore.CountsByStudent(ctx, courseCode, window)
	if err != nil {
		return nil, nil, 0, err
	}

	totalClasses, err := s.attendanceStore.CountSessions(ctx, courseCode, window)
	if err != nil {
		return nil, nil, 0, err
	}

	return students, counts, totalClasses, nil
}

// rosterPercentages builds the per-student lines, ordered by roll number.
func rosterPercentages(students []*models.Student, counts map[string]int, totalClasses int) []dto.StudentPercentage {
	lines := make([]dto.StudentPercentage, 0, len(students))
	for _, student := range students {
		attended := counts[student.ID]
		lines = append(lines, dto.StudentPercentage{
			StudentName:          student.Name,
			RollNo:               student.RollNo,
			AttendancePercentage: Percentage(attended, totalClasses),
			AttendedClasses:      attended,
		})
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].RollNo < lines[j].RollNo })
	return lines
}

// Percentage computes attended/total as a percentage rounded to two
// decimals. A non-positive total yields 0.
func Percentage(attended, total int) float64 {
	if total <= 0 {
		return 0
	}
	return math.Round(float64(attended)/float64(total)*100*100) / 100
}

// statsKey builds the cache key for a course-level statistics query. The
// window is part of the key; unbounded sides are left empty.
func statsKey(courseCode, kind string, window helpers.DateRange) string {
	start, end := "", ""
	if s := helpers.FormatTimePtr(window.Start); s != nil {
		start = *s
	}
	if e := helpers.FormatTimePtr(window.End); e != nil {
		end = *e
	}
	return fmt.Sprintf("stats:%s:%s:%s:%s", courseCode, kind, start, end)
}
