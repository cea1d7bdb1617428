package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aravind/rollbook/internal/app/models"
	"github.com/aravind/rollbook/internal/pkg/apperrors"
	"github.com/aravind/rollbook/internal/pkg/helpers"
)

var (
	day1 = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	day2 = time.Date(2026, 3, 4, 9, 0, 0, 0, time.UTC)
	day3 = time.Date(2026, 3, 9, 9, 0, 0, 0, time.UTC)
)

// seedCourse sets up CS101 with two students: Asha attends both sessions,
// Vikram only the first.
func seedCourse(t *testing.T, store *memStore) (asha, vikram *models.Student) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, &models.Course{
		Code:     "CS101",
		Teachers: []string{"teacher@example.edu"},
	}))

	asha = &models.Student{CourseCode: "CS101", RollNo: "1", Name: "Asha Rao"}
	vikram = &models.Student{CourseCode: "CS101", RollNo: "2", Name: "Vikram Iyer"}
	require.NoError(t, store.createStudent(ctx, asha))
	require.NoError(t, store.createStudent(ctx, vikram))

	_, _, err := store.RecordSession(ctx, "CS101", []string{asha.ID, vikram.ID}, day1)
	require.NoError(t, err)
	_, _, err = store.RecordSession(ctx, "CS101", []string{asha.ID}, day2)
	require.NoError(t, err)
	return asha, vikram
}

func newStatsService(store *memStore, cache StatsCache, threshold float64) *StatsService {
	return NewStatsService(store, memStudents{store}, store, cache, threshold)
}

func window(t *testing.T, start, end string) helpers.DateRange {
	t.Helper()
	w, err := helpers.ParseDateRange(start, end)
	require.NoError(t, err)
	return w
}

func TestStudentStats(t *testing.T) {
	store := newMemStore()
	asha, vikram := seedCourse(t, store)
	svc := newStatsService(store, nil, 75)

	stats, err := svc.StudentStats(context.Background(), asha.ID, helpers.DateRange{})
	require.NoError(t, err)
	assert.Equal(t, "Asha Rao", stats.StudentName)
	assert.Equal(t, "CS101", stats.CourseCode)
	assert.Equal(t, 2, stats.TotalClasses)
	assert.Equal(t, 2, stats.AttendedClasses)
	assert.Equal(t, 100.0, stats.AttendancePercentage)
	assert.Nil(t, stats.StartDate)
	assert.Nil(t, stats.EndDate)

	stats, err = svc.StudentStats(context.Background(), vikram.ID, helpers.DateRange{})
	require.NoError(t, err)
	assert.Equal(t, 1, stats.AttendedClasses)
	assert.Equal(t, 50.0, stats.AttendancePercentage)
}

func TestStudentStatsUnknownStudent(t *testing.T) {
	store := newMemStore()
	seedCourse(t, store)
	svc := newStatsService(store, nil, 75)

	_, err := svc.StudentStats(context.Background(), "missing", helpers.DateRange{})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrStudentNotFound))
}

func TestStudentStatsNoSessions(t *testing.T) {
	store := newMemStore()
	ctx := context.Background()
	require.NoError(t, store.Create(ctx, &models.Course{Code: "CS102", Teachers: []string{"t@example.edu"}}))
	student := &models.Student{CourseCode: "CS102", RollNo: "1", Name: "Meera Pillai"}
	require.NoError(t, store.createStudent(ctx, student))

	svc := newStatsService(store, nil, 75)
	stats, err := svc.StudentStats(ctx, student.ID, helpers.DateRange{})
	require.NoError(t, err)
	assert.Equal(t, 0, stats.TotalClasses)
	assert.Equal(t, 0, stats.AttendedClasses)
	assert.Equal(t, 0.0, stats.AttendancePercentage)
}

func TestStudentStatsWindow(t *testing.T) {
	store := newMemStore()
	_, vikram := seedCourse(t, store)
	svc := newStatsService(store, nil, 75)

	// Only the first session day. A bare end date covers the whole day.
	w := window(t, "2026-03-02", "2026-03-02")
	stats, err := svc.StudentStats(context.Background(), vikram.ID, w)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalClasses)
	assert.Equal(t, 1, stats.AttendedClasses)
	assert.Equal(t, 100.0, stats.AttendancePercentage)
	require.NotNil(t, stats.StartDate)
	require.NotNil(t, stats.EndDate)

	// Only the second session day, which Vikram missed.
	w = window(t, "2026-03-03", "2026-03-05")
	stats, err = svc.StudentStats(context.Background(), vikram.ID, w)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalClasses)
	assert.Equal(t, 0, stats.AttendedClasses)
	assert.Equal(t, 0.0, stats.AttendancePercentage)
}

func TestStudentStatsWindowBoundsInclusive(t *testing.T) {
	store := newMemStore()
	asha, _ := seedCourse(t, store)
	svc := newStatsService(store, nil, 75)

	// RFC 3339 bounds landing exactly on both session timestamps.
	w := window(t, "2026-03-02T09:00:00Z", "2026-03-04T09:00:00Z")
	stats, err := svc.StudentStats(context.Background(), asha.ID, w)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalClasses)
	assert.Equal(t, 2, stats.AttendedClasses)
}

func TestSessionCount(t *testing.T) {
	store := newMemStore()
	seedCourse(t, store)
	svc := newStatsService(store, nil, 75)

	count, err := svc.SessionCount(context.Background(), "CS101", helpers.DateRange{})
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	_, err = svc.SessionCount(context.Background(), "NOPE", helpers.DateRange{})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrCourseNotFound))
}

func TestCourseStats(t *testing.T) {
	store := newMemStore()
	seedCourse(t, store)
	svc := newStatsService(store, nil, 75)

	stats, err := svc.CourseStats(context.Background(), "CS101", helpers.DateRange{})
	require.NoError(t, err)
	assert.Equal(t, "CS101", stats.CourseCode)
	assert.Equal(t, 2, stats.TotalClasses)
	assert.Equal(t, 2, stats.TotalStudents)
	assert.Equal(t, 3, stats.TotalAttendance)
	// 3 attendance events over 2 sessions times 2 students.
	assert.Equal(t, 75.0, stats.AttendancePercentage)
}

func TestCourseStatsEmptyRoster(t *testing.T) {
	store := newMemStore()
	ctx := context.Background()
	require.NoError(t, store.Create(ctx, &models.Course{Code: "CS103", Teachers: []string{"t@example.edu"}}))

	svc := newStatsService(store, nil, 75)
	stats, err := svc.CourseStats(ctx, "CS103", helpers.DateRange{})
	require.NoError(t, err)
	assert.Equal(t, 0, stats.TotalStudents)
	assert.Equal(t, 0.0, stats.AttendancePercentage)
}

func TestCoursePercentages(t *testing.T) {
	store := newMemStore()
	seedCourse(t, store)
	svc := newStatsService(store, nil, 75)

	resp, err := svc.CoursePercentages(context.Background(), "CS101", helpers.DateRange{})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.TotalStudents)
	assert.Equal(t, 2, resp.TotalClasses)
	require.Len(t, resp.Students, 2)

	// Ordered by roll number.
	assert.Equal(t, "Asha Rao", resp.Students[0].StudentName)
	assert.Equal(t, 100.0, resp.Students[0].AttendancePercentage)
	assert.Equal(t, "Vikram Iyer", resp.Students[1].StudentName)
	assert.Equal(t, 50.0, resp.Students[1].AttendancePercentage)
	assert.Equal(t, 1, resp.Students[1].AttendedClasses)
}

func TestCoursePercentagesIncludesAbsentees(t *testing.T) {
	store := newMemStore()
	ctx := context.Background()
	seedCourse(t, store)
	ghost := &models.Student{CourseCode: "CS101", RollNo: "3", Name: "Never Shows"}
	require.NoError(t, store.createStudent(ctx, ghost))

	svc := newStatsService(store, nil, 75)
	resp, err := svc.CoursePercentages(ctx, "CS101", helpers.DateRange{})
	require.NoError(t, err)
	require.Len(t, resp.Students, 3)
	assert.Equal(t, "Never Shows", resp.Students[2].StudentName)
	assert.Equal(t, 0, resp.Students[2].AttendedClasses)
	assert.Equal(t, 0.0, resp.Students[2].AttendancePercentage)
}

func TestLowAttendance(t *testing.T) {
	store := newMemStore()
	seedCourse(t, store)
	svc := newStatsService(store, nil, 75)

	resp, err := svc.LowAttendance(context.Background(), "CS101", helpers.DateRange{})
	require.NoError(t, err)
	assert.Equal(t, 75.0, resp.Threshold)
	require.Len(t, resp.Students, 1)
	assert.Equal(t, "Vikram Iyer", resp.Students[0].StudentName)
	assert.Equal(t, 50.0, resp.Students[0].AttendancePercentage)
}

func TestLowAttendanceThresholdIsStrict(t *testing.T) {
	store := newMemStore()
	ctx := context.Background()
	require.NoError(t, store.Create(ctx, &models.Course{Code: "CS104", Teachers: []string{"t@example.edu"}}))
	student := &models.Student{CourseCode: "CS104", RollNo: "1", Name: "On The Line"}
	require.NoError(t, store.createStudent(ctx, student))

	// 3 of 4 sessions is exactly 75 percent.
	days := []time.Time{day1, day2, day3, day3.Add(48 * time.Hour)}
	for i, day := range days {
		ids := []string{student.ID}
		if i == 3 {
			ids = nil
		}
		_, _, err := store.RecordSession(ctx, "CS104", ids, day)
		require.NoError(t, err)
	}

	svc := newStatsService(store, nil, 75)
	resp, err := svc.LowAttendance(ctx, "CS104", helpers.DateRange{})
	require.NoError(t, err)
	assert.Empty(t, resp.Students)
}

func TestLowAttendanceNoSessions(t *testing.T) {
	store := newMemStore()
	ctx := context.Background()
	require.NoError(t, store.Create(ctx, &models.Course{Code: "CS105", Teachers: []string{"t@example.edu"}}))
	student := &models.Student{CourseCode: "CS105", RollNo: "1", Name: "Solo"}
	require.NoError(t, store.createStudent(ctx, student))

	// Zero sessions means zero percent, which is below any positive threshold.
	svc := newStatsService(store, nil, 75)
	resp, err := svc.LowAttendance(ctx, "CS105", helpers.DateRange{})
	require.NoError(t, err)
	assert.Equal(t, 0, resp.TotalClasses)
	require.Len(t, resp.Students, 1)
	assert.Equal(t, 0.0, resp.Students[0].AttendancePercentage)
}

func TestCourseStatsUsesCache(t *testing.T) {
	store := newMemStore()
	seedCourse(t, store)
	cache := newSpyCache()
	svc := newStatsService(store, cache, 75)
	ctx := context.Background()

	first, err := svc.CourseStats(ctx, "CS101", helpers.DateRange{})
	require.NoError(t, err)
	assert.Equal(t, 1, cache.sets)
	assert.Equal(t, 0, cache.hits)

	second, err := svc.CourseStats(ctx, "CS101", helpers.DateRange{})
	require.NoError(t, err)
	assert.Equal(t, 1, cache.hits)
	assert.Equal(t, first, second)
}

func TestCacheKeysDistinguishWindows(t *testing.T) {
	store := newMemStore()
	seedCourse(t, store)
	cache := newSpyCache()
	svc := newStatsService(store, cache, 75)
	ctx := context.Background()

	_, err := svc.CourseStats(ctx, "CS101", helpers.DateRange{})
	require.NoError(t, err)
	_, err = svc.CourseStats(ctx, "CS101", window(t, "2026-03-02", "2026-03-02"))
	require.NoError(t, err)
	assert.Equal(t, 2, cache.sets)
	assert.Equal(t, 0, cache.hits)
}

func TestMarkAttendanceInvalidatesCache(t *testing.T) {
	store := newMemStore()
	asha, _ := seedCourse(t, store)
	cache := newSpyCache()
	statsSvc := newStatsService(store, cache, 75)
	attSvc := NewAttendanceService(store, memStudents{store}, store, cache, false)
	ctx := context.Background()

	before, err := statsSvc.CourseStats(ctx, "CS101", helpers.DateRange{})
	require.NoError(t, err)
	assert.Equal(t, 2, before.TotalClasses)

	_, err = attSvc.MarkAttendance(ctx, "CS101", []string{asha.RollNo})
	require.NoError(t, err)
	assert.Equal(t, []string{"CS101"}, cache.invalidations)

	after, err := statsSvc.CourseStats(ctx, "CS101", helpers.DateRange{})
	require.NoError(t, err)
	assert.Equal(t, 3, after.TotalClasses)
}

func TestPercentageRounding(t *testing.T) {
	assert.Equal(t, 0.0, Percentage(0, 0))
	assert.Equal(t, 0.0, Percentage(3, 0))
	assert.Equal(t, 33.33, Percentage(1, 3))
	assert.Equal(t, 66.67, Percentage(2, 3))
	assert.Equal(t, 100.0, Percentage(5, 5))
	assert.Equal(t, 14.29, Percentage(1, 7))
}
