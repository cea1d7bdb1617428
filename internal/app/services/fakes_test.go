package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/aravind/rollbook/internal/app/models"
	"github.com/aravind/rollbook/internal/pkg/apperrors"
	"github.com/aravind/rollbook/internal/pkg/helpers"
)

// memStore is an in-memory implementation of CourseStore and AttendanceStore,
// mirroring the constraints the Postgres schema enforces. memStudents wraps
// it as a StudentStore since both stores name their insert Create.
type memStore struct {
	courses    map[string]*models.Course
	students   map[string]*models.Student
	sessions   []*models.ClassSession
	attendance []*models.AttendanceRecord
	nextID     int
}

func newMemStore() *memStore {
	return &memStore{
		courses:  make(map[string]*models.Course),
		students: make(map[string]*models.Student),
	}
}

func (m *memStore) id(prefix string) string {
	m.nextID++
	return fmt.Sprintf("%s-%d", prefix, m.nextID)
}

func (m *memStore) Create(ctx context.Context, course *models.Course) error {
	if _, ok := m.courses[course.Code]; ok {
		return apperrors.NewCustomError(apperrors.ErrCourseAlreadyExists,
			fmt.Sprintf("course %s already exists", course.Code))
	}
	cp := *course
	m.courses[course.Code] = &cp
	return nil
}

func (m *memStore) GetByCode(ctx context.Context, code string) (*models.Course, error) {
	course, ok := m.courses[code]
	if !ok {
		return nil, apperrors.NewCustomError(apperrors.ErrCourseNotFound,
			fmt.Sprintf("course %s not found", code))
	}
	cp := *course
	return &cp, nil
}

func (m *memStore) ListByMember(ctx context.Context, email string) ([]*models.Course, error) {
	var out []*models.Course
	for _, course := range m.courses {
		if course.HasMember(email) {
			cp := *course
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (m *memStore) AddTA(ctx context.Context, code, email string) (*models.Course, error) {
	course, ok := m.courses[code]
	if !ok {
		return nil, apperrors.NewCustomError(apperrors.ErrCourseNotFound,
			fmt.Sprintf("course %s not found", code))
	}
	present := false
	for _, ta := range course.TAs {
		if ta == email {
			present = true
			break
		}
	}
	if !present {
		course.TAs = append(course.TAs, email)
	}
	cp := *course
	return &cp, nil
}

func (m *memStore) RemoveTA(ctx context.Context, code, email string) (*models.Course, error) {
	course, ok := m.courses[code]
	if !ok {
		return nil, apperrors.NewCustomError(apperrors.ErrCourseNotFound,
			fmt.Sprintf("course %s not found", code))
	}
	kept := course.TAs[:0]
	for _, ta := range course.TAs {
		if ta != email {
			kept = append(kept, ta)
		}
	}
	course.TAs = kept
	cp := *course
	return &cp, nil
}

// memStudents adapts memStore to the StudentStore interface.
type memStudents struct {
	m *memStore
}

func (s memStudents) Create(ctx context.Context, student *models.Student) error {
	return s.m.createStudent(ctx, student)
}

func (s memStudents) GetByID(ctx context.Context, id string) (*models.Student, error) {
	return s.m.GetByID(ctx, id)
}

func (s memStudents) ListByCourse(ctx context.Context, courseCode string) ([]*models.Student, error) {
	return s.m.ListByCourse(ctx, courseCode)
}

func (s memStudents) ListByCourseAndRollNumbers(ctx context.Context, courseCode string, rollNumbers []string) ([]*models.Student, error) {
	return s.m.ListByCourseAndRollNumbers(ctx, courseCode, rollNumbers)
}

func (m *memStore) createStudent(ctx context.Context, student *models.Student) error {
	if _, ok := m.courses[student.CourseCode]; !ok {
		return apperrors.NewCustomError(apperrors.ErrCourseNotFound,
			fmt.Sprintf("course %s not found", student.CourseCode))
	}
	for _, existing := range m.students {
		if existing.CourseCode == student.CourseCode && existing.RollNo == student.RollNo {
			return apperrors.NewCustomError(apperrors.ErrRollNumberExists,
				fmt.Sprintf("roll number %s already exists in course %s", student.RollNo, student.CourseCode))
		}
	}
	if student.ID == "" {
		student.ID = m.id("stu")
	}
	cp := *student
	m.students[student.ID] = &cp
	return nil
}

func (m *memStore) GetByID(ctx context.Context, id string) (*models.Student, error) {
	student, ok := m.students[id]
	if !ok {
		return nil, apperrors.NewCustomError(apperrors.ErrStudentNotFound,
			fmt.Sprintf("student %s not found", id))
	}
	cp := *student
	return &cp, nil
}

func (m *memStore) ListByCourse(ctx context.Context, courseCode string) ([]*models.Student, error) {
	var out []*models.Student
	for _, student := range m.students {
		if student.CourseCode == courseCode {
			cp := *student
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RollNo < out[j].RollNo })
	return out, nil
}

func (m *memStore) ListByCourseAndRollNumbers(ctx context.Context, courseCode string, rollNumbers []string) ([]*models.Student, error) {
	wanted := make(map[string]struct{}, len(rollNumbers))
	for _, roll := range rollNumbers {
		wanted[strings.TrimSpace(roll)] = struct{}{}
	}
	var out []*models.Student
	for _, student := range m.students {
		if student.CourseCode != courseCode {
			continue
		}
		if _, ok := wanted[student.RollNo]; ok {
			cp := *student
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RollNo < out[j].RollNo })
	return out, nil
}

func (m *memStore) RecordSession(ctx context.Context, courseCode string, studentIDs []string, heldAt time.Time) (*models.ClassSession, []*models.AttendanceRecord, error) {
	course, ok := m.courses[courseCode]
	if !ok {
		return nil, nil, apperrors.NewCustomError(apperrors.ErrCourseNotFound,
			fmt.Sprintf("course %s not found", courseCode))
	}

	session := &models.ClassSession{
		ID:         m.id("ses"),
		CourseCode: courseCode,
		HeldAt:     heldAt,
	}
	m.sessions = append(m.sessions, session)
	course.TotalClasses++

	records := make([]*models.AttendanceRecord, 0, len(studentIDs))
	for _, studentID := range studentIDs {
		record := &models.AttendanceRecord{
			ID:        m.id("att"),
			StudentID: studentID,
			SessionID: session.ID,
			ClassDate: heldAt,
		}
		m.attendance = append(m.attendance, record)
		records = append(records, record)
	}
	return session, records, nil
}

func (m *memStore) CountSessions(ctx context.Context, courseCode string, window helpers.DateRange) (int, error) {
	count := 0
	for _, session := range m.sessions {
		if session.CourseCode == courseCode && window.Contains(session.HeldAt) {
			count++
		}
	}
	return count, nil
}

func (m *memStore) ListSessions(ctx context.Context, courseCode string, window helpers.DateRange) ([]*models.ClassSession, error) {
	var out []*models.ClassSession
	for _, session := range m.sessions {
		if session.CourseCode == courseCode && window.Contains(session.HeldAt) {
			cp := *session
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].HeldAt.After(out[j].HeldAt) })
	return out, nil
}

func (m *memStore) CountForStudent(ctx context.Context, studentID string, window helpers.DateRange) (int, error) {
	count := 0
	for _, record := range m.attendance {
		if record.StudentID == studentID && window.Contains(record.ClassDate) {
			count++
		}
	}
	return count, nil
}

func (m *memStore) CountsByStudent(ctx context.Context, courseCode string, window helpers.DateRange) (map[string]int, error) {
	counts := make(map[string]int)
	for _, student := range m.students {
		if student.CourseCode == courseCode {
			counts[student.ID] = 0
		}
	}
	for _, record := range m.attendance {
		if _, ok := counts[record.StudentID]; ok && window.Contains(record.ClassDate) {
			counts[record.StudentID]++
		}
	}
	return counts, nil
}

// spyCache records cache traffic so tests can assert on invalidation.
type spyCache struct {
	entries       map[string][]byte
	invalidations []string
	hits          int
	sets          int
}

func newSpyCache() *spyCache {
	return &spyCache{entries: make(map[string][]byte)}
}

func (c *spyCache) GetJSON(ctx context.Context, key string, dest interface{}) bool {
	data, ok := c.entries[key]
	if !ok {
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false
	}
	c.hits++
	return true
}

func (c *spyCache) SetJSON(ctx context.Context, key string, value interface{}) {
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	c.sets++
	c.entries[key] = data
}

func (c *spyCache) InvalidateCourse(ctx context.Context, courseCode string) {
	c.invalidations = append(c.invalidations, courseCode)
	prefix := "stats:" + courseCode + ":"
	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
		}
	}
}
