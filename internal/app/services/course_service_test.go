package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aravind/rollbook/internal/app/models"
	"github.com/aravind/rollbook/internal/app/models/dto"
	"github.com/aravind/rollbook/internal/pkg/apperrors"
)

func TestCreateCourse(t *testing.T) {
	store := newMemStore()
	svc := NewCourseService(store)
	ctx := context.Background()

	course, err := svc.CreateCourse(ctx, &dto.CreateCourseRequest{
		CourseCode: "CS101",
		Teachers:   []string{"teacher@example.edu", " teacher@example.edu "},
		TAs:        []string{"ta@example.edu"},
	})
	require.NoError(t, err)
	assert.Equal(t, "CS101", course.Code)
	// Duplicate teacher entries collapse.
	assert.Equal(t, []string{"teacher@example.edu"}, course.Teachers)
	assert.Equal(t, []string{"ta@example.edu"}, course.TAs)
	assert.Equal(t, 0, course.TotalClasses)
}

func TestCreateCourseValidation(t *testing.T) {
	store := newMemStore()
	svc := NewCourseService(store)
	ctx := context.Background()

	_, err := svc.CreateCourse(ctx, &dto.CreateCourseRequest{
		CourseCode: "not a code!",
		Teachers:   []string{"teacher@example.edu"},
	})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidCourseCode))

	_, err = svc.CreateCourse(ctx, &dto.CreateCourseRequest{
		CourseCode: "CS101",
		Teachers:   []string{"not-an-email"},
	})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidEmail))

	_, err = svc.CreateCourse(ctx, &dto.CreateCourseRequest{
		CourseCode: "CS101",
		Teachers:   []string{},
	})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrValidationFailed))
}

func TestCreateCourseDuplicate(t *testing.T) {
	store := newMemStore()
	svc := NewCourseService(store)
	ctx := context.Background()

	req := &dto.CreateCourseRequest{CourseCode: "CS101", Teachers: []string{"teacher@example.edu"}}
	_, err := svc.CreateCourse(ctx, req)
	require.NoError(t, err)

	_, err = svc.CreateCourse(ctx, req)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrCourseAlreadyExists))
}

func TestGetCoursesByMember(t *testing.T) {
	store := newMemStore()
	ctx := context.Background()
	require.NoError(t, store.Create(ctx, &models.Course{
		Code:     "CS101",
		Teachers: []string{"teacher@example.edu"},
		TAs:      []string{"ta@example.edu"},
	}))
	require.NoError(t, store.Create(ctx, &models.Course{
		Code:     "EE201",
		Teachers: []string{"other@example.edu"},
	}))

	svc := NewCourseService(store)

	courses, err := svc.GetCoursesByMember(ctx, "teacher@example.edu")
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, "CS101", courses[0].Code)

	// TA membership counts too.
	courses, err = svc.GetCoursesByMember(ctx, "ta@example.edu")
	require.NoError(t, err)
	require.Len(t, courses, 1)

	// Unknown members get an empty list, not an error.
	courses, err = svc.GetCoursesByMember(ctx, "nobody@example.edu")
	require.NoError(t, err)
	assert.NotNil(t, courses)
	assert.Empty(t, courses)

	_, err = svc.GetCoursesByMember(ctx, "not-an-email")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidEmail))
}

func TestAddTAIdempotent(t *testing.T) {
	store := newMemStore()
	ctx := context.Background()
	require.NoError(t, store.Create(ctx, &models.Course{
		Code:     "CS101",
		Teachers: []string{"teacher@example.edu"},
	}))

	svc := NewCourseService(store)

	course, err := svc.AddTA(ctx, "CS101", "ta@example.edu")
	require.NoError(t, err)
	assert.Equal(t, []string{"ta@example.edu"}, course.TAs)

	course, err = svc.AddTA(ctx, "CS101", "ta@example.edu")
	require.NoError(t, err)
	assert.Equal(t, []string{"ta@example.edu"}, course.TAs)
}

func TestRemoveTAIdempotent(t *testing.T) {
	store := newMemStore()
	ctx := context.Background()
	require.NoError(t, store.Create(ctx, &models.Course{
		Code:     "CS101",
		Teachers: []string{"teacher@example.edu"},
		TAs:      []string{"ta@example.edu", "other@example.edu"},
	}))

	svc := NewCourseService(store)

	course, err := svc.RemoveTA(ctx, "CS101", "ta@example.edu")
	require.NoError(t, err)
	assert.Equal(t, []string{"other@example.edu"}, course.TAs)

	course, err = svc.RemoveTA(ctx, "CS101", "ta@example.edu")
	require.NoError(t, err)
	assert.Equal(t, []string{"other@example.edu"}, course.TAs)
}

func TestTAOperationsUnknownCourse(t *testing.T) {
	store := newMemStore()
	svc := NewCourseService(store)
	ctx := context.Background()

	_, err := svc.AddTA(ctx, "NOPE", "ta@example.edu")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrCourseNotFound))

	_, err = svc.RemoveTA(ctx, "NOPE", "ta@example.edu")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrCourseNotFound))
}
