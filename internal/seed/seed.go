package seed

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	appModels "github.com/aravind/rollbook/internal/app/models"
	appRepos "github.com/aravind/rollbook/internal/app/repositories"
	"github.com/aravind/rollbook/internal/db"
	"github.com/aravind/rollbook/internal/pkg/apperrors"
)

// CreateDemoData seeds a demo course with a small roster so a fresh install
// has something to query. Existing rows are left alone.
func CreateDemoData(ctx context.Context, database *db.PostgresDB, lgr zerolog.Logger) error {
	repos := appRepos.NewRepositories(database)

	lgr.Info().Msg("Checking/Creating demo data...")
	var finalErr error

	course := &appModels.Course{
		Code:     "CS101",
		Teachers: []string{"teacher@example.edu"},
		TAs:      []string{"ta@example.edu"},
	}
	err := repos.CourseRepository.Create(ctx, course)
	if err != nil && !errors.Is(err, apperrors.ErrCourseAlreadyExists) {
		lgr.Error().Err(err).Msg("Error creating demo course")
		return err
	}
	if errors.Is(err, apperrors.ErrCourseAlreadyExists) {
		lgr.Info().Msg("Demo course already present, skipping")
		return nil
	}

	roster := []appModels.Student{
		{CourseCode: course.Code, RollNo: "1", Name: "Asha Rao"},
		{CourseCode: course.Code, RollNo: "2", Name: "Vikram Iyer"},
		{CourseCode: course.Code, RollNo: "3", Name: "Meera Pillai"},
	}
	for i := range roster {
		if err := repos.StudentRepository.Create(ctx, &roster[i]); err != nil &&
			!errors.Is(err, apperrors.ErrRollNumberExists) {
			lgr.Error().Err(err).Str("roll_no", roster[i].RollNo).Msg("Error creating demo student")
			finalErr = errors.Join(finalErr, err)
		}
	}

	if finalErr == nil {
		lgr.Info().Msg("Demo data created")
	}
	return finalErr
}
