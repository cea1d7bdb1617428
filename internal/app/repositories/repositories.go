package repositories

import (
	"github.com/aravind/rollbook/internal/db"
)

// Repositories holds all the repository instances
type Repositories struct {
	CourseRepository     *CourseRepository
	StudentRepository    *StudentRepository
	AttendanceRepository *AttendanceRepository
}

// NewRepositories initializes all repositories
func NewRepositories(database *db.PostgresDB) *Repositories {
	return &Repositories{
		CourseRepository:     NewCourseRepository(database.Pool),
		StudentRepository:    NewStudentRepository(database.Pool),
		AttendanceRepository: NewAttendanceRepository(database),
	}
}
