package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/aravind/rollbook/internal/app/controllers"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	courseController *controllers.CourseController,
	studentController *controllers.StudentController,
	attendanceController *controllers.AttendanceController,
	statsController *controllers.StatsController,
) {
	// API version group
	v1 := router.Group("/api/v1")

	courses := v1.Group("/courses")
	{
		courses.GET("", courseController.GetCourses)
		courses.POST("", courseController.CreateCourse)
		courses.POST("/:code/students", studentController.AddStudent)
		courses.GET("/:code/students", studentController.GetStudents)
		courses.GET("/:code/sessions", attendanceController.GetSessions)
		courses.POST("/:code/ta", courseController.AddTA)
		courses.DELETE("/:code/ta", courseController.RemoveTA)
	}

	attendance := v1.Group("/attendance")
	{
		attendance.POST("", attendanceController.MarkAttendance)
		attendance.GET("/stats/:student_id", statsController.GetStudentStats)
		attendance.GET("/stats/course/:code", statsController.GetCourseStats)
		attendance.GET("/stats/course/:code/percentage", statsController.GetCoursePercentages)
		attendance.GET("/:code/low", statsController.GetLowAttendance)
	}
}
