package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aravind/rollbook/internal/app/models/dto"
	"github.com/aravind/rollbook/internal/app/services"
	"github.com/aravind/rollbook/internal/middleware"
)

// StudentController handles roster endpoints
type StudentController struct {
	studentService *services.StudentService
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService *services.StudentService) *StudentController {
	return &StudentController{
		studentService: studentService,
	}
}

// AddStudent enrolls a student in a course
// @Summary Add a student to a course
// @Tags students
// @Accept json
// @Produce json
// @Param code path string true "Course code"
// @Param request body dto.AddStudentRequest true "Student information"
// @Success 201 {object} models.Student
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /courses/{code}/students [post]
func (c *StudentController) AddStudent(ctx *gin.Context) {
	var req dto.AddStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "student details are required"})
		return
	}

	student, err := c.studentService.AddStudent(ctx, ctx.Param("code"), req.Name, req.RollNo)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, student)
}

// GetStudents lists a course's roster
// @Summary List students enrolled in a course
// @Tags students
// @Produce json
// @Param code path string true "Course code"
// @Success 200 {array} models.Student
// @Failure 404 {object} map[string]string
// @Router /courses/{code}/students [get]
func (c *StudentController) GetStudents(ctx *gin.Context) {
	students, err := c.studentService.GetStudents(ctx, ctx.Param("code"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, students)
}
