package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aravind/rollbook/internal/app/models/dto"
	"github.com/aravind/rollbook/internal/app/services"
	"github.com/aravind/rollbook/internal/middleware"
)

// CourseController handles course and member-list endpoints
type CourseController struct {
	courseService *services.CourseService
}

// NewCourseController creates a new CourseController
func NewCourseController(courseService *services.CourseService) *CourseController {
	return &CourseController{
		courseService: courseService,
	}
}

// GetCourses lists every course where the email is a teacher or TA
// @Summary List courses for a member
// @Tags courses
// @Produce json
// @Param email query string true "Teacher or TA email"
// @Success 200 {array} models.Course
// @Failure 400 {object} map[string]string
// @Router /courses [get]
func (c *CourseController) GetCourses(ctx *gin.Context) {
	email := ctx.Query("email")
	if email == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "email is required"})
		return
	}

	courses, err := c.courseService.GetCoursesByMember(ctx, email)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, courses)
}

// CreateCourse creates a new course
// @Summary Create a course
// @Tags courses
// @Accept json
// @Produce json
// @Param request body dto.CreateCourseRequest true "Course information"
// @Success 201 {object} models.Course
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /courses [post]
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	var req dto.CreateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	course, err := c.courseService.CreateCourse(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, course)
}

// AddTA adds an assistant to a course
// @Summary Add a TA to a course
// @Tags courses
// @Accept json
// @Produce json
// @Param code path string true "Course code"
// @Param request body dto.TARequest true "TA email"
// @Success 200 {object} models.Course
// @Failure 400 {object} map[string]string
// @Router /courses/{code}/ta [post]
func (c *CourseController) AddTA(ctx *gin.Context) {
	var req dto.TARequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "ta_email is required"})
		return
	}

	course, err := c.courseService.AddTA(ctx, ctx.Param("code"), req.TAEmail)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, course)
}

// RemoveTA removes an assistant from a course
// @Summary Remove a TA from a course
// @Tags courses
// @Accept json
// @Produce json
// @Param code path string true "Course code"
// @Param request body dto.TARequest true "TA email"
// @Success 200 {object} models.Course
// @Failure 400 {object} map[string]string
// @Router /courses/{code}/ta [delete]
func (c *CourseController) RemoveTA(ctx *gin.Context) {
	var req dto.TARequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "ta_email is required"})
		return
	}

	course, err := c.courseService.RemoveTA(ctx, ctx.Param("code"), req.TAEmail)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, course)
}
