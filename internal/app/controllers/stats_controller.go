package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aravind/rollbook/internal/app/services"
	"github.com/aravind/rollbook/internal/middleware"
	"github.com/aravind/rollbook/internal/pkg/helpers"
)

// StatsController exposes the attendance statistics engine
type StatsController struct {
	statsService *services.StatsService
}

// NewStatsController creates a new StatsController
func NewStatsController(statsService *services.StatsService) *StatsController {
	return &StatsController{
		statsService: statsService,
	}
}

// GetStudentStats returns one student's attendance statistics
// @Summary Get attendance statistics for a student
// @Tags stats
// @Produce json
// @Param student_id path string true "Student id"
// @Param start_date query string false "Window start (ISO 8601)"
// @Param end_date query string false "Window end (ISO 8601)"
// @Success 200 {object} dto.StudentStatsResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /attendance/stats/{student_id} [get]
func (c *StatsController) GetStudentStats(ctx *gin.Context) {
	window, err := helpers.ParseDateRange(ctx.Query("start_date"), ctx.Query("end_date"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	stats, err := c.statsService.StudentStats(ctx, ctx.Param("student_id"), window)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, stats)
}

// GetCourseStats returns course-wide aggregate statistics
// @Summary Get attendance statistics for a course
// @Tags stats
// @Produce json
// @Param code path string true "Course code"
// @Param start_date query string false "Window start (ISO 8601)"
// @Param end_date query string false "Window end (ISO 8601)"
// @Success 200 {object} dto.CourseStatsResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /attendance/stats/course/{code} [get]
func (c *StatsController) GetCourseStats(ctx *gin.Context) {
	window, err := helpers.ParseDateRange(ctx.Query("start_date"), ctx.Query("end_date"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	stats, err := c.statsService.CourseStats(ctx, ctx.Param("code"), window)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, stats)
}

// GetCoursePercentages returns every enrolled student's percentage
// @Summary Get attendance percentage of every student in a course
// @Tags stats
// @Produce json
// @Param code path string true "Course code"
// @Param start_date query string false "Window start (ISO 8601)"
// @Param end_date query string false "Window end (ISO 8601)"
// @Success 200 {object} dto.CoursePercentageResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /attendance/stats/course/{code}/percentage [get]
func (c *StatsController) GetCoursePercentages(ctx *gin.Context) {
	window, err := helpers.ParseDateRange(ctx.Query("start_date"), ctx.Query("end_date"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	stats, err := c.statsService.CoursePercentages(ctx, ctx.Param("code"), window)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, stats)
}

// GetLowAttendance returns students below the low-attendance threshold
// @Summary Get students with low attendance
// @Tags stats
// @Produce json
// @Param code path string true "Course code"
// @Param start_date query string false "Window start (ISO 8601)"
// @Param end_date query string false "Window end (ISO 8601)"
// @Success 200 {object} dto.LowAttendanceResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /attendance/{code}/low [get]
func (c *StatsController) GetLowAttendance(ctx *gin.Context) {
	window, err := helpers.ParseDateRange(ctx.Query("start_date"), ctx.Query("end_date"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	report, err := c.statsService.LowAttendance(ctx, ctx.Param("code"), window)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, report)
}
