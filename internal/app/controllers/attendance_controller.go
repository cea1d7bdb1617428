package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aravind/rollbook/internal/app/models/dto"
	"github.com/aravind/rollbook/internal/app/services"
	"github.com/aravind/rollbook/internal/middleware"
	"github.com/aravind/rollbook/internal/pkg/helpers"
)

// AttendanceController handles the marking operation and session listings
type AttendanceController struct {
	attendanceService *services.AttendanceService
}

// NewAttendanceController creates a new AttendanceController
func NewAttendanceController(attendanceService *services.AttendanceService) *AttendanceController {
	return &AttendanceController{
		attendanceService: attendanceService,
	}
}

// MarkAttendance records one class session for a roster
// @Summary Mark attendance for multiple students
// @Tags attendance
// @Accept json
// @Produce json
// @Param request body dto.MarkAttendanceRequest true "Course code and roll numbers"
// @Success 201 {array} models.AttendanceRecord
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /attendance [post]
func (c *AttendanceController) MarkAttendance(ctx *gin.Context) {
	var req dto.MarkAttendanceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "course_code and roll_numbers are required"})
		return
	}

	records, err := c.attendanceService.MarkAttendance(ctx, req.CourseCode, req.RollNumbers)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, records)
}

// GetSessions lists a course's class sessions
// @Summary List class sessions for a course
// @Tags attendance
// @Produce json
// @Param code path string true "Course code"
// @Param start_date query string false "Window start (ISO 8601)"
// @Param end_date query string false "Window end (ISO 8601)"
// @Success 200 {array} models.ClassSession
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /courses/{code}/sessions [get]
func (c *AttendanceController) GetSessions(ctx *gin.Context) {
	window, err := helpers.ParseDateRange(ctx.Query("start_date"), ctx.Query("end_date"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	sessions, err := c.attendanceService.GetSessions(ctx, ctx.Param("code"), window)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, sessions)
}
