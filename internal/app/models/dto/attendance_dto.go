package dto

// MarkAttendanceRequest records one class session for a course roster.
// Roll numbers not enrolled in the course are skipped, not rejected.
type MarkAttendanceRequest struct {
	CourseCode  string   `json:"course_code" binding:"required"`
	RollNumbers []string `json:"roll_numbers" binding:"required"`
}

// StudentStatsResponse is the per-student statistics payload.
type StudentStatsResponse struct {
	StudentID            string  `json:"student_id"`
	StudentName          string  `json:"student_name"`
	RollNo               string  `json:"roll_no"`
	CourseCode           string  `json:"course_code"`
	TotalClasses         int     `json:"total_classes"`
	AttendedClasses      int     `json:"attended_classes"`
	AttendancePercentage float64 `json:"attendance_percentage"`
	StartDate            *string `json:"start_date"`
	EndDate              *string `json:"end_date"`
}

// CourseStatsResponse aggregates attendance over a whole course.
// TotalAttendance is the sum of attendance events, not an average.
type CourseStatsResponse struct {
	CourseCode           string  `json:"course_code"`
	TotalClasses         int     `json:"total_classes"`
	TotalAttendance      int     `json:"total_attendance"`
	TotalStudents        int     `json:"total_students"`
	AttendancePercentage float64 `json:"attendance_percentage"`
	StartDate            *string `json:"start_date"`
	EndDate              *string `json:"end_date"`
}

// StudentPercentage is one roster line in course-wide listings. Every line
// shares the course-level session count as its denominator.
type StudentPercentage struct {
	StudentName          string  `json:"student_name"`
	RollNo               string  `json:"roll_no"`
	AttendancePercentage float64 `json:"attendance_percentage"`
	AttendedClasses      int     `json:"attended_classes"`
}

// CoursePercentageResponse lists every enrolled student's percentage.
type CoursePercentageResponse struct {
	CourseCode    string              `json:"course_code"`
	TotalStudents int                 `json:"total_students"`
	StartDate     *string             `json:"start_date"`
	EndDate       *string             `json:"end_date"`
	Students      []StudentPercentage `json:"students"`
	TotalClasses  int                 `json:"total_classes"`
}

// LowAttendanceResponse is the subset of the roster strictly below the
// configured threshold, with session and enrollment totals for context.
type LowAttendanceResponse struct {
	CourseCode    string              `json:"course_code"`
	TotalClasses  int                 `json:"total_classes"`
	TotalStudents int                 `json:"total_students"`
	Threshold     float64             `json:"threshold"`
	StartDate     *string             `json:"start_date"`
	EndDate       *string             `json:"end_date"`
	Students      []StudentPercentage `json:"students"`
}
