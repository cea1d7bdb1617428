package dto

// CreateCourseRequest creates a course. Field names follow the wire format
// the clients already speak: Teacher and TA are member email lists.
type CreateCourseRequest struct {
	CourseCode string   `json:"course_code" binding:"required"`
	Teachers   []string `json:"Teacher" binding:"required,min=1"`
	TAs        []string `json:"TA"`
}

// AddStudentRequest enrolls a student into a course.
type AddStudentRequest struct {
	Name   string `json:"name" binding:"required"`
	RollNo string `json:"roll_no" binding:"required"`
}

// TARequest adds or removes an assistant by email.
type TARequest struct {
	TAEmail string `json:"ta_email" binding:"required"`
}
