package models

// Student is enrolled in exactly one course. The roll number is unique only
// within the course; (course_code, roll_no) is the composite key callers use.
type Student struct {
	ID         string `json:"id"`
	CourseCode string `json:"course_code"`
	RollNo     string `json:"roll_no"`
	Name       string `json:"name"`
}
