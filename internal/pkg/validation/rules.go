package validation

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Course codes are short uppercase alphanumerics, e.g. CS101.
const (
	CourseCodeMaxLength = 10
	RollNoMaxLength     = 12
	NameMaxLength       = 70
)

// IsEmail reports whether the value is a well-formed email address.
func IsEmail(value string) bool {
	return validate.Var(value, "required,email") == nil
}

// IsCourseCode reports whether the value is usable as a course code.
func IsCourseCode(value string) bool {
	value = strings.TrimSpace(value)
	if value == "" || len(value) > CourseCodeMaxLength {
		return false
	}
	return validate.Var(value, "alphanum") == nil
}

// IsRollNo reports whether the value is usable as a roll number.
func IsRollNo(value string) bool {
	value = strings.TrimSpace(value)
	return value != "" && len(value) <= RollNoMaxLength
}

// IsStudentName reports whether the value is usable as a student name.
func IsStudentName(value string) bool {
	value = strings.TrimSpace(value)
	return value != "" && len(value) <= NameMaxLength
}
