package models

import "time"

// ClassSession is one class occurrence for a course. Every marking call
// records at most one session; attendance rows reference it, so "classes
// held" is a plain row count instead of a distinct-timestamp inference.
type ClassSession struct {
	ID         string    `json:"id"`
	CourseCode string    `json:"course_code"`
	HeldAt     time.Time `json:"held_at"`
}

// AttendanceRecord states that a student was present at one class session.
// ClassDate mirrors the session's HeldAt and is what the wire format exposes.
type AttendanceRecord struct {
	ID        string    `json:"id"`
	StudentID string    `json:"student_id"`
	SessionID string    `json:"session_id"`
	ClassDate time.Time `json:"class_date"`
}
