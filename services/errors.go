package services

import "errors"

// Typed failures raised by the service layer. Controllers translate these
// into HTTP status codes; anything else is a 500.
var (
	ErrCourseNotFound = errors.New("course not found")
	ErrLessonNotFound = errors.New("lesson does not belong to course")
)
