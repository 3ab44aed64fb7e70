package util

import "errors"

var (
	ErrInsufficientBank = errors.New("question bank too small for this material")
	ErrEmptyExam        = errors.New("exam has no gradable questions")
	ErrNotFound         = errors.New("resource not found")
	ErrInputTooShort    = errors.New("source text too short to generate questions")
	ErrExternalService  = errors.New("external service failure")
	ErrQuizMismatch     = errors.New("quiz does not belong to this content")
	ErrInvalidRating    = errors.New("rating must be between 1 and 5")
	ErrAttemptNotFound  = errors.New("attempt not found")
	ErrCourseNotFound   = errors.New("course not found")
	ErrContentNotFound  = errors.New("content not found")
)
