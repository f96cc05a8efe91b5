package usecase

import "errors"

var (
	ErrInvalidInput         = errors.New("invalid input")
	ErrResumeNotFound       = errors.New("resume not found")
	ErrSectionNotFound      = errors.New("section not found")
	ErrSuggestionNotFound   = errors.New("suggestion not found")
	ErrSectionTypeExists    = errors.New("section type already exists")
	ErrSectionConflict      = errors.New("section was modified concurrently")
	ErrGenerationInProgress = errors.New("suggestion generation already in progress")
	ErrInternal             = errors.New("internal error")
)
