package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrResumeNotFound       = errors.New("resume not found")
	ErrSectionNotFound      = errors.New("section not found")
	ErrSuggestionNotFound   = errors.New("suggestion not found")
	ErrSectionTypeExists    = errors.New("section type already exists for resume")
	ErrSectionOrderConflict = errors.New("section order index already taken")
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"

	constraintSectionType  = "uq_resume_sections_type"
	constraintSectionOrder = "uq_resume_sections_order"

	// Default Postgres names for the ai_suggestions foreign keys.
	constraintSuggestionResume  = "ai_suggestions_resume_id_fkey"
	constraintSuggestionSection = "ai_suggestions_section_id_fkey"
)

func pgErrorCode(err error) (code, constraint string, ok bool) {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return "", "", false
	}
	return pgErr.Code, pgErr.ConstraintName, true
}
