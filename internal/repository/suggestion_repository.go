package repository

import (
	"context"
	"time"

	"resume-builder/internal/database"
	"resume-builder/internal/domain/suggestion"

	"github.com/google/uuid"
)

type SuggestionRepository interface {
	ListByResume(ctx context.Context, resumeID uuid.UUID) ([]suggestion.Suggestion, error)
	FindByID(ctx context.Context, id uuid.UUID) (suggestion.Suggestion, error)
	// CreateBatch persists drafts in order; either all rows are written or none.
	CreateBatch(ctx context.Context, drafts []suggestion.Draft) ([]suggestion.Suggestion, error)
	MarkApplied(ctx context.Context, id uuid.UUID) (suggestion.Suggestion, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type PostgresSuggestionRepository struct {
	db  database.DB
	now func() time.Time
}

func NewPostgresSuggestionRepository(db database.DB) *PostgresSuggestionRepository {
	return &PostgresSuggestionRepository{db: db, now: time.Now}
}

const suggestionColumns = `id, resume_id, section_id, suggestion_type, original_content, suggested_content, applied, created_at`

func (r *PostgresSuggestionRepository) ListByResume(ctx context.Context, resumeID uuid.UUID) ([]suggestion.Suggestion, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+suggestionColumns+`
		 FROM ai_suggestions
		 WHERE resume_id = $1
		 ORDER BY created_at DESC, id ASC`,
		resumeID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]suggestion.Suggestion, 0)
	for rows.Next() {
		s, err := scanSuggestion(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresSuggestionRepository) FindByID(ctx context.Context, id uuid.UUID) (suggestion.Suggestion, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+suggestionColumns+`
		 FROM ai_suggestions
		 WHERE id = $1`,
		id,
	)
	s, err := scanSuggestion(row)
	if err != nil {
		if database.IsNoRows(err) {
			return suggestion.Suggestion{}, ErrSuggestionNotFound
		}
		return suggestion.Suggestion{}, err
	}
	return s, nil
}

func (r *PostgresSuggestionRepository) CreateBatch(ctx context.Context, drafts []suggestion.Draft) ([]suggestion.Suggestion, error) {
	if len(drafts) == 0 {
		return []suggestion.Suggestion{}, nil
	}

	// Earlier drafts get later timestamps so a recency listing shows the batch in generated order.
	base := r.now().UTC().Truncate(time.Microsecond)
	out := make([]suggestion.Suggestion, 0, len(drafts))
	err := database.WithTx(ctx, r.db, func(q database.Querier) error {
		for i, d := range drafts {
			s := suggestion.Suggestion{
				ID:               uuid.New(),
				ResumeID:         d.ResumeID,
				SectionID:        d.SectionID,
				Type:             d.Type,
				OriginalContent:  d.OriginalContent,
				SuggestedContent: d.SuggestedContent,
				CreatedAt:        base.Add(time.Duration(len(drafts)-i) * time.Microsecond),
			}
			if _, err := q.Exec(ctx,
				`INSERT INTO ai_suggestions (id, resume_id, section_id, suggestion_type, original_content, suggested_content, applied, created_at)
				 VALUES ($1, $2, $3, $4, $5, $6, false, $7)`,
				s.ID, s.ResumeID, s.SectionID, string(s.Type), s.OriginalContent, s.SuggestedContent, s.CreatedAt,
			); err != nil {
				return mapSuggestionWriteError(err)
			}
			out = append(out, s)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// MarkApplied is idempotent: an applied suggestion stays applied.
func (r *PostgresSuggestionRepository) MarkApplied(ctx context.Context, id uuid.UUID) (suggestion.Suggestion, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE ai_suggestions
		 SET applied = true
		 WHERE id = $1
		 RETURNING `+suggestionColumns,
		id,
	)
	s, err := scanSuggestion(row)
	if err != nil {
		if database.IsNoRows(err) {
			return suggestion.Suggestion{}, ErrSuggestionNotFound
		}
		return suggestion.Suggestion{}, err
	}
	return s, nil
}

func (r *PostgresSuggestionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	n, err := r.db.Exec(ctx, `DELETE FROM ai_suggestions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrSuggestionNotFound
	}
	return nil
}

func scanSuggestion(row database.Row) (suggestion.Suggestion, error) {
	var (
		s         suggestion.Suggestion
		sectionID uuid.NullUUID
		kind      string
	)
	if err := row.Scan(&s.ID, &s.ResumeID, &sectionID, &kind, &s.OriginalContent, &s.SuggestedContent, &s.Applied, &s.CreatedAt); err != nil {
		return suggestion.Suggestion{}, err
	}
	if sectionID.Valid {
		id := sectionID.UUID
		s.SectionID = &id
	}
	s.Type = suggestion.Type(kind)
	return s, nil
}

// mapSuggestionWriteError reports which parent vanished under an insert.
func mapSuggestionWriteError(err error) error {
	code, constraint, ok := pgErrorCode(err)
	if !ok || code != pgForeignKeyViolation {
		return err
	}
	switch constraint {
	case constraintSuggestionSection:
		return ErrSectionNotFound
	case constraintSuggestionResume:
		return ErrResumeNotFound
	default:
		return err
	}
}
