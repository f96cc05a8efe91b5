package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"resume-builder/internal/database"
	"resume-builder/internal/domain/resume"

	"github.com/google/uuid"
)

type SectionRepository interface {
	ListByResume(ctx context.Context, resumeID uuid.UUID) ([]resume.Section, error)
	FindByID(ctx context.Context, id uuid.UUID) (resume.Section, error)
	Create(ctx context.Context, s resume.Section) (resume.Section, error)
	// MergeContent shallow-merges patch into the stored content and touches the owning
	// resume in one transaction. Top-level keys in patch replace stored ones.
	MergeContent(ctx context.Context, id uuid.UUID, patch resume.Payload) (resume.Section, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type PostgresSectionRepository struct {
	db database.DB
}

func NewPostgresSectionRepository(db database.DB) *PostgresSectionRepository {
	return &PostgresSectionRepository{db: db}
}

const sectionColumns = `id, resume_id, section_type, content, order_index, created_at, updated_at`

func (r *PostgresSectionRepository) ListByResume(ctx context.Context, resumeID uuid.UUID) ([]resume.Section, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+sectionColumns+`
		 FROM resume_sections
		 WHERE resume_id = $1
		 ORDER BY order_index ASC`,
		resumeID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]resume.Section, 0)
	for rows.Next() {
		s, err := scanSection(rows)
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

func (r *PostgresSectionRepository) FindByID(ctx context.Context, id uuid.UUID) (resume.Section, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+sectionColumns+`
		 FROM resume_sections
		 WHERE id = $1`,
		id,
	)
	s, err := scanSection(row)
	if err != nil {
		if database.IsNoRows(err) {
			return resume.Section{}, ErrSectionNotFound
		}
		return resume.Section{}, err
	}
	return s, nil
}

func (r *PostgresSectionRepository) Create(ctx context.Context, s resume.Section) (resume.Section, error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.Content == nil {
		s.Content = resume.Payload{}
	}
	raw, err := json.Marshal(s.Content)
	if err != nil {
		return resume.Section{}, fmt.Errorf("encode section content: %w", err)
	}

	row := r.db.QueryRow(ctx,
		`INSERT INTO resume_sections (id, resume_id, section_type, content, order_index)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING created_at, updated_at`,
		s.ID, s.ResumeID, string(s.Type), raw, s.OrderIndex,
	)
	if err := row.Scan(&s.CreatedAt, &s.UpdatedAt); err != nil {
		return resume.Section{}, mapSectionWriteError(err)
	}
	return s, nil
}

func (r *PostgresSectionRepository) MergeContent(ctx context.Context, id uuid.UUID, patch resume.Payload) (resume.Section, error) {
	if patch == nil {
		patch = resume.Payload{}
	}
	raw, err := json.Marshal(patch)
	if err != nil {
		return resume.Section{}, fmt.Errorf("encode section content: %w", err)
	}

	var updated resume.Section
	err = database.WithTx(ctx, r.db, func(q database.Querier) error {
		row := q.QueryRow(ctx,
			`UPDATE resume_sections
			 SET content = content || $2::jsonb, updated_at = now()
			 WHERE id = $1
			 RETURNING `+sectionColumns,
			id, raw,
		)
		s, err := scanSection(row)
		if err != nil {
			if database.IsNoRows(err) {
				return ErrSectionNotFound
			}
			return err
		}
		if _, err := q.Exec(ctx, `UPDATE resumes SET updated_at = now() WHERE id = $1`, s.ResumeID); err != nil {
			return err
		}
		updated = s
		return nil
	})
	if err != nil {
		return resume.Section{}, err
	}
	return updated, nil
}

// Delete removes the section; suggestions that reference it are removed by the foreign key.
func (r *PostgresSectionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	n, err := r.db.Exec(ctx, `DELETE FROM resume_sections WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrSectionNotFound
	}
	return nil
}

func scanSection(row database.Row) (resume.Section, error) {
	var (
		s       resume.Section
		kind    string
		content []byte
	)
	if err := row.Scan(&s.ID, &s.ResumeID, &kind, &content, &s.OrderIndex, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return resume.Section{}, err
	}
	s.Type = resume.SectionType(kind)
	s.Content = resume.Payload{}
	if len(content) > 0 {
		if err := json.Unmarshal(content, &s.Content); err != nil {
			return resume.Section{}, fmt.Errorf("decode section %s content: %w", s.ID, err)
		}
		if s.Content == nil {
			s.Content = resume.Payload{}
		}
	}
	return s, nil
}

func mapSectionWriteError(err error) error {
	code, constraint, ok := pgErrorCode(err)
	if !ok {
		return err
	}
	switch {
	case code == pgUniqueViolation && constraint == constraintSectionType:
		return ErrSectionTypeExists
	case code == pgUniqueViolation && constraint == constraintSectionOrder:
		return ErrSectionOrderConflict
	case code == pgForeignKeyViolation:
		return ErrResumeNotFound
	default:
		return err
	}
}
