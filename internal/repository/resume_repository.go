package repository

import (
	"context"

	"resume-builder/internal/database"
	"resume-builder/internal/domain/resume"

	"github.com/google/uuid"
)

type ResumeRepository interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]resume.Resume, error)
	FindByID(ctx context.Context, id uuid.UUID) (resume.Resume, error)
	Create(ctx context.Context, r resume.Resume) (resume.Resume, error)
	Update(ctx context.Context, r resume.Resume) (resume.Resume, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type PostgresResumeRepository struct {
	db database.DB
}

func NewPostgresResumeRepository(db database.DB) *PostgresResumeRepository {
	return &PostgresResumeRepository{db: db}
}

func (r *PostgresResumeRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]resume.Resume, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, title, template, created_at, updated_at
		 FROM resumes
		 WHERE user_id = $1
		 ORDER BY updated_at DESC, id ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]resume.Resume, 0)
	for rows.Next() {
		var res resume.Resume
		if err := rows.Scan(&res.ID, &res.UserID, &res.Title, &res.Template, &res.CreatedAt, &res.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresResumeRepository) FindByID(ctx context.Context, id uuid.UUID) (resume.Resume, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, user_id, title, template, created_at, updated_at
		 FROM resumes
		 WHERE id = $1`,
		id,
	)

	var res resume.Resume
	if err := row.Scan(&res.ID, &res.UserID, &res.Title, &res.Template, &res.CreatedAt, &res.UpdatedAt); err != nil {
		if database.IsNoRows(err) {
			return resume.Resume{}, ErrResumeNotFound
		}
		return resume.Resume{}, err
	}
	return res, nil
}

func (r *PostgresResumeRepository) Create(ctx context.Context, res resume.Resume) (resume.Resume, error) {
	if res.ID == uuid.Nil {
		res.ID = uuid.New()
	}
	row := r.db.QueryRow(ctx,
		`INSERT INTO resumes (id, user_id, title, template)
		 VALUES ($1, $2, $3, $4)
		 RETURNING created_at, updated_at`,
		res.ID, res.UserID, res.Title, res.Template,
	)
	if err := row.Scan(&res.CreatedAt, &res.UpdatedAt); err != nil {
		return resume.Resume{}, err
	}
	return res, nil
}

func (r *PostgresResumeRepository) Update(ctx context.Context, res resume.Resume) (resume.Resume, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE resumes
		 SET title = $2, template = $3, updated_at = now()
		 WHERE id = $1
		 RETURNING user_id, created_at, updated_at`,
		res.ID, res.Title, res.Template,
	)
	if err := row.Scan(&res.UserID, &res.CreatedAt, &res.UpdatedAt); err != nil {
		if database.IsNoRows(err) {
			return resume.Resume{}, ErrResumeNotFound
		}
		return resume.Resume{}, err
	}
	return res, nil
}

// Delete removes the resume; sections and suggestions go with it through the foreign keys.
func (r *PostgresResumeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	n, err := r.db.Exec(ctx, `DELETE FROM resumes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrResumeNotFound
	}
	return nil
}
