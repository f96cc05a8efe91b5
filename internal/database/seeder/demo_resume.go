package seeder

import (
	"context"
	"encoding/json"
	"fmt"

	"resume-builder/internal/database"
	"resume-builder/internal/domain/resume"

	"github.com/google/uuid"
)

const demoResumeTitle = "Demo Resume"

// DemoResumeID derives a stable resume id from userID so reseeding is a no-op.
func DemoResumeID(userID uuid.UUID) uuid.UUID {
	return uuid.NewSHA1(userID, []byte("demo-resume"))
}

type DemoResumeSeeder struct {
	UserID uuid.UUID
}

func (DemoResumeSeeder) Name() string { return "demo_resume" }

func (s DemoResumeSeeder) Run(ctx context.Context, db database.DB) error {
	if s.UserID == uuid.Nil {
		return fmt.Errorf("empty user id")
	}
	if err := EnsureTableColumns(ctx, db, "resumes", "id", "user_id", "title", "template", "created_at", "updated_at"); err != nil {
		return err
	}
	_, err := db.Exec(ctx,
		`INSERT INTO resumes (id, user_id, title, template) VALUES ($1, $2, $3, $4) ON CONFLICT (id) DO NOTHING`,
		DemoResumeID(s.UserID),
		s.UserID,
		demoResumeTitle,
		resume.DefaultTemplate,
	)
	return err
}

// DemoSectionsSeeder fills the demo resume with content that trips several
// suggestion rules: a short summary, few skills, a bare experience entry.
type DemoSectionsSeeder struct {
	UserID uuid.UUID
}

func (DemoSectionsSeeder) Name() string { return "demo_sections" }

func (s DemoSectionsSeeder) Run(ctx context.Context, db database.DB) error {
	if s.UserID == uuid.Nil {
		return fmt.Errorf("empty user id")
	}
	if err := EnsureTableColumns(ctx, db, "resume_sections", "id", "resume_id", "section_type", "content", "order_index"); err != nil {
		return err
	}

	resumeID := DemoResumeID(s.UserID)
	items := []struct {
		Type    resume.SectionType
		Content resume.Payload
	}{
		{Type: resume.SectionPersonalInfo, Content: resume.Payload{
			"fullName": "Alex Morgan",
			"email":    "alex.morgan@example.com",
			"phone":    "+1 555 0100",
			"location": "Portland, OR",
			"linkedin": "",
		}},
		{Type: resume.SectionSummary, Content: resume.Payload{
			"text": "Backend engineer who likes Go.",
		}},
		{Type: resume.SectionExperience, Content: resume.Payload{
			"items": []any{
				map[string]any{
					"company":     "Acme Corp",
					"position":    "Software Engineer",
					"startDate":   "2021-03",
					"endDate":     "",
					"description": "",
				},
			},
		}},
		{Type: resume.SectionEducation, Content: resume.Payload{
			"items": []any{
				map[string]any{
					"institution":    "State University",
					"degree":         "B.Sc.",
					"field":          "Computer Science",
					"graduationDate": "2020-06",
				},
			},
		}},
		{Type: resume.SectionSkills, Content: resume.Payload{
			"list": "Go, PostgreSQL",
		}},
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	for i, it := range items {
		raw, err := json.Marshal(it.Content)
		if err != nil {
			return fmt.Errorf("encode %s: %w", it.Type, err)
		}
		_, err = tx.Exec(ctx,
			`INSERT INTO resume_sections (id, resume_id, section_type, content, order_index)
			 VALUES ($1, $2, $3, $4, $5)
			 ON CONFLICT (resume_id, section_type) DO NOTHING`,
			uuid.NewSHA1(resumeID, []byte(it.Type)),
			resumeID,
			string(it.Type),
			raw,
			i,
		)
		if err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
