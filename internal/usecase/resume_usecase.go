package usecase

import (
	"context"
	"errors"
	"log"
	"strings"

	"resume-builder/internal/domain/resume"
	"resume-builder/internal/repository"

	"github.com/google/uuid"
)

type UpdateResumeInput struct {
	Title    *string
	Template *string
}

type ResumeDetail struct {
	Resume   resume.Resume
	Sections []resume.Section
}

type PreviewSection struct {
	ID         uuid.UUID
	Type       resume.SectionType
	OrderIndex int
	Content    resume.Content
}

type ResumePreview struct {
	Resume   resume.Resume
	Sections []PreviewSection
}

type ResumeUsecase interface {
	CreateResume(ctx context.Context, userID uuid.UUID) (resume.Resume, error)
	ListResumes(ctx context.Context, userID uuid.UUID) ([]resume.Resume, error)
	GetResume(ctx context.Context, userID, resumeID uuid.UUID) (ResumeDetail, error)
	UpdateResume(ctx context.Context, userID, resumeID uuid.UUID, in UpdateResumeInput) (resume.Resume, error)
	DeleteResume(ctx context.Context, userID, resumeID uuid.UUID) error

	AddSection(ctx context.Context, userID, resumeID uuid.UUID, t resume.SectionType) (resume.Section, error)
	UpdateSectionContent(ctx context.Context, userID, resumeID, sectionID uuid.UUID, patch resume.Payload) (resume.Section, error)
	RemoveSection(ctx context.Context, userID, resumeID, sectionID uuid.UUID) error
	Preview(ctx context.Context, userID, resumeID uuid.UUID) (ResumePreview, error)
}

type Resumes struct {
	resumes  repository.ResumeRepository
	sections repository.SectionRepository
	cache    SuggestionCache
	logger   *log.Logger
}

func NewResumeUsecase(resumes repository.ResumeRepository, sections repository.SectionRepository, cache SuggestionCache, logger *log.Logger) *Resumes {
	if logger == nil {
		logger = log.Default()
	}
	return &Resumes{resumes: resumes, sections: sections, cache: cache, logger: logger}
}

func (u *Resumes) CreateResume(ctx context.Context, userID uuid.UUID) (resume.Resume, error) {
	if userID == uuid.Nil {
		return resume.Resume{}, ErrInvalidInput
	}
	created, err := u.resumes.Create(ctx, resume.Resume{
		ID:       uuid.New(),
		UserID:   userID,
		Title:    resume.DefaultTitle,
		Template: resume.DefaultTemplate,
	})
	if err != nil {
		u.logger.Printf("[Resumes] create failed | user_id=%s err=%v", userID, err)
		return resume.Resume{}, ErrInternal
	}
	return created, nil
}

func (u *Resumes) ListResumes(ctx context.Context, userID uuid.UUID) ([]resume.Resume, error) {
	items, err := u.resumes.ListByUser(ctx, userID)
	if err != nil {
		u.logger.Printf("[Resumes] list failed | user_id=%s err=%v", userID, err)
		return nil, ErrInternal
	}
	return items, nil
}

func (u *Resumes) GetResume(ctx context.Context, userID, resumeID uuid.UUID) (ResumeDetail, error) {
	res, err := loadOwnedResume(ctx, u.resumes, userID, resumeID)
	if err != nil {
		return ResumeDetail{}, err
	}
	sections, err := u.sections.ListByResume(ctx, res.ID)
	if err != nil {
		u.logger.Printf("[Resumes] list sections failed | resume_id=%s err=%v", res.ID, err)
		return ResumeDetail{}, ErrInternal
	}
	return ResumeDetail{Resume: res, Sections: sections}, nil
}

func (u *Resumes) UpdateResume(ctx context.Context, userID, resumeID uuid.UUID, in UpdateResumeInput) (resume.Resume, error) {
	res, err := loadOwnedResume(ctx, u.resumes, userID, resumeID)
	if err != nil {
		return resume.Resume{}, err
	}
	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return resume.Resume{}, ErrInvalidInput
		}
		res.Title = title
	}
	if in.Template != nil {
		template := strings.TrimSpace(*in.Template)
		if template == "" {
			return resume.Resume{}, ErrInvalidInput
		}
		res.Template = template
	}

	updated, err := u.resumes.Update(ctx, res)
	if err != nil {
		if errors.Is(err, repository.ErrResumeNotFound) {
			return resume.Resume{}, ErrResumeNotFound
		}
		u.logger.Printf("[Resumes] update failed | resume_id=%s err=%v", res.ID, err)
		return resume.Resume{}, ErrInternal
	}
	return updated, nil
}

func (u *Resumes) DeleteResume(ctx context.Context, userID, resumeID uuid.UUID) error {
	res, err := loadOwnedResume(ctx, u.resumes, userID, resumeID)
	if err != nil {
		return err
	}
	if err := u.resumes.Delete(ctx, res.ID); err != nil {
		if errors.Is(err, repository.ErrResumeNotFound) {
			return ErrResumeNotFound
		}
		u.logger.Printf("[Resumes] delete failed | resume_id=%s err=%v", res.ID, err)
		return ErrInternal
	}
	forgetSuggestionList(ctx, u.cache, res.ID)
	return nil
}

// AddSection appends a section of type t. A resume holds at most one section per type.
func (u *Resumes) AddSection(ctx context.Context, userID, resumeID uuid.UUID, t resume.SectionType) (resume.Section, error) {
	if !t.Valid() {
		return resume.Section{}, ErrInvalidInput
	}
	res, err := loadOwnedResume(ctx, u.resumes, userID, resumeID)
	if err != nil {
		return resume.Section{}, err
	}

	existing, err := u.sections.ListByResume(ctx, res.ID)
	if err != nil {
		u.logger.Printf("[Resumes] list sections failed | resume_id=%s err=%v", res.ID, err)
		return resume.Section{}, ErrInternal
	}
	if resume.HasSectionType(existing, t) {
		return resume.Section{}, ErrSectionTypeExists
	}

	created, err := u.sections.Create(ctx, resume.Section{
		ID:         uuid.New(),
		ResumeID:   res.ID,
		Type:       t,
		Content:    resume.Payload{},
		OrderIndex: resume.NextOrderIndex(existing),
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrSectionTypeExists):
			return resume.Section{}, ErrSectionTypeExists
		case errors.Is(err, repository.ErrSectionOrderConflict):
			return resume.Section{}, ErrSectionConflict
		case errors.Is(err, repository.ErrResumeNotFound):
			return resume.Section{}, ErrResumeNotFound
		}
		u.logger.Printf("[Resumes] add section failed | resume_id=%s type=%s err=%v", res.ID, t, err)
		return resume.Section{}, ErrInternal
	}
	return created, nil
}

// UpdateSectionContent shallow-merges patch into the stored content. List fields are
// replaced wholesale. The merge happens in the store so concurrent patches to
// different keys both survive.
func (u *Resumes) UpdateSectionContent(ctx context.Context, userID, resumeID, sectionID uuid.UUID, patch resume.Payload) (resume.Section, error) {
	if patch == nil {
		return resume.Section{}, ErrInvalidInput
	}
	section, err := u.loadOwnedSection(ctx, userID, resumeID, sectionID)
	if err != nil {
		return resume.Section{}, err
	}

	updated, err := u.sections.MergeContent(ctx, section.ID, patch)
	if err != nil {
		if errors.Is(err, repository.ErrSectionNotFound) {
			return resume.Section{}, ErrSectionNotFound
		}
		u.logger.Printf("[Resumes] update section failed | section_id=%s err=%v", section.ID, err)
		return resume.Section{}, ErrInternal
	}
	return updated, nil
}

func (u *Resumes) RemoveSection(ctx context.Context, userID, resumeID, sectionID uuid.UUID) error {
	section, err := u.loadOwnedSection(ctx, userID, resumeID, sectionID)
	if err != nil {
		return err
	}
	if err := u.sections.Delete(ctx, section.ID); err != nil {
		if errors.Is(err, repository.ErrSectionNotFound) {
			return ErrSectionNotFound
		}
		u.logger.Printf("[Resumes] remove section failed | section_id=%s err=%v", section.ID, err)
		return ErrInternal
	}
	invalidateSuggestionList(ctx, u.cache, section.ResumeID)
	return nil
}

func (u *Resumes) Preview(ctx context.Context, userID, resumeID uuid.UUID) (ResumePreview, error) {
	detail, err := u.GetResume(ctx, userID, resumeID)
	if err != nil {
		return ResumePreview{}, err
	}
	out := ResumePreview{Resume: detail.Resume, Sections: make([]PreviewSection, 0, len(detail.Sections))}
	for _, s := range detail.Sections {
		view := s.View()
		if view == nil {
			continue
		}
		out.Sections = append(out.Sections, PreviewSection{
			ID:         s.ID,
			Type:       s.Type,
			OrderIndex: s.OrderIndex,
			Content:    view,
		})
	}
	return out, nil
}

func (u *Resumes) loadOwnedSection(ctx context.Context, userID, resumeID, sectionID uuid.UUID) (resume.Section, error) {
	if sectionID == uuid.Nil {
		return resume.Section{}, ErrInvalidInput
	}
	if _, err := loadOwnedResume(ctx, u.resumes, userID, resumeID); err != nil {
		return resume.Section{}, err
	}
	section, err := u.sections.FindByID(ctx, sectionID)
	if err != nil {
		if errors.Is(err, repository.ErrSectionNotFound) {
			return resume.Section{}, ErrSectionNotFound
		}
		return resume.Section{}, ErrInternal
	}
	if section.ResumeID != resumeID {
		return resume.Section{}, ErrSectionNotFound
	}
	return section, nil
}

// loadOwnedResume hides resumes of other users behind ErrResumeNotFound.
func loadOwnedResume(ctx context.Context, repo repository.ResumeRepository, userID, resumeID uuid.UUID) (resume.Resume, error) {
	if resumeID == uuid.Nil {
		return resume.Resume{}, ErrInvalidInput
	}
	res, err := repo.FindByID(ctx, resumeID)
	if err != nil {
		if errors.Is(err, repository.ErrResumeNotFound) {
			return resume.Resume{}, ErrResumeNotFound
		}
		return resume.Resume{}, ErrInternal
	}
	if res.UserID != userID {
		return resume.Resume{}, ErrResumeNotFound
	}
	return res, nil
}
