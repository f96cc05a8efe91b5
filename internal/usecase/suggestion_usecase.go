package usecase

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"resume-builder/internal/domain/resume"
	"resume-builder/internal/domain/suggestion"
	"resume-builder/internal/repository"

	"github.com/google/uuid"
)

type GenerateSectionInput struct {
	ID      uuid.UUID
	Type    string
	Content map[string]any
}

// GenerateInput mirrors the generate request. A nil Sections slice means the field was
// missing, which is rejected; an empty slice is a valid resume with no sections.
type GenerateInput struct {
	ResumeID uuid.UUID
	Sections []GenerateSectionInput
}

type SuggestionUsecase interface {
	Generate(ctx context.Context, userID uuid.UUID, in GenerateInput) (int, error)
	GenerateForResume(ctx context.Context, resumeID uuid.UUID) (int, error)
	List(ctx context.Context, userID, resumeID uuid.UUID) ([]suggestion.Suggestion, error)
	Apply(ctx context.Context, userID, suggestionID uuid.UUID) (suggestion.Suggestion, error)
	Dismiss(ctx context.Context, userID, suggestionID uuid.UUID) error
}

type Suggestions struct {
	resumes     repository.ResumeRepository
	sections    repository.SectionRepository
	suggestions repository.SuggestionRepository
	engine      *suggestion.Engine
	cache       SuggestionCache
	cacheTTL    time.Duration
	notifier    SuggestionNotifier
	logger      *log.Logger

	mu       sync.Mutex
	inflight map[uuid.UUID]struct{}
}

type SuggestionsDeps struct {
	Resumes     repository.ResumeRepository
	Sections    repository.SectionRepository
	Suggestions repository.SuggestionRepository
	Engine      *suggestion.Engine
	Cache       SuggestionCache
	CacheTTL    time.Duration
	Notifier    SuggestionNotifier
	Logger      *log.Logger
}

func NewSuggestionUsecase(deps SuggestionsDeps) *Suggestions {
	engine := deps.Engine
	if engine == nil {
		engine = suggestion.NewEngine(suggestion.DefaultSectionRules(), suggestion.DefaultResumeRules(), suggestion.MaxSuggestions)
	}
	logger := deps.Logger
	if logger == nil {
		logger = log.Default()
	}
	ttl := deps.CacheTTL
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &Suggestions{
		resumes:     deps.Resumes,
		sections:    deps.Sections,
		suggestions: deps.Suggestions,
		engine:      engine,
		cache:       deps.Cache,
		cacheTTL:    ttl,
		notifier:    deps.Notifier,
		logger:      logger,
		inflight:    make(map[uuid.UUID]struct{}),
	}
}

func (u *Suggestions) Generate(ctx context.Context, userID uuid.UUID, in GenerateInput) (int, error) {
	if in.ResumeID == uuid.Nil || in.Sections == nil {
		return 0, ErrInvalidInput
	}
	sections := make([]resume.Section, 0, len(in.Sections))
	seenIDs := make(map[uuid.UUID]struct{}, len(in.Sections))
	seenTypes := make(map[resume.SectionType]struct{}, len(in.Sections))
	for _, s := range in.Sections {
		t, ok := resume.ParseSectionType(s.Type)
		if s.ID == uuid.Nil || !ok {
			return 0, ErrInvalidInput
		}
		if _, dup := seenIDs[s.ID]; dup {
			return 0, ErrInvalidInput
		}
		if _, dup := seenTypes[t]; dup {
			return 0, ErrInvalidInput
		}
		seenIDs[s.ID] = struct{}{}
		seenTypes[t] = struct{}{}
		content := resume.Payload(s.Content)
		if content == nil {
			content = resume.Payload{}
		}
		sections = append(sections, resume.Section{ID: s.ID, ResumeID: in.ResumeID, Type: t, Content: content})
	}

	res, err := loadOwnedResume(ctx, u.resumes, userID, in.ResumeID)
	if err != nil {
		return 0, err
	}
	if err := u.checkSectionsBelong(ctx, res.ID, sections); err != nil {
		return 0, err
	}
	return u.generate(ctx, res, sections)
}

// GenerateForResume runs generation over the stored sections without an owner check.
func (u *Suggestions) GenerateForResume(ctx context.Context, resumeID uuid.UUID) (int, error) {
	if resumeID == uuid.Nil {
		return 0, ErrInvalidInput
	}
	res, err := u.resumes.FindByID(ctx, resumeID)
	if err != nil {
		if errors.Is(err, repository.ErrResumeNotFound) {
			return 0, ErrResumeNotFound
		}
		return 0, ErrInternal
	}
	sections, err := u.sections.ListByResume(ctx, res.ID)
	if err != nil {
		u.logger.Printf("[Suggestions] list sections failed | resume_id=%s err=%v", res.ID, err)
		return 0, ErrInternal
	}
	return u.generate(ctx, res, sections)
}

func (u *Suggestions) generate(ctx context.Context, res resume.Resume, sections []resume.Section) (int, error) {
	release, err := u.acquire(ctx, res.ID)
	if err != nil {
		return 0, err
	}
	defer release()

	drafts := u.engine.Generate(res.ID, sections)
	created, err := u.suggestions.CreateBatch(ctx, drafts)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrResumeNotFound):
			return 0, ErrResumeNotFound
		case errors.Is(err, repository.ErrSectionNotFound):
			return 0, ErrSectionNotFound
		}
		u.logger.Printf("[Suggestions] persist failed | resume_id=%s drafts=%d err=%v", res.ID, len(drafts), err)
		return 0, ErrInternal
	}

	invalidateSuggestionList(ctx, u.cache, res.ID)
	u.notify(res.UserID, res.ID, NotifyGenerated, len(created))
	u.logger.Printf("[Suggestions] generated | resume_id=%s sections=%d count=%d", res.ID, len(sections), len(created))
	return len(created), nil
}

func (u *Suggestions) List(ctx context.Context, userID, resumeID uuid.UUID) ([]suggestion.Suggestion, error) {
	res, err := loadOwnedResume(ctx, u.resumes, userID, resumeID)
	if err != nil {
		return nil, err
	}

	// The version is read before the store so a change committed during the read
	// bumps it and the possibly stale result lands under a retired key.
	cacheKey := ""
	if u.cache != nil {
		version, err := u.cache.Counter(ctx, SuggestionListVersionKey(res.ID))
		if err != nil {
			u.logger.Printf("[Suggestions] cache version failed | resume_id=%s err=%v", res.ID, err)
		} else {
			cacheKey = SuggestionListCacheKey(res.ID, version)
			var cached []suggestion.Suggestion
			hit, err := u.cache.GetJSON(ctx, cacheKey, &cached)
			if err == nil && hit {
				return cached, nil
			}
		}
	}

	items, err := u.suggestions.ListByResume(ctx, res.ID)
	if err != nil {
		u.logger.Printf("[Suggestions] list failed | resume_id=%s err=%v", res.ID, err)
		return nil, ErrInternal
	}
	if cacheKey != "" {
		if err := u.cache.SetJSON(ctx, cacheKey, items, u.cacheTTL); err != nil {
			u.logger.Printf("[Suggestions] cache set failed | key=%s err=%v", cacheKey, err)
		}
	}
	return items, nil
}

// Apply marks the suggestion applied. Applying twice is not an error.
func (u *Suggestions) Apply(ctx context.Context, userID, suggestionID uuid.UUID) (suggestion.Suggestion, error) {
	current, res, err := u.loadOwnedSuggestion(ctx, userID, suggestionID)
	if err != nil {
		return suggestion.Suggestion{}, err
	}
	if current.Applied {
		return current, nil
	}

	applied, err := u.suggestions.MarkApplied(ctx, current.ID)
	if err != nil {
		if errors.Is(err, repository.ErrSuggestionNotFound) {
			return suggestion.Suggestion{}, ErrSuggestionNotFound
		}
		u.logger.Printf("[Suggestions] apply failed | id=%s err=%v", current.ID, err)
		return suggestion.Suggestion{}, ErrInternal
	}

	invalidateSuggestionList(ctx, u.cache, res.ID)
	u.notify(res.UserID, res.ID, NotifyApplied, 1)
	return applied, nil
}

func (u *Suggestions) Dismiss(ctx context.Context, userID, suggestionID uuid.UUID) error {
	current, res, err := u.loadOwnedSuggestion(ctx, userID, suggestionID)
	if err != nil {
		return err
	}
	if err := u.suggestions.Delete(ctx, current.ID); err != nil {
		if errors.Is(err, repository.ErrSuggestionNotFound) {
			return ErrSuggestionNotFound
		}
		u.logger.Printf("[Suggestions] dismiss failed | id=%s err=%v", current.ID, err)
		return ErrInternal
	}

	invalidateSuggestionList(ctx, u.cache, res.ID)
	u.notify(res.UserID, res.ID, NotifyDismissed, 1)
	return nil
}

// acquire rejects a second generation for the same resume while one is running,
// first within this process and then across instances through the cache lock.
func (u *Suggestions) acquire(ctx context.Context, resumeID uuid.UUID) (func(), error) {
	u.mu.Lock()
	if _, busy := u.inflight[resumeID]; busy {
		u.mu.Unlock()
		return nil, ErrGenerationInProgress
	}
	u.inflight[resumeID] = struct{}{}
	u.mu.Unlock()

	releaseLocal := func() {
		u.mu.Lock()
		delete(u.inflight, resumeID)
		u.mu.Unlock()
	}

	if u.cache == nil {
		return releaseLocal, nil
	}
	lockKey := SuggestionLockKey(resumeID)
	ok, err := u.cache.SetIfNotExists(ctx, lockKey, "1", generationLockTTL)
	if err != nil {
		u.logger.Printf("[Suggestions] lock unavailable | key=%s err=%v", lockKey, err)
		return releaseLocal, nil
	}
	if !ok {
		releaseLocal()
		return nil, ErrGenerationInProgress
	}
	return func() {
		_ = u.cache.Delete(context.WithoutCancel(ctx), lockKey)
		releaseLocal()
	}, nil
}

// checkSectionsBelong requires every submitted section to be a stored section of
// the resume with the same type.
func (u *Suggestions) checkSectionsBelong(ctx context.Context, resumeID uuid.UUID, sections []resume.Section) error {
	if len(sections) == 0 {
		return nil
	}
	stored, err := u.sections.ListByResume(ctx, resumeID)
	if err != nil {
		u.logger.Printf("[Suggestions] list sections failed | resume_id=%s err=%v", resumeID, err)
		return ErrInternal
	}
	known := make(map[uuid.UUID]resume.SectionType, len(stored))
	for _, s := range stored {
		known[s.ID] = s.Type
	}
	for _, s := range sections {
		t, ok := known[s.ID]
		if !ok {
			return ErrSectionNotFound
		}
		if t != s.Type {
			return ErrInvalidInput
		}
	}
	return nil
}

func (u *Suggestions) loadOwnedSuggestion(ctx context.Context, userID, suggestionID uuid.UUID) (suggestion.Suggestion, resume.Resume, error) {
	if suggestionID == uuid.Nil {
		return suggestion.Suggestion{}, resume.Resume{}, ErrInvalidInput
	}
	s, err := u.suggestions.FindByID(ctx, suggestionID)
	if err != nil {
		if errors.Is(err, repository.ErrSuggestionNotFound) {
			return suggestion.Suggestion{}, resume.Resume{}, ErrSuggestionNotFound
		}
		return suggestion.Suggestion{}, resume.Resume{}, ErrInternal
	}
	res, err := loadOwnedResume(ctx, u.resumes, userID, s.ResumeID)
	if err != nil {
		if errors.Is(err, ErrResumeNotFound) {
			return suggestion.Suggestion{}, resume.Resume{}, ErrSuggestionNotFound
		}
		return suggestion.Suggestion{}, resume.Resume{}, err
	}
	return s, res, nil
}

func (u *Suggestions) notify(userID, resumeID uuid.UUID, action string, count int) {
	if u.notifier == nil {
		return
	}
	u.notifier.NotifySuggestionsUpdated(userID, resumeID, action, count)
}
