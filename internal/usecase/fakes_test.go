package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"sync"
	"time"

	"resume-builder/internal/domain/resume"
	"resume-builder/internal/domain/suggestion"
	"resume-builder/internal/repository"

	"github.com/google/uuid"
)

var errStoreDown = errors.New("store down")

type fakeResumeRepo struct {
	mu    sync.Mutex
	items map[uuid.UUID]resume.Resume
	err   error
}

func newFakeResumeRepo(items ...resume.Resume) *fakeResumeRepo {
	r := &fakeResumeRepo{items: make(map[uuid.UUID]resume.Resume)}
	for _, it := range items {
		r.items[it.ID] = it
	}
	return r
}

func (r *fakeResumeRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]resume.Resume, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	out := make([]resume.Resume, 0)
	for _, it := range r.items {
		if it.UserID == userID {
			out = append(out, it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

func (r *fakeResumeRepo) FindByID(_ context.Context, id uuid.UUID) (resume.Resume, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return resume.Resume{}, r.err
	}
	it, ok := r.items[id]
	if !ok {
		return resume.Resume{}, repository.ErrResumeNotFound
	}
	return it, nil
}

func (r *fakeResumeRepo) Create(_ context.Context, res resume.Resume) (resume.Resume, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return resume.Resume{}, r.err
	}
	now := time.Now().UTC()
	res.CreatedAt, res.UpdatedAt = now, now
	r.items[res.ID] = res
	return res, nil
}

func (r *fakeResumeRepo) Update(_ context.Context, res resume.Resume) (resume.Resume, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return resume.Resume{}, r.err
	}
	if _, ok := r.items[res.ID]; !ok {
		return resume.Resume{}, repository.ErrResumeNotFound
	}
	res.UpdatedAt = time.Now().UTC()
	r.items[res.ID] = res
	return res, nil
}

func (r *fakeResumeRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return repository.ErrResumeNotFound
	}
	delete(r.items, id)
	return nil
}

type fakeSectionRepo struct {
	mu        sync.Mutex
	items     map[uuid.UUID]resume.Section
	createErr error
	creates   int

	// afterFind runs once FindByID has read its snapshot, standing in for a concurrent writer.
	afterFind func()
}

func newFakeSectionRepo(items ...resume.Section) *fakeSectionRepo {
	r := &fakeSectionRepo{items: make(map[uuid.UUID]resume.Section)}
	for _, it := range items {
		r.items[it.ID] = it
	}
	return r
}

func (r *fakeSectionRepo) ListByResume(_ context.Context, resumeID uuid.UUID) ([]resume.Section, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]resume.Section, 0)
	for _, it := range r.items {
		if it.ResumeID == resumeID {
			out = append(out, it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OrderIndex < out[j].OrderIndex })
	return out, nil
}

func (r *fakeSectionRepo) FindByID(_ context.Context, id uuid.UUID) (resume.Section, error) {
	r.mu.Lock()
	it, ok := r.items[id]
	hook := r.afterFind
	r.mu.Unlock()
	if !ok {
		return resume.Section{}, repository.ErrSectionNotFound
	}
	if hook != nil {
		hook()
	}
	return it, nil
}

func (r *fakeSectionRepo) Create(_ context.Context, s resume.Section) (resume.Section, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.creates++
	if r.createErr != nil {
		return resume.Section{}, r.createErr
	}
	r.items[s.ID] = s
	return s, nil
}

func (r *fakeSectionRepo) MergeContent(_ context.Context, id uuid.UUID, patch resume.Payload) (resume.Section, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	it, ok := r.items[id]
	if !ok {
		return resume.Section{}, repository.ErrSectionNotFound
	}
	it.Content = it.Content.Merge(patch)
	r.items[id] = it
	return it, nil
}

func (r *fakeSectionRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return repository.ErrSectionNotFound
	}
	delete(r.items, id)
	return nil
}

type fakeSuggestionRepo struct {
	mu        sync.Mutex
	items     []suggestion.Suggestion
	createErr error
	lists     int
	applies   int

	// block, when set, holds CreateBatch until closed; started is signalled on entry.
	block   chan struct{}
	started chan struct{}

	// afterList runs once ListByResume has read its snapshot.
	afterList func()
}

func (r *fakeSuggestionRepo) ListByResume(_ context.Context, resumeID uuid.UUID) ([]suggestion.Suggestion, error) {
	r.mu.Lock()
	r.lists++
	out := make([]suggestion.Suggestion, 0)
	for i := len(r.items) - 1; i >= 0; i-- {
		if r.items[i].ResumeID == resumeID {
			out = append(out, r.items[i])
		}
	}
	hook := r.afterList
	r.mu.Unlock()
	if hook != nil {
		hook()
	}
	return out, nil
}

func (r *fakeSuggestionRepo) FindByID(_ context.Context, id uuid.UUID) (suggestion.Suggestion, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, it := range r.items {
		if it.ID == id {
			return it, nil
		}
	}
	return suggestion.Suggestion{}, repository.ErrSuggestionNotFound
}

func (r *fakeSuggestionRepo) CreateBatch(_ context.Context, drafts []suggestion.Draft) ([]suggestion.Suggestion, error) {
	if r.started != nil {
		r.started <- struct{}{}
	}
	if r.block != nil {
		<-r.block
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return nil, r.createErr
	}
	out := make([]suggestion.Suggestion, 0, len(drafts))
	for _, d := range drafts {
		s := suggestion.Suggestion{
			ID:               uuid.New(),
			ResumeID:         d.ResumeID,
			SectionID:        d.SectionID,
			Type:             d.Type,
			OriginalContent:  d.OriginalContent,
			SuggestedContent: d.SuggestedContent,
			CreatedAt:        time.Now().UTC(),
		}
		r.items = append(r.items, s)
		out = append(out, s)
	}
	return out, nil
}

func (r *fakeSuggestionRepo) MarkApplied(_ context.Context, id uuid.UUID) (suggestion.Suggestion, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.applies++
	for i := range r.items {
		if r.items[i].ID == id {
			r.items[i].Applied = true
			return r.items[i], nil
		}
	}
	return suggestion.Suggestion{}, repository.ErrSuggestionNotFound
}

func (r *fakeSuggestionRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items {
		if r.items[i].ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return repository.ErrSuggestionNotFound
}

type fakeCache struct {
	mu       sync.Mutex
	values   map[string][]byte
	counters map[string]int64
	lockErr  error
}

func newFakeCache() *fakeCache {
	return &fakeCache{values: make(map[string][]byte), counters: make(map[string]int64)}
}

func (c *fakeCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.values[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, out)
}

func (c *fakeCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = b
	return nil
}

func (c *fakeCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.values, key)
	delete(c.counters, key)
	return nil
}

func (c *fakeCache) Counter(_ context.Context, key string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.counters[key], nil
}

func (c *fakeCache) Incr(_ context.Context, key string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counters[key]++
	return c.counters[key], nil
}

func (c *fakeCache) SetIfNotExists(_ context.Context, key string, value string, _ time.Duration) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.lockErr != nil {
		return false, c.lockErr
	}
	if _, ok := c.values[key]; ok {
		return false, nil
	}
	c.values[key] = []byte(value)
	return true, nil
}

func (c *fakeCache) has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.values[key]
	return ok
}

// listInvalidated reports whether the suggestion list of resumeID was invalidated at least once.
func (c *fakeCache) listInvalidated(resumeID uuid.UUID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.counters[SuggestionListVersionKey(resumeID)] > 0
}

type notification struct {
	UserID   uuid.UUID
	ResumeID uuid.UUID
	Action   string
	Count    int
}

type fakeNotifier struct {
	mu     sync.Mutex
	events []notification
}

func (n *fakeNotifier) NotifySuggestionsUpdated(userID, resumeID uuid.UUID, action string, count int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, notification{UserID: userID, ResumeID: resumeID, Action: action, Count: count})
}
