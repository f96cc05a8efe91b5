package usecase

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// SuggestionCache is the subset of the Redis cache the usecases rely on.
// Implementations treat an unreachable backend as a miss.
type SuggestionCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	SetIfNotExists(ctx context.Context, key string, value string, ttl time.Duration) (bool, error)
	// Counter reads an integer key, 0 when absent. Incr bumps it and never expires it.
	Counter(ctx context.Context, key string) (int64, error)
	Incr(ctx context.Context, key string) (int64, error)
}

// SuggestionNotifier pushes change events to the resume owner.
type SuggestionNotifier interface {
	NotifySuggestionsUpdated(userID, resumeID uuid.UUID, action string, count int)
}

const (
	NotifyGenerated = "generated"
	NotifyApplied   = "applied"
	NotifyDismissed = "dismissed"
)

const generationLockTTL = 30 * time.Second

// SuggestionListCacheKey names the cached list for one version of the resume's
// suggestions. Invalidation bumps the version, so a list read before a change can
// only ever be stored under a key nobody reads any more.
func SuggestionListCacheKey(resumeID uuid.UUID, version int64) string {
	return "suggestions:list:" + resumeID.String() + ":v" + strconv.FormatInt(version, 10)
}

func SuggestionListVersionKey(resumeID uuid.UUID) string {
	return "suggestions:ver:" + resumeID.String()
}

func SuggestionLockKey(resumeID uuid.UUID) string {
	return "suggestions:lock:" + resumeID.String()
}

func invalidateSuggestionList(ctx context.Context, cache SuggestionCache, resumeID uuid.UUID) {
	if cache == nil {
		return
	}
	_, _ = cache.Incr(ctx, SuggestionListVersionKey(resumeID))
}

// forgetSuggestionList drops the version counter of a deleted resume. Lists left
// behind are unreachable because reads check the resume first, and expire on their own.
func forgetSuggestionList(ctx context.Context, cache SuggestionCache, resumeID uuid.UUID) {
	if cache == nil {
		return
	}
	_ = cache.Delete(ctx, SuggestionListVersionKey(resumeID))
}
