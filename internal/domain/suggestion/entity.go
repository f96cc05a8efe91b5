package suggestion

import (
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	TypeImproveContent Type = "improve_content"
	TypeAddKeywords    Type = "add_keywords"
	// TypeGrammarCheck is accepted in storage but no rule emits it yet.
	TypeGrammarCheck Type = "grammar_check"
)

func (t Type) Valid() bool {
	switch t {
	case TypeImproveContent, TypeAddKeywords, TypeGrammarCheck:
		return true
	default:
		return false
	}
}

func (t Type) Label() string {
	switch t {
	case TypeImproveContent:
		return "Improve Content"
	case TypeAddKeywords:
		return "Add Keywords"
	case TypeGrammarCheck:
		return "Grammar Check"
	default:
		return string(t)
	}
}

// Suggestion is a persisted snapshot. Later edits to the section never update it.
type Suggestion struct {
	ID               uuid.UUID
	ResumeID         uuid.UUID
	SectionID        *uuid.UUID
	Type             Type
	OriginalContent  string
	SuggestedContent string
	Applied          bool
	CreatedAt        time.Time
}

// Draft is a suggestion produced by the engine before it has an identity.
type Draft struct {
	ResumeID         uuid.UUID
	SectionID        *uuid.UUID
	Type             Type
	OriginalContent  string
	SuggestedContent string
}
