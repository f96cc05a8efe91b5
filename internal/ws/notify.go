package ws

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type SuggestionsUpdatedEvent struct {
	Type      string    `json:"type"`
	ResumeID  uuid.UUID `json:"resume_id"`
	Action    string    `json:"action"`
	Count     int       `json:"count"`
	Timestamp string    `json:"timestamp"`
}

const EventSuggestionsUpdated = "suggestions_updated"

// NotifySuggestionsUpdated tells the owner's open tabs to refresh a resume's suggestions.
func (h *Hub) NotifySuggestionsUpdated(userID, resumeID uuid.UUID, action string, count int) {
	if h == nil || userID == uuid.Nil {
		return
	}

	evt := SuggestionsUpdatedEvent{
		Type:      EventSuggestionsUpdated,
		ResumeID:  resumeID,
		Action:    action,
		Count:     count,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}

	h.Send(userID, b)
}
