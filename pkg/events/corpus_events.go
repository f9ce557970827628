package events

import "time"

// Corpus event types consumed by the audit trail and published externally.
const (
	TypeDocumentIngested = "DOCUMENT_INGESTED"
	TypeDocumentDeleted  = "DOCUMENT_DELETED"
	TypeTurnAnswered     = "TURN_ANSWERED"
)

func NewDocumentIngested(id uint, title, source string) BaseEvent {
	return BaseEvent{
		Type: TypeDocumentIngested,
		Data: map[string]interface{}{
			"document_id": id,
			"title":       title,
			"source":      source,
		},
		OccurredAt: time.Now(),
	}
}

func NewDocumentDeleted(id uint) BaseEvent {
	return BaseEvent{
		Type: TypeDocumentDeleted,
		Data: map[string]interface{}{
			"document_id": id,
		},
		OccurredAt: time.Now(),
	}
}

func NewTurnAnswered(sessionID, mode, outcome string, retrieved int, errored bool) BaseEvent {
	return BaseEvent{
		Type: TypeTurnAnswered,
		Data: map[string]interface{}{
			"session_id": sessionID,
			"mode":       mode,
			"outcome":    outcome,
			"retrieved":  retrieved,
			"errored":    errored,
		},
		OccurredAt: time.Now(),
	}
}
