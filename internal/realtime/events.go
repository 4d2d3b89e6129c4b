package realtime

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventSessionStarted = "session.started"
	EventSessionEnded   = "session.ended"
	EventTrialLogged    = "trial.logged"
	EventRatingLogged   = "rating.logged"
)

// Event is a session lifecycle notification fanned out to live monitors.
type Event struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	PlayerID   string    `json:"player_id"`
	SessionID  uint      `json:"session_id"`
	OccurredAt time.Time `json:"occurred_at"`
	Data       any       `json:"data,omitempty"`
}

func NewEvent(typ, playerID string, sessionID uint, data any) Event {
	return Event{
		ID:         uuid.New().String(),
		Type:       typ,
		PlayerID:   playerID,
		SessionID:  sessionID,
		OccurredAt: time.Now().UTC(),
		Data:       data,
	}
}
