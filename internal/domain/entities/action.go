package entities

import "time"

// ActionType is a command name recorded in the action log.
type ActionType string

const (
	ActionStart             ActionType = "start"
	ActionRandom            ActionType = "random"
	ActionStopDaily         ActionType = "stop_daily"
	ActionHistory           ActionType = "history"
	ActionStats             ActionType = "stats"
	ActionRandomFromHistory ActionType = "random_from_history"
)

// ActionLogEntry is an append-only usage record.
type ActionLogEntry struct {
	ChatID     int64
	ActionType ActionType
	ActionDate time.Time
}

// Command is an inbound bot command together with the sender's identity.
type Command struct {
	Name      string
	Args      string
	ChatID    int64
	Username  string
	FirstName string
	LastName  string
}
