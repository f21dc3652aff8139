package events

// EventType represents the type of an event in the system.
type EventType string

// Event type constants
const (
	EventTypeAccountOpened         EventType = "Account.Opened"
	EventTypeTransactionRecorded   EventType = "Ledger.TransactionRecorded"
	EventTypeOverdraftLimitChanged EventType = "Account.OverdraftLimitChanged"
)

func (t EventType) String() string {
	return string(t)
}
