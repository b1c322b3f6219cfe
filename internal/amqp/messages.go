package amqp

import (
	"encoding/json"
	"errors"
	"time"
)

type EventType string

const (
	ExpenseCreated EventType = "expense.created"
	ExpenseUpdated EventType = "expense.updated"
	ExpenseDeleted EventType = "expense.deleted"
)

// ExpenseEvent is a lightweight notification that an expense changed.
// Consumers fetch the current expense from the database by ID.
type ExpenseEvent struct {
	Type      EventType `json:"type"`
	ID        string    `json:"id"`
	GroupID   string    `json:"groupId"`
	Timestamp time.Time `json:"timestamp"`
}

func NewExpenseEvent(t EventType, id, groupID string) *ExpenseEvent {
	return &ExpenseEvent{
		Type:      t,
		ID:        id,
		GroupID:   groupID,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the event to JSON bytes
func (m *ExpenseEvent) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ExpenseEventFromJSON decodes and validates an event payload.
func ExpenseEventFromJSON(data []byte) (*ExpenseEvent, error) {
	var msg ExpenseEvent
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	switch msg.Type {
	case ExpenseCreated, ExpenseUpdated, ExpenseDeleted:
	default:
		return nil, errors.New("unknown event type: " + string(msg.Type))
	}
	if msg.ID == "" {
		return nil, errors.New("event without expense id")
	}
	return &msg, nil
}
