package amqp

import (
	"encoding/json"
	"time"
)

// Reasons carried by DebtsChangedMessage.
const (
	ReasonDebtAdded   = "debt_added"
	ReasonDebtDeleted = "debt_deleted"
	ReasonScheduled   = "scheduled"
)

// DebtsChangedMessage signals that saved payoff plans are stale. It carries
// no debt data; consumers reload the debt list from storage.
type DebtsChangedMessage struct {
	Reason    string    `json:"reason"`
	DebtID    string    `json:"debt_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func NewDebtsChangedMessage(reason, debtID string) *DebtsChangedMessage {
	return &DebtsChangedMessage{
		Reason:    reason,
		DebtID:    debtID,
		Timestamp: time.Now(),
	}
}

func (m *DebtsChangedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func DebtsChangedMessageFromJSON(data []byte) (*DebtsChangedMessage, error) {
	var msg DebtsChangedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
