package amqp

import (
	"encoding/json"
	"fmt"
	"time"

	"finanzas/internal/core"
)

// DataSavedMessage announces a successful save of the record lists.
// Consumers reload the data themselves; the message only says which month
// the user was looking at and where the backup went.
type DataSavedMessage struct {
	Backend    string    `json:"backend"`
	Payments   int       `json:"payments"`
	Purchases  int       `json:"purchases"`
	BackupPath string    `json:"backup_path,omitempty"`
	Month      string    `json:"month"`
	Timestamp  time.Time `json:"timestamp"`
}

// NewDataSavedMessage creates a message for a save affecting month.
func NewDataSavedMessage(backend string, payments, purchases int, backupPath string, month core.MonthKey) *DataSavedMessage {
	return &DataSavedMessage{
		Backend:    backend,
		Payments:   payments,
		Purchases:  purchases,
		BackupPath: backupPath,
		Month:      month.String(),
		Timestamp:  time.Now(),
	}
}

// MonthKey parses the month of the message.
func (m *DataSavedMessage) MonthKey() (core.MonthKey, error) {
	return core.ParseMonthKey(m.Month)
}

// ToJSON converts the message to JSON bytes
func (m *DataSavedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// DataSavedMessageFromJSON decodes a message and checks its month.
func DataSavedMessageFromJSON(data []byte) (*DataSavedMessage, error) {
	var msg DataSavedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	if _, err := msg.MonthKey(); err != nil {
		return nil, fmt.Errorf("invalid message: %w", err)
	}
	return &msg, nil
}
