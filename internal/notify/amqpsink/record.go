package amqpsink

import (
	"encoding/json"
	"time"

	"expensetracker/internal/notify"
)

// Record is the wire form of one activity entry.
type Record struct {
	Timestamp time.Time    `json:"timestamp"`
	Level     notify.Level `json:"level"`
	Message   string       `json:"message"`
}

func NewRecord(level notify.Level, message string) *Record {
	return &Record{
		Timestamp: time.Now(),
		Level:     level,
		Message:   message,
	}
}

func (r *Record) ToJSON() ([]byte, error) {
	return json.Marshal(r)
}

func RecordFromJSON(data []byte) (*Record, error) {
	var r Record
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, err
	}
	return &r, nil
}
