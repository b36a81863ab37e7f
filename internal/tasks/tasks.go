package tasks

import (
	"encoding/json"
	"fmt"
)

// Defines constants for task types used in Asynq.

const (
	// TypeAutoCategorize runs one auto-categorization batch over uncategorized posts.
	TypeAutoCategorize = "categorization:auto"

	// QueueCategorization is the queue auto-categorization tasks are sent to.
	QueueCategorization = "categorization"
)

// AutoCategorizePayload is the payload of a TypeAutoCategorize task. Limit <= 0 means no cap.
type AutoCategorizePayload struct {
	Limit int `json:"limit"`
}

func NewAutoCategorizePayload(limit int) ([]byte, error) {
	b, err := json.Marshal(AutoCategorizePayload{Limit: limit})
	if err != nil {
		return nil, fmt.Errorf("encode auto-categorize payload: %w", err)
	}
	return b, nil
}

func ParseAutoCategorizePayload(data []byte) (AutoCategorizePayload, error) {
	var p AutoCategorizePayload
	if err := json.Unmarshal(data, &p); err != nil {
		return p, fmt.Errorf("decode auto-categorize payload: %w", err)
	}
	return p, nil
}
