package payments

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Event is the normalized envelope every provider notification arrives in.
// Data.Object carries the event-type-specific body and stays raw until a
// handler decodes it.
type Event struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object json.RawMessage `json:"object"`
	} `json:"data"`
}

// ParseEvent decodes a raw webhook body into an Event. A body that is not
// JSON, or that lacks an event id or type, is an ErrInvalidPayload.
func ParseEvent(raw []byte) (Event, error) {
	var ev Event
	if len(raw) == 0 {
		return ev, fmt.Errorf("empty body: %w", ErrInvalidPayload)
	}
	if err := json.Unmarshal(raw, &ev); err != nil {
		return ev, fmt.Errorf("decode event: %w", ErrInvalidPayload)
	}
	ev.ID = strings.TrimSpace(ev.ID)
	ev.Type = strings.TrimSpace(ev.Type)
	if ev.ID == "" || ev.Type == "" {
		return ev, fmt.Errorf("event id or type missing: %w", ErrInvalidPayload)
	}
	return ev, nil
}
