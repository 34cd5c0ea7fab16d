package payments

import (
	"errors"
	"fmt"
	"testing"
)

func TestParseEvent(t *testing.T) {
	raw := []byte(`{"id":"evt_1","type":"invoice.paid","data":{"object":{"id":"in_1"}}}`)

	ev, err := ParseEvent(raw)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if ev.ID != "evt_1" || ev.Type != "invoice.paid" {
		t.Fatalf("unexpected envelope: id=%q type=%q", ev.ID, ev.Type)
	}
	if len(ev.Data.Object) == 0 {
		t.Fatalf("expected raw object to be carried through")
	}
}

func TestParseEventInvalid(t *testing.T) {
	tests := [][]byte{
		nil,
		[]byte(``),
		[]byte(`not json`),
		[]byte(`{"type":"invoice.paid"}`),           // missing id
		[]byte(`{"id":"evt_1"}`),                    // missing type
		[]byte(`{"id":"  ","type":"invoice.paid"}`), // whitespace id
	}

	for _, raw := range tests {
		if _, err := ParseEvent(raw); !errors.Is(err, ErrInvalidPayload) {
			t.Fatalf("ParseEvent(%q): expected ErrInvalidPayload, got %v", raw, err)
		}
	}
}

func TestIsDiscardable(t *testing.T) {
	if !IsDiscardable(fmt.Errorf("session s_1: %w", ErrMalformedEvent)) {
		t.Fatalf("wrapped malformed event must be discardable")
	}
	if !IsDiscardable(fmt.Errorf("sub s_2: %w", ErrEntityNotFound)) {
		t.Fatalf("wrapped entity-not-found must be discardable")
	}
	if IsDiscardable(ErrInvalidSignature) {
		t.Fatalf("signature errors are rejections, not discards")
	}
	if IsDiscardable(errors.New("db gone")) {
		t.Fatalf("unexpected errors must roll back, not be discarded")
	}
}
