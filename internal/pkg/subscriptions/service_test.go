package subscriptions

import (
	"encoding/json"
	"strconv"
	"testing"
	"time"
)

func TestInvoicePeriodEnd(t *testing.T) {
	end := time.Date(2026, 9, 28, 12, 0, 0, 0, time.UTC)

	var inv invoice
	raw := []byte(`{
		"id": "in_1",
		"subscription": "sub_1",
		"lines": { "data": [
			{ "type": "invoiceitem", "period": { "end": 0 } },
			{ "type": "subscription", "period": { "end": ` + jsonUnix(end) + ` } }
		]}
	}`)
	if err := json.Unmarshal(raw, &inv); err != nil {
		t.Fatalf("unexpected decode error: %v", err)
	}

	got := invoicePeriodEnd(inv)
	if got == nil || !got.Equal(end) {
		t.Fatalf("expected period end %v, got %v", end, got)
	}
}

func TestInvoicePeriodEndSingleLineFallback(t *testing.T) {
	end := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)

	var inv invoice
	raw := []byte(`{
		"id": "in_2",
		"subscription": "sub_2",
		"lines": { "data": [
			{ "period": { "end": ` + jsonUnix(end) + ` } }
		]}
	}`)
	if err := json.Unmarshal(raw, &inv); err != nil {
		t.Fatalf("unexpected decode error: %v", err)
	}

	got := invoicePeriodEnd(inv)
	if got == nil || !got.Equal(end) {
		t.Fatalf("expected fallback period end %v, got %v", end, got)
	}
}

func TestInvoicePeriodEndAbsent(t *testing.T) {
	var inv invoice
	if err := json.Unmarshal([]byte(`{"id":"in_3","lines":{"data":[]}}`), &inv); err != nil {
		t.Fatalf("unexpected decode error: %v", err)
	}
	if got := invoicePeriodEnd(inv); got != nil {
		t.Fatalf("expected nil for invoice without lines, got %v", got)
	}
}

func TestParseUserID(t *testing.T) {
	if id, err := parseUserID("42"); err != nil || id != 42 {
		t.Fatalf("parseUserID(42) = %d, %v", id, err)
	}
	for _, raw := range []string{"", "0", "-1", "abc", "1.5"} {
		if _, err := parseUserID(raw); err == nil {
			t.Fatalf("parseUserID(%q) should fail", raw)
		}
	}
}

func jsonUnix(t time.Time) string {
	return strconv.FormatInt(t.Unix(), 10)
}
