package payments

import (
	"strings"
	"testing"
	"time"
)

func TestVerifyWebhookSignature(t *testing.T) {
	payload := []byte(`{"id":"evt_1","type":"invoice.paid"}`)
	secret := "whsec_test"

	header := SignPayload(payload, secret, time.Now())
	if !VerifyWebhookSignature(payload, header, secret, DefaultSignatureTolerance) {
		t.Fatalf("expected freshly signed payload to verify")
	}

	if VerifyWebhookSignature(payload, header, "whsec_other", DefaultSignatureTolerance) {
		t.Fatalf("expected wrong secret to fail")
	}
	if VerifyWebhookSignature([]byte(`{"tampered":true}`), header, secret, DefaultSignatureTolerance) {
		t.Fatalf("expected tampered payload to fail")
	}
	if VerifyWebhookSignature(payload, "", secret, DefaultSignatureTolerance) {
		t.Fatalf("expected empty header to fail")
	}
	if VerifyWebhookSignature(payload, header, "", DefaultSignatureTolerance) {
		t.Fatalf("expected empty secret to fail")
	}
}

func TestVerifyWebhookSignatureStaleTimestamp(t *testing.T) {
	payload := []byte(`{"id":"evt_2"}`)
	secret := "whsec_test"

	stale := SignPayload(payload, secret, time.Now().Add(-10*time.Minute))
	if VerifyWebhookSignature(payload, stale, secret, DefaultSignatureTolerance) {
		t.Fatalf("expected 10 minute old signature to fail the 5 minute tolerance")
	}

	future := SignPayload(payload, secret, time.Now().Add(10*time.Minute))
	if VerifyWebhookSignature(payload, future, secret, DefaultSignatureTolerance) {
		t.Fatalf("expected far-future timestamp to fail")
	}

	// Tolerance 0 disables the freshness check entirely.
	if !VerifyWebhookSignature(payload, stale, secret, 0) {
		t.Fatalf("expected stale signature to verify with tolerance disabled")
	}
}

func TestVerifyWebhookSignatureMultipleCandidates(t *testing.T) {
	payload := []byte(`{"id":"evt_3"}`)
	secret := "whsec_test"

	valid := SignPayload(payload, secret, time.Now())
	// Insert a garbage v1 entry; any matching candidate must authenticate.
	parts := strings.SplitN(valid, ",", 2)
	header := parts[0] + ",v1=deadbeef," + parts[1]

	if !VerifyWebhookSignature(payload, header, secret, DefaultSignatureTolerance) {
		t.Fatalf("expected header with one valid candidate to verify")
	}
}

func TestVerifyWebhookSignatureMalformedHeader(t *testing.T) {
	payload := []byte(`{}`)
	secret := "whsec_test"

	for _, header := range []string{
		"v1=abcdef",          // missing timestamp
		"t=1690000000",       // missing signature
		"t=notanumber,v1=ab", // unparseable timestamp
		"garbage",
	} {
		if VerifyWebhookSignature(payload, header, secret, 0) {
			t.Fatalf("expected malformed header %q to fail", header)
		}
	}
}
