package jobqueue

import (
	"testing"
)

func TestJobRetryLifecycle(t *testing.T) {
	job := &Job{
		ID:         "test-job",
		Type:       JobTypeTicketExtraction,
		Status:     JobStatusPending,
		MaxRetries: DefaultMaxRetries,
	}

	job.MarkAsProcessing()
	if job.Status != JobStatusProcessing || job.ProcessedAt == nil {
		t.Fatalf("expected processing state with timestamp, got %s", job.Status)
	}

	for i := 1; i <= DefaultMaxRetries; i++ {
		job.MarkAsFailed("extraction timeout")
		if job.RetryCount != i {
			t.Fatalf("expected retry count %d, got %d", i, job.RetryCount)
		}
		if i < DefaultMaxRetries && !job.IsRetryable() {
			t.Fatalf("expected job to be retryable after %d failures", i)
		}
	}

	if job.IsRetryable() {
		t.Fatalf("expected job to be exhausted after %d failures", DefaultMaxRetries)
	}
}

func TestMarkAsCompletedClearsError(t *testing.T) {
	job := &Job{ID: "test-job", Status: JobStatusProcessing, MaxRetries: DefaultMaxRetries}
	job.MarkAsFailed("transient error")
	job.MarkAsCompleted()

	if job.Status != JobStatusCompleted {
		t.Fatalf("expected completed, got %s", job.Status)
	}
	if job.ErrorMsg != "" {
		t.Fatalf("expected error message cleared, got %q", job.ErrorMsg)
	}
	if job.CompletedAt == nil {
		t.Fatal("expected completion timestamp")
	}
}

func TestTicketExtractionPayloadRoundTrip(t *testing.T) {
	payload := TicketExtractionJobPayload{TicketID: 42, TicketUUID: "abc-123"}

	restored, err := TicketExtractionJobPayloadFromMap(payload.ToMap())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if restored.TicketID != payload.TicketID || restored.TicketUUID != payload.TicketUUID {
		t.Fatalf("payload mismatch: %+v", restored)
	}
}
