package payments

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/halobet/HaloBet/app/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&models.ExternalEvent{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func TestDispatchRunsHandlerExactlyOnce(t *testing.T) {
	db := newTestDB(t)
	secret := "whsec_test"

	calls := 0
	d, err := NewDispatcher(db, secret, map[string]Handler{
		"checkout.session.completed": func(tx *gorm.DB, ev Event) error {
			calls++
			return nil
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	payload := []byte(`{"id":"evt_100","type":"checkout.session.completed","data":{"object":{}}}`)

	first, err := d.Dispatch(context.Background(), payload, SignPayload(payload, secret, time.Now()))
	if err != nil {
		t.Fatalf("first delivery failed: %v", err)
	}
	if !first.Handled || first.Duplicate {
		t.Fatalf("first delivery must run the handler, got %+v", first)
	}

	// the provider retries with a fresh signature each time
	for i := 0; i < 3; i++ {
		res, err := d.Dispatch(context.Background(), payload, SignPayload(payload, secret, time.Now()))
		if err != nil {
			t.Fatalf("redelivery %d failed: %v", i, err)
		}
		if !res.Duplicate || res.Handled {
			t.Fatalf("redelivery %d must be reported as duplicate, got %+v", i, res)
		}
	}

	if calls != 1 {
		t.Fatalf("handler ran %d times, want exactly 1", calls)
	}

	var count int64
	if err := db.Model(&models.ExternalEvent{}).
		Where("provider_event_id = ?", "evt_100").Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected exactly 1 event row, got %d", count)
	}
}

func TestDispatchRejectsBadSignature(t *testing.T) {
	db := newTestDB(t)

	d, err := NewDispatcher(db, "whsec_real", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	payload := []byte(`{"id":"evt_200","type":"checkout.session.completed","data":{"object":{}}}`)
	header := SignPayload(payload, "whsec_other", time.Now())

	_, err = d.Dispatch(context.Background(), payload, header)
	if !errors.Is(err, ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature, got %v", err)
	}

	var count int64
	if err := db.Model(&models.ExternalEvent{}).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("rejected delivery must record nothing, got %d rows", count)
	}
}

func TestDispatchHandlerErrorRollsBackRecord(t *testing.T) {
	db := newTestDB(t)
	secret := "whsec_test"

	fail := true
	d, err := NewDispatcher(db, secret, map[string]Handler{
		"invoice.paid": func(tx *gorm.DB, ev Event) error {
			if fail {
				return errors.New("downstream unavailable")
			}
			return nil
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	payload := []byte(`{"id":"evt_300","type":"invoice.paid","data":{"object":{}}}`)

	if _, err := d.Dispatch(context.Background(), payload, SignPayload(payload, secret, time.Now())); err == nil {
		t.Fatal("expected the handler error to surface")
	}

	// nothing recorded, so the provider's retry is not a duplicate
	var count int64
	if err := db.Model(&models.ExternalEvent{}).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("failed delivery must roll back the event row, got %d rows", count)
	}

	fail = false
	res, err := d.Dispatch(context.Background(), payload, SignPayload(payload, secret, time.Now()))
	if err != nil {
		t.Fatalf("retry failed: %v", err)
	}
	if !res.Handled || res.Duplicate {
		t.Fatalf("retry after rollback must run the handler, got %+v", res)
	}
}
