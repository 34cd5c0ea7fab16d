package payments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/halobet/HaloBet/app/models"
)

// Handler processes one event of a known type. It runs inside the same
// transaction that records the ExternalEvent row, so a returned error rolls
// back both the record and the handler's writes and the provider will
// redeliver.
type Handler func(tx *gorm.DB, ev Event) error

// Result describes what a delivery turned into.
type Result struct {
	EventID   string
	EventType string
	Handled   bool // a handler ran and committed
	Duplicate bool // event id was already recorded
	Ignored   bool // unknown event type, or handler discarded the payload
}

// Dispatcher verifies, deduplicates and routes provider webhook deliveries.
// The handler table is built once at startup and never mutated afterwards.
type Dispatcher struct {
	db        *gorm.DB
	secret    string
	tolerance time.Duration
	handlers  map[string]Handler
}

// NewDispatcher wires a dispatcher. A missing secret is a configuration
// error: the caller must refuse to serve webhook traffic rather than accept
// unverifiable payloads.
func NewDispatcher(db *gorm.DB, secret string, handlers map[string]Handler) (*Dispatcher, error) {
	if secret == "" {
		return nil, errors.New("payments: webhook secret is not configured")
	}
	h := make(map[string]Handler, len(handlers))
	for k, v := range handlers {
		h[k] = v
	}
	return &Dispatcher{
		db:        db,
		secret:    secret,
		tolerance: DefaultSignatureTolerance,
		handlers:  h,
	}, nil
}

// Dispatch applies one delivery exactly once.
//
// Inside a single transaction it takes a row lock on the event id, inserts
// the ExternalEvent record and runs the matching handler. A concurrent or
// repeated delivery of the same id either blocks on the lock and then sees
// the committed row, or trips the unique index on insert; both paths are
// reported as Duplicate and acknowledged as success.
func (d *Dispatcher) Dispatch(ctx context.Context, payload []byte, signatureHeader string) (Result, error) {
	if !VerifyWebhookSignature(payload, signatureHeader, d.secret, d.tolerance) {
		return Result{}, ErrInvalidSignature
	}

	ev, err := ParseEvent(payload)
	if err != nil {
		return Result{}, err
	}
	res := Result{EventID: ev.ID, EventType: ev.Type}

	err = d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.ExternalEvent
		lookErr := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("provider_event_id = ?", ev.ID).
			First(&existing).Error
		if lookErr == nil {
			return ErrDuplicateEvent
		}
		if !errors.Is(lookErr, gorm.ErrRecordNotFound) {
			return lookErr
		}

		record := models.ExternalEvent{
			ProviderEventID: ev.ID,
			EventType:       ev.Type,
			Payload:         string(payload),
		}
		if createErr := tx.Create(&record).Error; createErr != nil {
			// Lost the race against a concurrent delivery that committed
			// between our lock probe and the insert.
			if errors.Is(createErr, gorm.ErrDuplicatedKey) {
				return ErrDuplicateEvent
			}
			return createErr
		}

		handler, known := d.handlers[ev.Type]
		if !known {
			// Providers emit many event kinds this system does not consume.
			// The record is kept for the audit trail and the delivery is
			// acknowledged.
			log.Infof("[Webhook] unhandled event type %s (%s)", ev.Type, ev.ID)
			res.Ignored = true
			return nil
		}

		if handlerErr := handler(tx, ev); handlerErr != nil {
			if IsDiscardable(handlerErr) {
				log.Warnf("[Webhook] discarding event %s (%s): %v", ev.ID, ev.Type, handlerErr)
				res.Ignored = true
				return nil
			}
			return fmt.Errorf("handler for %s: %w", ev.Type, handlerErr)
		}
		res.Handled = true
		return nil
	})

	if errors.Is(err, ErrDuplicateEvent) {
		log.Infof("[Webhook] event %s already processed", ev.ID)
		res.Duplicate = true
		return res, nil
	}
	if err != nil {
		return res, err
	}
	return res, nil
}
