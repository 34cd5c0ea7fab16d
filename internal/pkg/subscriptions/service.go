package subscriptions

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/halobet/HaloBet/app/models"
	"github.com/halobet/HaloBet/internal/pkg/payments"
)

// Service owns every subscription and connected-account state transition.
// All mutations happen on the transaction handed in by the webhook
// dispatcher, never on a DB handle of its own: the event record and the
// transition commit or roll back together.
//
// The state machine is deliberately asymmetric: creation-class events
// (checkout completion) may upsert, update-class events (invoices,
// deletions, account updates) only ever mutate rows that already exist.
// An update referencing an unknown entity is discarded, not materialized.
type Service struct{}

func NewService() *Service {
	return &Service{}
}

// Handlers returns the event-type routing table. It is built once at
// process start and handed to the dispatcher by reference.
func (s *Service) Handlers() map[string]payments.Handler {
	return map[string]payments.Handler{
		"checkout.session.completed":    s.handleCheckoutSessionCompleted,
		"invoice.paid":                  s.handleInvoicePaid,
		"invoice.payment_succeeded":     s.handleInvoicePaid,
		"invoice.payment_failed":        s.handleInvoicePaymentFailed,
		"customer.subscription.deleted": s.handleSubscriptionDeleted,
		"account.updated":               s.handleAccountUpdated,
	}
}

func (s *Service) handleCheckoutSessionCompleted(tx *gorm.DB, ev payments.Event) error {
	var session checkoutSession
	if err := decode(ev.Data.Object, &session); err != nil {
		return fmt.Errorf("checkout session decode: %w", payments.ErrMalformedEvent)
	}
	if session.Mode != "subscription" {
		// One-off payments are not this engine's concern.
		return nil
	}

	followerID, err1 := parseUserID(session.Metadata["follower_id"])
	tipsterID, err2 := parseUserID(session.Metadata["tipster_id"])
	if err1 != nil || err2 != nil {
		return fmt.Errorf("checkout session %s missing follower_id/tipster_id metadata: %w",
			session.ID, payments.ErrMalformedEvent)
	}

	var users []models.User
	if err := tx.Where("id IN ?", []uint{followerID, tipsterID}).Find(&users).Error; err != nil {
		return err
	}
	if len(users) != 2 {
		return fmt.Errorf("checkout session %s references unknown users %d/%d: %w",
			session.ID, followerID, tipsterID, payments.ErrEntityNotFound)
	}

	// Keyed by (follower, tipster), not by provider subscription id: a
	// re-subscribe after cancellation reuses the row and only swaps the
	// provider identifiers.
	sub := models.Subscription{
		FollowerID:             followerID,
		TipsterID:              tipsterID,
		ProviderSubscriptionID: session.Subscription,
		ProviderCustomerID:     session.Customer,
		Status:                 models.SubscriptionStatusActive,
	}
	if err := tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "follower_id"}, {Name: "tipster_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"provider_subscription_id",
			"provider_customer_id",
			"status",
			"updated_at",
		}),
	}).Create(&sub).Error; err != nil {
		return err
	}

	log.Infof("[Subscriptions] checkout completed: follower=%d tipster=%d sub=%s",
		followerID, tipsterID, session.Subscription)
	return nil
}

func (s *Service) handleInvoicePaid(tx *gorm.DB, ev payments.Event) error {
	var inv invoice
	if err := decode(ev.Data.Object, &inv); err != nil {
		return fmt.Errorf("invoice decode: %w", payments.ErrMalformedEvent)
	}
	if inv.Subscription == "" {
		// Invoices unrelated to subscriptions carry no reference.
		return nil
	}

	sub, err := findByProviderSubscriptionID(tx, inv.Subscription)
	if err != nil {
		return fmt.Errorf("invoice %s: %w", inv.ID, err)
	}

	updates := map[string]interface{}{"status": models.SubscriptionStatusActive}
	if end := invoicePeriodEnd(inv); end != nil {
		updates["current_period_end"] = end
	}
	if err := tx.Model(sub).Updates(updates).Error; err != nil {
		return err
	}

	log.Infof("[Subscriptions] invoice paid: sub=%s -> active", inv.Subscription)
	return nil
}

func (s *Service) handleInvoicePaymentFailed(tx *gorm.DB, ev payments.Event) error {
	var inv invoice
	if err := decode(ev.Data.Object, &inv); err != nil {
		return fmt.Errorf("invoice decode: %w", payments.ErrMalformedEvent)
	}
	if inv.Subscription == "" {
		return nil
	}

	sub, err := findByProviderSubscriptionID(tx, inv.Subscription)
	if err != nil {
		return fmt.Errorf("invoice %s: %w", inv.ID, err)
	}

	if err := tx.Model(sub).Update("status", models.SubscriptionStatusPastDue).Error; err != nil {
		return err
	}

	log.Infof("[Subscriptions] payment failed: sub=%s -> past_due", inv.Subscription)
	return nil
}

func (s *Service) handleSubscriptionDeleted(tx *gorm.DB, ev payments.Event) error {
	var ps providerSubscription
	if err := decode(ev.Data.Object, &ps); err != nil || ps.ID == "" {
		return fmt.Errorf("subscription decode: %w", payments.ErrMalformedEvent)
	}

	sub, err := findByProviderSubscriptionID(tx, ps.ID)
	if err != nil {
		return err
	}

	if err := tx.Model(sub).Update("status", models.SubscriptionStatusCanceled).Error; err != nil {
		return err
	}

	log.Infof("[Subscriptions] deleted: sub=%s -> canceled", ps.ID)
	return nil
}

func (s *Service) handleAccountUpdated(tx *gorm.DB, ev payments.Event) error {
	var account providerAccount
	if err := decode(ev.Data.Object, &account); err != nil || account.ID == "" {
		return fmt.Errorf("account decode: %w", payments.ErrMalformedEvent)
	}

	var connected models.ConnectedAccount
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("provider_account_id = ?", account.ID).
		First(&connected).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("connected account %s: %w", account.ID, payments.ErrEntityNotFound)
	}
	if err != nil {
		return err
	}

	connected.ChargesEnabled = account.ChargesEnabled
	connected.PayoutsEnabled = account.PayoutsEnabled
	// One-way latch: onboarding never reverts once both capabilities have
	// been granted, even if the provider later revokes one.
	if connected.ChargesEnabled && connected.PayoutsEnabled {
		connected.OnboardingCompleted = true
	}
	if err := tx.Save(&connected).Error; err != nil {
		return err
	}

	log.Infof("[Subscriptions] account updated: %s charges=%t payouts=%t onboarded=%t",
		account.ID, connected.ChargesEnabled, connected.PayoutsEnabled, connected.OnboardingCompleted)
	return nil
}

func findByProviderSubscriptionID(tx *gorm.DB, providerSubID string) (*models.Subscription, error) {
	var sub models.Subscription
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("provider_subscription_id = ?", providerSubID).
		First(&sub).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("subscription %s: %w", providerSubID, payments.ErrEntityNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func invoicePeriodEnd(inv invoice) *time.Time {
	for _, line := range inv.Lines.Data {
		if line.Type == "subscription" && line.Period.End > 0 {
			end := time.Unix(line.Period.End, 0).UTC()
			return &end
		}
	}
	// Single-line invoices from some API versions omit the line type.
	if len(inv.Lines.Data) == 1 && inv.Lines.Data[0].Period.End > 0 {
		end := time.Unix(inv.Lines.Data[0].Period.End, 0).UTC()
		return &end
	}
	return nil
}

func parseUserID(raw string) (uint, error) {
	if raw == "" {
		return 0, errors.New("empty user id")
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("invalid user id")
	}
	return uint(id), nil
}
