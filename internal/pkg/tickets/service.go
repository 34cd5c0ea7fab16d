package tickets

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/halobet/HaloBet/app/models"
	"github.com/halobet/HaloBet/internal/pkg/results"
)

// Store is the object-storage surface the ingestion flow needs. Satisfied by
// the ticketstore client.
type Store interface {
	Upload(ctx context.Context, objectKey string, data []byte) error
	Download(ctx context.Context, objectKey string) ([]byte, error)
}

// Service runs the ticket ingestion pipeline: store the image, extract bets
// via OCR, tie each bet to a stored match and persist the legs.
type Service struct {
	db        *gorm.DB
	store     Store
	extractor Extractor
	validate  *validator.Validate
}

func NewService(db *gorm.DB, store Store, extractor Extractor) *Service {
	return &Service{
		db:        db,
		store:     store,
		extractor: extractor,
		validate:  validator.New(),
	}
}

// CreateTicket stores the uploaded slip image and records the ticket in
// pending_ocr state. Extraction happens later via ProcessTicket.
func (s *Service) CreateTicket(ctx context.Context, userID uint, filename string, image []byte) (*models.Ticket, error) {
	if len(image) == 0 {
		return nil, errors.New("tickets: empty image upload")
	}

	now := time.Now().UTC()
	id := uuid.NewString()
	key := fmt.Sprintf("tickets/%04d/%02d/%s%s",
		now.Year(), int(now.Month()), id, strings.ToLower(filepath.Ext(filename)))

	if err := s.store.Upload(ctx, key, image); err != nil {
		return nil, fmt.Errorf("store ticket image: %w", err)
	}

	ticket := models.Ticket{
		UUID:       id,
		UserID:     userID,
		StorageKey: key,
		Status:     models.TicketStatusPendingOCR,
	}
	if err := s.db.WithContext(ctx).Create(&ticket).Error; err != nil {
		return nil, err
	}

	log.Infof("[Tickets] ticket %s created for user %d", ticket.UUID, userID)
	return &ticket, nil
}

// ProcessTicket runs OCR on a pending ticket and materializes its bet legs.
// The long-latency extractor call happens outside any transaction; the legs
// and the final status are written in one transaction afterwards.
//
// A ticket whose bets cannot all be tied to stored matches goes to
// review_needed with no legs created; a ticket the extractor reads nothing
// from is rejected.
func (s *Service) ProcessTicket(ctx context.Context, ticketID uint) error {
	var ticket models.Ticket
	if err := s.db.WithContext(ctx).First(&ticket, ticketID).Error; err != nil {
		return fmt.Errorf("load ticket %d: %w", ticketID, err)
	}
	if ticket.Status != models.TicketStatusPendingOCR {
		log.Infof("[Tickets] ticket %s already in status %s, skipping", ticket.UUID, ticket.Status)
		return nil
	}

	if err := s.db.WithContext(ctx).Model(&ticket).
		Update("status", models.TicketStatusProcessing).Error; err != nil {
		return err
	}

	image, err := s.store.Download(ctx, ticket.StorageKey)
	if err != nil {
		return s.markStatus(ctx, &ticket, models.TicketStatusReviewNeeded,
			fmt.Errorf("download image: %w", err))
	}

	extraction, err := s.extractor.Extract(ctx, image)
	if err != nil {
		return s.markStatus(ctx, &ticket, models.TicketStatusReviewNeeded,
			fmt.Errorf("ocr extraction: %w", err))
	}
	if len(extraction.Bets) == 0 {
		log.Warnf("[Tickets] ticket %s: extractor found no bets, rejecting", ticket.UUID)
		return s.db.WithContext(ctx).Model(&ticket).Updates(map[string]interface{}{
			"status":       models.TicketStatusRejected,
			"ocr_raw_data": extraction.Raw,
		}).Error
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		legs := make([]models.BetLeg, 0, len(extraction.Bets))
		for _, bet := range extraction.Bets {
			if err := s.validate.Struct(bet); err != nil {
				log.Warnf("[Tickets] ticket %s: invalid bet %+v: %v", ticket.UUID, bet, err)
				return markStatusTx(tx, &ticket, models.TicketStatusReviewNeeded, extraction.Raw)
			}

			home, away, ok := SplitMatchName(bet.MatchName)
			if !ok {
				log.Warnf("[Tickets] ticket %s: unparseable match name %q", ticket.UUID, bet.MatchName)
				return markStatusTx(tx, &ticket, models.TicketStatusReviewNeeded, extraction.Raw)
			}

			match, err := results.FindMatch(tx, "", home, away)
			if errors.Is(err, results.ErrNoMatchFound) {
				log.Warnf("[Tickets] ticket %s: no stored match for %q", ticket.UUID, bet.MatchName)
				return markStatusTx(tx, &ticket, models.TicketStatusReviewNeeded, extraction.Raw)
			}
			if err != nil {
				return err
			}

			legs = append(legs, models.BetLeg{
				TicketID:  ticket.ID,
				MatchID:   match.ID,
				Selection: bet.Selection,
				Odds:      bet.Odds,
				Stake:     1,
				Outcome:   models.BetOutcomePending,
			})
		}

		if err := tx.Create(&legs).Error; err != nil {
			return err
		}
		if err := tx.Model(&ticket).Updates(map[string]interface{}{
			"status":       models.TicketStatusValidated,
			"ocr_raw_data": extraction.Raw,
		}).Error; err != nil {
			return err
		}

		log.Infof("[Tickets] ticket %s validated with %d legs", ticket.UUID, len(legs))
		return nil
	})
}

func (s *Service) markStatus(ctx context.Context, ticket *models.Ticket, status string, cause error) error {
	log.Warnf("[Tickets] ticket %s -> %s: %v", ticket.UUID, status, cause)
	return s.db.WithContext(ctx).Model(ticket).Update("status", status).Error
}

func markStatusTx(tx *gorm.DB, ticket *models.Ticket, status, raw string) error {
	return tx.Model(ticket).Updates(map[string]interface{}{
		"status":       status,
		"ocr_raw_data": raw,
	}).Error
}

// SplitMatchName breaks an OCR'd fixture string into home and away team
// names. Slips write fixtures as "A vs B", "A - B" or "A v B".
func SplitMatchName(name string) (home, away string, ok bool) {
	for _, sep := range []string{" vs. ", " vs ", " v ", " - ", " — "} {
		if before, after, found := cutFold(name, sep); found {
			home = strings.TrimSpace(before)
			away = strings.TrimSpace(after)
			if home != "" && away != "" {
				return home, away, true
			}
		}
	}
	return "", "", false
}

// cutFold is strings.Cut with a case-insensitive separator match.
func cutFold(s, sep string) (before, after string, found bool) {
	idx := strings.Index(strings.ToLower(s), strings.ToLower(sep))
	if idx < 0 {
		return s, "", false
	}
	return s[:idx], s[idx+len(sep):], true
}
