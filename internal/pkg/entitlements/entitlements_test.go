package entitlements

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/halobet/HaloBet/app/models"
)

func TestTicketAccess(t *testing.T) {
	tipster := &models.User{ID: 7, IsTipster: true}
	casual := &models.User{ID: 8}
	ticket := &models.Ticket{ID: 1, UserID: 7}

	tests := []struct {
		name     string
		viewerID uint
		owner    *models.User
		sub      *models.Subscription
		want     Access
	}{
		{"owner sees own ticket", 7, tipster, nil, AccessFull},
		{"anonymous viewer of tipster ticket", 0, tipster, nil, AccessPreview},
		{"stranger without subscription", 9, tipster, nil, AccessPreview},
		{"active subscriber", 9, tipster, &models.Subscription{Status: models.SubscriptionStatusActive}, AccessFull},
		{"past_due still entitles", 9, tipster, &models.Subscription{Status: models.SubscriptionStatusPastDue}, AccessFull},
		{"canceled subscription", 9, tipster, &models.Subscription{Status: models.SubscriptionStatusCanceled}, AccessPreview},
		{"incomplete subscription", 9, tipster, &models.Subscription{Status: models.SubscriptionStatusIncomplete}, AccessPreview},
		{"non-tipster tickets are public", 9, casual, nil, AccessFull},
		{"unknown owner treated as public", 9, nil, nil, AccessFull},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TicketAccess(tt.viewerID, ticket, tt.owner, tt.sub)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRedactTicketHidesPicks(t *testing.T) {
	ticket := &models.Ticket{
		OCRRawData: "raw extraction output",
		Legs: []models.BetLeg{
			{Selection: "home win", Odds: 1.85, Outcome: models.BetOutcomeWon},
			{Selection: "draw", Odds: 3.4, Outcome: models.BetOutcomePending},
		},
	}

	RedactTicket(ticket)

	assert.Empty(t, ticket.OCRRawData)
	for _, leg := range ticket.Legs {
		assert.Empty(t, leg.Selection)
		assert.Zero(t, leg.Odds)
	}
	// settlement state stays visible in the preview
	assert.Equal(t, models.BetOutcomeWon, ticket.Legs[0].Outcome)
}
