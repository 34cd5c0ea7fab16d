package entitlements

import (
	"github.com/halobet/HaloBet/app/models"
)

// Access is what a viewer may see of a tipster's ticket.
type Access string

const (
	// AccessFull exposes the legs with selections and odds.
	AccessFull Access = "full"
	// AccessPreview exposes the ticket shell (match names, settlement state)
	// but hides the actual picks.
	AccessPreview Access = "preview"
)

// TicketAccess decides how much of a ticket a viewer gets. The owner always
// sees everything; tickets from non-tipster users are public; a tipster's
// ticket needs an entitling subscription from the viewer.
//
// A past_due subscription still entitles until its paid period runs out,
// so a failed card charge does not cut access mid-period.
func TicketAccess(viewerID uint, ticket *models.Ticket, owner *models.User, sub *models.Subscription) Access {
	if viewerID != 0 && viewerID == ticket.UserID {
		return AccessFull
	}
	if owner == nil || !owner.IsTipster {
		return AccessFull
	}
	if sub != nil && sub.IsEntitling() {
		return AccessFull
	}
	return AccessPreview
}

// RedactTicket strips the paid fields off a preview copy. The caller hands
// in a copy; the stored row is never mutated here.
func RedactTicket(ticket *models.Ticket) {
	ticket.OCRRawData = ""
	for i := range ticket.Legs {
		ticket.Legs[i].Selection = ""
		ticket.Legs[i].Odds = 0
	}
}
