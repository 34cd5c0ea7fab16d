package tickets

import "context"

// ExtractedBet is one selection the OCR collaborator read off a slip.
type ExtractedBet struct {
	MatchName string  `json:"match_name" validate:"required"`
	Selection string  `json:"selection" validate:"required"`
	Odds      float64 `json:"odds" validate:"gt=1"`
}

// Extraction is the OCR collaborator's full answer for one ticket image.
// Raw carries the unparsed provider response for the audit trail.
type Extraction struct {
	Bets []ExtractedBet `json:"bets"`
	Raw  string         `json:"raw"`
}

// Extractor turns a ticket image into structured bet data. Implementations
// call an external OCR service; they may fail or return an empty bet list
// and must never be invoked inside a database transaction.
type Extractor interface {
	Extract(ctx context.Context, image []byte) (Extraction, error)
}
