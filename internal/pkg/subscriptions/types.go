package subscriptions

import "encoding/json"

// checkoutSession is the slice of the provider's checkout session object the
// state machine cares about.
type checkoutSession struct {
	ID           string            `json:"id"`
	Mode         string            `json:"mode"`
	Subscription string            `json:"subscription"`
	Customer     string            `json:"customer"`
	Metadata     map[string]string `json:"metadata"`
}

// invoice carries the provider subscription reference plus the billed
// period. The paid-through date lives on the subscription line item.
type invoice struct {
	ID           string `json:"id"`
	Subscription string `json:"subscription"`
	Lines        struct {
		Data []invoiceLine `json:"data"`
	} `json:"lines"`
}

type invoiceLine struct {
	Type   string `json:"type"`
	Period struct {
		End int64 `json:"end"`
	} `json:"period"`
}

// providerSubscription is the body of customer.subscription.* events.
type providerSubscription struct {
	ID string `json:"id"`
}

// providerAccount is the body of account.updated events for connected
// payout accounts.
type providerAccount struct {
	ID             string `json:"id"`
	ChargesEnabled bool   `json:"charges_enabled"`
	PayoutsEnabled bool   `json:"payouts_enabled"`
}

func decode(raw json.RawMessage, v any) error {
	return json.Unmarshal(raw, v)
}
