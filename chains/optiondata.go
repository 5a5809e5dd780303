package chains

import (
	"errors"
	"fmt"

	"github.com/optstrat/optstrat/model"
)

var (
	ErrEmptyChain      = errors.New("chains: empty option chain")
	ErrDuplicateStrike = errors.New("chains: strike already present")
	ErrStrikeNotFound  = errors.New("chains: strike not found")
	ErrCrossedQuote    = errors.New("chains: bid above ask")
	ErrChainMeta       = errors.New("chains: row metadata does not match chain")
)

// OptionData is one strike row: quotes, implied vols and Greeks for the
// call and put at that strike. The chain pins the shared metadata
// (underlying, rate, yield, expiration); a row only carries its own
// symbol for a consistency check on insert.
type OptionData struct {
	Underlying string         `json:"underlying,omitempty"`
	Strike     model.Positive `json:"strike"`

	CallBid model.Positive `json:"call_bid"`
	CallAsk model.Positive `json:"call_ask"`
	PutBid  model.Positive `json:"put_bid"`
	PutAsk  model.Positive `json:"put_ask"`

	CallIV model.Positive `json:"call_iv"`
	PutIV  model.Positive `json:"put_iv"`
	MidIV  model.Positive `json:"mid_iv"`

	Delta float64 `json:"delta"`
	Gamma float64 `json:"gamma"`

	Volume       uint64 `json:"volume"`
	OpenInterest uint64 `json:"open_interest"`
}

// CallMid is the call quote midpoint.
func (d *OptionData) CallMid() model.Positive {
	mid, _ := d.CallBid.Add(d.CallAsk).Div(model.MustPositive(2))
	return mid
}

// PutMid is the put quote midpoint.
func (d *OptionData) PutMid() model.Positive {
	mid, _ := d.PutBid.Add(d.PutAsk).Div(model.MustPositive(2))
	return mid
}

// Validate checks the quote invariants. Put-call parity is deliberately
// not enforced: market quotes need not satisfy it.
func (d *OptionData) Validate() error {
	if d.Strike.IsZero() {
		return model.ErrInvalidStrike
	}
	if d.CallAsk.LessThan(d.CallBid) {
		return fmt.Errorf("%w: call %s > %s", ErrCrossedQuote, d.CallBid, d.CallAsk)
	}
	if d.PutAsk.LessThan(d.PutBid) {
		return fmt.Errorf("%w: put %s > %s", ErrCrossedQuote, d.PutBid, d.PutAsk)
	}
	return nil
}
