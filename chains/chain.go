package chains

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xhhuango/json"

	"github.com/optstrat/optstrat/model"
)

// OptionChain is the strike ladder for one symbol and one expiration.
// Rows are unique by strike and kept in ascending strike order; all rows
// share the chain-level underlying price, rate, yield and expiration.
type OptionChain struct {
	Symbol          string
	UnderlyingPrice model.Positive
	RiskFreeRate    decimal.Decimal
	DividendYield   model.Positive
	Expiration      model.ExpirationDate

	rows []OptionData
}

func NewOptionChain(symbol string, underlyingPrice model.Positive, riskFreeRate decimal.Decimal, dividendYield model.Positive, expiration model.ExpirationDate) *OptionChain {
	return &OptionChain{
		Symbol:          symbol,
		UnderlyingPrice: underlyingPrice,
		RiskFreeRate:    riskFreeRate,
		DividendYield:   dividendYield,
		Expiration:      expiration,
	}
}

// AddRow inserts a row keeping strike order. Duplicate strikes and rows
// tagged with a different underlying are rejected.
func (c *OptionChain) AddRow(row OptionData) error {
	if err := row.Validate(); err != nil {
		return err
	}
	if row.Underlying != "" && row.Underlying != c.Symbol {
		return ErrChainMeta
	}
	i := c.searchStrike(row.Strike)
	if i < len(c.rows) && c.rows[i].Strike.Equal(row.Strike) {
		return ErrDuplicateStrike
	}
	c.rows = append(c.rows, OptionData{})
	copy(c.rows[i+1:], c.rows[i:])
	c.rows[i] = row
	return nil
}

func (c *OptionChain) Len() int { return len(c.rows) }

// Rows returns a copy of the rows in ascending strike order.
func (c *OptionChain) Rows() []OptionData {
	out := make([]OptionData, len(c.rows))
	copy(out, c.rows)
	return out
}

// AtStrike looks a row up by exact strike.
func (c *OptionChain) AtStrike(strike model.Positive) (*OptionData, error) {
	i := c.searchStrike(strike)
	if i < len(c.rows) && c.rows[i].Strike.Equal(strike) {
		row := c.rows[i]
		return &row, nil
	}
	return nil, ErrStrikeNotFound
}

// ClosestStrike returns the row whose strike is nearest to the given
// price.
func (c *OptionChain) ClosestStrike(price model.Positive) (*OptionData, error) {
	if len(c.rows) == 0 {
		return nil, ErrEmptyChain
	}
	best := c.rows[0]
	bestDist := best.Strike.Decimal().Sub(price.Decimal()).Abs()
	for _, row := range c.rows[1:] {
		d := row.Strike.Decimal().Sub(price.Decimal()).Abs()
		if d.Cmp(bestDist) < 0 {
			best = row
			bestDist = d
		}
	}
	return &best, nil
}

// ATMStrike is the strike closest to the current underlying price.
func (c *OptionChain) ATMStrike() (model.Positive, error) {
	row, err := c.ClosestStrike(c.UnderlyingPrice)
	if err != nil {
		return model.PZero, err
	}
	return row.Strike, nil
}

// Strikes returns the sorted strike ladder.
func (c *OptionChain) Strikes() []model.Positive {
	out := make([]model.Positive, len(c.rows))
	for i, row := range c.rows {
		out[i] = row.Strike
	}
	return out
}

// Filter returns the rows for which keep is true, in strike order.
func (c *OptionChain) Filter(keep func(*OptionData) bool) []OptionData {
	var out []OptionData
	for _, row := range c.rows {
		if keep(&row) {
			out = append(out, row)
		}
	}
	return out
}

// TimeToExpiry is the chain's year fraction remaining as of now.
func (c *OptionChain) TimeToExpiry(now time.Time) float64 {
	return c.Expiration.YearFraction(now)
}

func (c *OptionChain) searchStrike(strike model.Positive) int {
	return sort.Search(len(c.rows), func(i int) bool {
		return c.rows[i].Strike.Cmp(strike) >= 0
	})
}

type chainJSON struct {
	Symbol          string          `json:"symbol"`
	UnderlyingPrice model.Positive  `json:"underlying_price"`
	RiskFreeRate    decimal.Decimal `json:"risk_free_rate"`
	DividendYield   model.Positive  `json:"dividend_yield"`
	Rows            []OptionData    `json:"rows"`
}

func (c *OptionChain) MarshalJSON() ([]byte, error) {
	return json.Marshal(chainJSON{
		Symbol:          c.Symbol,
		UnderlyingPrice: c.UnderlyingPrice,
		RiskFreeRate:    c.RiskFreeRate,
		DividendYield:   c.DividendYield,
		Rows:            c.rows,
	})
}

func (c *OptionChain) UnmarshalJSON(data []byte) error {
	var cj chainJSON
	if err := json.Unmarshal(data, &cj); err != nil {
		return err
	}
	c.Symbol = cj.Symbol
	c.UnderlyingPrice = cj.UnderlyingPrice
	c.RiskFreeRate = cj.RiskFreeRate
	c.DividendYield = cj.DividendYield
	c.rows = nil
	for _, row := range cj.Rows {
		if err := c.AddRow(row); err != nil {
			return err
		}
	}
	return nil
}
