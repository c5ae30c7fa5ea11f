package report

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Percentage is a ratio expressed in percent. The zero value is NoData.
type Percentage struct {
	Value decimal.Decimal
	Valid bool
}

// NoData is returned when the base of a percentage is zero.
var NoData = Percentage{}

// PercentageOf returns amount as a percentage of base. A zero base yields
// NoData instead of dividing.
func PercentageOf(amount, base decimal.Decimal) Percentage {
	if base.IsZero() {
		return NoData
	}
	return Percentage{Value: amount.Div(base).Mul(hundred), Valid: true}
}

func (p Percentage) String() string {
	if !p.Valid {
		return "n/a"
	}
	return p.Value.StringFixed(1) + "%"
}

// MarshalJSON encodes NoData as null and any other value as a number.
func (p Percentage) MarshalJSON() ([]byte, error) {
	if !p.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(json.Number(p.Value.Round(4).String()))
}
