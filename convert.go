package divtax

import (
	"github.com/kyamaguchi/divtax/date"
	"github.com/shopspring/decimal"
)

// Conversion is the dual-currency breakdown of one gross/withholding
// pair.
//
// USD amounts keep their full precision; JPY amounts are rounded to the
// whole yen. Net amounts are always the subtraction of the two rounded
// figures, never rounded independently, so that net = gross - withheld
// holds exactly in both currencies.
type Conversion struct {
	Rate Quote

	GrossUSD    Money
	WithheldUSD Money
	NetUSD      Money

	GrossJPY    Money
	WithheldJPY Money
	NetJPY      Money
}

// Converter computes yen equivalents of USD amounts using a rate table.
type Converter struct {
	rates *RateTable
}

// NewConverter returns a converter backed by the given rate table.
func NewConverter(rates *RateTable) *Converter { return &Converter{rates: rates} }

// Convert resolves the rate for the given day and derives the six
// monetary fields of a record. A negative gross (a correction or
// reversal entry) passes through unchanged.
func (c *Converter) Convert(grossUSD, withheldUSD decimal.Decimal, on date.Date) Conversion {
	q := c.rates.RateFor(on)

	gross := M(grossUSD, USD)
	withheld := M(withheldUSD, USD)
	grossJPY := gross.Convert(q.Rate, JPY)
	withheldJPY := withheld.Convert(q.Rate, JPY)

	return Conversion{
		Rate:        q,
		GrossUSD:    gross,
		WithheldUSD: withheld,
		NetUSD:      gross.Sub(withheld),
		GrossJPY:    grossJPY,
		WithheldJPY: withheldJPY,
		NetJPY:      grossJPY.Sub(withheldJPY),
	}
}
