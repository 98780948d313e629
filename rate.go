package divtax

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"slices"
	"strings"

	"github.com/kyamaguchi/divtax/date"
	"github.com/shopspring/decimal"
)

// DefaultRate is the USD→JPY rate applied when no historical data
// covers a transaction date.
var DefaultRate = decimal.NewFromFloat(150.0)

// RatePoint is one observed USD→JPY closing rate.
type RatePoint struct {
	On   date.Date
	Rate decimal.Decimal
}

// RateTable resolves the USD→JPY rate applicable to a given date.
// It is immutable after construction and safe for concurrent lookups.
type RateTable struct {
	days  []date.Date
	rates []decimal.Decimal
	def   decimal.Decimal
}

// NewRateTable builds a table from a rate series. The series may be
// empty or nil; lookups then always fall back to the default rate.
func NewRateTable(def decimal.Decimal, series ...RatePoint) *RateTable {
	t := &RateTable{def: def}
	for _, p := range series {
		t.append(p.On, p.Rate)
	}
	return t
}

// append inserts a point keeping days sorted and unique. An existing
// value at that date is overwritten, giving priority to the last data.
func (t *RateTable) append(on date.Date, rate decimal.Decimal) {
	i, found := slices.BinarySearchFunc(t.days, on, date.Date.Compare)
	if found {
		t.rates[i] = rate
		return
	}
	t.days = slices.Insert(t.days, i, on)
	t.rates = slices.Insert(t.rates, i, rate)
}

// Len returns the number of points in the table.
func (t *RateTable) Len() int { return len(t.days) }

// Default returns the configured fallback rate.
func (t *RateTable) Default() decimal.Decimal { return t.def }

// Quote is the outcome of a rate lookup.
type Quote struct {
	Rate      decimal.Decimal
	On        date.Date // source date of the rate; zero when defaulted
	Defaulted bool      // true when no rate on or before the date exists
}

// RateFor returns the rate applicable on a given day: the exact rate if
// the day is in the series, otherwise the rate of the most recent prior
// day. FX markets are closed on weekends and holidays while dividends
// post on any day, so the prior trading day's close applies. When the
// day precedes all known data (or the table is empty) the default rate
// is returned with Defaulted set; missing history is expected and never
// an error.
func (t *RateTable) RateFor(on date.Date) Quote {
	i, found := slices.BinarySearchFunc(t.days, on, date.Date.Compare)
	if found {
		return Quote{Rate: t.rates[i], On: t.days[i]}
	}
	if i == 0 {
		// No day on or before the given one.
		return Quote{Rate: t.def, Defaulted: true}
	}
	return Quote{Rate: t.rates[i-1], On: t.days[i-1]}
}

// DecodeRateSeries reads a historical prices CSV into a rate series.
//
// The expected shape is the Wall Street Journal USD/JPY download:
// a "Date" column and a "Close" column, with space-padded headers and
// US-style dates. Rows that do not parse are skipped with a warning,
// matching the tolerance required from messy rate exports.
func DecodeRateSeries(r io.Reader) ([]RatePoint, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read rate series header: %w", err)
	}
	dateCol, closeCol := -1, -1
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "date":
			dateCol = i
		case "close":
			closeCol = i
		}
	}
	if dateCol < 0 || closeCol < 0 {
		return nil, fmt.Errorf("rate series header %q: want %q and %q columns", header, "Date", "Close")
	}

	var series []RatePoint
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("cannot read rate series row: %w", err)
		}
		on, err := date.Parse(row[dateCol])
		if err != nil {
			log.Printf("warning, skipping rate row: %v", err)
			continue
		}
		rate, err := decimal.NewFromString(strings.TrimSpace(row[closeCol]))
		if err != nil || !rate.IsPositive() {
			log.Printf("warning, skipping rate row %s: invalid close %q", on, row[closeCol])
			continue
		}
		series = append(series, RatePoint{On: on, Rate: rate})
	}
	return series, nil
}
