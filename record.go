package divtax

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/kyamaguchi/divtax/date"
	"github.com/shopspring/decimal"
)

// ErrMalformedEntry reports a raw entry the pipeline must not guess
// about: a missing date or a non-numeric amount. A silently dropped or
// fabricated transaction would corrupt tax totals, so this is the one
// hard failure of the pipeline. It is surfaced per entry; the rest of
// the batch still processes.
var ErrMalformedEntry = errors.New("malformed entry")

// RawEntry is one dividend or interest event as reported by the broker,
// before classification and conversion. Amounts are kept in the
// broker's textual form ("$1,234.56"); parsing and validation happen in
// [Builder.Build].
type RawEntry struct {
	Date        string // broker date, possibly with an " as of " suffix
	Account     string
	Symbol      string
	Description string
	Action      string // broker transaction type label
	Gross       string // gross USD amount
	Withheld    string // withheld USD amount, empty when none
	Reinvested  bool   // explicit reinvestment marker
}

// DividendRecord is the finalized dual-currency tax record for one
// dividend or interest event. It is never mutated after creation.
type DividendRecord struct {
	Date        date.Date
	Account     string
	Symbol      string
	Description string
	Kind        Kind
	Reinvested  bool

	GrossUSD    Money
	WithheldUSD Money
	NetUSD      Money
	GrossJPY    Money
	WithheldJPY Money
	NetJPY      Money

	Rate Quote // the exchange rate applied for the JPY amounts
}

// Builder assembles dividend records from raw entries. It is the
// single seam where classification and conversion compose; entries are
// independent of each other.
type Builder struct {
	rules      Ruleset
	classifier *Classifier
	converter  *Converter
}

// NewBuilder returns a builder using the given rule set and rate table.
func NewBuilder(rules Ruleset, rates *RateTable) *Builder {
	return &Builder{
		rules:      rules,
		classifier: NewClassifier(rules),
		converter:  NewConverter(rates),
	}
}

// Build assembles one record from one raw entry.
//
// A missing or unparseable date, a missing gross amount, or a
// non-numeric amount returns an error wrapping [ErrMalformedEntry].
// An empty withheld amount is zero. Everything else is recovered with
// a default and never fails.
func (b *Builder) Build(e RawEntry) (DividendRecord, error) {
	on, err := date.Parse(e.Date)
	if err != nil {
		return DividendRecord{}, fmt.Errorf("%w: %v", ErrMalformedEntry, err)
	}
	gross, err := parseAmount(e.Gross)
	if err != nil {
		return DividendRecord{}, fmt.Errorf("%w: gross amount: %v", ErrMalformedEntry, err)
	}
	var withheld decimal.Decimal
	if strings.TrimSpace(e.Withheld) != "" {
		if withheld, err = parseAmount(e.Withheld); err != nil {
			return DividendRecord{}, fmt.Errorf("%w: withheld amount: %v", ErrMalformedEntry, err)
		}
		// Withholding rows are reported negative; the record holds the
		// deducted magnitude.
		withheld = withheld.Abs()
	}

	kind, reinvested := b.classifier.Classify(e)
	conv := b.converter.Convert(gross, withheld, on)

	return DividendRecord{
		Date:        on,
		Account:     e.Account,
		Symbol:      e.Symbol,
		Description: e.Description,
		Kind:        kind,
		Reinvested:  reinvested,
		GrossUSD:    conv.GrossUSD,
		WithheldUSD: conv.WithheldUSD,
		NetUSD:      conv.NetUSD,
		GrossJPY:    conv.GrossJPY,
		WithheldJPY: conv.WithheldJPY,
		NetJPY:      conv.NetJPY,
		Rate:        conv.Rate,
	}, nil
}

// FromBrokerage folds a brokerage export into finalized records.
//
// The broker reports withholding as a separate negative row, so rows
// sharing (date, symbol-or-description, account) merge into a single
// entry: tax rows contribute the withheld amount, income rows the
// gross amount and the reinvestment flag. Merged entries with neither
// gross nor tax are dropped. Malformed rows are reported in errs, one
// per row, and do not stop the rest of the batch. Records are returned
// in date order.
func (b *Builder) FromBrokerage(txs []Transaction) (records []DividendRecord, errs []error) {
	type key struct{ date, symbol, account string }
	var order []key
	merged := make(map[key]*RawEntry)

	for _, tx := range txs {
		income, tax := b.rules.IsIncome(tx.Action), b.rules.IsTax(tx.Action)
		if !income && !tax {
			continue
		}
		amount, err := parseAmount(tx.Amount)
		if err != nil {
			errs = append(errs, fmt.Errorf("%w: %s %q on %q: %v", ErrMalformedEntry, tx.Action, tx.Symbol, tx.Date, err))
			continue
		}
		if tax && !amount.IsNegative() {
			// Positive "tax" rows are refunds of prior adjustments,
			// out of scope for withholding.
			continue
		}

		symbol := tx.Symbol
		if symbol == "" {
			symbol = tx.Description
		}
		// The income row may carry an " as of " settlement annotation
		// that its tax row lacks. Key on the trade date only, so the
		// pair still merges.
		day, _, _ := strings.Cut(strings.TrimSpace(tx.Date), " as of ")
		k := key{date: day, symbol: symbol, account: tx.Account}
		e, ok := merged[k]
		if !ok {
			e = &RawEntry{
				Date:        tx.Date,
				Account:     tx.Account,
				Symbol:      tx.Symbol,
				Description: tx.Description,
				Gross:       "0",
			}
			merged[k] = e
			order = append(order, k)
		}
		if tax {
			e.Withheld = tx.Amount
		} else {
			e.Gross = tx.Amount
			e.Action = tx.Action
		}
	}

	for _, k := range order {
		e := merged[k]
		record, err := b.Build(*e)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if record.GrossUSD.IsZero() && record.WithheldUSD.IsZero() {
			continue
		}
		records = append(records, record)
	}

	slices.SortStableFunc(records, func(a, b DividendRecord) int {
		return a.Date.Compare(b.Date)
	})
	return records, errs
}

// parseAmount converts a broker amount string ("$1,234.56", "-$12.30",
// "(12.30)") into a decimal.
func parseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Decimal{}, errors.New("empty amount")
	}
	neg := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		neg = true
		s = s[1 : len(s)-1]
	}
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, ",", "")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid amount %q", s)
	}
	if neg {
		d = d.Neg()
	}
	return d, nil
}
