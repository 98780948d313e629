package divtax

import (
	"fmt"
	"slices"
	"strings"
)

// Kind is the income classification of a record.
type Kind int

const (
	// Dividend is a distribution paid on a stock or fund position.
	Dividend Kind = iota
	// Interest is income paid on cash, bonds or deposits.
	Interest
)

func (k Kind) String() string {
	switch k {
	case Dividend:
		return "Dividend"
	case Interest:
		return "Interest"
	default:
		return "unknown"
	}
}

// ParseKind parses a string into a Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "Dividend":
		return Dividend, nil
	case "Interest":
		return Interest, nil
	default:
		return 0, fmt.Errorf("unknown income kind: %q", s)
	}
}

// Ruleset is the externally configurable mapping from broker action
// labels to classification outcomes. Broker vocabularies are not
// contractually stable, so the sets live in configuration rather than
// in code.
type Ruleset struct {
	// IncomeActions are action labels that carry a gross amount.
	IncomeActions []string `yaml:"income_actions"`
	// TaxActions are action labels of withholding rows.
	TaxActions []string `yaml:"tax_actions"`
	// InterestWords mark an action label as interest-like when they
	// appear in it as a substring.
	InterestWords []string `yaml:"interest_words"`
	// ReinvestActions are action labels that imply reinvestment.
	ReinvestActions []string `yaml:"reinvest_actions"`
	// ReinvestKeywords mark a description as reinvested,
	// case-insensitive.
	ReinvestKeywords []string `yaml:"reinvest_keywords"`
}

// DefaultRuleset returns the Charles Schwab vocabulary this tool was
// written against.
func DefaultRuleset() Ruleset {
	return Ruleset{
		IncomeActions: []string{
			"Qualified Dividend", "Cash Dividend", "Reinvest Dividend",
			"Credit Interest", "Bond Interest", "Pr Yr Cash Div", "Bank Interest",
		},
		TaxActions:       []string{"NRA Tax Adj", "Pr Yr NRA Tax"},
		InterestWords:    []string{"Interest", "Bank"},
		ReinvestActions:  []string{"Reinvest Dividend"},
		ReinvestKeywords: []string{"reinvest"},
	}
}

// IsIncome reports whether an action label carries a gross amount.
func (r Ruleset) IsIncome(action string) bool { return slices.Contains(r.IncomeActions, action) }

// IsTax reports whether an action label is a withholding row.
func (r Ruleset) IsTax(action string) bool { return slices.Contains(r.TaxActions, action) }

// Classifier interprets a raw entry's action label and description
// according to a rule set.
type Classifier struct {
	rules Ruleset
}

// NewClassifier returns a classifier for the given rule set.
func NewClassifier(rules Ruleset) *Classifier { return &Classifier{rules: rules} }

// Classify maps an entry to its income kind and reinvestment flag.
//
// It is total: any label not recognized as interest-like classifies as
// Dividend, the dominant case, rather than being rejected.
// Reinvestment is detected from the explicit entry marker, from the
// action label, or from a keyword in the description; any one signal
// is sufficient.
func (c *Classifier) Classify(e RawEntry) (kind Kind, reinvested bool) {
	kind = Dividend
	for _, w := range c.rules.InterestWords {
		if strings.Contains(e.Action, w) {
			kind = Interest
			break
		}
	}

	reinvested = e.Reinvested || slices.Contains(c.rules.ReinvestActions, e.Action)
	if !reinvested {
		desc := strings.ToLower(e.Description)
		for _, kw := range c.rules.ReinvestKeywords {
			if strings.Contains(desc, strings.ToLower(kw)) {
				reinvested = true
				break
			}
		}
	}
	return kind, reinvested
}
