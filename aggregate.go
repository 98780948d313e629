package divtax

// Totals accumulates the six monetary fields of a set of records plus
// a transaction count. Its zero value is ready to use.
type Totals struct {
	GrossUSD    Money
	WithheldUSD Money
	NetUSD      Money
	GrossJPY    Money
	WithheldJPY Money
	NetJPY      Money
	Count       int
}

func (t *Totals) add(r DividendRecord) {
	t.GrossUSD = t.GrossUSD.Add(r.GrossUSD)
	t.WithheldUSD = t.WithheldUSD.Add(r.WithheldUSD)
	t.NetUSD = t.NetUSD.Add(r.NetUSD)
	t.GrossJPY = t.GrossJPY.Add(r.GrossJPY)
	t.WithheldJPY = t.WithheldJPY.Add(r.WithheldJPY)
	t.NetJPY = t.NetJPY.Add(r.NetJPY)
	t.Count++
}

// Add folds another totals value into t.
func (t *Totals) Add(o Totals) {
	t.GrossUSD = t.GrossUSD.Add(o.GrossUSD)
	t.WithheldUSD = t.WithheldUSD.Add(o.WithheldUSD)
	t.NetUSD = t.NetUSD.Add(o.NetUSD)
	t.GrossJPY = t.GrossJPY.Add(o.GrossJPY)
	t.WithheldJPY = t.WithheldJPY.Add(o.WithheldJPY)
	t.NetJPY = t.NetJPY.Add(o.NetJPY)
	t.Count += o.Count
}

// SymbolSummary is the aggregate of all records of one (symbol, kind)
// pair. A symbol paying both dividends and interest produces two rows.
type SymbolSummary struct {
	Symbol      string
	Description string
	Kind        Kind
	Totals
}

// AccountTotals is the aggregate of all records of one account.
type AccountTotals struct {
	Account string
	Totals
}

// BySymbol groups records by (symbol, kind), in insertion order of the
// first occurrence of each pair. Records without a symbol group under
// their description. The fold is pure: calling it twice over the same
// input yields the same result, and an empty input yields no rows.
func BySymbol(records []DividendRecord) []SymbolSummary {
	type key struct {
		symbol string
		kind   Kind
	}
	var summaries []SymbolSummary
	index := make(map[key]int)

	for _, r := range records {
		symbol := r.Symbol
		if symbol == "" {
			symbol = r.Description
		}
		k := key{symbol: symbol, kind: r.Kind}
		i, ok := index[k]
		if !ok {
			i = len(summaries)
			index[k] = i
			summaries = append(summaries, SymbolSummary{
				Symbol:      symbol,
				Description: r.Description,
				Kind:        r.Kind,
			})
		}
		summaries[i].add(r)
	}
	return summaries
}

// ByAccount groups records by account identifier, in insertion order
// of first occurrence, and returns the per-account rows together with
// a grand total across all accounts. An empty input yields no rows and
// a zero grand total.
func ByAccount(records []DividendRecord) ([]AccountTotals, Totals) {
	var accounts []AccountTotals
	index := make(map[string]int)
	var grand Totals

	for _, r := range records {
		i, ok := index[r.Account]
		if !ok {
			i = len(accounts)
			index[r.Account] = i
			accounts = append(accounts, AccountTotals{Account: r.Account})
		}
		accounts[i].add(r)
		grand.add(r)
	}
	return accounts, grand
}
