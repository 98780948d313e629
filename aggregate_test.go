package divtax

import "testing"

func testRecords(t *testing.T) []DividendRecord {
	t.Helper()
	b := testBuilder()
	entries := []RawEntry{
		{Date: "01/05/2024", Account: "taxable", Symbol: "ABC", Description: "ABC CORP", Action: "Cash Dividend", Gross: "$100.00", Withheld: "-$10.00"},
		{Date: "06/28/2024", Account: "taxable", Symbol: "ABC", Description: "ABC CORP", Action: "Reinvest Dividend", Gross: "$50.00", Withheld: "-$5.00"},
		{Date: "06/28/2024", Account: "ira", Symbol: "XYZ", Description: "XYZ FUND", Action: "Qualified Dividend", Gross: "$20.00"},
		{Date: "06/28/2024", Account: "taxable", Description: "SCHWAB BANK INT", Action: "Bank Interest", Gross: "$1.00"},
	}
	var records []DividendRecord
	for _, e := range entries {
		record, err := b.Build(e)
		if err != nil {
			t.Fatalf("Build(%v) error = %v", e, err)
		}
		records = append(records, record)
	}
	return records
}

func TestBySymbol(t *testing.T) {
	records := testRecords(t)
	summaries := BySymbol(records)

	if len(summaries) != 3 {
		t.Fatalf("BySymbol() len = %d want 3", len(summaries))
	}
	// insertion order of first occurrence.
	if summaries[0].Symbol != "ABC" || summaries[1].Symbol != "XYZ" || summaries[2].Symbol != "SCHWAB BANK INT" {
		t.Errorf("order = %q, %q, %q want ABC, XYZ, SCHWAB BANK INT",
			summaries[0].Symbol, summaries[1].Symbol, summaries[2].Symbol)
	}

	abc := summaries[0]
	if abc.Kind != Dividend {
		t.Errorf("ABC kind = %v want Dividend", abc.Kind)
	}
	if !abc.GrossUSD.Equal(M(150, USD)) {
		t.Errorf("ABC gross = %v want 150", abc.GrossUSD.Amount())
	}
	if abc.Count != 2 {
		t.Errorf("ABC count = %d want 2", abc.Count)
	}
}

// A symbol paying both dividends and interest produces two rows.
func TestBySymbol_splitsByKind(t *testing.T) {
	b := testBuilder()
	var records []DividendRecord
	for _, action := range []string{"Cash Dividend", "Bond Interest"} {
		record, err := b.Build(RawEntry{Date: "06/28/2024", Account: "a", Symbol: "DUAL", Description: "DUAL", Action: action, Gross: "$10.00"})
		if err != nil {
			t.Fatal(err)
		}
		records = append(records, record)
	}
	summaries := BySymbol(records)
	if len(summaries) != 2 {
		t.Fatalf("len = %d want 2 rows for one symbol with two kinds", len(summaries))
	}
	if summaries[0].Kind != Dividend || summaries[1].Kind != Interest {
		t.Errorf("kinds = %v, %v want Dividend, Interest", summaries[0].Kind, summaries[1].Kind)
	}
}

// Summing the summaries reproduces the record totals exactly.
func TestBySymbol_conservation(t *testing.T) {
	records := testRecords(t)

	var want Totals
	for _, r := range records {
		want.add(r)
	}
	var got Totals
	for _, s := range BySymbol(records) {
		got.Add(s.Totals)
	}

	if !got.GrossUSD.Equal(want.GrossUSD) || !got.GrossJPY.Equal(want.GrossJPY) ||
		!got.WithheldUSD.Equal(want.WithheldUSD) || !got.WithheldJPY.Equal(want.WithheldJPY) ||
		!got.NetUSD.Equal(want.NetUSD) || !got.NetJPY.Equal(want.NetJPY) || got.Count != want.Count {
		t.Errorf("summed summaries = %+v want %+v", got, want)
	}
}

func TestByAccount(t *testing.T) {
	records := testRecords(t)
	accounts, grand := ByAccount(records)

	if len(accounts) != 2 {
		t.Fatalf("ByAccount() len = %d want 2", len(accounts))
	}
	if accounts[0].Account != "taxable" || accounts[1].Account != "ira" {
		t.Errorf("order = %q, %q want taxable, ira", accounts[0].Account, accounts[1].Account)
	}

	// grand total equals the sum of all per-account rows.
	var sum Totals
	for _, a := range accounts {
		sum.Add(a.Totals)
	}
	if !sum.GrossUSD.Equal(grand.GrossUSD) || !sum.NetJPY.Equal(grand.NetJPY) || sum.Count != grand.Count {
		t.Errorf("sum of accounts = %+v want grand total %+v", sum, grand)
	}
}

func TestAggregate_empty(t *testing.T) {
	if got := BySymbol(nil); len(got) != 0 {
		t.Errorf("BySymbol(nil) = %v want empty", got)
	}
	accounts, grand := ByAccount(nil)
	if len(accounts) != 0 {
		t.Errorf("ByAccount(nil) = %v want empty", accounts)
	}
	if grand.Count != 0 || !grand.GrossUSD.IsZero() {
		t.Errorf("grand total = %+v want zero", grand)
	}
}

// The folds are pure: repeated calls over the same input agree.
func TestAggregate_idempotent(t *testing.T) {
	records := testRecords(t)
	first := BySymbol(records)
	second := BySymbol(records)
	if len(first) != len(second) {
		t.Fatalf("len = %d then %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Symbol != second[i].Symbol || !first[i].GrossUSD.Equal(second[i].GrossUSD) {
			t.Errorf("row %d differs between calls: %+v vs %+v", i, first[i], second[i])
		}
	}
}
