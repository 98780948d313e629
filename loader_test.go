package divtax

import (
	"strings"
	"testing"
)

const sampleExport = `{
  "FromDate": "01/01/2024",
  "ToDate": "12/31/2024",
  "BrokerageTransactions": [
    {
      "Date": "06/28/2024",
      "Action": "Qualified Dividend",
      "Symbol": "ABC",
      "Description": "ABC CORP",
      "Quantity": "",
      "Price": "",
      "Fees & Comm": "",
      "Amount": "$100.00"
    },
    {
      "Date": "06/28/2024",
      "Action": "NRA Tax Adj",
      "Symbol": "ABC",
      "Description": "ABC CORP",
      "Amount": "-$10.00"
    },
    {
      "Date": "09/15/2024 as of 09/13/2024",
      "Action": "Reinvest Dividend",
      "Symbol": "XYZ",
      "Description": "XYZ FUND",
      "Amount": "$25.50"
    }
  ]
}`

func TestDecodeTransactions(t *testing.T) {
	txs, err := DecodeTransactions(strings.NewReader(sampleExport), "brokerage-2024")
	if err != nil {
		t.Fatalf("DecodeTransactions() error = %v", err)
	}
	if len(txs) != 3 {
		t.Fatalf("DecodeTransactions() len = %d want 3", len(txs))
	}

	first := txs[0]
	if first.Account != "brokerage-2024" {
		t.Errorf("Account = %q want %q", first.Account, "brokerage-2024")
	}
	if first.Action != "Qualified Dividend" || first.Amount != "$100.00" {
		t.Errorf("first row = %+v want the qualified dividend", first)
	}
	// the "as of" date survives untouched; the builder strips it.
	if txs[2].Date != "09/15/2024 as of 09/13/2024" {
		t.Errorf("Date = %q want the raw broker form", txs[2].Date)
	}
}

func TestDecodeTransactions_endToEnd(t *testing.T) {
	txs, err := DecodeTransactions(strings.NewReader(sampleExport), "brokerage-2024")
	if err != nil {
		t.Fatalf("DecodeTransactions() error = %v", err)
	}
	records, errs := testBuilder().FromBrokerage(txs)
	if len(errs) != 0 {
		t.Fatalf("FromBrokerage() errs = %v", errs)
	}
	if len(records) != 2 {
		t.Fatalf("records len = %d want 2", len(records))
	}
	abc := records[0]
	if !abc.GrossUSD.Equal(M(100, USD)) || !abc.WithheldUSD.Equal(M(10, USD)) {
		t.Errorf("ABC gross/withheld = %v/%v want 100/10", abc.GrossUSD.Amount(), abc.WithheldUSD.Amount())
	}
	xyz := records[1]
	if xyz.Date != d(2024, 9, 15) {
		t.Errorf("XYZ date = %v want 2024-09-15 (settlement annotation dropped)", xyz.Date)
	}
	if !xyz.Reinvested {
		t.Error("XYZ reinvested = false want true")
	}
}

func TestDecodeTransactions_malformed(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"not json", "hello"},
		{"missing transactions", `{"Foo": []}`},
		{"transactions not a list", `{"BrokerageTransactions": 42}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeTransactions(strings.NewReader(tt.in), "x"); err == nil {
				t.Error("want error, got none")
			}
		})
	}
}
