package divtax

import (
	"encoding/csv"
	"fmt"
	"io"
)

// Report is the complete output surface of one processing run: the
// ordered transaction detail, the per-symbol summaries, and the
// per-account totals with their grand total. Report writers are
// column-defined by this shape.
type Report struct {
	Records    []DividendRecord
	Symbols    []SymbolSummary
	Accounts   []AccountTotals
	GrandTotal Totals
}

// NewReport aggregates a sequence of records into a report.
func NewReport(records []DividendRecord) *Report {
	accounts, grand := ByAccount(records)
	return &Report{
		Records:    records,
		Symbols:    BySymbol(records),
		Accounts:   accounts,
		GrandTotal: grand,
	}
}

// ReportWriter writes one rendering of a report. New output formats
// implement this capability; nothing in the pipeline depends on a
// concrete writer.
type ReportWriter interface {
	Write(w io.Writer, r *Report) error
}

// HistoryCSV writes the transaction-detail report, one row per record.
type HistoryCSV struct{}

func (HistoryCSV) Write(w io.Writer, r *Report) error {
	cw := csv.NewWriter(w)
	header := []string{
		"date", "account", "symbol", "description", "type",
		"gross_amount_usd", "tax_usd", "net_amount_usd",
		"exchange_rate", "gross_amount_jpy", "tax_jpy", "net_amount_jpy",
		"reinvested",
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("cannot write history header: %w", err)
	}
	for _, record := range r.Records {
		row := []string{
			record.Date.String(),
			record.Account,
			record.Symbol,
			record.Description,
			record.Kind.String(),
			record.GrossUSD.StringFixed(),
			record.WithheldUSD.StringFixed(),
			record.NetUSD.StringFixed(),
			record.Rate.Rate.String(),
			record.GrossJPY.StringFixed(),
			record.WithheldJPY.StringFixed(),
			record.NetJPY.StringFixed(),
			yesNo(record.Reinvested),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("cannot write history row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// SymbolSummaryCSV writes the per-symbol summary report.
type SymbolSummaryCSV struct{}

func (SymbolSummaryCSV) Write(w io.Writer, r *Report) error {
	cw := csv.NewWriter(w)
	header := []string{
		"symbol", "description", "type",
		"gross_amount_usd", "tax_usd", "net_amount_usd",
		"gross_amount_jpy", "tax_jpy", "net_amount_jpy",
		"transaction_count",
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("cannot write summary header: %w", err)
	}
	for _, s := range r.Symbols {
		row := []string{
			s.Symbol,
			s.Description,
			s.Kind.String(),
			s.GrossUSD.StringFixed(),
			s.WithheldUSD.StringFixed(),
			s.NetUSD.StringFixed(),
			s.GrossJPY.StringFixed(),
			s.WithheldJPY.StringFixed(),
			s.NetJPY.StringFixed(),
			fmt.Sprint(s.Count),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("cannot write summary row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
