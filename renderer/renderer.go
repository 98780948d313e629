// Package renderer turns reports into markdown bodies for the console.
package renderer

import (
	"bytes"
	"fmt"

	"github.com/kyamaguchi/divtax"
	"github.com/kyamaguchi/divtax/date"
	md "github.com/nao1215/markdown"
)

// Records renders the transaction detail as a markdown table.
func Records(records []divtax.DividendRecord) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Dividend & Interest Transactions")

	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			r.Date.String(),
			r.Account,
			symbolOf(r),
			r.Kind.String(),
			reinvestMark(r.Reinvested),
			r.GrossUSD.String(),
			r.WithheldUSD.String(),
			r.NetUSD.String(),
			r.Rate.Rate.String(),
			r.NetJPY.String(),
		})
	}
	doc.Table(md.TableSet{
		Header: []string{"Date", "Account", "Symbol", "Type", "Reinv", "Gross", "Tax", "Net", "Rate", "Net JPY"},
		Rows:   rows,
	})
	return doc.String()
}

// Symbols renders the per-symbol summary as a markdown table.
func Symbols(summaries []divtax.SymbolSummary) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Summary by Symbol")

	rows := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, []string{
			s.Symbol,
			s.Kind.String(),
			fmt.Sprint(s.Count),
			s.GrossUSD.String(),
			s.WithheldUSD.String(),
			s.NetUSD.String(),
			s.NetJPY.String(),
		})
	}
	doc.Table(md.TableSet{
		Header: []string{"Symbol", "Type", "Tx", "Gross", "Tax", "Net", "Net JPY"},
		Rows:   rows,
	})
	return doc.String()
}

// Accounts renders the per-account totals and the grand total.
func Accounts(accounts []divtax.AccountTotals, grand divtax.Totals) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Account Summary")

	rows := make([][]string, 0, len(accounts)+1)
	for _, a := range accounts {
		rows = append(rows, totalsRow(a.Account, a.Totals))
	}
	rows = append(rows, totalsRow("Total", grand))
	doc.Table(md.TableSet{
		Header: []string{"Account", "Tx", "Gross", "Tax", "Net", "Gross JPY", "Tax JPY", "Net JPY"},
		Rows:   rows,
	})
	return doc.String()
}

// Quotes renders rate lookups, one row per requested date.
func Quotes(days []date.Date, quotes []divtax.Quote) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("USD/JPY Rates")

	rows := make([][]string, 0, len(quotes))
	for i, q := range quotes {
		source := "default (no data on or before)"
		if !q.Defaulted {
			source = q.On.String()
		}
		rows = append(rows, []string{days[i].String(), q.Rate.String(), source})
	}
	doc.Table(md.TableSet{
		Header: []string{"Date", "Rate", "Source"},
		Rows:   rows,
	})
	return doc.String()
}

func totalsRow(label string, t divtax.Totals) []string {
	return []string{
		label,
		fmt.Sprint(t.Count),
		t.GrossUSD.String(),
		t.WithheldUSD.String(),
		t.NetUSD.String(),
		t.GrossJPY.String(),
		t.WithheldJPY.String(),
		t.NetJPY.String(),
	}
}

func symbolOf(r divtax.DividendRecord) string {
	if r.Symbol != "" {
		return r.Symbol
	}
	return r.Description
}

func reinvestMark(reinvested bool) string {
	if reinvested {
		return "yes"
	}
	return ""
}
