package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/subcommands"
	"github.com/kyamaguchi/divtax"
	"github.com/kyamaguchi/divtax/renderer"
)

// Output file names, matching the columns documented in 'dtx topic reports'.
const (
	historyFile = "dividend_tax_history.csv"
	summaryFile = "dividend_tax_summary_by_symbol.csv"
)

// runCmd holds the flags for the 'run' subcommand.
type runCmd struct {
	rates       string
	out         string
	defaultRate float64
}

func (*runCmd) Name() string     { return "run" }
func (*runCmd) Synopsis() string { return "convert brokerage exports into dividend tax reports" }
func (*runCmd) Usage() string {
	return `dtx run [-rates <csv>] [-out <dir>] [export.json ...]

  Reads the given brokerage exports (every *.json in the working
  directory by default), converts each dividend and interest event
  into USD and JPY amounts, writes the history and per-symbol summary
  CSV files, and prints the per-account totals.
`
}

func (c *runCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.rates, "rates", "", "Historical USD/JPY prices CSV. Defaults to the configured rate_file.")
	f.StringVar(&c.out, "out", "", "Output directory for the CSV reports. Defaults to the configured output_dir.")
	f.Float64Var(&c.defaultRate, "default-rate", 0, "USD/JPY rate for dates without historical data. Defaults to the configured default_rate.")
}

func (c *runCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}
	if c.rates != "" {
		cfg.RateFile = c.rates
	}
	if c.out != "" {
		cfg.OutputDir = c.out
	}
	if c.defaultRate != 0 {
		cfg.DefaultRate = c.defaultRate
	}

	files, err := exportArgs(f)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	report, status := process(cfg, files)
	if status != subcommands.ExitSuccess {
		return status
	}

	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output directory: %v\n", err)
		return subcommands.ExitFailure
	}
	outputs := []struct {
		name   string
		writer divtax.ReportWriter
	}{
		{historyFile, divtax.HistoryCSV{}},
		{summaryFile, divtax.SymbolSummaryCSV{}},
	}
	for _, out := range outputs {
		path := filepath.Join(cfg.OutputDir, out.name)
		if err := writeReport(path, out.writer, report); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing %q: %v\n", path, err)
			return subcommands.ExitFailure
		}
	}

	printMarkdown(renderer.Accounts(report.Accounts, report.GrandTotal))
	fmt.Printf("Processed %d records from %d files into %s\n", len(report.Records), len(files), cfg.OutputDir)
	return subcommands.ExitSuccess
}

// process runs the conversion pipeline over the given export files.
// Malformed entries are reported on stderr and skipped; the rest of
// the batch still produces a report.
func process(cfg divtax.Config, files []string) (*divtax.Report, subcommands.ExitStatus) {
	rates, err := openRates(cfg.RateFile, cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return nil, subcommands.ExitFailure
	}
	txs, err := loadTransactions(files)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return nil, subcommands.ExitFailure
	}

	builder := divtax.NewBuilder(cfg.Rules, rates)
	records, errs := builder.FromBrokerage(txs)
	for _, err := range errs {
		fmt.Fprintf(os.Stderr, "Warning, skipping entry: %v\n", err)
	}
	return divtax.NewReport(records), subcommands.ExitSuccess
}

func writeReport(path string, writer divtax.ReportWriter, report *divtax.Report) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := writer.Write(f, report); err != nil {
		return err
	}
	return f.Close()
}
