// Package cmd implements the CLI application to generate dividend tax
// reports.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	"github.com/kyamaguchi/divtax"
)

// Commands returns all subcommands of the dtx tool.
func Commands() []subcommands.Command {
	return []subcommands.Command{
		&runCmd{},
		&txCmd{},
		&rateCmd{},
		&topicCmd{},
	}
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", "", "Path to the YAML configuration file")

// loadConfig reads the app configuration, from the -config file if given.
func loadConfig() (divtax.Config, error) {
	return divtax.LoadConfig(*configFile)
}

// openRates loads the historical rate file into a rate table. A
// missing file is expected (first run, interest-only accounts) and
// yields an empty table: every date then converts at the default rate.
func openRates(path string, cfg divtax.Config) (*divtax.RateTable, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Printf("warning, rate file %q does not exist, using the default rate %v for every date", path, cfg.Rate())
		return divtax.NewRateTable(cfg.Rate()), nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot open rate file %q: %w", path, err)
	}
	defer f.Close()

	series, err := divtax.DecodeRateSeries(f)
	if err != nil {
		return nil, fmt.Errorf("cannot decode rate file %q: %w", path, err)
	}
	return divtax.NewRateTable(cfg.Rate(), series...), nil
}

// loadTransactions decodes every given brokerage export, tagging rows
// with the export's file stem as account identifier.
func loadTransactions(paths []string) ([]divtax.Transaction, error) {
	var all []divtax.Transaction
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("cannot open export %q: %w", path, err)
		}
		account := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		txs, err := divtax.DecodeTransactions(f, account)
		f.Close()
		if err != nil {
			return nil, err
		}
		all = append(all, txs...)
	}
	return all, nil
}

// exportArgs returns the export files to process: the positional
// arguments, or every .json file in the working directory.
func exportArgs(f *flag.FlagSet) ([]string, error) {
	if f.NArg() > 0 {
		return f.Args(), nil
	}
	files, err := filepath.Glob("*.json")
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, errors.New("no brokerage export files found (pass them as arguments or place *.json in the working directory)")
	}
	return files, nil
}

// printMarkdown renders markdown for the terminal, falling back to the
// raw text when rendering fails.
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle())
	if err != nil {
		fmt.Print(md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}
