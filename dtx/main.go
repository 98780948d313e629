package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/kyamaguchi/divtax/cmd"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	// Shell completion; a no-op outside a completion invocation.
	rateFlags := map[string]complete.Predictor{
		"rates":        predict.Files("*.csv"),
		"default-rate": predict.Something,
	}
	completion := &complete.Command{
		Sub: map[string]*complete.Command{
			"run": {Flags: map[string]complete.Predictor{
				"rates":        predict.Files("*.csv"),
				"out":          predict.Dirs("*"),
				"default-rate": predict.Something,
			}, Args: predict.Files("*.json")},
			"tx":    {Flags: rateFlags, Args: predict.Files("*.json")},
			"rate":  {Flags: rateFlags},
			"topic": {},
		},
		Flags: map[string]complete.Predictor{
			"config": predict.Files("*.yaml"),
		},
	}
	completion.Complete("dtx")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	for _, c := range cmd.Commands() {
		commander.Register(c, "")
	}

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
