package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"symexec/internal/config"
	"symexec/internal/errors"
	"symexec/internal/logx"
	"symexec/internal/parser"
	"symexec/internal/solver"
	"symexec/internal/symexec"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cfg := config.Default()
	var configPath string

	explore := func(cmd *cobra.Command, args []string) error {
		if configPath != "" {
			if err := config.LoadFile(configPath, &cfg); err != nil {
				return err
			}
		}
		return runFile(args[0], cfg)
	}

	root := &cobra.Command{
		Use:          "symexec <file>",
		Short:        "symbolically execute a block-structured IR program along every feasible path",
		Args:         cobra.ExactArgs(1),
		RunE:         explore,
		SilenceUsage: true,
	}
	root.PersistentFlags().IntVar(&cfg.MaxPaths, "max-paths", 0, "abort after this many executed paths (0 = unbounded)")
	root.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", false, "log one event per fork, solver query, and recorded error")
	root.PersistentFlags().BoolVar(&cfg.JSON, "json", false, "also print a JSON summary block before the plain-text one")
	root.PersistentFlags().StringVar(&configPath, "config", "", "YAML file overriding the flags above")

	run := &cobra.Command{
		Use:          "run <file>",
		Short:        "parse and symbolically execute a program",
		Args:         cobra.ExactArgs(1),
		RunE:         explore,
		SilenceUsage: true,
	}
	root.AddCommand(run)

	return root
}

// runFile parses path and drives exploration to completion, printing
// the mandated summary to stdout. A parse failure or a fatal
// exploration condition (the driver's budget panic, the engine's
// unsat/unknown panics) is surfaced as a returned error so main exits
// nonzero; everything else — including paths that end in a recorded
// assertion failure — is a normal, zero-exit outcome.
func runFile(path string, cfg config.Config) (err error) {
	log := logx.New(cfg.Verbose)

	source, readErr := os.ReadFile(path)
	if readErr != nil {
		return fmt.Errorf("symexec: reading %s: %w", path, readErr)
	}

	prog, perrs := parser.ParseSource(string(source))
	if len(perrs) > 0 {
		reporter := errors.NewReporter(path, string(source))
		for _, pe := range perrs {
			fmt.Fprint(os.Stderr, reporter.Format(errors.ParseSyntax, pe.Message, pe.Line, pe.Col))
		}
		return fmt.Errorf("symexec: %d parse error(s) in %s", len(perrs), path)
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("symexec: fatal: %v", r)
		}
	}()

	driver := symexec.NewDriver(solver.NewLinear(), log)
	driver.SetMaxPaths(cfg.MaxPaths)
	summary := driver.Run(prog)

	if cfg.JSON {
		data, marshalErr := json.Marshal(summary)
		if marshalErr != nil {
			return fmt.Errorf("symexec: encoding summary: %w", marshalErr)
		}
		fmt.Println(string(data))
	}

	printSummary(summary)
	return nil
}

func printSummary(summary symexec.Summary) {
	executedLine := fmt.Sprintf("Executed paths: %d", summary.Executed)
	errorLine := fmt.Sprintf("Error paths: %d", summary.Errors)

	if summary.Errors > 0 {
		color.Red(executedLine)
		color.Red(errorLine)
		return
	}
	color.Green(executedLine)
	color.Green(errorLine)
}
