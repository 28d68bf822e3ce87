// Command pg2sqlite rewrites a PostgreSQL dump file into a SQLite script.
// It takes exactly two paths; the few optional flags must come before them.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"pg2sqlite/internal/convert"
	"pg2sqlite/internal/output"
	"pg2sqlite/internal/rewrite"
)

const usageText = "Usage: pg2sqlite <input.sql> <output.sql>"

var errUsage = errors.New("expected exactly two arguments")

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command and returns the process exit status.
func run(args []string, stdout, stderr io.Writer) int {
	flags, paths := splitArgs(args)
	if len(paths) != 2 {
		fmt.Fprintln(stdout, usageText)
		return 1
	}

	rootCmd := newRootCmd(stdout, stderr)
	rootCmd.SetArgs(append(append(flags, "--"), paths...))

	err := rootCmd.Execute()
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errUsage):
		fmt.Fprintln(stdout, usageText)
		return 1
	default:
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
}

// splitArgs separates the leading optional flags from the paths. Scanning
// stops at the first argument that is not one of those flags; everything from
// there on is a path, even when it starts with "-" (including -h or --help).
func splitArgs(args []string) (flags, paths []string) {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		name, _, hasValue := strings.Cut(arg, "=")
		switch name {
		case "--verbose", "-v":
			flags = append(flags, arg)
			continue
		case "--rules", "--report", "-r":
			if hasValue {
				flags = append(flags, arg)
				continue
			}
			if i+1 < len(args) {
				flags = append(flags, arg, args[i+1])
				i++
				continue
			}
		}
		return flags, append(paths, args[i:]...)
	}
	return flags, paths
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var rulesFile string
	var reportFormat string
	var verbose bool

	rootCmd := &cobra.Command{
		Use:   "pg2sqlite <input.sql> <output.sql>",
		Short: "Convert a PostgreSQL dump into a SQLite script",
		Long: `pg2sqlite rewrites a PostgreSQL SQL dump into a best-effort SQLite script.

The dump is run through an ordered table of regular-expression rewrites
(comments, SET and pg_catalog calls removed, SERIAL/VARCHAR/TIMESTAMP/BOOLEAN
mapped to SQLite types, schema prefixes dropped), then only the lines starting
with CREATE TABLE, INSERT INTO or CREATE INDEX are kept. The result is not
validated.

Examples:
  pg2sqlite dump.sql app.sqlite.sql
  pg2sqlite --report summary dump.sql app.sqlite.sql
  pg2sqlite --rules my-rules.toml dump.sql app.sqlite.sql`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return errUsage
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := slog.New(slog.DiscardHandler)
			if verbose {
				logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
			}

			var formatter output.Formatter
			if reportFormat != "" {
				f, err := output.NewFormatter(reportFormat)
				if err != nil {
					return err
				}
				formatter = f
			}

			rules := rewrite.Default()
			if rulesFile != "" {
				rs, err := rewrite.LoadFile(rulesFile)
				if err != nil {
					return fmt.Errorf("failed to load rules: %w", err)
				}
				rules = rs
				logger.Debug("rules loaded", "path", rulesFile, "count", rules.Len())
			}

			c := convert.New(convert.Options{
				Rules:    rules,
				Progress: stdout,
				Logger:   logger,
			})
			res, err := c.ConvertFile(args[0], args[1])
			if err != nil {
				return err
			}

			if formatter == nil {
				return nil
			}
			report, err := formatter.FormatReport(res)
			if err != nil {
				return fmt.Errorf("failed to format report: %w", err)
			}
			fmt.Fprint(stdout, report)
			return nil
		},
	}

	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	rootCmd.Flags().StringVar(&rulesFile, "rules", "", "TOML file with a rewrite table to use instead of the built-in one")
	rootCmd.Flags().StringVarP(&reportFormat, "report", "r", "", "Print a conversion report after converting: summary, json or sql")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Write debug logs to stderr")

	return rootCmd
}
