package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnolang/qcheck/formatter"
	"github.com/gnolang/qcheck/runner"
)

var (
	fieldList   string
	ignoreRules string
	queryFiles  []string
	jsonOutput  bool
	outPath     string
)

var validateCmd = &cobra.Command{
	Use:   "validate [queries...]",
	Short: "Validate queries given as arguments or read from files",
	Example: `  qcheck validate '(A AND B)'
  qcheck validate --fields COMPANY,TITLE 'COMPANY:Acme AND TITLE:Engineer'
  qcheck validate -f saved/ --json -o report.json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 && len(queryFiles) == 0 {
			return errors.New("please provide queries or --file paths")
		}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		config, err := runner.LoadConfig(cfgFile)
		if err != nil {
			return err
		}
		if fieldList != "" {
			config.Fields = splitList(fieldList)
		}
		if ignoreRules != "" {
			config.Ignore = append(config.Ignore, splitList(ignoreRules)...)
		}

		invalid, err := validateQueries(ctx, cmd.OutOrStdout(), logger, config, args, queryFiles, jsonOutput, outPath)
		if err != nil {
			return err
		}
		if invalid > 0 {
			return ErrInvalidQueries
		}
		return nil
	},
}

func init() {
	validateCmd.Flags().StringVar(&fieldList, "fields", "", "Comma-separated list of allowed field names (overrides config)")
	validateCmd.Flags().StringVar(&ignoreRules, "ignore", "", "Comma-separated list of checks to skip")
	validateCmd.Flags().StringSliceVarP(&queryFiles, "file", "f", nil, "Query file or directory (repeatable)")
	validateCmd.Flags().BoolVar(&jsonOutput, "json", false, "Output reports in JSON format")
	validateCmd.Flags().StringVarP(&outPath, "output", "o", "", "Output path (when using JSON)")

	// `qcheck [queries...]` accepts the same flags as `qcheck validate`
	rootCmd.Flags().AddFlagSet(validateCmd.Flags())
}

// validateQueries validates argument queries and query files, prints the
// reports and returns how many queries were invalid.
func validateQueries(
	ctx context.Context,
	out io.Writer,
	logger *zap.Logger,
	config runner.Config,
	queries []string,
	paths []string,
	isJson bool,
	jsonOutput string,
) (int, error) {
	r := runner.New(config.NewValidator(logger), logger, config)
	if !isJson {
		r.SetProgressOutput(os.Stderr)
	}

	reports, err := r.ProcessSources(ctx, queries)
	if err != nil {
		return 0, err
	}

	if len(paths) > 0 {
		fileReports, err := r.ProcessFiles(ctx, paths)
		if err != nil {
			return 0, err
		}
		reports = append(reports, fileReports...)
	}

	if err := printReports(out, reports, isJson, jsonOutput); err != nil {
		return 0, err
	}
	return runner.Invalid(reports), nil
}

func printReports(out io.Writer, reports []runner.Report, isJson bool, jsonOutput string) error {
	if !isJson {
		// text output
		_, err := fmt.Fprint(out, formatter.GenerateFormattedReport(reports))
		return err
	}

	// JSON output
	d, err := json.MarshalIndent(reports, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshalling reports to JSON: %w", err)
	}
	if jsonOutput == "" {
		_, err = fmt.Fprintln(out, string(d))
		return err
	}
	if err := os.WriteFile(jsonOutput, d, 0o644); err != nil {
		return fmt.Errorf("error writing JSON output file: %w", err)
	}
	return nil
}

func splitList(s string) []string {
	var items []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
