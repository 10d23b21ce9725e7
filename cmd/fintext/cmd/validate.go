package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/steuerbar/fintext/pkg/csvtext"
	"github.com/steuerbar/fintext/pkg/datev"
)

var (
	validateFormat    string
	validateDelimiter string
	validateHasHeader bool
)

// validateCmd represents the validate command.
var validateCmd = &cobra.Command{
	Use:   "validate <file>...",
	Short: "Validate DATEV or CSV files",
	Long: `Validate the structure of DATEV export files or generic CSV files.

For DATEV files the meta-header is checked against its detected format
version, field by field. For CSV files the row field counts are checked
against the header.

Example:
  fintext validate --format datev datev/EXTF_00001.csv
  fintext validate --format csv --delimiter ";" export.csv`,
	Args: cobra.MinimumNArgs(1),
	Run:  runValidate,
}

func init() {
	validateCmd.Flags().StringVar(&validateFormat, "format", "datev", "file format: datev or csv")
	validateCmd.Flags().StringVar(&validateDelimiter, "delimiter", ",", "CSV delimiter (csv format only)")
	validateCmd.Flags().BoolVar(&validateHasHeader, "header", true, "treat the first CSV record as a header (csv format only)")
}

func runValidate(cmd *cobra.Command, args []string) {
	failed := 0
	for _, path := range args {
		var err error
		switch validateFormat {
		case "datev":
			err = validateDatev(path)
		case "csv":
			err = validateCSV(path)
		default:
			exitOnError(fmt.Errorf("unknown format %q", validateFormat), "invalid arguments")
		}

		if err != nil {
			slog.Error("Validation failed", "path", path, "error", err)
			fmt.Printf("FAIL %s: %v\n", path, err)
			failed++
			continue
		}
		fmt.Printf("OK   %s\n", path)
	}

	if failed > 0 {
		os.Exit(1)
	}
}

func validateDatev(path string) error {
	doc, err := datev.ParseFile(path, datev.DefaultRegistry())
	if err != nil {
		return err
	}
	if err := doc.Validate(); err != nil {
		return err
	}
	if ok, offending := doc.IsConsistent(); !ok {
		return fmt.Errorf("inconsistent field counts in data rows %v", offending)
	}
	return nil
}

func validateCSV(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read CSV file: %w", err)
	}

	delimiter := csvtext.DefaultDelimiter
	if validateDelimiter != "" {
		delimiter = []rune(validateDelimiter)[0]
	}

	doc := csvtext.ParseDocument(string(data), csvtext.Options{
		Delimiter: delimiter,
		HasHeader: validateHasHeader,
	})
	if ok, offending := doc.IsConsistent(); !ok {
		return fmt.Errorf("inconsistent field counts in rows %v", offending)
	}
	return nil
}
