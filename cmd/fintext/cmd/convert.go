package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/steuerbar/fintext/pkg/config"
	"github.com/steuerbar/fintext/pkg/convert"
	"github.com/steuerbar/fintext/pkg/csvtext"
	"github.com/steuerbar/fintext/pkg/history"
	"github.com/steuerbar/fintext/pkg/mt940"
)

var dryRun bool

// convertCmd represents the convert command.
var convertCmd = &cobra.Command{
	Use:   "convert <file>...",
	Short: "Convert MT940 statements to DATEV exports",
	Long: `Convert SWIFT MT940 bank statement files to DATEV EXTF booking
batch CSV files.

This command:
1. Parses each MT940 statement file
2. Skips statements already converted (SQLite history)
3. Maps transactions to contra accounts via the account mapping
4. Writes one DATEV export per statement to the output directory
5. Records the conversion in the history database

Example:
  fintext convert statements/march.sta
  fintext convert statements/*.sta --dry-run`,
	Args: cobra.MinimumNArgs(1),
	Run:  runConvert,
}

func init() {
	convertCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Dry run mode (no file writes)")
}

func runConvert(cmd *cobra.Command, args []string) {
	slog.Info("Starting conversion", "files", len(args), "dry_run", dryRun)

	// Load configuration
	cfg, err := config.Load(getConfigFile())
	exitOnError(err, "failed to load configuration")

	// Validate required fields
	if err := cfg.Validate(
		[]string{"datev", "consultantId"},
		[]string{"datev", "clientId"},
		[]string{"convert", "mappingPath"},
		[]string{"convert", "outputDir"},
		[]string{"convert", "historyDbPath"},
	); err != nil {
		exitOnError(err, "invalid configuration")
	}

	// Open history database
	slog.Debug("Opening history database", "path", cfg.Convert.HistoryDBPath)
	conn, err := history.Open(cfg.Convert.HistoryDBPath)
	exitOnError(err, "failed to open history database")
	defer conn.Close()
	hist := history.New(conn)

	// Initialize account mapper
	mapper, err := convert.NewMapper(cfg.Convert.MappingPath)
	exitOnError(err, "failed to load account mapping")

	settings := convert.Settings{
		ConsultantID:    cfg.Datev.ConsultantID,
		ClientID:        cfg.Datev.ClientID,
		SKR:             cfg.Datev.SKR,
		FiscalYearStart: cfg.Datev.FiscalYearStart,
		AccountLength:   cfg.Datev.AccountLength,
	}
	if cfg.Convert.ColumnWidthsPath != "" {
		widths, err := csvtext.LoadColumnWidths(cfg.Convert.ColumnWidthsPath)
		exitOnError(err, "failed to load column width config")
		settings.Widths = widths
	}
	cvtr := convert.NewConverter(mapper, settings)

	if !dryRun {
		if err := os.MkdirAll(cfg.Convert.OutputDir, 0755); err != nil {
			exitOnError(err, "failed to create output directory")
		}
	}

	converted := 0
	skipped := 0
	for _, path := range args {
		slog.Info("Parsing statement file", "path", path)
		statement, err := mt940.ParseFile(path)
		if err != nil {
			slog.Error("Failed to parse statement", "path", path, "error", err)
			continue
		}

		done, err := hist.IsConverted(statement.Reference, statement.Account, statement.Number)
		if err != nil {
			slog.Error("Failed to check conversion history", "path", path, "error", err)
			continue
		}
		if done {
			slog.Info("Statement already converted, skipping",
				"reference", statement.Reference,
				"account", statement.Account,
				"number", statement.Number,
			)
			skipped++
			continue
		}

		doc, err := cvtr.ConvertStatement(statement)
		if err != nil {
			slog.Error("Failed to convert statement", "path", path, "error", err)
			continue
		}
		if err := doc.Validate(); err != nil {
			slog.Error("Generated document failed validation", "path", path, "error", err)
			continue
		}

		outPath := filepath.Join(cfg.Convert.OutputDir, convert.ExportFileName(statement))
		if dryRun {
			fmt.Printf("[DRY RUN] Would write %s\n", outPath)
			fmt.Println(doc.String())
			continue
		}

		if err := doc.WriteFile(outPath); err != nil {
			slog.Error("Failed to write export", "path", outPath, "error", err)
			continue
		}
		if err := hist.RecordConversion(history.ConversionRecord{
			StatementRef: statement.Reference,
			Account:      statement.Account,
			StatementNo:  statement.Number,
			Transactions: len(statement.Transactions),
			OutputFile:   outPath,
		}); err != nil {
			slog.Error("Failed to record conversion", "path", outPath, "error", err)
		}

		slog.Info("Wrote export",
			"path", outPath,
			"transactions", len(statement.Transactions),
		)
		converted++
	}

	if !dryRun {
		if err := hist.SetMetadata("last_input", args[len(args)-1]); err != nil {
			slog.Error("Failed to record last input", "error", err)
		}
	}

	slog.Info("Conversion completed", "converted", converted, "skipped", skipped)
}
