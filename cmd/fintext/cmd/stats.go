package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/steuerbar/fintext/pkg/config"
	"github.com/steuerbar/fintext/pkg/history"
)

var statsAccount string

// statsCmd represents the stats command.
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Display conversion statistics",
	Long: `Display statistics about converted statements.

Shows:
- Total number of converted statements
- Total number of converted transactions
- Last conversion timestamp

Example:
  fintext stats
  fintext stats --account 10020030/1234567`,
	Run: runStats,
}

func init() {
	statsCmd.Flags().StringVar(&statsAccount, "account", "", "list conversions for one account")
}

func runStats(cmd *cobra.Command, args []string) {
	slog.Info("Loading configuration")

	// Load configuration
	cfg, err := config.Load(getConfigFile())
	exitOnError(err, "failed to load configuration")

	// Validate required fields
	if err := cfg.Validate([]string{"convert", "historyDbPath"}); err != nil {
		exitOnError(err, "invalid configuration")
	}

	// Open history database
	slog.Debug("Opening history database", "path", cfg.Convert.HistoryDBPath)
	conn, err := history.Open(cfg.Convert.HistoryDBPath)
	exitOnError(err, "failed to open history database")
	defer conn.Close()
	hist := history.New(conn)

	// Get statistics
	stats, err := hist.GetStats()
	exitOnError(err, "failed to get statistics")

	// Display statistics
	fmt.Println("\n=== Conversion Statistics ===")
	fmt.Printf("Total statements:   %d\n", stats.TotalStatements)
	fmt.Printf("Total transactions: %d\n", stats.TotalTransactions)

	if stats.LastConversion.Valid {
		fmt.Printf("Last conversion:    %s\n", stats.LastConversion.String)
	} else {
		fmt.Printf("Last conversion:    (never)\n")
	}

	fmt.Println()

	if statsAccount != "" {
		records, err := hist.GetConversions(statsAccount)
		exitOnError(err, "failed to get conversions")

		fmt.Printf("Conversions for %s:\n", statsAccount)
		for _, r := range records {
			fmt.Printf("  %s %s -> %s (%d transactions)\n",
				r.StatementRef, r.StatementNo, r.OutputFile, r.Transactions)
		}
		fmt.Println()
	}

	slog.Info("Statistics displayed successfully")
}
