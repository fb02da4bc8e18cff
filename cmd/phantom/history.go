package phantom

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/phantomsec/phantom/internal/audit"
	"github.com/phantomsec/phantom/internal/report"
)

var (
	flagHistoryPath  string
	flagHistoryPurge int
)

func init() {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show past scan runs recorded in the audit log",
		RunE:  runHistory,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().StringVarP(&flagHistoryPath, "path", "p", ".", "directory whose audit log to read")
	cmd.Flags().IntVar(&flagHistoryPurge, "purge", -1, "delete the record at this index (0 = newest)")
}

func runHistory(_ *cobra.Command, _ []string) error {
	abs, _ := filepath.Abs(flagHistoryPath)
	log := audit.NewLog(abs)

	if flagHistoryPurge >= 0 {
		if err := log.Purge(flagHistoryPurge); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "purged record %d\n", flagHistoryPurge)
	}

	records, err := log.LoadHistory()
	if err != nil {
		return fmt.Errorf("no scan history at %s", abs)
	}

	if flagJSON {
		return report.WriteJSON(os.Stdout, records)
	}
	for i, r := range records {
		fmt.Printf("%3d  %s  %-24s files=%d findings=%d duration=%s\n",
			i, r.Timestamp.Format("2006-01-02 15:04:05"), r.ScanID,
			r.FilesScanned, r.TotalFindings, r.Duration)
	}
	return nil
}
