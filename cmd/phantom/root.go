package phantom

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	flagJSON    bool
	flagNoColor bool
	flagThreads int
	flagNoCache bool

	version = "0.1.0"
)

// rootCmd is the base Cobra command for the Phantom CLI.
var rootCmd = &cobra.Command{
	Use:           "phantom",
	Short:         "Intercept and redact sensitive data",
	Long:          "Phantom scans text for credentials and personal data, redacts it in place, and records an audit trace of every interception.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the Phantom CLI. It should be called by the main package.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(2)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "emit JSON")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable colorized output")
	rootCmd.PersistentFlags().IntVar(&flagThreads, "threads", 0, "worker count (0 = GOMAXPROCS)")
	rootCmd.PersistentFlags().BoolVar(&flagNoCache, "no-cache", false, "disable the scan result cache")
}
