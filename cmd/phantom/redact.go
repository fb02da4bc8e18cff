package phantom

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/phantomsec/phantom/internal/config"
	"github.com/phantomsec/phantom/internal/redact"
	"github.com/phantomsec/phantom/internal/report"
)

var (
	flagSafe       bool
	flagShowReport bool
)

func init() {
	cmd := &cobra.Command{
		Use:   "redact [file]",
		Short: "Redact sensitive data from a file or stdin",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runRedact,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().BoolVar(&flagSafe, "safe", false, "replace values with [REDACTED-*] markers instead of format-preserving masks")
	cmd.Flags().BoolVar(&flagShowReport, "report", false, "print a redaction report instead of the redacted content")
}

func runRedact(cmd *cobra.Command, args []string) error {
	var content []byte
	var err error
	if len(args) == 1 && args[0] != "-" {
		content, err = os.ReadFile(args[0])
	} else {
		content, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	text := string(content)

	// Config may turn off format-preserving masks; the flag wins.
	if !cmd.Flags().Changed("safe") {
		wd, _ := os.Getwd()
		var gcfg, lcfg config.FileConfig
		if c, err := config.LoadGlobal(); err == nil {
			gcfg = c
		}
		if c, err := config.LoadLocal(wd); err == nil {
			lcfg = c
		}
		if pf := lcfg.PreserveFormat; pf != nil {
			flagSafe = !*pf
		} else if pf := gcfg.PreserveFormat; pf != nil {
			flagSafe = !*pf
		}
	}

	if flagShowReport {
		rep := redact.BuildReport(text)
		if flagJSON {
			return report.WriteJSON(os.Stdout, rep)
		}
		fmt.Printf("Findings: %d (document %d bytes, redacted %d bytes)\n",
			rep.TotalFindings, rep.DocumentLength, rep.RedactedLength)
		for _, d := range rep.Details {
			fmt.Printf("  %-8s %-15s %s\n", d.Severity, d.Kind, d.Preview)
		}
		return nil
	}

	if flagSafe {
		if flagJSON {
			return report.WriteJSON(os.Stdout, map[string]string{
				"redacted": redact.SafeVersion(text),
			})
		}
		fmt.Print(redact.SafeVersion(text))
		return nil
	}

	result := redact.Document(text)
	if flagJSON {
		return report.WriteJSON(os.Stdout, result)
	}
	fmt.Print(result.Redacted)
	return nil
}
