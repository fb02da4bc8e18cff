package phantom

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/phantomsec/phantom/internal/breach"
	"github.com/phantomsec/phantom/internal/report"
	"github.com/phantomsec/phantom/internal/suggest"
)

var (
	flagCheckHIBPURL string
	flagCheckTimeout time.Duration
)

func init() {
	cmd := &cobra.Command{
		Use:   "check <password>",
		Short: "Check a password against known breaches and score its strength",
		Args:  cobra.ExactArgs(1),
		RunE:  runCheck,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().StringVar(&flagCheckHIBPURL, "hibp-url", "", "override the Have I Been Pwned range API base URL")
	cmd.Flags().DurationVar(&flagCheckTimeout, "timeout", 0, "breach lookup timeout (e.g. 5s)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	password := args[0]

	client := breach.NewClient(
		breach.WithBaseURL(flagCheckHIBPURL),
		breach.WithTimeout(flagCheckTimeout),
	)
	analysis := client.Analyze(cmd.Context(), password)
	rec, err := suggest.Recommend(password)
	if err != nil {
		return err
	}

	if flagJSON {
		return report.WriteJSON(os.Stdout, map[string]any{
			"breach_status":     analysis,
			"strength_analysis": suggest.AnalyzeStrength(password),
			"recommendation":    rec,
		})
	}

	masked := breach.MaskPassword(password, 3)
	fmt.Printf("Password: %s\n", masked)
	if analysis.Err != "" {
		fmt.Printf("Breach check unavailable: %s\n", analysis.Err)
	} else if analysis.IsBreached {
		fmt.Printf("Breached: yes (%d occurrences)\n", analysis.BreachCount)
	} else {
		fmt.Println("Breached: no")
	}
	fmt.Printf("Risk: %s\n", analysis.RiskLevel)
	fmt.Printf("Strength: %s (score %d/4, crack time %s)\n", rec.Strength, rec.Score, rec.CrackTime)
	fmt.Println(analysis.Recommendation)
	for _, s := range rec.Suggestions {
		fmt.Printf("  - %s\n", s)
	}
	if len(rec.Alternatives) > 0 {
		fmt.Println("Suggested replacements:")
		for _, alt := range rec.Alternatives {
			fmt.Printf("  %-12s %s  (%s)\n", alt.Type, alt.Password, alt.Description)
		}
	}
	return nil
}
