package phantom

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/phantomsec/phantom/internal/report"
	"github.com/phantomsec/phantom/internal/suggest"
)

var (
	flagGenLength     int
	flagGenNoSymbols  bool
	flagGenPassphrase bool
	flagGenWords      int
)

func init() {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a strong password or passphrase",
		RunE:  runGenerate,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().IntVar(&flagGenLength, "length", suggest.RecommendedLength, "password length")
	cmd.Flags().BoolVar(&flagGenNoSymbols, "no-symbols", false, "letters and digits only")
	cmd.Flags().BoolVar(&flagGenPassphrase, "passphrase", false, "generate a word-based passphrase instead")
	cmd.Flags().IntVar(&flagGenWords, "words", 4, "passphrase word count")
}

func runGenerate(_ *cobra.Command, _ []string) error {
	var secret string
	var err error
	if flagGenPassphrase {
		secret, err = suggest.GeneratePassphrase(flagGenWords)
	} else {
		secret, err = suggest.GeneratePassword(flagGenLength, !flagGenNoSymbols)
	}
	if err != nil {
		return err
	}

	if flagJSON {
		return report.WriteJSON(os.Stdout, map[string]any{
			"password": secret,
			"strength": suggest.AnalyzeStrength(secret),
		})
	}
	fmt.Println(secret)
	return nil
}
