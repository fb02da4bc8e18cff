package phantom

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/phantomsec/phantom/internal/audit"
	"github.com/phantomsec/phantom/internal/config"
	"github.com/phantomsec/phantom/internal/engine"
	"github.com/phantomsec/phantom/internal/report"
)

var (
	flagPath            string
	flagInclude         string
	flagExclude         string
	flagMaxBytes        int64
	flagDefaultExcludes bool
)

func init() {
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan files for sensitive data",
		RunE:  runScan,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().StringVarP(&flagPath, "path", "p", ".", "path to scan")
	cmd.Flags().StringVar(&flagInclude, "include", "", "comma-separated include globs")
	cmd.Flags().StringVar(&flagExclude, "exclude", "", "comma-separated exclude globs")
	cmd.Flags().Int64Var(&flagMaxBytes, "max-bytes", 1<<20, "skip files larger than this")
	cmd.Flags().BoolVar(&flagDefaultExcludes, "default-excludes", true, "apply built-in exclude list (node_modules, dist, images, etc.)")
}

func runScan(cmd *cobra.Command, _ []string) error {
	abs, _ := filepath.Abs(flagPath)
	// Load configs: CLI > local > global
	var gcfg, lcfg config.FileConfig
	if c, err := config.LoadGlobal(); err == nil {
		gcfg = c
	}
	if c, err := config.LoadLocal(abs); err == nil {
		lcfg = c
	}

	defaultExcludes := flagDefaultExcludes
	if !cmd.Flags().Changed("default-excludes") {
		if lcfg.DefaultExcl != nil {
			defaultExcludes = *lcfg.DefaultExcl
		} else if gcfg.DefaultExcl != nil {
			defaultExcludes = *gcfg.DefaultExcl
		}
	}

	cfg := engine.Config{
		Root:            abs,
		IncludeGlobs:    pickString(flagInclude, lcfg.Include, gcfg.Include),
		ExcludeGlobs:    pickString(flagExclude, lcfg.Exclude, gcfg.Exclude),
		MaxBytes:        pickInt64(flagMaxBytes, lcfg.MaxBytes, gcfg.MaxBytes),
		Threads:         pickInt(flagThreads, lcfg.Threads, gcfg.Threads),
		NoCache:         pickBool(flagNoCache, lcfg.NoCache, gcfg.NoCache),
		CacheSize:       pickInt(0, lcfg.CacheSize, gcfg.CacheSize),
		DefaultExcludes: defaultExcludes,
	}

	start := time.Now()
	res, err := engine.Scan(cmd.Context(), cfg)
	if err != nil {
		return fmt.Errorf("scan error: %w", err)
	}

	severityCounts := map[string]int{}
	for _, rep := range res.Reports {
		for _, f := range rep.Findings {
			severityCounts[string(f.Severity)]++
		}
	}
	_ = audit.NewLog(abs).LogScan(audit.ScanRecord{
		Root:           abs,
		FilesScanned:   res.FilesScanned,
		TotalFindings:  res.TotalFindings,
		SeverityCounts: severityCounts,
		Duration:       time.Since(start).Round(time.Millisecond).String(),
	})

	if flagJSON {
		return report.WriteJSON(os.Stdout, res)
	}
	report.PrintTable(os.Stdout, res, report.PrintOptions{
		NoColor:  pickBool(flagNoColor, lcfg.NoColor, gcfg.NoColor),
		Duration: time.Since(start),
	})
	return nil
}
