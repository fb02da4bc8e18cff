package report

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/phantomsec/phantom/internal/engine"
	"github.com/phantomsec/phantom/internal/types"
)

type PrintOptions struct {
	NoColor  bool
	Duration time.Duration
}

// PrintTable renders scan reports as aligned text: one line per finding
// with severity, kind, location and a masked value, plus a summary
// footer.
func PrintTable(w io.Writer, result engine.Result, opts PrintOptions) {
	if result.TotalFindings == 0 {
		fmt.Fprintln(w, "No sensitive data found ✅")
	} else {
		maxKind := 8
		for _, r := range result.Reports {
			for _, f := range r.Findings {
				if l := len(f.Kind); l > maxKind {
					maxKind = l
				}
			}
		}
		fmt.Fprintf(w, "Findings: %d\n", result.TotalFindings)
		for _, r := range result.Reports {
			for _, f := range r.Findings {
				sev := string(f.Severity)
				if !opts.NoColor {
					sev = colorSeverity(f.Severity)
				}
				fmt.Fprintf(w, "%-8s %-*s %s:%d-%d  %s\n",
					sev, maxKind, f.Kind, r.Path, f.Position.Start(), f.Position.End(), maskValue(f.Value))
			}
		}
	}

	high, med, low := 0, 0, 0
	for _, r := range result.Reports {
		for _, f := range r.Findings {
			switch f.Severity {
			case types.SevHigh:
				high++
			case types.SevMed:
				med++
			default:
				low++
			}
		}
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Findings: %d (high: %d, medium: %d, low: %d)\n", result.TotalFindings, high, med, low)
	fmt.Fprintf(w, "Files scanned: %d\n", result.FilesScanned)
	if opts.Duration > 0 {
		fmt.Fprintf(w, "Scan duration: %.2fs\n", opts.Duration.Seconds())
	}
}

// WriteJSON emits v as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func maskValue(s string) string {
	if len(s) <= 8 {
		return "********"
	}
	return s[:4] + "…" + s[len(s)-4:]
}

func colorSeverity(s types.Severity) string {
	switch s {
	case types.SevHigh:
		return "\x1b[31mHIGH\x1b[0m" // red
	case types.SevMed:
		return "\x1b[33mMEDIUM\x1b[0m" // yellow
	default:
		return "\x1b[36mLOW\x1b[0m" // cyan
	}
}
