// Package redact rewrites sensitive spans out of text and keeps a ledger
// of every replacement it makes.
package redact

import (
	"sort"
	"strings"

	"github.com/phantomsec/phantom/internal/types"
)

// markers are the fixed full-redaction banners keyed by finding kind.
var markers = map[string]string{
	"credit_card":    "[REDACTED-CREDIT-CARD]",
	"ssn":            "[REDACTED-SSN]",
	"account_number": "[REDACTED-ACCOUNT]",
	"routing_number": "[REDACTED-ROUTING]",
	"email":          "[REDACTED-EMAIL]",
	"password":       "[REDACTED-PASSWORD]",
	"api_key":        "[REDACTED-API-KEY]",
}

const fallbackMarker = "[REDACTED]"

// Marker returns the full-redaction banner for a finding kind.
func Marker(kind string) string {
	if m, ok := markers[kind]; ok {
		return m
	}
	return fallbackMarker
}

// Apply rewrites every finding's span in text and returns the rewritten
// text plus one RedactionRecord per finding, in application order.
//
// Findings are applied in descending start-offset order: replacing a span
// changes the length of everything after it, so working strictly
// right-to-left keeps all not-yet-processed (earlier-starting) offsets
// valid. Overlapping spans remain order-dependent: the rightmost span is
// rewritten first and an overlapping earlier span may then slice already
// altered text. That behavior is kept as-is rather than merged away.
//
// With preserveFormat set, values longer than 4 characters keep their
// first 2 characters and mask the rest, preserving length and shape;
// shorter values are fully masked. Without it the whole span becomes the
// per-kind marker, discarding length entirely.
func Apply(text string, findings []types.Finding, preserveFormat bool) (string, []types.RedactionRecord) {
	ordered := make([]types.Finding, len(findings))
	copy(ordered, findings)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Position.Start() > ordered[j].Position.Start()
	})

	redacted := text
	records := make([]types.RedactionRecord, 0, len(ordered))

	for _, f := range ordered {
		var value string
		if preserveFormat {
			value = maskValue(f.Value)
		} else {
			value = Marker(f.Kind)
		}

		// Clamp against the progressively rewritten text; an earlier
		// overlapping span can point past a shortened replacement.
		start, end := f.Position.Start(), f.Position.End()
		if start > len(redacted) {
			start = len(redacted)
		}
		if end > len(redacted) {
			end = len(redacted)
		}
		redacted = redacted[:start] + value + redacted[end:]

		records = append(records, types.RedactionRecord{
			Kind:     f.Kind,
			Original: f.Value,
			Redacted: value,
			Position: f.Position,
			Severity: f.Severity,
		})
	}

	return redacted, records
}

// maskValue keeps the first 2 characters visible and masks the remainder.
// Values of 4 characters or fewer are masked entirely. Counting is per
// rune so multi-byte values are never split mid-character.
func maskValue(v string) string {
	runes := []rune(v)
	if len(runes) > 4 {
		return string(runes[:2]) + strings.Repeat("*", len(runes)-2)
	}
	return strings.Repeat("*", len(runes))
}

// Summarize recomputes the aggregate view of a redaction ledger. The
// severity map always carries all three buckets so callers can rely on
// the keys being present.
func Summarize(records []types.RedactionRecord) types.RedactionSummary {
	summary := types.RedactionSummary{
		TotalRedactions: len(records),
		ByType:          map[string]int{},
		BySeverity: map[types.Severity]int{
			types.SevHigh: 0,
			types.SevMed:  0,
			types.SevLow:  0,
		},
	}
	for _, r := range records {
		summary.ByType[r.Kind]++
		summary.BySeverity[r.Severity]++
	}
	return summary
}
