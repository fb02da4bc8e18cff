package redact

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/phantomsec/phantom/internal/detect"
	"github.com/phantomsec/phantom/internal/types"
)

func TestApplyNoFindingsIdempotent(t *testing.T) {
	text := "Hello world, nothing sensitive here."
	for _, preserve := range []bool{true, false} {
		out, records := Apply(text, nil, preserve)
		if out != text {
			t.Fatalf("text changed with zero findings: %q", out)
		}
		if len(records) != 0 {
			t.Fatalf("expected empty ledger, got %d records", len(records))
		}
	}
}

func TestApplyCountConservation(t *testing.T) {
	text := "Email: a@b.com Card: 4532-1234-5678-9010 SSN: 123-45-6789"
	findings := detect.Scan(text)
	if len(findings) == 0 {
		t.Fatal("expected findings in fixture")
	}
	_, records := Apply(text, findings, true)
	if len(records) != len(findings) {
		t.Fatalf("ledger has %d records for %d findings", len(records), len(findings))
	}
}

func TestApplyPreserveFormatMasking(t *testing.T) {
	text := "Password: MySecret123"
	findings := detect.Scan(text)
	out, records := Apply(text, findings, true)

	want := "Pa" + strings.Repeat("*", len(text)-2)
	if out != want {
		t.Fatalf("redacted = %q, want %q", out, want)
	}
	if strings.Contains(out, "MySecret123") {
		t.Fatal("original secret leaked into redacted text")
	}
	for _, r := range records {
		if len(r.Original) > 4 && len(r.Redacted) != len(r.Original) {
			t.Fatalf("preserve-format lost length: %q -> %q", r.Original, r.Redacted)
		}
	}
}

func TestApplyShortValuesFullyMasked(t *testing.T) {
	if got := maskValue("abcd"); got != "****" {
		t.Fatalf("maskValue(abcd) = %q, want ****", got)
	}
	if got := maskValue("ab"); got != "**" {
		t.Fatalf("maskValue(ab) = %q, want **", got)
	}
	if got := maskValue("abcde"); got != "ab***" {
		t.Fatalf("maskValue(abcde) = %q, want ab***", got)
	}
}

func TestApplyMasksMultiByteValuesPerRune(t *testing.T) {
	value := "pässwörd123" // 11 runes, 13 bytes
	text := value
	findings := []types.Finding{{
		Kind:     "password",
		Value:    value,
		Position: types.Span{0, len(value)},
		Severity: types.SevHigh,
	}}
	out, records := Apply(text, findings, true)

	if !utf8.ValidString(out) {
		t.Fatalf("mask split a rune: %q", out)
	}
	want := "pä" + strings.Repeat("*", 9)
	if out != want {
		t.Fatalf("redacted = %q, want %q", out, want)
	}
	if records[0].Redacted != want {
		t.Fatalf("record redacted = %q, want %q", records[0].Redacted, want)
	}

	// The length-4 floor counts characters, not bytes.
	if got := maskValue("päß"); got != "***" {
		t.Fatalf("maskValue(päß) = %q, want ***", got)
	}
}

func TestApplyMarkerMode(t *testing.T) {
	text := "Contact user@example.com and card 4532-1234-5678-9010."
	findings := detect.Scan(text)
	out, records := Apply(text, findings, false)

	if !strings.Contains(out, "[REDACTED-EMAIL]") || !strings.Contains(out, "[REDACTED-CREDIT-CARD]") {
		t.Fatalf("markers missing from %q", out)
	}
	for _, r := range records {
		if r.Redacted != Marker(r.Kind) {
			t.Fatalf("record redacted value %q, want marker %q", r.Redacted, Marker(r.Kind))
		}
	}
}

func TestApplyDescendingOrder(t *testing.T) {
	text := "Email: a@b.com then SSN 123-45-6789"
	findings := detect.Scan(text)
	_, records := Apply(text, findings, true)
	for i := 1; i < len(records); i++ {
		if records[i].Position.Start() > records[i-1].Position.Start() {
			t.Fatalf("ledger not in descending start order: %v then %v",
				records[i-1].Position, records[i].Position)
		}
	}
}

func TestApplyRecordsKeepDetectedSpans(t *testing.T) {
	text := "SSN 123-45-6789 and email a@b.com"
	findings := detect.Scan(text)
	_, records := Apply(text, findings, true)

	byKind := map[string]types.RedactionRecord{}
	for _, r := range records {
		byKind[r.Kind] = r
	}
	for _, f := range findings {
		r := byKind[f.Kind]
		if r.Position != f.Position {
			t.Fatalf("record span %v != detected span %v for %s", r.Position, f.Position, f.Kind)
		}
	}
}

func TestApplyOverlappingSpansDoNotPanic(t *testing.T) {
	// Password token is email-shaped: two overlapping findings. The
	// rightmost replacement wins first; the result stays well-formed even
	// in marker mode where lengths shift.
	text := "Password: bob@example.com tail"
	findings := detect.Scan(text)
	out, records := Apply(text, findings, false)
	if len(records) != len(findings) {
		t.Fatalf("ledger %d != findings %d", len(records), len(findings))
	}
	if strings.Contains(out, "bob@example.com") {
		t.Fatalf("secret survived overlapping redaction: %q", out)
	}
}

func TestMarkerFallback(t *testing.T) {
	if got := Marker("no_such_kind"); got != "[REDACTED]" {
		t.Fatalf("fallback marker = %q", got)
	}
}

func TestSummarize(t *testing.T) {
	records := []types.RedactionRecord{
		{Kind: "email", Severity: types.SevLow},
		{Kind: "email", Severity: types.SevLow},
		{Kind: "credit_card", Severity: types.SevHigh},
	}
	s := Summarize(records)
	if s.TotalRedactions != 3 {
		t.Fatalf("total = %d, want 3", s.TotalRedactions)
	}
	if s.ByType["email"] != 2 || s.ByType["credit_card"] != 1 {
		t.Fatalf("by_type = %v", s.ByType)
	}
	if s.BySeverity[types.SevHigh] != 1 || s.BySeverity[types.SevLow] != 2 || s.BySeverity[types.SevMed] != 0 {
		t.Fatalf("by_severity = %v", s.BySeverity)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	if s.TotalRedactions != 0 || len(s.ByType) != 0 {
		t.Fatalf("unexpected summary for empty ledger: %+v", s)
	}
	if len(s.BySeverity) != 3 {
		t.Fatalf("severity buckets = %v, want all three", s.BySeverity)
	}
}
