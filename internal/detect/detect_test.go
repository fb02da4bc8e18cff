package detect

import (
	"strings"
	"testing"

	"github.com/phantomsec/phantom/internal/types"
)

func findKinds(findings []types.Finding) []string {
	out := make([]string, 0, len(findings))
	for _, f := range findings {
		out = append(out, f.Kind)
	}
	return out
}

func hasKind(findings []types.Finding, kind string) bool {
	for _, f := range findings {
		if f.Kind == kind {
			return true
		}
	}
	return false
}

func TestScanKinds(t *testing.T) {
	tests := []struct {
		name string
		text string
		kind string
	}{
		{"credit card dashed", "Card: 4532-1234-5678-9010", "credit_card"},
		{"credit card spaced", "4532 1234 5678 9010", "credit_card"},
		{"credit card plain", "4532123456789010", "credit_card"},
		{"ssn", "SSN 123-45-6789 on file", "ssn"},
		{"account labeled", "Account Number: 123456789012", "account_number"},
		{"account short label", "acct# 87654321", "account_number"},
		{"routing labeled", "Routing Number: 021000021", "routing_number"},
		{"routing rtg", "RTG# 021000021", "routing_number"},
		{"email", "reach me at user@example.com today", "email"},
		{"password labeled", "Password: MySecret123", "password"},
		{"pwd labeled", "pwd: hunter2!", "password"},
		{"api key", "api_key: abcdefghij0123456789xyz", "api_key"},
		{"api secret quoted", `API_SECRET="abcdefghij0123456789xyz"`, "api_key"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			findings := Scan(tt.text)
			if !hasKind(findings, tt.kind) {
				t.Fatalf("expected %s finding in %q, got %v", tt.kind, tt.text, findKinds(findings))
			}
		})
	}
}

func TestScanNegatives(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"plain text", "Hello world"},
		{"short digits", "order 1234 shipped"},
		{"account number too short", "Account Number: 1234567"},
		{"routing number wrong length", "Routing Number: 12345678"},
		{"api key too short", "api_key: shortvalue"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if findings := Scan(tt.text); len(findings) != 0 {
				t.Fatalf("expected no findings for %q, got %v", tt.text, findKinds(findings))
			}
		})
	}
}

func TestScanCaseInsensitive(t *testing.T) {
	for _, text := range []string{
		"PASSWORD: TopSecret99",
		"password: TopSecret99",
		"PaSsWoRd: TopSecret99",
	} {
		if !hasKind(Scan(text), "password") {
			t.Fatalf("expected password finding for %q", text)
		}
	}
}

func TestScanLabelIncludedInSpan(t *testing.T) {
	text := "Account Number: 123456789012"
	findings := Scan(text)
	if len(findings) != 1 {
		t.Fatalf("expected exactly one finding, got %d", len(findings))
	}
	f := findings[0]
	if f.Kind != "account_number" {
		t.Fatalf("kind = %s, want account_number", f.Kind)
	}
	if f.Severity != types.SevMed {
		t.Fatalf("severity = %s, want MEDIUM", f.Severity)
	}
	if f.Value != text {
		t.Fatalf("value = %q, want full labeled phrase %q", f.Value, text)
	}
	if f.Position.Start() != 0 || f.Position.End() != len(text) {
		t.Fatalf("span = %v, want [0,%d]", f.Position, len(text))
	}
}

func TestScanOverlapNotDeduplicated(t *testing.T) {
	// The password token is itself email-shaped; both patterns hit and the
	// spans overlap.
	text := "Password: bob@example.com"
	findings := Scan(text)
	if !hasKind(findings, "password") || !hasKind(findings, "email") {
		t.Fatalf("expected overlapping password+email findings, got %v", findKinds(findings))
	}
	var pw, em types.Finding
	for _, f := range findings {
		switch f.Kind {
		case "password":
			pw = f
		case "email":
			em = f
		}
	}
	if em.Position.Start() >= pw.Position.End() || pw.Position.Start() >= em.Position.End() {
		t.Fatalf("expected spans to overlap: password %v email %v", pw.Position, em.Position)
	}
}

func TestScanSpanIndexesText(t *testing.T) {
	text := "junk before Credit Card: 4532-1234-5678-9010 junk after"
	for _, f := range Scan(text) {
		if got := text[f.Position.Start():f.Position.End()]; got != f.Value {
			t.Fatalf("span slice %q != value %q", got, f.Value)
		}
	}
}

func TestSeverityTable(t *testing.T) {
	want := map[string]types.Severity{
		"credit_card":    types.SevHigh,
		"ssn":            types.SevHigh,
		"account_number": types.SevMed,
		"routing_number": types.SevMed,
		"email":          types.SevLow,
		"password":       types.SevHigh,
		"api_key":        types.SevHigh,
	}
	for kind, sev := range want {
		if got := SeverityFor(kind); got != sev {
			t.Fatalf("SeverityFor(%s) = %s, want %s", kind, got, sev)
		}
	}
	if got := SeverityFor("unknown_kind"); got != types.SevLow {
		t.Fatalf("unknown kind severity = %s, want LOW", got)
	}
}

func TestKindsOrder(t *testing.T) {
	kinds := Kinds()
	if len(kinds) != 7 {
		t.Fatalf("expected 7 kinds, got %d", len(kinds))
	}
	if kinds[0] != "credit_card" || kinds[len(kinds)-1] != "api_key" {
		t.Fatalf("unexpected kind order: %v", kinds)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"string passthrough", "hello", "hello"},
		{"bytes", []byte("raw"), "raw"},
		{"nil", nil, ""},
		{"int", 42, "42"},
		{"float", 3.5, "3.5"},
		{"bool", true, "true"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Fatalf("Normalize(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeMapIsScannable(t *testing.T) {
	// A decoded JSON object still gets scanned after stringification.
	in := map[string]any{"note": "Password: MySecret123"}
	text := Normalize(in)
	if !strings.Contains(text, "Password: MySecret123") {
		t.Fatalf("stringified map lost content: %q", text)
	}
	if !hasKind(Scan(text), "password") {
		t.Fatal("expected password finding in stringified map")
	}
}
