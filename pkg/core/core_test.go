package core

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestDetectAndRedact(t *testing.T) {
	text := "Contact bob@example.com, SSN: 123-45-6789"

	findings := Detect(text)
	if len(findings) != 2 {
		t.Fatalf("got %d findings, want 2", len(findings))
	}

	redacted, records := Redact(text)
	if strings.Contains(redacted, "bob@example.com") || strings.Contains(redacted, "123-45-6789") {
		t.Fatalf("redaction leaked values: %q", redacted)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
}

func TestSafeVersion(t *testing.T) {
	safe := SafeVersion("mail bob@example.com")
	if !strings.Contains(safe, "[REDACTED-EMAIL]") {
		t.Fatalf("safe = %q", safe)
	}
}

func TestScan_Smoke(t *testing.T) {
	cfg := Config{
		Root:            t.TempDir(),
		DefaultExcludes: true,
	}
	res, err := Scan(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Scan error: %v", err)
	}
	if res.FilesScanned != 0 {
		t.Fatalf("scanned %d files in empty dir", res.FilesScanned)
	}
	if len(Kinds()) == 0 {
		t.Fatal("expected non-empty detection kinds")
	}
}

func TestPipeline(t *testing.T) {
	p := NewPipeline()

	result := p.Process("Password: hunter2verylong")
	if result.TraceID != "TRACE-0001" {
		t.Fatalf("trace id = %q", result.TraceID)
	}
	if strings.Contains(result.RedactedContent, "hunter2") {
		t.Fatalf("leak: %q", result.RedactedContent)
	}

	history := p.History(0)
	if len(history) != 1 {
		t.Fatalf("got %d traces, want 1", len(history))
	}
	stats := p.Stats()
	if stats.TotalInterceptions != 1 || stats.TracesCompleted != 1 {
		t.Fatalf("stats = %+v", stats)
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	findings := Detect("card 4111-1111-1111-1111")
	var buf bytes.Buffer
	if err := MarshalFindings(&buf, findings); err != nil {
		t.Fatal(err)
	}
	got, err := UnmarshalFindings(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != len(findings) {
		t.Fatalf("round trip lost findings: %d vs %d", len(got), len(findings))
	}
}
