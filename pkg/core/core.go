package core

import (
	"context"
	"encoding/json"
	"io"

	"github.com/phantomsec/phantom/internal/detect"
	"github.com/phantomsec/phantom/internal/engine"
	"github.com/phantomsec/phantom/internal/logging"
	"github.com/phantomsec/phantom/internal/redact"
	"github.com/phantomsec/phantom/internal/trace"
	"github.com/phantomsec/phantom/internal/types"
)

// Re-export selected internal types as a stable public API surface.
// These are type aliases so external consumers can depend on a stable path.
// We can replace these with decoupled structs later without breaking callers.
type Config = engine.Config
type Finding = types.Finding
type RedactionRecord = types.RedactionRecord
type TraceResult = types.TraceResult
type Statistics = types.Statistics

// Detect scans text and returns every sensitive-data finding.
func Detect(text string) []Finding {
	return detect.Scan(text)
}

// Redact replaces every finding in text with a format-preserving mask
// and returns the rewritten text with the redaction ledger.
func Redact(text string) (string, []RedactionRecord) {
	result := redact.Document(text)
	return result.Redacted, result.Records
}

// SafeVersion replaces every finding in text with a [REDACTED-*] marker.
func SafeVersion(text string) string {
	return redact.SafeVersion(text)
}

// Scan is the stable entrypoint for scanning files and directories.
func Scan(ctx context.Context, cfg Config) (engine.Result, error) {
	return engine.Scan(ctx, cfg)
}

// Kinds returns the detection kinds in evaluation order.
// This is exposed for convenience to avoid importing internals directly.
func Kinds() []string { return detect.Kinds() }

// Pipeline runs traced interceptions over an in-memory audit store.
type Pipeline struct {
	interceptor *trace.Interceptor
}

// NewPipeline builds a pipeline with a fresh trace store. The facade
// stays silent: it never writes log output to the consumer's stdout.
func NewPipeline() *Pipeline {
	return &Pipeline{
		interceptor: trace.NewInterceptor(trace.NewStore(), logging.NewWithWriter(io.Discard, "error"), nil),
	}
}

// Process intercepts content: detection, redaction, and a four-step
// audit trace recorded in the pipeline's store.
func (p *Pipeline) Process(content string) *TraceResult {
	return p.interceptor.Process(content)
}

// History returns up to limit recent traces, oldest first. A
// non-positive limit returns everything.
func (p *Pipeline) History(limit int) []types.Trace {
	return p.interceptor.Store().Recent(limit)
}

// Stats aggregates counts and durations across completed traces.
func (p *Pipeline) Stats() Statistics {
	return p.interceptor.Store().Stats()
}

// MarshalFindings writes findings as indented JSON, the exchange format
// for feeding scan results into downstream tooling.
func MarshalFindings(w io.Writer, findings []Finding) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(findings)
}

// UnmarshalFindings reads findings previously written by
// MarshalFindings.
func UnmarshalFindings(r io.Reader) ([]Finding, error) {
	var fs []Finding
	if err := json.NewDecoder(r).Decode(&fs); err != nil {
		return nil, err
	}
	return fs, nil
}
