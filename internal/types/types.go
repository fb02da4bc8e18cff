package types

import "time"

// Severity is a coarse-grained sensitivity ranking for a finding.
type Severity string

const (
	SevHigh Severity = "HIGH"
	SevMed  Severity = "MEDIUM"
	SevLow  Severity = "LOW"
)

// Span is a half-open [start, end) byte range into the text a finding was
// detected from. It marshals as a two-element JSON array.
type Span [2]int

func (s Span) Start() int { return s[0] }
func (s Span) End() int   { return s[1] }
func (s Span) Len() int   { return s[1] - s[0] }

// Finding is a single pattern match identifying a candidate sensitive span.
// The Value is the exact matched substring, including any label text the
// pattern folds into the match (e.g. "Account Number: 123456789012").
type Finding struct {
	Kind     string   `json:"type"`
	Value    string   `json:"value"`
	Position Span     `json:"position"`
	Severity Severity `json:"severity"`
}

// RedactionRecord describes one applied redaction. Position is the span as
// originally detected (pre-rewrite coordinates); ledger order is the order
// redactions were applied, i.e. descending original start offset.
type RedactionRecord struct {
	Kind     string   `json:"type"`
	Original string   `json:"original"`
	Redacted string   `json:"redacted"`
	Position Span     `json:"position"`
	Severity Severity `json:"severity"`
}

// RedactionSummary aggregates a redaction ledger. It is derived data,
// recomputed from the record sequence and never mutated independently.
type RedactionSummary struct {
	TotalRedactions int              `json:"total_redactions"`
	ByType          map[string]int   `json:"by_type"`
	BySeverity      map[Severity]int `json:"by_severity"`
}

// TraceStatus is the lifecycle state of a Trace.
type TraceStatus string

const (
	StatusInProgress TraceStatus = "in_progress"
	StatusCompleted  TraceStatus = "completed"
)

// TraceEvent is one append-only audit entry within a trace.
type TraceEvent struct {
	Kind        string         `json:"type"`
	Description string         `json:"description"`
	Data        map[string]any `json:"data"`
	Timestamp   time.Time      `json:"timestamp"`
}

// Trace is the ordered audit record of one document-interception lifecycle.
// It transitions in_progress -> completed at most once; events may only be
// appended while in progress.
type Trace struct {
	ID        string        `json:"trace_id"`
	StartTime time.Time     `json:"start_time"`
	EndTime   time.Time     `json:"end_time,omitzero"`
	Duration  time.Duration `json:"duration,omitempty"`
	Status    TraceStatus   `json:"status"`
	Events    []TraceEvent  `json:"events"`
}

// TraceStep is the externally visible form of one interception phase.
// Every completed interception has exactly four steps in fixed order.
type TraceStep struct {
	Step        int            `json:"step"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Status      string         `json:"status"`
	Data        map[string]any `json:"data"`
	Timestamp   time.Time      `json:"timestamp"`
}

// TraceResult bundles everything produced by one interception.
type TraceResult struct {
	TraceID                string            `json:"trace_id"`
	OriginalContent        string            `json:"original_content"`
	RedactedContent        string            `json:"redacted_content"`
	RedactionSummary       RedactionSummary  `json:"redaction_summary"`
	RedactionDetails       []RedactionRecord `json:"redaction_details"`
	TraceSteps             []TraceStep       `json:"trace_steps"`
	InterceptionSuccessful bool              `json:"interception_successful"`
}

// Statistics aggregates over all traces ever created within the process.
// TotalInterceptions counts id allocations and is independent of history
// retention; the remaining fields cover completed traces only.
type Statistics struct {
	TotalInterceptions int     `json:"total_interceptions"`
	TotalRedactions    int     `json:"total_redactions"`
	AverageDuration    float64 `json:"average_duration"`
	TracesCompleted    int     `json:"traces_completed"`
}
