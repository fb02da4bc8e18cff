package trace

import (
	"time"
	"unicode/utf8"

	"github.com/phantomsec/phantom/internal/logging"
	"github.com/phantomsec/phantom/internal/metrics"
	"github.com/phantomsec/phantom/internal/redact"
	"github.com/phantomsec/phantom/internal/types"
)

const previewLimit = 100

// Interceptor orchestrates one document interception as a four-phase
// audit sequence and folds the resulting trace into the shared store.
// It is safe for concurrent use; all shared state lives in the store.
type Interceptor struct {
	store   *Store
	logger  *logging.Logger
	metrics *metrics.Metrics
}

func NewInterceptor(store *Store, logger *logging.Logger, m *metrics.Metrics) *Interceptor {
	if logger == nil {
		logger = logging.Default()
	}
	return &Interceptor{store: store, logger: logger, metrics: m}
}

// Store exposes the underlying trace store for history and statistics
// queries.
func (in *Interceptor) Store() *Store { return in.store }

// Process runs the full interception over content: read, intercept,
// redact, deliver, then completes the trace. Any content consumer must
// run after the redact phase; Process itself never hands out the
// original except inside the returned result.
func (in *Interceptor) Process(content string) *types.TraceResult {
	id, count := in.store.Begin()
	start := time.Now()

	step1 := in.step(id, 1, EventAgentRead,
		"Agent Reads Document",
		"Agent attempts to read the submitted document",
		map[string]any{
			"content_preview": preview(content),
			"length":          len(content),
		})

	step2 := in.step(id, 2, EventIntercept,
		"Read Intercepted",
		"Interceptor middleware intercepted the read operation",
		map[string]any{
			"action":             "INTERCEPT",
			"reason":             "Automatic security scan triggered",
			"interception_count": count,
		})

	result := redact.Document(content)
	step3 := in.step(id, 3, EventRedact,
		"Sensitive Data Redacted",
		"Sensitive information automatically redacted",
		map[string]any{
			"redactions":    result.RedactionCount,
			"summary":       result.Summary,
			"redaction_log": result.Records,
		})

	step4 := in.step(id, 4, EventDeliver,
		"Safe Data Delivered",
		"Consumer receives only the sanitized version",
		map[string]any{
			"safe_content_preview": preview(result.Redacted),
			"length":               len(result.Redacted),
		})

	if err := in.store.Complete(id); err != nil {
		// Only reachable if the tracer state machine is misused.
		in.logger.Error("trace completion failed", "trace_id", id, "error", err)
	}

	in.metrics.ObserveInterception(time.Since(start).Seconds())
	for _, r := range result.Records {
		in.metrics.ObserveRedaction(r.Kind, string(r.Severity))
	}
	in.logger.Info("document intercepted",
		"trace_id", id,
		"length", len(content),
		"redactions", result.RedactionCount,
	)

	return &types.TraceResult{
		TraceID:                id,
		OriginalContent:        content,
		RedactedContent:        result.Redacted,
		RedactionSummary:       result.Summary,
		RedactionDetails:       result.Records,
		TraceSteps:             []types.TraceStep{step1, step2, step3, step4},
		InterceptionSuccessful: true,
	}
}

// ProcessFunc consumes document content and returns an arbitrary result.
type ProcessFunc func(content string) (any, error)

// Wrap turns fn into a pipeline stage that only ever observes redacted
// content. The interception trace runs and completes first, then fn is
// invoked with the sanitized text; its return values pass through
// unchanged.
func (in *Interceptor) Wrap(fn ProcessFunc) ProcessFunc {
	return func(content string) (any, error) {
		result := in.Process(content)
		return fn(result.RedactedContent)
	}
}

// step records one phase both as a trace event and as the externally
// visible trace step.
func (in *Interceptor) step(id string, n int, kind, name, description string, data map[string]any) types.TraceStep {
	now := time.Now()
	if err := in.store.AppendEvent(id, types.TraceEvent{
		Kind:        kind,
		Description: description,
		Data:        data,
		Timestamp:   now,
	}); err != nil {
		in.logger.Error("trace append failed", "trace_id", id, "event", kind, "error", err)
	}
	return types.TraceStep{
		Step:        n,
		Name:        name,
		Description: description,
		Status:      "completed",
		Data:        data,
		Timestamp:   now,
	}
}

// preview bounds content to its first 100 characters, marking truncation.
// The cut is per rune so multi-byte content stays valid UTF-8.
func preview(content string) string {
	if utf8.RuneCountInString(content) > previewLimit {
		return string([]rune(content)[:previewLimit]) + "..."
	}
	return content
}
