// Package core provides a small, stable facade over Phantom's internal
// detection and interception packages for external integrations. It
// deliberately re-exports a narrow API surface so other tools can depend
// on a stable import path without exposing internal implementation
// packages.
//
// Example:
//
//	redacted, records := core.Redact("Password: hunter2")
//	fmt.Println(redacted, len(records))
package core
