// Package errors carries the error vocabulary shared across the module:
// stable error codes for the failure surface, severities for alert routing,
// and a tracer that preserves stack traces across wrapping.
package errors

// ErrorCode represents a specific error code in the system.
type ErrorCode string

const (
	// GeneralInternalServerError represents a generic internal error.
	GeneralInternalServerError ErrorCode = "general_internal_server_error"

	// ConfigLoadError represents a failure to load or parse configuration.
	ConfigLoadError ErrorCode = "config_load_error"
	// ConfigInvalidError represents configuration that parsed but is unusable.
	ConfigInvalidError ErrorCode = "config_invalid_error"

	// SnapshotMarshalError represents a failure to serialize a book snapshot.
	SnapshotMarshalError ErrorCode = "snapshot_marshal_error"
	// SnapshotUnmarshalError represents a failure to restore a book snapshot.
	SnapshotUnmarshalError ErrorCode = "snapshot_unmarshal_error"

	// SessionRunError represents a failure while driving a trading session.
	SessionRunError ErrorCode = "session_run_error"
)

// Tracer returns an ErrorTracer keyed by a stable error code.
func Tracer(code ErrorCode) *ErrorTracer {
	return NewTracer(string(code))
}

// Severity represents the severity level of an error.
type Severity string

const (
	// SeverityCritical indicates an error that requires immediate attention.
	SeverityCritical Severity = "critical"
	// SeverityHigh indicates an error that should be addressed promptly.
	SeverityHigh Severity = "high"
	// SeverityMedium indicates an error that should be addressed in due course.
	SeverityMedium Severity = "medium"
	// SeverityLow indicates an error that can be addressed at a later time.
	SeverityLow Severity = "low"
)
