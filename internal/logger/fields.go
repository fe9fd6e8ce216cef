package logger

// Fields is an alias for map[string]interface{} for convenience.
type Fields map[string]interface{}

// Standard tracing fields, propagated through the call chain via context.
const (
	// FieldRequestID is the HTTP request ID (UUID)
	FieldRequestID = "request_id"

	// FieldApplicationID is the application record ID
	FieldApplicationID = "application_id"

	// FieldApplicantID is the short applicant identifier
	FieldApplicantID = "applicant_id"

	// FieldJobID is the external job posting identifier
	FieldJobID = "job_id"

	// FieldBlobRef is the resume blob reference
	FieldBlobRef = "blob_ref"

	// FieldComponent is the component/module name
	FieldComponent = "component"
)

// Standard metric fields used for aggregation and alerting.
const (
	// FieldDurationMs is the execution duration in milliseconds
	FieldDurationMs = "duration_ms"

	// FieldSize is the data size in bytes
	FieldSize = "size"

	// FieldStatus is the operation status
	FieldStatus = "status"
)
