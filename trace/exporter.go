package trace

// ResultCode is the outcome of one Export call.
type ResultCode int

const (
	// ExportSuccess means the batch was fully accepted for delivery.
	// Delivery guarantees beyond acceptance belong to the backend.
	ExportSuccess ResultCode = iota

	// ExportFailedRetryable signals a transient condition where
	// resubmitting the same batch is expected to help.
	ExportFailedRetryable

	// ExportFailedNotRetryable signals a permanent rejection, such as
	// malformed data or a stopped exporter, where resubmission is
	// pointless.
	ExportFailedNotRetryable
)

// String returns the result code name.
func (c ResultCode) String() string {
	switch c {
	case ExportSuccess:
		return "success"
	case ExportFailedRetryable:
		return "failed_retryable"
	case ExportFailedNotRetryable:
		return "failed_not_retryable"
	}
	return "unknown"
}

// Exporter delivers finished span data to a backend.
//
// Export may perform I/O and block; the pipeline imposes no timeout.
// The exporter may retain the batch only for the duration of the call.
// Shutdown is best-effort, must not panic, and must tolerate being
// called more than once.
type Exporter interface {
	Export(batch []SpanData) ResultCode
	Shutdown()
}
