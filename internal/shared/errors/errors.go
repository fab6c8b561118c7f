package errors

import "errors"

// Domain errors
var (
	// Collection errors
	ErrEmptyDomain       = errors.New("domain cannot be empty")
	ErrRecordNotFound    = errors.New("intelligence record not found")
	ErrCollectionAborted = errors.New("collection aborted before probes were dispatched")

	// Probe errors (probe failures are recorded inside the record; these
	// cover misuse of the probe layer itself)
	ErrNilRecord       = errors.New("probe requires a non-nil record")
	ErrMissingAPIKey   = errors.New("threat feed API key not configured")
	ErrFeedUnavailable = errors.New("threat feed returned a non-success response")

	// Risk model errors
	ErrEmptyVendorContext = errors.New("vendor context cannot be empty")
	ErrUnknownRiskLevel   = errors.New("unknown risk level")

	// Repository errors
	ErrRepositoryOperation   = errors.New("repository operation failed")
	ErrSerializationFailed   = errors.New("serialization failed")
	ErrDeserializationFailed = errors.New("deserialization failed")

	// Validation errors
	ErrValidation      = errors.New("validation error")
	ErrInvalidInput    = errors.New("invalid input")
	ErrMissingRequired = errors.New("missing required field")
)
