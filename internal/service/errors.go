package service

import (
	"errors"
	"fmt"
)

// Sentinel errors surfaced by the service layer. The API layer maps these to
// HTTP status codes and response messages.
var (
	// ErrEmptyBatch is returned when a bulk submission carries an empty
	// payload array.
	ErrEmptyBatch = errors.New("payload array must contain at least one request")

	// ErrNothingToUpdate is returned when an update request body matches
	// none of the recognized intents.
	ErrNothingToUpdate = errors.New("nothing to update")

	// ErrRequestNotModified is returned by update branches whose
	// conditional write affected zero documents. Whether the record was
	// missing or simply unchanged is indistinguishable and deliberately
	// left that way; clients key off the status code only.
	ErrRequestNotModified = errors.New("request not found or not modified")

	// ErrAlreadyApplied is returned when the apply guard rejects a write:
	// either an entry with the email already exists or the record is
	// absent. The two causes are not distinguishable from the write result.
	ErrAlreadyApplied = errors.New("already applied or request not found")

	// ErrConfirmFailed is returned when persisting a recomputed
	// confirmation list modified zero documents.
	ErrConfirmFailed = errors.New("failed to confirm tutor")

	// ErrCancelConfirmationFailed is returned when persisting a cleared
	// confirmation list modified zero documents.
	ErrCancelConfirmationFailed = errors.New("failed to cancel confirmation")

	// ErrUserExists is returned when registration finds a user with the
	// same email or phone.
	ErrUserExists = errors.New("user already exists")
)

// ValidationError reports a single submission that failed payload
// validation. Errors holds the verbatim validator messages.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %d error(s)", len(e.Errors))
}

// RejectedItem identifies one element of a bulk submission that failed
// validation. Index is the position in the original input array, not the
// valid subset.
type RejectedItem struct {
	Index  int      `json:"index"`
	Errors []string `json:"errors"`
}

// BatchValidationError reports a bulk submission in which every element
// failed validation.
type BatchValidationError struct {
	Rejected []RejectedItem
}

func (e *BatchValidationError) Error() string {
	return fmt.Sprintf("all %d tutor requests failed validation", len(e.Rejected))
}
