package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the
	// store. This is the generic form of the entity-specific not found
	// errors (e.g. ErrUserNotFound, ErrTutorRequestNotFound).
	ErrNotFound = errors.New("entity not found")

	// ErrNotModified is returned when a conditional update matched and
	// modified zero documents. The document store cannot distinguish "no
	// such record" from "guard condition not satisfied" in a single round
	// trip, and downstream clients key off the status code only, so the
	// ambiguity is deliberately preserved rather than resolved.
	ErrNotModified = errors.New("no documents modified")

	// ErrInvalidID is returned when a persistence-layer ID is malformed.
	ErrInvalidID = errors.New("invalid document ID")

	// Entity-specific "not found" errors

	// ErrTutorRequestNotFound indicates that the requested tutor request
	// does not exist in the store.
	ErrTutorRequestNotFound = fmt.Errorf("%w: tutor request", ErrNotFound)

	// ErrUserNotFound indicates that the requested user does not exist in
	// the store.
	ErrUserNotFound = fmt.Errorf("%w: user", ErrNotFound)

	// ErrPaymentNotFound indicates that the requested payment does not
	// exist in the store.
	ErrPaymentNotFound = fmt.Errorf("%w: payment", ErrNotFound)
)
