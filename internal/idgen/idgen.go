// Package idgen derives human-readable sequential identifiers from the most
// recently stored record.
//
// The generators here are best-effort monotonic counters, NOT strict
// sequences: two concurrent creations can observe the same "last" record and
// mint the same identifier. Uniqueness for lookups must rely on the
// persistence layer's opaque ID, never on these values.
package idgen

import (
	"context"
	"fmt"
	"strconv"

	"github.com/tuitionnetwork/tuition-api/internal/domain"
)

// TuitionIDSource supplies the tuitionId of the most recently created tutor
// request, ordered by creation timestamp descending. An empty string means
// the store holds no records yet.
type TuitionIDSource interface {
	LastTuitionID(ctx context.Context) (string, error)
}

// CustomIDSource supplies the highest numeric suffix among custom IDs
// carrying the given prefix. Zero means no records carry the prefix.
type CustomIDSource interface {
	MaxCustomIDNumber(ctx context.Context, prefix string) (int, error)
}

// NextTuitionID returns the next sequential tuition identifier as a decimal
// string. An absent or unparseable last ID is treated as base 0.
func NextTuitionID(ctx context.Context, src TuitionIDSource) (string, error) {
	base, err := tuitionIDBase(ctx, src)
	if err != nil {
		return "", err
	}
	return strconv.Itoa(base + 1), nil
}

// NextTuitionIDBatch computes the base once and returns count consecutive
// identifiers base+1 .. base+count, to be zipped positionally with a batch of
// records about to be inserted together.
func NextTuitionIDBatch(ctx context.Context, src TuitionIDSource, count int) ([]string, error) {
	base, err := tuitionIDBase(ctx, src)
	if err != nil {
		return nil, err
	}
	ids := make([]string, count)
	for i := range ids {
		ids[i] = strconv.Itoa(base + i + 1)
	}
	return ids, nil
}

func tuitionIDBase(ctx context.Context, src TuitionIDSource) (int, error) {
	last, err := src.LastTuitionID(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to read last tuition ID: %w", err)
	}
	return parseLeadingInt(last), nil
}

// NextCustomID returns the next user-facing identifier for the given role:
// SID-prefixed for students, TID-prefixed otherwise, with the counter scoped
// to records sharing that prefix.
func NextCustomID(ctx context.Context, src CustomIDSource, role string) (string, error) {
	prefix := CustomIDPrefix(role)
	max, err := src.MaxCustomIDNumber(ctx, prefix)
	if err != nil {
		return "", fmt.Errorf("failed to read max custom ID for prefix %s: %w", prefix, err)
	}
	return fmt.Sprintf("%s%d", prefix, max+1), nil
}

// CustomIDPrefix maps a user role to its custom ID prefix.
func CustomIDPrefix(role string) string {
	if role == domain.RoleStudent {
		return "SID"
	}
	return "TID"
}

// parseLeadingInt parses the leading base-10 digits of s, ignoring any
// trailing garbage. Returns 0 when s has no leading digits.
func parseLeadingInt(s string) int {
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}
