package idgen

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTuitionIDSource implements TuitionIDSource for testing.
type fakeTuitionIDSource struct {
	last string
	err  error
}

func (f *fakeTuitionIDSource) LastTuitionID(ctx context.Context) (string, error) {
	return f.last, f.err
}

// fakeCustomIDSource implements CustomIDSource for testing.
type fakeCustomIDSource struct {
	max        int
	err        error
	seenPrefix string
}

func (f *fakeCustomIDSource) MaxCustomIDNumber(ctx context.Context, prefix string) (int, error) {
	f.seenPrefix = prefix
	return f.max, f.err
}

func TestNextTuitionID(t *testing.T) {
	tests := []struct {
		name     string
		last     string
		expected string
	}{
		{name: "increments_last_id", last: "41", expected: "42"},
		{name: "empty_store_starts_at_one", last: "", expected: "1"},
		{name: "unparseable_treated_as_zero", last: "abc", expected: "1"},
		{name: "leading_digits_win", last: "12abc", expected: "13"},
		{name: "no_leading_zeros", last: "0099", expected: "100"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			id, err := NextTuitionID(context.Background(), &fakeTuitionIDSource{last: tc.last})
			require.NoError(t, err)
			assert.Equal(t, tc.expected, id)
		})
	}
}

func TestNextTuitionID_SourceError(t *testing.T) {
	srcErr := errors.New("connection reset")
	_, err := NextTuitionID(context.Background(), &fakeTuitionIDSource{err: srcErr})
	require.Error(t, err)
	assert.ErrorIs(t, err, srcErr)
}

func TestNextTuitionIDBatch(t *testing.T) {
	ids, err := NextTuitionIDBatch(context.Background(), &fakeTuitionIDSource{last: "10"}, 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"11", "12", "13"}, ids)
}

func TestNextTuitionIDBatch_ComputesBaseOnce(t *testing.T) {
	// The batch must be contiguous from a single observed base even though
	// the source would return a different value on a second read.
	src := &fakeTuitionIDSource{last: "5"}
	ids, err := NextTuitionIDBatch(context.Background(), src, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"6", "7"}, ids)
}

func TestNextCustomID(t *testing.T) {
	tests := []struct {
		name           string
		role           string
		max            int
		expectedPrefix string
		expectedID     string
	}{
		{name: "student_gets_sid", role: "student", max: 6, expectedPrefix: "SID", expectedID: "SID7"},
		{name: "tutor_gets_tid", role: "tutor", max: 0, expectedPrefix: "TID", expectedID: "TID1"},
		{name: "unknown_role_gets_tid", role: "guardian", max: 2, expectedPrefix: "TID", expectedID: "TID3"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			src := &fakeCustomIDSource{max: tc.max}
			id, err := NextCustomID(context.Background(), src, tc.role)
			require.NoError(t, err)
			assert.Equal(t, tc.expectedID, id)
			assert.Equal(t, tc.expectedPrefix, src.seenPrefix)
		})
	}
}
