package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestTutorRequestMarshalJSON_IncludesExtraFields(t *testing.T) {
	t.Parallel()

	request := TutorRequest{
		ID:           primitive.NewObjectID(),
		TuitionID:    "42",
		StudentEmail: "student@example.com",
		StudentName:  "Student",
		City:         "Dhaka",
		CreatedAt:    time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
		Extra: map[string]interface{}{
			"tutorGenderPreference": "any",
			"studentPhoto":          "https://cdn.example.com/p.jpg",
		},
	}

	data, err := json.Marshal(&request)
	require.NoError(t, err)

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &doc))

	assert.Equal(t, "any", doc["tutorGenderPreference"])
	assert.Equal(t, "https://cdn.example.com/p.jpg", doc["studentPhoto"])
	assert.Equal(t, "student@example.com", doc["studentEmail"])
	assert.Equal(t, "42", doc["tuitionId"])
}

func TestTutorRequestMarshalJSON_ExtraCannotShadowCanonicalFields(t *testing.T) {
	t.Parallel()

	request := TutorRequest{
		StudentEmail: "student@example.com",
		Extra: map[string]interface{}{
			"studentEmail": "spoofed@example.com",
		},
	}

	data, err := json.Marshal(request)
	require.NoError(t, err)

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &doc))

	assert.Equal(t, "student@example.com", doc["studentEmail"])
}

func TestTutorRequestMarshalJSON_NoExtra(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(TutorRequest{StudentEmail: "student@example.com"})
	require.NoError(t, err)

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "student@example.com", doc["studentEmail"])
}
