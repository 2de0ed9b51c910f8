package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserMarshalJSON_IncludesExtraFields(t *testing.T) {
	t.Parallel()

	user := User{
		CustomID: "TID7",
		Email:    "tutor@example.com",
		Role:     RoleTutor,
		Extra: map[string]interface{}{
			"photoURL":       "https://cdn.example.com/t.jpg",
			"qualifications": "BSc in Mathematics",
		},
	}

	data, err := json.Marshal(&user)
	require.NoError(t, err)

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &doc))

	assert.Equal(t, "https://cdn.example.com/t.jpg", doc["photoURL"])
	assert.Equal(t, "BSc in Mathematics", doc["qualifications"])
	assert.Equal(t, "tutor@example.com", doc["email"])
	assert.Equal(t, "TID7", doc["customId"])
}
