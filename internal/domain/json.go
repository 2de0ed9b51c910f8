package domain

import "encoding/json"

// marshalWithExtra marshals v and splices the extra keys into the resulting
// object. Keys already present on v win, so ad-hoc client fields can never
// shadow a canonical one.
func marshalWithExtra(v interface{}, extra map[string]interface{}) ([]byte, error) {
	base, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	if len(extra) == 0 {
		return base, nil
	}

	merged := make(map[string]interface{}, len(extra)+16)
	if err := json.Unmarshal(base, &merged); err != nil {
		return nil, err
	}
	for key, value := range extra {
		if _, ok := merged[key]; !ok {
			merged[key] = value
		}
	}
	return json.Marshal(merged)
}
