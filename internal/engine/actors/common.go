package actors

import "encoding/json"

// GetCountsMsg asks any store actor for the number of entities it holds.
type GetCountsMsg struct{}

// snapshot converts an entity into the generic map form recorded in audit
// details. Going through JSON keeps the key names identical to what the API
// serves (and drops fields tagged json:"-", notably passwords).
func snapshot(entity interface{}) map[string]interface{} {
	data, err := json.Marshal(entity)
	if err != nil {
		return map[string]interface{}{}
	}
	values := make(map[string]interface{})
	if err := json.Unmarshal(data, &values); err != nil {
		return map[string]interface{}{}
	}
	return values
}
