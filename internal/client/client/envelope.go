package client

import (
	"bytes"
	"encoding/json"
)

// envelope is the body of every business response.
type envelope struct {
	Code    *int            `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// readOutcome builds the outcome of a received response. A body that is
// not a JSON object with a "code" field carries no envelope.
func readOutcome(status int, body []byte) (Outcome, json.RawMessage) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return Outcome{Status: status}, nil
	}
	return Outcome{Status: status, Code: env.Code, Message: env.Message}, env.Data
}

func isNullPayload(data json.RawMessage) bool {
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
