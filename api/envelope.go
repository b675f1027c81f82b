// Package api holds the JSON shapes exchanged with the legal-services backend.
// Both the client (auth, locations) and the mock backend (server) use them.
package api

import "encoding/json"

// Envelope is the response wrapper every backend endpoint returns.
// Success responses carry Data; failures carry Message and, for
// validation problems, field-level Errors.
type Envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
	Errors  []FieldError    `json:"errors,omitempty"`
}

// FieldError is a single field-level failure reported by the backend.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// DecodeData unmarshals the envelope's Data into v.
func (e *Envelope) DecodeData(v any) error {
	if len(e.Data) == 0 {
		return ErrNoData
	}
	return json.Unmarshal(e.Data, v)
}

// NewEnvelope builds a success envelope around data.
func NewEnvelope(message string, data any) (*Envelope, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return &Envelope{Success: true, Message: message, Data: raw}, nil
}

// NewErrorEnvelope builds a failure envelope.
func NewErrorEnvelope(message string, errs ...FieldError) *Envelope {
	return &Envelope{Success: false, Message: message, Errors: errs}
}
