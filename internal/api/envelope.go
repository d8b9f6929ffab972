package api

import (
	"github.com/danielgtaylor/huma/v2"
)

// Envelope is the outer document of every JSON response.
type Envelope struct {
	Success bool      `json:"success"`
	Data    any       `json:"data,omitempty"`
	Error   *APIError `json:"error,omitempty"`
}

// EnvelopeTransformer wraps huma response bodies in an Envelope.
// Errors produced by RegisterErrorHandler become {"success":false,"error":...}.
func EnvelopeTransformer(_ huma.Context, _ string, v any) (any, error) {
	switch body := v.(type) {
	case nil:
		return Envelope{Success: true}, nil
	case *APIError:
		return Envelope{Success: false, Error: body}, nil
	case Envelope, *Envelope:
		return v, nil
	default:
		return Envelope{Success: true, Data: body}, nil
	}
}
