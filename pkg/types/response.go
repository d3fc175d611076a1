// Package types holds the wire envelopes shared by every /api/v1 handler.
package types

// SuccessEnvelope wraps 2xx payloads (import results, summary reports,
// comparisons) under a "data" key.
type SuccessEnvelope struct {
	Data any `json:"data"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}
