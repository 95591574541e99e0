// Package models holds the HTTP-layer envelope types. Domain responses are
// serialized straight from the service packages; only errors and health get
// their own shapes here.
package models

// ErrorResponse is the envelope for every non-2xx response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries a stable machine-readable code and a human message.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Health is the health-check body.
type Health struct {
	Name    string `json:"name,omitempty"`
	Version string `json:"version,omitempty"`
	Status  string `json:"status"`
}
