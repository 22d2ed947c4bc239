// Package dto contains request and response shapes shared by handlers and flows
package dto

// Response status values used by every endpoint
const (
	StatusSuccess = "success"
	StatusFail    = "fail"
	StatusError   = "error"
)

// Envelope is the wire shape of every response body
type Envelope struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// SuccessEnvelope builds a success response with an optional data payload
func SuccessEnvelope(message string, data any) Envelope {
	return Envelope{
		Status:  StatusSuccess,
		Message: message,
		Data:    data,
	}
}

// FailEnvelope builds a client-fault response
func FailEnvelope(message string) Envelope {
	return Envelope{
		Status:  StatusFail,
		Message: message,
	}
}

// ErrorEnvelope builds a server-fault response
func ErrorEnvelope(message string) Envelope {
	return Envelope{
		Status:  StatusError,
		Message: message,
	}
}
