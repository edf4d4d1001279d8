/*
Package response shapes every body the backend fake writes.

Success bodies are the bare payload the order API contract defines, or the
Response envelope when the envelope middleware is on; the client accepts
both. Error bodies always use Response, with the user-facing message in
"message". The login rejection is the exception: its message travels in
"error" as the contract requires.
*/
package response

// RequestIDKey the gin context key holding the request id
const RequestIDKey = "request_id"

// EnvelopeKey the gin context key that switches success bodies to Response
const EnvelopeKey = "response_envelope"

// Response the envelope
type Response struct {
	Success   bool        `json:"success"`
	Data      interface{} `json:"data,omitempty"`
	Error     string      `json:"error,omitempty"` // error code, not details
	Code      int         `json:"code"`
	Message   string      `json:"message"`
	RequestID string      `json:"request_id,omitempty"`
}

// LoginError the 401 body of POST /auth/login
type LoginError struct {
	Error string `json:"error"`
}
