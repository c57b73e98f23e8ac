package dto

// MessageResponse is the body of a mutation that returns no entity.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Message string            `json:"message"`
	Error   string            `json:"error"`             // Error kind, e.g. ValidationError
	Details string            `json:"details,omitempty"` // Underlying detail when safe to expose
	Fields  map[string]string `json:"fields,omitempty"`  // Field -> failed rule, for binding errors
}
