package types

// SuccessEnvelope wraps every successful API payload under a "data" key.
// The storefront client relies on this shape when decoding responses.
type SuccessEnvelope struct {
	Data any `json:"data"`
}

// APIError is the public error body. Details carries structured context
// only for error codes that allow it, for example the available stock on
// an insufficient-stock conflict.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// ErrorEnvelope wraps an APIError under an "error" key.
type ErrorEnvelope struct {
	Error APIError `json:"error"`
}
