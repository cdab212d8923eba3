package dto

// ErrorResponse is the uniform error body: a stable numeric code clients
// can branch on, plus a human-readable message
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// NewErrorResponse builds an error body from a code and message
func NewErrorResponse(code int, message string) ErrorResponse {
	return ErrorResponse{Code: code, Message: message}
}
