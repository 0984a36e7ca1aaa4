package model

// ErrorResponse is the uniform error envelope.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

// SuccessResponse wraps successful responses with a message.
type SuccessResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// NewErrorResponse creates an error envelope.
func NewErrorResponse(message, detail string) ErrorResponse {
	return ErrorResponse{Success: false, Message: message, Detail: detail}
}

// NewSuccessResponse creates a success envelope.
func NewSuccessResponse(message string, data interface{}) SuccessResponse {
	return SuccessResponse{Success: true, Message: message, Data: data}
}
