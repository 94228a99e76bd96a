package errors

// MessageSomethingWentWrong is returned for failures that escape the handlers
const MessageSomethingWentWrong = "Something went wrong!"

// ErrorResponse is the failure envelope shared by handlers and middleware
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// NewErrorResponse builds a failure envelope carrying message
func NewErrorResponse(message string) ErrorResponse {
	return ErrorResponse{
		Success: false,
		Error:   message,
	}
}

// NewGenericErrorResponse builds the failure envelope used for panics and unknown failures
func NewGenericErrorResponse() ErrorResponse {
	return NewErrorResponse(MessageSomethingWentWrong)
}
