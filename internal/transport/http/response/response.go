package response

// ErrorBody is the uniform error shape carried with a non-2xx status.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Message wraps a human-readable success text.
type Message struct {
	Message string `json:"message"`
}

func Error(code, message string) ErrorBody { return ErrorBody{Code: code, Message: message} }

func Text(message string) Message { return Message{Message: message} }
