package dto

// Result is the envelope every endpoint answers with. Expected business
// failures travel inside it with Success=false rather than as transport-level
// errors.
type Result[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    T      `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func OK[T any](message string, data T) Result[T] {
	return Result[T]{Success: true, Message: message, Data: data}
}

// Fail builds a failure envelope with no payload.
func Fail(message, errMsg string) Result[any] {
	return Result[any]{Message: message, Error: errMsg}
}
