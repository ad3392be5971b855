package errorx

import "fmt"

type Error struct {
	Code    Code
	Message string
	Detail  map[string]any
}

func (e Error) Error() string {
	return e.Message
}

func New(code Code, format string, a ...any) Error {
	return Error{Code: code, Message: fmt.Sprintf(format, a...)}
}

// WithDetail attaches a machine-readable field to the error. The router
// includes details in the response envelope next to the message.
func (e Error) WithDetail(key string, value any) Error {
	detail := map[string]any{}
	for k, v := range e.Detail {
		detail[k] = v
	}

	detail[key] = value
	e.Detail = detail
	return e
}
