package schemas

import "fmt"

// DecodeError reports bytes that do not follow the molecule layout this
// package implements. Witness locators treat it as "not an extended witness";
// for the primary witness of a group it is fatal.
type DecodeError struct {
	Msg string
}

func (e *DecodeError) Error() string {
	return "molecule decode: " + e.Msg
}

func decodeErrf(format string, args ...interface{}) *DecodeError {
	return &DecodeError{Msg: fmt.Sprintf(format, args...)}
}
