package less

import "fmt"

// Error describes why stylesheet could not be compiled.
type Error struct {
	Line    int
	Message string
}

func (e *Error) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("less: line %d: %s", e.Line, e.Message)
	}
	return "less: " + e.Message
}

func errorf(line int, format string, args ...any) *Error {
	return &Error{Line: line, Message: fmt.Sprintf(format, args...)}
}
