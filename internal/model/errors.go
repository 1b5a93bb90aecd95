package model

// Error is a generation failure. Kinds are compared by Code, so
// errors.Is(err, ErrIOFailure) matches any IOFailure regardless of path.
type Error struct {
	Code    string
	Message string
	Path    string // Affected file, if any
	Cause   error
}

func (e *Error) Error() string {
	msg := e.Message
	if e.Path != "" {
		msg += ": " + e.Path
	}
	if e.Cause != nil {
		return msg + ": " + e.Cause.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches errors of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// Error kinds
var (
	ErrInvalidDimension    = &Error{Code: "invalid_dimension", Message: "invalid map dimension"}
	ErrInvalidParameter    = &Error{Code: "invalid_parameter", Message: "invalid parameter"}
	ErrDestinationConflict = &Error{Code: "destination_conflict", Message: "destination already exists"}
	ErrIOFailure           = &Error{Code: "io_failure", Message: "write failed"}
)

// NewError returns a new error of the given kind.
func NewError(kind *Error, path string, cause error) *Error {
	return &Error{
		Code:    kind.Code,
		Message: kind.Message,
		Path:    path,
		Cause:   cause,
	}
}
