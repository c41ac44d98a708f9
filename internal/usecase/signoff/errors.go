package signoff

import "errors"

// Error kinds. Match with errors.Is; the HTTP adapter maps each to one status code.
var (
	ErrInvalidRequest = errors.New("invalid request")
	ErrNotFound       = errors.New("not found")
	ErrForbidden      = errors.New("forbidden")
	ErrInternal       = errors.New("internal error")
)

// Error carries a client-facing message alongside its kind and the underlying cause.
type Error struct {
	Kind    error
	Message string
	Err     error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Is(target error) bool { return target == e.Kind }

func (e *Error) Unwrap() error { return e.Err }

func invalid(msg string) *Error { return &Error{Kind: ErrInvalidRequest, Message: msg} }

func forbidden(msg string) *Error { return &Error{Kind: ErrForbidden, Message: msg} }

func internal(msg string, cause error) *Error {
	return &Error{Kind: ErrInternal, Message: msg + ": " + cause.Error(), Err: cause}
}

// One message for every unknown token; callers must not learn why a lookup missed.
func notFound(cause error) *Error {
	return &Error{Kind: ErrNotFound, Message: "invalid or unknown token", Err: cause}
}
