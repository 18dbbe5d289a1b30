package oracle

import "errors"

var (
	// ErrInvalidArgument is returned for malformed cursor declarations,
	// such as an empty or duplicated cursor name list.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrUnsupportedArgs is returned when bind arguments are neither a struct
	// nor a string-keyed mapping.
	ErrUnsupportedArgs = errors.New("unsupported bind arguments")

	// ErrCursorArity is returned when a mapping function takes more cursor
	// result sets than the parameter set declares.
	ErrCursorArity = errors.New("mapping arity exceeds declared cursors")

	// ErrCursorNotBound is returned when a declared cursor is read back but the
	// command text never referenced it.
	ErrCursorNotBound = errors.New("cursor not bound by command text")

	// ErrRefCursorUnsupported is returned when the command in use cannot read
	// REF CURSOR output parameters.
	ErrRefCursorUnsupported = errors.New("command does not support ref cursor parameters")
)
