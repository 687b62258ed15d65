package errors

// ErrorCode represents a machine-readable resolution error code.
type ErrorCode string

const (
	// ErrCodeNotConstructable indicates the requested type cannot be
	// auto-constructed (for example a function type with no binding).
	ErrCodeNotConstructable ErrorCode = "NOT_CONSTRUCTABLE"
	// ErrCodeAmbiguousConstructor indicates two or more constructor
	// candidates tie for the maximum parameter count.
	ErrCodeAmbiguousConstructor ErrorCode = "AMBIGUOUS_CONSTRUCTOR"
	// ErrCodeUnresolvableDependency indicates a type could not be resolved
	// and no explicit registration exists for it.
	ErrCodeUnresolvableDependency ErrorCode = "UNRESOLVABLE_DEPENDENCY"
	// ErrCodeNoConstructor indicates no constructor candidate exists for
	// the requested type.
	ErrCodeNoConstructor ErrorCode = "NO_CONSTRUCTOR"
)
