package application

import "errors"

var (
	// ErrNotFound is returned when the requested resource does not exist.
	ErrNotFound = errors.New("application: not found")
	// ErrAlreadyExists is returned when a unique attribute is already taken.
	ErrAlreadyExists = errors.New("application: already exists")
	// ErrUnknownTheme is returned when a plan request names a theme ID that
	// does not resolve to a stored theme.
	ErrUnknownTheme = errors.New("application: unknown theme")
	// ErrHasDependencies is returned when deleting a resource that other
	// records still reference.
	ErrHasDependencies = errors.New("application: has dependent records")
	// ErrSystemTheme is returned when mutating one of the reserved themes.
	ErrSystemTheme = errors.New("application: system theme is read-only")
)

// ValidationError captures field level validation issues that callers can surface to users.
type ValidationError struct {
	FieldErrors map[string]string
}

// Error implements the error interface.
func (v *ValidationError) Error() string {
	return "validation failed"
}

// HasErrors reports whether any field level issues were recorded.
func (v *ValidationError) HasErrors() bool {
	return v != nil && len(v.FieldErrors) > 0
}

// add records a field level validation error.
func (v *ValidationError) add(field, message string) {
	if v.FieldErrors == nil {
		v.FieldErrors = make(map[string]string)
	}
	v.FieldErrors[field] = message
}
