package mapping

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies why a document could not be mapped
type Kind string

const (
	KindMissingRequiredField Kind = "MissingRequiredField"
	KindTypeCoercionFailed   Kind = "TypeCoercionFailed"
	KindInvariantViolated    Kind = "InvariantViolated"
)

var (
	// ErrMapping is matched by every MappingError
	ErrMapping = errors.New("mapping: document cannot be mapped")

	ErrMissingRequiredField = fmt.Errorf("%w: missing required field", ErrMapping)
	ErrTypeCoercionFailed   = fmt.Errorf("%w: type coercion failed", ErrMapping)
	ErrInvariantViolated    = fmt.Errorf("%w: invariant violated", ErrMapping)
)

// MappingError reports a document that could not become an entity
type MappingError struct {
	DocumentID string
	Entity     string
	Kind       Kind
	Fields     []string
	Err        error
}

func (e *MappingError) Error() string {
	msg := fmt.Sprintf("mapping: %s %q: %s [%s]", e.Entity, e.DocumentID, e.Kind, strings.Join(e.Fields, ", "))
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *MappingError) Unwrap() error {
	return e.Err
}

// Is matches ErrMapping and the sentinel of the error's kind
func (e *MappingError) Is(target error) bool {
	switch target {
	case ErrMapping:
		return true
	case ErrMissingRequiredField:
		return e.Kind == KindMissingRequiredField
	case ErrTypeCoercionFailed:
		return e.Kind == KindTypeCoercionFailed
	case ErrInvariantViolated:
		return e.Kind == KindInvariantViolated
	}
	return false
}

// CountErrors returns how many MappingErrors err carries, looking through errors.Join
func CountErrors(err error) int {
	if err == nil {
		return 0
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		n := 0
		for _, e := range joined.Unwrap() {
			n += CountErrors(e)
		}
		return n
	}
	var me *MappingError
	if errors.As(err, &me) {
		return 1
	}
	return 0
}
