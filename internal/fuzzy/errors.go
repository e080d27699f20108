package fuzzy

import (
	"github.com/ppiankov/alphacut/internal/numeric"
	"gopkg.in/src-d/go-errors.v1"
)

// Error kinds returned by the fuzzy package. Match them with Kind.Is.
var (
	// ErrType is returned for mixed numeric representations or non-numeric input.
	ErrType = numeric.ErrType
	// ErrDivideByZero is returned when an Alpha is divided by zero.
	ErrDivideByZero = numeric.ErrDivideByZero

	ErrRange             = errors.NewKind("alpha-cut level must be between 0 and 1, got %s")
	ErrValue             = errors.NewKind("invalid value: %s")
	ErrMalformedInterval = errors.NewKind("improper borders: some alpha-cut ends before it starts at %s")
	ErrDuplicateLevel    = errors.NewKind("two alpha-cuts share level %s")
	ErrNotFound          = errors.NewKind("there is no alpha-cut at level %s")
	ErrObstructed        = errors.NewKind("fuzzy set obstructed: alpha-cut at level %s is not contained in level %s")
	ErrDomainObstructed  = errors.NewKind("fuzzy set domain obstructed: sample %s does not follow %s")
	ErrMissingParameter  = errors.NewKind("%s t-norm requires a parameter")
)
