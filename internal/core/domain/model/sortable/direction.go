package sortable

import (
	"strings"

	"sortable/internal/pkg/errs"
)

// Direction orders records by position.
type Direction int

const (
	Ascending Direction = iota + 1
	Descending
)

// Numeric direction codes sent by older clients.
const (
	legacyAscending  = "4"
	legacyDescending = "3"
)

func (d Direction) String() string {
	switch d {
	case Ascending:
		return "asc"
	case Descending:
		return "desc"
	default:
		return "unknown"
	}
}

// IsDescending reports whether d sorts highest position first.
func (d Direction) IsDescending() bool {
	return d == Descending
}

// Valid reports whether d is one of the declared directions.
func (d Direction) Valid() bool {
	return d == Ascending || d == Descending
}

// ParseDirection reads "asc"/"desc" (any case) or the legacy codes "4"/"3".
// An empty value yields fallback.
func ParseDirection(value string, fallback Direction) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "":
		return fallback, nil
	case "asc", "ascending", legacyAscending:
		return Ascending, nil
	case "desc", "descending", legacyDescending:
		return Descending, nil
	default:
		return 0, errs.NewValueIsInvalidError("sort")
	}
}
