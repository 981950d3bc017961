package quadtree

import "github.com/pkg/errors"

// Sentinel errors for the §6/§7 error taxonomy. Callers branch on identity
// with errors.Is; Error() renders the human string the CLI prints on exit
// (§6 "Textual rendering").
var (
	// ErrInvalidBounds is returned when the computed root square would
	// collapse to zero or negative side (spec's INVALID_BOUNDS).
	ErrInvalidBounds = errors.New("quadtree: invalid root bounds")

	// ErrInvalidConfig is returned when a Config field is non-positive
	// where positive is required (spec's INVALID_CONFIG).
	ErrInvalidConfig = errors.New("quadtree: invalid config")

	// ErrAlloc represents the spec's MALLOC_FAILED condition. Go does not
	// surface allocation failure as an error value (it panics), so this
	// sentinel exists for interface completeness with spec §6/§7 but is
	// never returned in practice.
	ErrAlloc = errors.New("quadtree: allocation failed")
)

func wrapConfig(reason string) error {
	return errors.Wrap(ErrInvalidConfig, reason)
}

func wrapBounds(reason string) error {
	return errors.Wrap(ErrInvalidBounds, reason)
}
