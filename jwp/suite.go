package jwp

import (
	"errors"
	"fmt"

	"github.com/halimath/jwp/jpa"
)

// translateSuiteErr maps a jpa.Suite error into this package's taxonomy, so
// callers only ever need to errors.Is against jwp's sentinels.
func translateSuiteErr(err error) error {
	switch {
	case errors.Is(err, jpa.ErrInvalidProof):
		return fmt.Errorf("%w: %w", ErrInvalidProof, err)
	case errors.Is(err, jpa.ErrBadDisclosure):
		return fmt.Errorf("%w: %w", ErrBadDisclosure, err)
	case errors.Is(err, jpa.ErrAlgMismatch):
		return fmt.Errorf("%w: %w", ErrAlgMismatch, err)
	default:
		return fmt.Errorf("%w: %w", ErrCryptoFailure, err)
	}
}
