package jpa

import "errors"

var (
	// ErrUnknownAlg is returned when an alg string is not one of the four
	// closed JPA algorithm identifiers.
	ErrUnknownAlg = errors.New("jpa: unknown or unsupported algorithm")

	// ErrAlgMismatch is returned when an operation expects a signing suite
	// but is given a proof suite, or vice versa.
	ErrAlgMismatch = errors.New("jpa: algorithm mismatch")

	// ErrBadDisclosure is returned when disclosed indices are out of range
	// or contain duplicates.
	ErrBadDisclosure = errors.New("jpa: invalid disclosure indices")

	// ErrCryptoFailure wraps any backend error that is not a clean
	// "proof does not hold" result.
	ErrCryptoFailure = errors.New("jpa: crypto backend failure")

	// ErrInvalidProof is returned when a well-formed signature or proof
	// does not hold for the given inputs.
	ErrInvalidProof = errors.New("jpa: invalid proof")
)
