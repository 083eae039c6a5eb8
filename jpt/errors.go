// Package jpt implements JSON Proof Tokens: claims-tree flattening into an
// ordered JWP payload vector, path-addressed selective disclosure, and
// sparse-tree reconstruction from a verified presentation.
package jpt

import "errors"

var (
	// ErrClaimsMalformed is returned when the claims document given to
	// Issue is not a JSON object, or a presented claims tree cannot be
	// reconstructed from its disclosed payloads.
	ErrClaimsMalformed = errors.New("jpt: claims document is malformed")

	// ErrUnknownClaim is returned when Present is given a claim path the
	// issued token's header does not carry.
	ErrUnknownClaim = errors.New("jpt: unknown claim path")

	// ErrVerificationFailed is returned by a Verifier when its specific
	// check (audience, nonce, ...) fails, independent of proof validity.
	ErrVerificationFailed = errors.New("jpt: claim verification failed")
)
