// Package jwp implements the JSON Web Proof state machine: the Issuer and
// Presentation protected headers, the Issued and Presented JWP forms, and
// the compact (dot/tilde separated) wire serialization between them.
package jwp

import "errors"

var (
	// ErrMissingAlg is returned when a header carries no "alg".
	ErrMissingAlg = errors.New("jwp: header is missing alg")

	// ErrUnknownAlg is returned when "alg" is not one of the four JPA
	// algorithm identifiers.
	ErrUnknownAlg = errors.New("jwp: alg is not a recognized JPA algorithm")

	// ErrHeaderMalformed is returned for header parsing failures other
	// than a missing or unknown alg.
	ErrHeaderMalformed = errors.New("jwp: header is malformed")

	// ErrAlgMismatch is returned when an Issuer header carries a proof
	// suite, a Presentation header carries a signing suite, or a
	// Presentation header's alg does not match its Issuer header's
	// signing suite.
	ErrAlgMismatch = errors.New("jwp: algorithm mismatch")

	// ErrMissingSecret is returned when signing is requested with a key
	// carrying no secret octets.
	ErrMissingSecret = errors.New("jwp: signing key carries no secret octets")

	// ErrMissingPublicKey is returned when verification needs a public key
	// and neither a caller-supplied key nor the Issuer header's proof_jwk
	// is available.
	ErrMissingPublicKey = errors.New("jwp: no public key available for verification")

	// ErrBadDisclosure is returned for out-of-range or duplicate
	// disclosure indices.
	ErrBadDisclosure = errors.New("jwp: invalid disclosure indices")

	// ErrNullPayload is returned when NewIssued is given a null payload; only a
	// Presented JWP may carry null (hidden) payloads.
	ErrNullPayload = errors.New("jwp: issued payload must not be null")

	// ErrCompactMalformed is returned for compact serialization parse
	// failures: wrong dot count, bad base64url, or an empty token in an
	// Issued form.
	ErrCompactMalformed = errors.New("jwp: malformed compact serialization")

	// ErrEncodingError is returned for base64url or JSON encode/decode
	// failures at this layer.
	ErrEncodingError = errors.New("jwp: encoding error")

	// ErrCryptoFailure wraps a backend error that is not a clean
	// "proof does not hold" result.
	ErrCryptoFailure = errors.New("jwp: crypto backend failure")

	// ErrInvalidProof is returned when a well-formed signature or
	// presentation proof does not hold.
	ErrInvalidProof = errors.New("jwp: invalid proof")
)
