// Package jpa implements the JSON Proof Algorithms dispatch table: it binds
// a JWP header's "alg" to a concrete signing/proving/verifying procedure
// over BBS+/BLS12-381, as defined by the bbs package.
package jpa

import "fmt"

// Alg is a JPA algorithm identifier. The enumeration is closed: renamed or
// additional suites are a table edit in this file, not a structural change
// to the callers that dispatch on Alg.
type Alg string

const (
	// BLS12381SHA256 is the Issuer signing suite using SHA-256.
	BLS12381SHA256 Alg = "BLS12381-SHA256"

	// BLS12381SHAKE256 is the Issuer signing suite using SHAKE-256.
	BLS12381SHAKE256 Alg = "BLS12381-SHAKE256"

	// BLS12381SHA256Proof is the presentation proof suite paired with
	// BLS12381SHA256.
	BLS12381SHA256Proof Alg = "BLS12381-SHA256-PROOF"

	// BLS12381SHAKE256Proof is the presentation proof suite paired with
	// BLS12381SHAKE256.
	BLS12381SHAKE256Proof Alg = "BLS12381-SHAKE256-PROOF"
)

// String returns the wire value of a.
func (a Alg) String() string {
	return string(a)
}

// IsSigningSuite reports whether a is valid as an Issuer header's alg.
func (a Alg) IsSigningSuite() bool {
	return a == BLS12381SHA256 || a == BLS12381SHAKE256
}

// IsProofSuite reports whether a is valid as a Presentation header's alg.
func (a Alg) IsProofSuite() bool {
	return a == BLS12381SHA256Proof || a == BLS12381SHAKE256Proof
}

// ProofAlg returns the proof suite a Presentation header must carry when
// the Issuer header carries signing suite a.
func (a Alg) ProofAlg() (Alg, error) {
	switch a {
	case BLS12381SHA256:
		return BLS12381SHA256Proof, nil
	case BLS12381SHAKE256:
		return BLS12381SHAKE256Proof, nil
	default:
		return "", fmt.Errorf("%w: %s is not a signing suite", ErrAlgMismatch, a)
	}
}

// SigningAlg returns the signing suite a Presentation proof suite a is
// paired with.
func (a Alg) SigningAlg() (Alg, error) {
	switch a {
	case BLS12381SHA256Proof:
		return BLS12381SHA256, nil
	case BLS12381SHAKE256Proof:
		return BLS12381SHAKE256, nil
	default:
		return "", fmt.Errorf("%w: %s is not a proof suite", ErrAlgMismatch, a)
	}
}

// ParseAlg validates s against the closed JPA algorithm enumeration.
func ParseAlg(s string) (Alg, error) {
	switch Alg(s) {
	case BLS12381SHA256, BLS12381SHAKE256, BLS12381SHA256Proof, BLS12381SHAKE256Proof:
		return Alg(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownAlg, s)
	}
}
