// Package bbs defines the boundary between this module and the BBS+/
// BLS12-381 cryptographic primitive (spec.md §6.3). Sign, Verify,
// DeriveProof and VerifyProof are the fixed API the JPA dispatcher drives;
// everything about hash-to-curve parameters, domain separation tags, and
// pairing arithmetic lives behind that API and is never re-derived here.
package bbs

import "errors"

// ErrInvalidProof is returned by Verify/VerifyProof when the given proof or
// signature is well-formed but does not hold for the given inputs.
var ErrInvalidProof = errors.New("bbs: invalid proof")

// ErrCryptoFailure is returned for any backend failure that is not a clean
// "proof does not hold" result: malformed key material, malformed proof
// octets, or an internal error from the underlying primitive.
var ErrCryptoFailure = errors.New("bbs: crypto backend failure")

// DisclosedPayload pairs a payload's position in the original, full payload
// vector with its octets, as presented to VerifyProof.
type DisclosedPayload struct {
	Index   int
	Payload []byte
}

// Backend is the contract a BBS+/BLS12-381 implementation must satisfy.
// Implementations own all ciphersuite-specific hashing; callers only ever
// pass opaque octets.
type Backend interface {
	// Sign computes a BBS+ signature over payloads, with headerBytes bound
	// into the signature as the per-issuance "header" input.
	Sign(secretOctets, headerBytes []byte, payloads [][]byte) ([]byte, error)

	// Verify checks a signature produced by Sign.
	Verify(publicOctets, headerBytes []byte, payloads [][]byte, proof []byte) error

	// DeriveProof runs BBS+ ProofGen, producing a presentation proof that
	// discloses only the payloads at disclosedIndices (ascending, unique,
	// in range — the caller is responsible for that invariant) while
	// binding issuerHeaderBytes, presentationHeaderBytes and the original
	// issuerProof into the derived proof.
	DeriveProof(publicOctets, issuerHeaderBytes, presentationHeaderBytes []byte, payloads [][]byte, disclosedIndices []int, issuerProof []byte) ([]byte, error)

	// VerifyProof runs BBS+ ProofVerify against the disclosed payloads,
	// given the total payload count (so hidden positions are accounted
	// for) and both header byte images.
	VerifyProof(publicOctets, issuerHeaderBytes, presentationHeaderBytes []byte, disclosed []DisclosedPayload, totalCount int, proof []byte) error
}

// HashFamily names the hash algorithm a JPA suite binds BBS+ to.
type HashFamily string

const (
	SHA256   HashFamily = "SHA-256"
	SHAKE256 HashFamily = "SHAKE-256"
)
