package jwp

import (
	"fmt"

	"github.com/halimath/jwp/jpa"
	"github.com/halimath/jwp/jwk"
)

// IssuedJWP is a JSON Web Proof in the Issued state (spec.md §3, §4.E): a
// full, ordered, non-null payload vector signed by an Issuer. There is no
// constructor taking individually-settable fields beyond NewIssued/
// ParseIssued. Payloads, Proof and HeaderBytes return copies; Header
// returns the stored header itself, and a change made through it is not
// reflected in HeaderBytes or the proof.
type IssuedJWP struct {
	header      *IssuerHeader
	headerBytes []byte
	payloads    [][]byte
	proof       []byte
}

// NewIssued signs payloads under header using signingKey's secret octets,
// returning the resulting Issued JWP. header.Alg must be a signing suite;
// payloads must all be non-null; if header carries "claims" its length
// must equal len(payloads).
func NewIssued(header *IssuerHeader, payloads [][]byte, signingKey *jwk.Key) (*IssuedJWP, error) {
	alg, err := header.Alg()
	if err != nil {
		return nil, err
	}
	if !alg.IsSigningSuite() {
		return nil, fmt.Errorf("%w: %s is not a signing suite", ErrAlgMismatch, alg)
	}

	for i, p := range payloads {
		if p == nil {
			return nil, fmt.Errorf("%w: payload %d is null", ErrNullPayload, i)
		}
	}

	if claims, ok := header.Claims(); ok && len(claims) != len(payloads) {
		return nil, fmt.Errorf("%w: header carries %d claim names for %d payloads", ErrHeaderMalformed, len(claims), len(payloads))
	}

	secret, ok := signingKey.SecretOctets()
	if !ok {
		return nil, ErrMissingSecret
	}

	suite, err := jpa.Lookup(alg)
	if err != nil {
		return nil, err
	}

	_, headerBytes, err := header.Encode()
	if err != nil {
		return nil, err
	}

	proof, err := suite.Sign(secret, headerBytes, payloads)
	if err != nil {
		return nil, translateSuiteErr(err)
	}

	return &IssuedJWP{
		header:      header,
		headerBytes: headerBytes,
		payloads:    copyPayloads(payloads),
		proof:       copyBytes(proof),
	}, nil
}

// Verify checks the Issued JWP's signature. If publicKey is nil, the
// Issuer header's proof_jwk is used; if neither is available, Verify
// returns ErrMissingPublicKey.
func (j *IssuedJWP) Verify(publicKey *jwk.Key) error {
	alg, err := j.header.Alg()
	if err != nil {
		return err
	}

	suite, err := jpa.Lookup(alg)
	if err != nil {
		return err
	}

	key, err := resolvePublicKey(j.header, publicKey)
	if err != nil {
		return err
	}

	if err := suite.Verify(key.PublicOctets(), j.headerBytes, j.payloads, j.proof); err != nil {
		return translateSuiteErr(err)
	}

	return nil
}

// Header returns the Issued JWP's Issuer header.
func (j *IssuedJWP) Header() *IssuerHeader { return j.header }

// HeaderBytes returns the exact byte image the signature was computed
// over.
func (j *IssuedJWP) HeaderBytes() []byte { return copyBytes(j.headerBytes) }

// Payloads returns a deep copy of the ordered payload vector.
func (j *IssuedJWP) Payloads() [][]byte { return copyPayloads(j.payloads) }

// Proof returns a copy of the opaque BBS+ signature octets.
func (j *IssuedJWP) Proof() []byte { return copyBytes(j.proof) }

func resolvePublicKey(header *IssuerHeader, override *jwk.Key) (*jwk.Key, error) {
	if override != nil {
		return override, nil
	}
	k, ok := header.ProofJWK()
	if !ok {
		return nil, ErrMissingPublicKey
	}
	return k, nil
}

func copyBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

func copyPayloads(payloads [][]byte) [][]byte {
	out := make([][]byte, len(payloads))
	for i, p := range payloads {
		out[i] = copyBytes(p)
	}
	return out
}
