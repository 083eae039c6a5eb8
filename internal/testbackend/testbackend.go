// Package testbackend provides a pairing-free bbs.Backend double used by
// the jwp and jpt test suites. Signatures are deterministic; presentation
// proofs carry a fresh random nonce, so two derivations differ. It lets those layers' wiring
// (header handling, the compact codec, disclosure validation, the
// Issued/Presented state machine) be exercised without depending on real
// BLS12-381 pairing arithmetic, the same way a production caller would
// swap in jpa.Register to point at a different backend.
package testbackend

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"fmt"

	"github.com/halimath/jwp/bbs"
)

// Backend is a toy bbs.Backend: "signatures" are HMAC-SHA256 tags keyed by
// the same octets used as both "public" and "secret" key material, and
// "presentation proofs" are a random nonce plus an HMAC tag binding the
// disclosed payloads, both header byte images, and the total payload
// count. It is not a zero-knowledge proof of anything; it exists only to
// give the layers above bbs something to sign, verify, derive, and
// tamper-check against.
type Backend struct{}

// New returns a Backend.
func New() bbs.Backend { return Backend{} }

func (Backend) Sign(secretOctets, headerBytes []byte, payloads [][]byte) ([]byte, error) {
	return mac(secretOctets, headerBytes, payloads), nil
}

func (Backend) Verify(publicOctets, headerBytes []byte, payloads [][]byte, proof []byte) error {
	want := mac(publicOctets, headerBytes, payloads)
	if !hmac.Equal(want, proof) {
		return fmt.Errorf("%w: signature mac mismatch", bbs.ErrInvalidProof)
	}
	return nil
}

func (Backend) DeriveProof(publicOctets, issuerHeaderBytes, presentationHeaderBytes []byte, payloads [][]byte, disclosedIndices []int, issuerProof []byte) ([]byte, error) {
	if !hmac.Equal(mac(publicOctets, issuerHeaderBytes, payloads), issuerProof) {
		return nil, fmt.Errorf("%w: issuer signature does not verify", bbs.ErrInvalidProof)
	}

	nonce := make([]byte, 16)
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("%w: %s", bbs.ErrCryptoFailure, err)
	}

	disclosed := make([]bbs.DisclosedPayload, len(disclosedIndices))
	for i, idx := range disclosedIndices {
		disclosed[i] = bbs.DisclosedPayload{Index: idx, Payload: payloads[idx]}
	}

	tag := proofMAC(publicOctets, issuerHeaderBytes, presentationHeaderBytes, disclosed, len(payloads), nonce)
	return append(nonce, tag...), nil
}

func (Backend) VerifyProof(publicOctets, issuerHeaderBytes, presentationHeaderBytes []byte, disclosed []bbs.DisclosedPayload, totalCount int, proof []byte) error {
	if len(proof) < 16 {
		return fmt.Errorf("%w: proof too short", bbs.ErrCryptoFailure)
	}

	nonce, tag := proof[:16], proof[16:]
	want := proofMAC(publicOctets, issuerHeaderBytes, presentationHeaderBytes, disclosed, totalCount, nonce)
	if !hmac.Equal(want, tag) {
		return fmt.Errorf("%w: presentation proof mac mismatch", bbs.ErrInvalidProof)
	}
	return nil
}

func mac(key, header []byte, payloads [][]byte) []byte {
	h := hmac.New(sha256.New, key)
	h.Write(header)
	for _, p := range payloads {
		h.Write(p)
	}
	return h.Sum(nil)
}

func proofMAC(key, issuerHeader, presentationHeader []byte, disclosed []bbs.DisclosedPayload, total int, nonce []byte) []byte {
	h := hmac.New(sha256.New, key)
	h.Write(issuerHeader)
	h.Write(presentationHeader)
	h.Write(nonce)
	fmt.Fprintf(h, ":%d:", total)
	for _, d := range disclosed {
		fmt.Fprintf(h, ":%d:", d.Index)
		h.Write(d.Payload)
	}
	return h.Sum(nil)
}
