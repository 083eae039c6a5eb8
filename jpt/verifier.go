package jpt

import (
	"fmt"

	"github.com/halimath/jwp/internal/ordered"
	"github.com/halimath/jwp/jwk"
	"github.com/halimath/jwp/jwp"
)

// Verifier checks a Presented JWP against a caller-chosen policy,
// independent of the cryptographic proof check VerifyAndReconstruct itself
// performs.
type Verifier interface {
	Verify(presented *jwp.PresentedJWP) error
}

// VerifierFunc wraps a function as a Verifier.
type VerifierFunc func(presented *jwp.PresentedJWP) error

// Verify calls f.
func (f VerifierFunc) Verify(presented *jwp.PresentedJWP) error {
	return f(presented)
}

// WithNonce returns a Verifier checking the Presentation header's "nonce"
// against expected.
func WithNonce(expected string) Verifier {
	return VerifierFunc(func(presented *jwp.PresentedJWP) error {
		nonce, ok := presented.PresentationHeader().Nonce()
		if !ok || nonce != expected {
			return fmt.Errorf("%w: nonce %q does not match expected %q", ErrVerificationFailed, nonce, expected)
		}
		return nil
	})
}

// WithAudience returns a Verifier checking the Presentation header's "aud"
// against expected.
func WithAudience(expected string) Verifier {
	return VerifierFunc(func(presented *jwp.PresentedJWP) error {
		aud, ok := presented.PresentationHeader().Audience()
		if !ok || aud != expected {
			return fmt.Errorf("%w: audience %q does not match expected %q", ErrVerificationFailed, aud, expected)
		}
		return nil
	})
}

// VerifyAndReconstructWith runs verifiers against presented before delegating
// to VerifyAndReconstruct. The first failing Verifier short-circuits the
// call; the proof itself is still checked by VerifyAndReconstruct.
func VerifyAndReconstructWith(presented *jwp.PresentedJWP, publicKey *jwk.Key, verifiers ...Verifier) (*ordered.Object, error) {
	for _, v := range verifiers {
		if err := v.Verify(presented); err != nil {
			return nil, err
		}
	}
	return VerifyAndReconstruct(presented, publicKey)
}
