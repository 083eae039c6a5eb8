package jwp

import (
	"encoding/json"
	"fmt"

	"github.com/halimath/jwp/internal/encoding"
	"github.com/halimath/jwp/internal/ordered"
	"github.com/halimath/jwp/jpa"
	"github.com/halimath/jwp/jwk"
)

// Header field names recognized by the Issuer and Presentation protected
// headers (spec.md §3). Fields not listed here round-trip unchanged as
// extras.
const (
	ParamAlg             = "alg"
	ParamKeyID           = "kid"
	ParamClaimsSetID     = "cid"
	ParamType            = "typ"
	ParamIssuer          = "iss"
	ParamClaims          = "claims"
	ParamProofJWK        = "proof_jwk"
	ParamNonce           = "nonce"
	ParamAudience        = "aud"
	ParamIssuedAt        = "iat"
	ParamPresentationJWK = "presentation_jwk"
)

// IssuerHeader is the Issuer Protected Header: the JSON object whose exact
// byte image is bound into the BBS+ signature as the signing suite's
// "header" input. It is a typed view over an order-preserving JSON object;
// unknown fields survive a parse/serialize round-trip unchanged.
type IssuerHeader struct {
	obj *ordered.Object
}

// NewIssuerHeader returns an IssuerHeader carrying only "alg". alg must be
// a signing suite.
func NewIssuerHeader(alg jpa.Alg) *IssuerHeader {
	o := ordered.NewObject()
	o.Set(ParamAlg, string(alg))
	return &IssuerHeader{obj: o}
}

// Alg returns the header's algorithm identifier.
func (h *IssuerHeader) Alg() (jpa.Alg, error) {
	return headerAlg(h.obj)
}

// SetKeyID sets "kid".
func (h *IssuerHeader) SetKeyID(kid string) { h.obj.Set(ParamKeyID, kid) }

// KeyID returns "kid" and whether it was present.
func (h *IssuerHeader) KeyID() (string, bool) { return getString(h.obj, ParamKeyID) }

// SetClaimsSetID sets "cid", the claims-set identifier.
func (h *IssuerHeader) SetClaimsSetID(cid string) { h.obj.Set(ParamClaimsSetID, cid) }

// ClaimsSetID returns "cid" and whether it was present.
func (h *IssuerHeader) ClaimsSetID() (string, bool) { return getString(h.obj, ParamClaimsSetID) }

// SetType sets "typ".
func (h *IssuerHeader) SetType(typ string) { h.obj.Set(ParamType, typ) }

// Type returns "typ" and whether it was present.
func (h *IssuerHeader) Type() (string, bool) { return getString(h.obj, ParamType) }

// SetIssuer sets "iss", the issuer URL.
func (h *IssuerHeader) SetIssuer(iss string) { h.obj.Set(ParamIssuer, iss) }

// Issuer returns "iss" and whether it was present.
func (h *IssuerHeader) Issuer() (string, bool) { return getString(h.obj, ParamIssuer) }

// SetClaims sets "claims", the ordered claim-path names parallel to the
// JWP's payload vector.
func (h *IssuerHeader) SetClaims(paths []string) { h.obj.Set(ParamClaims, paths) }

// Claims returns "claims" and whether it was present.
func (h *IssuerHeader) Claims() ([]string, bool) { return getStringSlice(h.obj, ParamClaims) }

// SetProofJWK sets "proof_jwk", the public portion of the signing key.
func (h *IssuerHeader) SetProofJWK(k *jwk.Key) error {
	v, err := jwkToOrdered(k)
	if err != nil {
		return err
	}
	h.obj.Set(ParamProofJWK, v)
	return nil
}

// ProofJWK returns "proof_jwk" parsed into a *jwk.Key, and whether it was
// present and well-formed.
func (h *IssuerHeader) ProofJWK() (*jwk.Key, bool) { return getJWK(h.obj, ParamProofJWK) }

// SetExtra sets an ad-hoc, non-well-known header field.
func (h *IssuerHeader) SetExtra(key string, value any) error {
	return setExtra(h.obj, key, value)
}

// Extra returns an ad-hoc header field and whether it was present.
func (h *IssuerHeader) Extra(key string) (any, bool) { return h.obj.Get(key) }

// Encode returns the header's base64url-nopad compact token together with
// its exact JSON byte image, the same bytes the signature is computed
// over.
func (h *IssuerHeader) Encode() (string, []byte, error) { return encodeHeader(h.obj) }

// ParseIssuerHeader decodes encoded as an Issuer Protected Header. It fails
// with ErrMissingAlg, ErrUnknownAlg, ErrHeaderMalformed, or ErrAlgMismatch
// if encoded carries a proof suite instead of a signing suite.
func ParseIssuerHeader(encoded string) (*IssuerHeader, []byte, error) {
	obj, raw, err := decodeHeaderObject(encoded)
	if err != nil {
		return nil, nil, err
	}

	h := &IssuerHeader{obj: obj}
	alg, err := h.Alg()
	if err != nil {
		return nil, nil, err
	}
	if !alg.IsSigningSuite() {
		return nil, nil, fmt.Errorf("%w: issuer header carries proof suite %s", ErrAlgMismatch, alg)
	}

	return h, raw, nil
}

// PresentationHeader is the Presentation Protected Header: the JSON object
// bound into the derived presentation proof alongside the Issuer header and
// the disclosed payloads.
type PresentationHeader struct {
	obj *ordered.Object
}

// NewPresentationHeader returns a PresentationHeader carrying only "alg".
// alg must be a proof suite.
func NewPresentationHeader(alg jpa.Alg) *PresentationHeader {
	o := ordered.NewObject()
	o.Set(ParamAlg, string(alg))
	return &PresentationHeader{obj: o}
}

// Alg returns the header's algorithm identifier.
func (h *PresentationHeader) Alg() (jpa.Alg, error) { return headerAlg(h.obj) }

// SetKeyID sets "kid".
func (h *PresentationHeader) SetKeyID(kid string) { h.obj.Set(ParamKeyID, kid) }

// KeyID returns "kid" and whether it was present.
func (h *PresentationHeader) KeyID() (string, bool) { return getString(h.obj, ParamKeyID) }

// SetNonce sets "nonce", the presentation freshness challenge.
func (h *PresentationHeader) SetNonce(nonce string) { h.obj.Set(ParamNonce, nonce) }

// Nonce returns "nonce" and whether it was present.
func (h *PresentationHeader) Nonce() (string, bool) { return getString(h.obj, ParamNonce) }

// SetAudience sets "aud".
func (h *PresentationHeader) SetAudience(aud string) { h.obj.Set(ParamAudience, aud) }

// Audience returns "aud" and whether it was present.
func (h *PresentationHeader) Audience() (string, bool) { return getString(h.obj, ParamAudience) }

// SetIssuedAt sets "iat" as a Unix timestamp.
func (h *PresentationHeader) SetIssuedAt(iat int64) { h.obj.Set(ParamIssuedAt, iat) }

// IssuedAt returns "iat" and whether it was present.
func (h *PresentationHeader) IssuedAt() (int64, bool) { return getInt(h.obj, ParamIssuedAt) }

// SetPresentationJWK sets "presentation_jwk".
func (h *PresentationHeader) SetPresentationJWK(k *jwk.Key) error {
	v, err := jwkToOrdered(k)
	if err != nil {
		return err
	}
	h.obj.Set(ParamPresentationJWK, v)
	return nil
}

// PresentationJWK returns "presentation_jwk" parsed into a *jwk.Key, and
// whether it was present and well-formed.
func (h *PresentationHeader) PresentationJWK() (*jwk.Key, bool) {
	return getJWK(h.obj, ParamPresentationJWK)
}

// SetExtra sets an ad-hoc, non-well-known header field.
func (h *PresentationHeader) SetExtra(key string, value any) error {
	return setExtra(h.obj, key, value)
}

// Extra returns an ad-hoc header field and whether it was present.
func (h *PresentationHeader) Extra(key string) (any, bool) { return h.obj.Get(key) }

// Encode returns the header's base64url-nopad compact token together with
// its exact JSON byte image.
func (h *PresentationHeader) Encode() (string, []byte, error) { return encodeHeader(h.obj) }

// ParsePresentationHeader decodes encoded as a Presentation Protected
// Header. It fails with ErrMissingAlg, ErrUnknownAlg, ErrHeaderMalformed,
// or ErrAlgMismatch if encoded carries a signing suite instead of a proof
// suite.
func ParsePresentationHeader(encoded string) (*PresentationHeader, []byte, error) {
	obj, raw, err := decodeHeaderObject(encoded)
	if err != nil {
		return nil, nil, err
	}

	h := &PresentationHeader{obj: obj}
	alg, err := h.Alg()
	if err != nil {
		return nil, nil, err
	}
	if !alg.IsProofSuite() {
		return nil, nil, fmt.Errorf("%w: presentation header carries signing suite %s", ErrAlgMismatch, alg)
	}

	return h, raw, nil
}

func headerAlg(obj *ordered.Object) (jpa.Alg, error) {
	v, ok := obj.Get(ParamAlg)
	if !ok {
		return "", ErrMissingAlg
	}

	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: alg is not a string", ErrHeaderMalformed)
	}

	alg, err := jpa.ParseAlg(s)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrUnknownAlg, err)
	}

	return alg, nil
}

func setExtra(obj *ordered.Object, key string, value any) error {
	v, err := ordered.Normalize(value)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrEncodingError, err)
	}
	obj.Set(key, v)
	return nil
}

func encodeHeader(obj *ordered.Object) (string, []byte, error) {
	b, err := ordered.Marshal(obj)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %s", ErrEncodingError, err)
	}
	return encoding.Encode(b), b, nil
}

func decodeHeaderObject(encoded string) (*ordered.Object, []byte, error) {
	raw, err := encoding.Decode(encoded)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w: %s", ErrCompactMalformed, ErrHeaderMalformed, err)
	}

	v, err := ordered.Parse(raw)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s", ErrHeaderMalformed, err)
	}

	obj, ok := v.(*ordered.Object)
	if !ok {
		return nil, nil, fmt.Errorf("%w: header is not a JSON object", ErrHeaderMalformed)
	}

	return obj, raw, nil
}

func getString(obj *ordered.Object, key string) (string, bool) {
	v, ok := obj.Get(key)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

func getInt(obj *ordered.Object, key string) (int64, bool) {
	v, ok := obj.Get(key)
	if !ok {
		return 0, false
	}

	switch n := v.(type) {
	case json.Number:
		i, err := n.Int64()
		return i, err == nil
	case int64:
		return n, true
	case int:
		return int64(n), true
	case float64:
		return int64(n), true
	}

	return 0, false
}

func getStringSlice(obj *ordered.Object, key string) ([]string, bool) {
	v, ok := obj.Get(key)
	if !ok {
		return nil, false
	}

	switch t := v.(type) {
	case []string:
		out := make([]string, len(t))
		copy(out, t)
		return out, true
	case []any:
		out := make([]string, len(t))
		for i, e := range t {
			s, ok := e.(string)
			if !ok {
				return nil, false
			}
			out[i] = s
		}
		return out, true
	}

	return nil, false
}

func jwkToOrdered(k *jwk.Key) (*ordered.Object, error) {
	b, err := jwk.Serialize(k)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrEncodingError, err)
	}

	v, err := ordered.Parse(b)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrEncodingError, err)
	}

	obj, ok := v.(*ordered.Object)
	if !ok {
		return nil, fmt.Errorf("%w: jwk did not serialize to a JSON object", ErrEncodingError)
	}

	return obj, nil
}

func getJWK(obj *ordered.Object, key string) (*jwk.Key, bool) {
	v, ok := obj.Get(key)
	if !ok {
		return nil, false
	}

	o, ok := v.(*ordered.Object)
	if !ok {
		return nil, false
	}

	b, err := ordered.Marshal(o)
	if err != nil {
		return nil, false
	}

	k, err := jwk.Parse(b)
	if err != nil {
		return nil, false
	}

	return k, true
}
