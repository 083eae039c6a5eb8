// Package jwk implements the subset of JSON Web Keys (RFC 7517) required to
// carry BBS+ key material for JSON Web Proofs: the Octet Key Pair ("OKP")
// key type on the "Bls12381G2" curve. Every other (kty, crv) combination is
// rejected with ErrUnsupportedKeyType; routing keys to the crypto backend is
// all this package does — it never touches the BBS+ primitives themselves.
package jwk

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/halimath/jwp/internal/encoding"
)

// KeyType is the JWK "kty" parameter. Only KeyTypeOKP is supported.
type KeyType string

// Curve is the JWK "crv" parameter. Only CurveBLS12381G2 is supported.
type Curve string

const (
	// ParamKeyType is the JSON field name for the key type.
	ParamKeyType = "kty"

	// KeyTypeOKP is the only supported JWK key type: an Octet Key Pair.
	KeyTypeOKP KeyType = "OKP"

	// CurveBLS12381G2 is the only supported curve: BLS12-381, G2 subgroup,
	// used for BBS+ signing and proof keys.
	CurveBLS12381G2 Curve = "Bls12381G2"
)

// ErrUnsupportedKeyType is returned when a JWK's (kty, crv) pair is not
// OKP/Bls12381G2.
var ErrUnsupportedKeyType = errors.New("jwk: unsupported key type")

// KeyDescription carries the generic JWK metadata parameters a BLS12381G2
// key may include alongside its key material.
type KeyDescription struct {
	KeyUse       string `json:"use,omitempty"`
	KeyAlgorithm string `json:"alg,omitempty"`
	KeyID        string `json:"kid,omitempty"`
}

// Use returns the "use" parameter.
func (k KeyDescription) Use() string { return k.KeyUse }

// Algorithm returns the "alg" parameter.
func (k KeyDescription) Algorithm() string { return k.KeyAlgorithm }

// ID returns the "kid" parameter.
func (k KeyDescription) ID() string { return k.KeyID }

// Key is a BLS12381G2 OKP JWK. It always carries public key octets ("x")
// and optionally secret scalar octets ("d"). Consistency between x and d is
// not checked here — it is checked lazily by the crypto backend the first
// time the pair is used, per spec.
type Key struct {
	KeyDescription
	x []byte
	d []byte
}

// New builds a public-only Key from raw public key octets.
func New(x []byte, desc KeyDescription) *Key {
	return &Key{KeyDescription: desc, x: x}
}

// NewKeyPair builds a Key carrying both public and secret octets.
func NewKeyPair(x, d []byte, desc KeyDescription) *Key {
	return &Key{KeyDescription: desc, x: x, d: d}
}

// Type always returns KeyTypeOKP.
func (k *Key) Type() KeyType { return KeyTypeOKP }

// Curve always returns CurveBLS12381G2.
func (k *Key) Curve() Curve { return CurveBLS12381G2 }

// PublicOctets returns the key's public key bytes ("x").
func (k *Key) PublicOctets() []byte {
	b := make([]byte, len(k.x))
	copy(b, k.x)
	return b
}

// SecretOctets returns the key's secret scalar bytes ("d") and true, or nil
// and false if the key carries no secret material.
func (k *Key) SecretOctets() ([]byte, bool) {
	if k.d == nil {
		return nil, false
	}
	b := make([]byte, len(k.d))
	copy(b, k.d)
	return b, true
}

// HasSecret reports whether SecretOctets would succeed.
func (k *Key) HasSecret() bool {
	return k.d != nil
}

type keyJSONWrapper struct {
	KeyDescription
	Type  KeyType `json:"kty" validate:"required,eq=OKP"`
	Curve Curve   `json:"crv" validate:"required,eq=Bls12381G2"`
	X     string  `json:"x" validate:"required"`
	D     string  `json:"d,omitempty"`
}

// MarshalJSON serializes k as a JWK JSON object.
func (k *Key) MarshalJSON() ([]byte, error) {
	w := keyJSONWrapper{
		KeyDescription: k.KeyDescription,
		Type:           k.Type(),
		Curve:          k.Curve(),
		X:              encoding.Encode(k.x),
	}
	if k.d != nil {
		w.D = encoding.Encode(k.d)
	}
	return json.Marshal(w)
}

// UnmarshalJSON parses a JWK JSON object into k. It fails with
// ErrUnsupportedKeyType unless kty/crv is OKP/Bls12381G2.
func (k *Key) UnmarshalJSON(data []byte) error {
	var w keyJSONWrapper
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("jwk: malformed key JSON: %w", err)
	}

	if w.Type != KeyTypeOKP || w.Curve != CurveBLS12381G2 {
		return fmt.Errorf("%w: kty=%s crv=%s", ErrUnsupportedKeyType, w.Type, w.Curve)
	}

	if err := validateStruct(w); err != nil {
		return err
	}

	x, err := encoding.Decode(w.X)
	if err != nil {
		return fmt.Errorf("jwk: invalid x value: %w", err)
	}

	k.KeyDescription = w.KeyDescription
	k.x = x

	if w.D != "" {
		d, err := encoding.Decode(w.D)
		if err != nil {
			return fmt.Errorf("jwk: invalid d value: %w", err)
		}
		k.d = d
	}

	return nil
}

// Parse parses data as a JWK and returns the resulting Key, or
// ErrUnsupportedKeyType if data does not describe an OKP/Bls12381G2 key.
func Parse(data []byte) (*Key, error) {
	var k Key
	if err := json.Unmarshal(data, &k); err != nil {
		return nil, err
	}
	return &k, nil
}

// Serialize is a convenience wrapper around json.Marshal, provided for
// symmetry with Parse.
func Serialize(k *Key) ([]byte, error) {
	return json.Marshal(k)
}
