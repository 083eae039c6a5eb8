package jwk

import (
	"encoding/json"
)

// KeyFilter is a predicate used to select a Key out of a Set.
type KeyFilter func(k *Key) bool

// WithID creates a KeyFilter that matches a Key by its "kid".
func WithID(kid string) KeyFilter {
	return func(k *Key) bool {
		return k.ID() == kid
	}
}

// Set is a set of keys, serialized as a JWK Set per RFC 7517 section 5.
type Set []*Key

// Has reports whether s contains at least one Key matching f.
func (s Set) Has(f KeyFilter) bool {
	return s.First(f) != nil
}

// First returns the first key in s matching f, or nil if none matches.
func (s Set) First(f KeyFilter) *Key {
	for _, k := range s {
		if f(k) {
			return k
		}
	}
	return nil
}

const (
	// ParamKey is the JSON field name carrying the array of keys.
	ParamKey = "keys"
)

// MarshalJSON serializes s as a JWK Set object: {"keys": [...]}.
func (s Set) MarshalJSON() ([]byte, error) {
	type wrapper struct {
		Keys []*Key `json:"keys"`
	}
	return json.Marshal(wrapper{Keys: s})
}

// UnmarshalJSON parses a JWK Set object into s.
func (s *Set) UnmarshalJSON(data []byte) error {
	type wrapper struct {
		Keys []*Key `json:"keys"`
	}

	var w wrapper
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	*s = Set(w.Keys)
	return nil
}
