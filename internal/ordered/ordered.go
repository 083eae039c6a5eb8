// Package ordered provides a minimal JSON value model that preserves the
// insertion order of object keys, both when parsing and when re-encoding.
//
// encoding/json's generic map[string]any decoding discards key order and its
// encoder always re-sorts map keys alphabetically. JWP header bytes must be
// byte-reproducible between Issuer and Verifier in the exact order the
// Issuer wrote them (RFC 7515-style JOSE headers are order-sensitive in the
// same way), so a generic Value/Object pair is used instead of the stdlib's
// map-based decoding wherever a JSON object's key order is load-bearing.
package ordered

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Object is a JSON object that remembers the order in which its keys were
// first set.
type Object struct {
	keys []string
	vals map[string]any
}

// NewObject returns an empty Object.
func NewObject() *Object {
	return &Object{vals: make(map[string]any)}
}

// Set stores value under key, appending key to the insertion order if it is
// not already present. Setting an existing key updates its value in place
// without changing its position.
func (o *Object) Set(key string, value any) {
	if _, ok := o.vals[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.vals[key] = value
}

// Get returns the value stored under key and whether it was present.
func (o *Object) Get(key string) (any, bool) {
	v, ok := o.vals[key]
	return v, ok
}

// Delete removes key from o, if present.
func (o *Object) Delete(key string) {
	if _, ok := o.vals[key]; !ok {
		return
	}
	delete(o.vals, key)
	for i, k := range o.keys {
		if k == key {
			o.keys = append(o.keys[:i], o.keys[i+1:]...)
			break
		}
	}
}

// Keys returns the object's keys in insertion order.
func (o *Object) Keys() []string {
	keys := make([]string, len(o.keys))
	copy(keys, o.keys)
	return keys
}

// Len returns the number of keys in o.
func (o *Object) Len() int {
	return len(o.keys)
}

// Parse decodes data as a single JSON value, preserving the key order of any
// object encountered. Numbers are kept as json.Number so their original
// textual form survives a round-trip through Marshal.
func Parse(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := parseValue(dec)
	if err != nil {
		return nil, err
	}

	if dec.More() {
		return nil, fmt.Errorf("ordered: trailing data after JSON value")
	}

	return v, nil
}

func parseValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return parseObject(dec)
		case '[':
			return parseArray(dec)
		default:
			return nil, fmt.Errorf("ordered: unexpected delimiter %q", t)
		}
	default:
		return tok, nil
	}
}

func parseObject(dec *json.Decoder) (*Object, error) {
	obj := NewObject()

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}

		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("ordered: object key is not a string: %v", keyTok)
		}

		val, err := parseValue(dec)
		if err != nil {
			return nil, err
		}

		obj.Set(key, val)
	}

	if _, err := dec.Token(); err != nil {
		return nil, err
	}

	return obj, nil
}

func parseArray(dec *json.Decoder) ([]any, error) {
	arr := []any{}

	for dec.More() {
		v, err := parseValue(dec)
		if err != nil {
			return nil, err
		}
		arr = append(arr, v)
	}

	if _, err := dec.Token(); err != nil {
		return nil, err
	}

	return arr, nil
}

// Marshal encodes v, which must be built from the types Parse produces
// (nil, bool, json.Number, string, []any, *Object) or from float64, int,
// int64 and []string, into its canonical JSON byte image. Object keys are
// emitted in their insertion order.
func Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := encodeValue(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeValue(buf *bytes.Buffer, v any) error {
	switch t := v.(type) {
	case nil:
		buf.WriteString("null")
	case bool:
		if t {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case json.Number:
		buf.WriteString(t.String())
	case float64:
		b, err := json.Marshal(t)
		if err != nil {
			return err
		}
		buf.Write(b)
	case int:
		fmt.Fprintf(buf, "%d", t)
	case int64:
		fmt.Fprintf(buf, "%d", t)
	case string:
		b, err := json.Marshal(t)
		if err != nil {
			return err
		}
		buf.Write(b)
	case []any:
		buf.WriteByte('[')
		for i, e := range t {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := encodeValue(buf, e); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case []string:
		buf.WriteByte('[')
		for i, e := range t {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := encodeValue(buf, e); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case *Object:
		buf.WriteByte('{')
		for i, k := range t.keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			kb, err := json.Marshal(k)
			if err != nil {
				return err
			}
			buf.Write(kb)
			buf.WriteByte(':')
			val, _ := t.Get(k)
			if err := encodeValue(buf, val); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	default:
		return fmt.Errorf("ordered: unsupported value type %T", v)
	}

	return nil
}

// Normalize converts v into one of the value kinds Marshal accepts. Values
// produced by Parse already satisfy this; Normalize exists for values
// callers build directly (e.g. a *jwk.Key, or a plain Go int) so they can
// be embedded into an Object without the caller hand-rolling the
// conversion. Anything not already a supported kind is round-tripped
// through encoding/json, so types implementing json.Marshaler serialize
// the way they define.
func Normalize(v any) (any, error) {
	switch v.(type) {
	case nil, bool, json.Number, string, []any, []string, *Object, int, int64, float64:
		return v, nil
	}

	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("ordered: normalizing %T: %w", v, err)
	}

	return Parse(b)
}
