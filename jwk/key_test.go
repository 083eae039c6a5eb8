package jwk

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/go-test/deep"
)

func TestKey_jsonMarshaling(t *testing.T) {
	key := NewKeyPair([]byte("pub-octets"), []byte("sec-octets"), KeyDescription{
		KeyID: "key-1",
		KeyUse: "sig",
	})

	t.Run("marshal then unmarshal round-trips", func(t *testing.T) {
		data, err := json.Marshal(key)
		if err != nil {
			t.Fatal(err)
		}

		var unmarshaled Key
		if err := json.Unmarshal(data, &unmarshaled); err != nil {
			t.Fatal(err)
		}

		if diff := deep.Equal(key, &unmarshaled); diff != nil {
			t.Errorf("unexpected diff %v", diff)
		}
	})

	t.Run("public only key has no secret", func(t *testing.T) {
		pub := New([]byte("pub-octets"), KeyDescription{})
		if _, ok := pub.SecretOctets(); ok {
			t.Error("expected public-only key to have no secret octets")
		}
		if pub.HasSecret() {
			t.Error("expected HasSecret to be false")
		}
	})
}

func TestKey_UnmarshalJSON_rejectsUnsupportedKeyType(t *testing.T) {
	const jsonData = `{"kty":"EC","crv":"P-256","x":"AQ","y":"Ag"}`

	var k Key
	err := json.Unmarshal([]byte(jsonData), &k)
	if err == nil {
		t.Fatal("expected an error")
	}

	if !errors.Is(err, ErrUnsupportedKeyType) {
		t.Errorf("expected ErrUnsupportedKeyType, got %v", err)
	}
}

func TestKey_UnmarshalJSON_rejectsMissingX(t *testing.T) {
	const jsonData = `{"kty":"OKP","crv":"Bls12381G2"}`

	var k Key
	if err := json.Unmarshal([]byte(jsonData), &k); err == nil {
		t.Fatal("expected an error for missing x")
	}
}
