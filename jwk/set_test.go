package jwk

import (
	"encoding/json"
	"testing"

	"github.com/go-test/deep"
)

func TestSet_JSONSerialization(t *testing.T) {
	const jsonData = `{"keys":[{"use":"sig","kid":"1","kty":"OKP","crv":"Bls12381G2","x":"AQ"},{"kid":"2","kty":"OKP","crv":"Bls12381G2","x":"Ag","d":"Aw"}]}`

	set := Set{
		New([]byte{1}, KeyDescription{KeyUse: "sig", KeyID: "1"}),
		NewKeyPair([]byte{2}, []byte{3}, KeyDescription{KeyID: "2"}),
	}

	t.Run("marshal", func(t *testing.T) {
		got, err := json.Marshal(set)
		if err != nil {
			t.Fatal(err)
		}

		if string(got) != jsonData {
			t.Errorf("want\n%s but got\n%s", jsonData, string(got))
		}
	})

	t.Run("unmarshal", func(t *testing.T) {
		var got Set
		if err := json.Unmarshal([]byte(jsonData), &got); err != nil {
			t.Fatal(err)
		}

		if diff := deep.Equal(set, got); diff != nil {
			t.Errorf("want\n%+v but got\n%+v", set, got)
		}
	})
}

func TestSet_HasAndFirst(t *testing.T) {
	set := Set{
		New([]byte{1}, KeyDescription{KeyID: "1"}),
		New([]byte{2}, KeyDescription{KeyID: "2"}),
	}

	if !set.Has(WithID("2")) {
		t.Error("expected set to contain kid=2")
	}

	if set.Has(WithID("3")) {
		t.Error("expected set to not contain kid=3")
	}

	if k := set.First(WithID("1")); k == nil || k.ID() != "1" {
		t.Errorf("unexpected key: %v", k)
	}

	if k := set.First(WithID("missing")); k != nil {
		t.Errorf("expected nil, got %v", k)
	}
}
