package jwp_test

import (
	"testing"

	"github.com/go-test/deep"
	"github.com/halimath/jwp/bbs"
	"github.com/halimath/jwp/internal/testbackend"
	"github.com/halimath/jwp/jpa"
	"github.com/halimath/jwp/jwk"
)

func init() {
	for _, alg := range []jpa.Alg{
		jpa.BLS12381SHA256,
		jpa.BLS12381SHAKE256,
		jpa.BLS12381SHA256Proof,
		jpa.BLS12381SHAKE256Proof,
	} {
		jpa.Register(alg, testbackend.New)
	}
}

var _ bbs.Backend = testbackend.Backend{}

func testKeyPair() *jwk.Key {
	shared := []byte("shared-test-key-material")
	return jwk.NewKeyPair(shared, shared, jwk.KeyDescription{KeyID: "test-key-1"})
}

func testPublicKey() *jwk.Key {
	shared := []byte("shared-test-key-material")
	return jwk.New(shared, jwk.KeyDescription{KeyID: "test-key-1"})
}

func testPayloads(values ...string) [][]byte {
	out := make([][]byte, len(values))
	for i, v := range values {
		out[i] = []byte(v)
	}
	return out
}

func assertNoDiff(t *testing.T, got, want any) {
	t.Helper()
	if diff := deep.Equal(got, want); diff != nil {
		t.Errorf("unexpected diff: %v", diff)
	}
}
