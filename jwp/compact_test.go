package jwp_test

import (
	"testing"

	"github.com/halimath/jwp/jpa"
	"github.com/halimath/jwp/jwp"
	"github.com/stretchr/testify/require"
)

func TestIssued_CompactRoundTrip(t *testing.T) {
	header := jwp.NewIssuerHeader(jpa.BLS12381SHA256)
	header.SetClaims([]string{"given_name", "age"})

	payloads := testPayloads(`"Alice"`, `42`)

	issued, err := jwp.NewIssued(header, payloads, testKeyPair())
	require.NoError(t, err)

	compact, err := jwp.SerializeIssued(issued)
	require.NoError(t, err)

	parsed, err := jwp.ParseIssued(compact)
	require.NoError(t, err)

	assertNoDiff(t, parsed.Payloads(), issued.Payloads())
	assertNoDiff(t, parsed.Proof(), issued.Proof())

	require.NoError(t, parsed.Verify(testPublicKey()))
}

func TestParseIssued_RejectsWrongDotCount(t *testing.T) {
	_, err := jwp.ParseIssued("only.two")
	require.ErrorIs(t, err, jwp.ErrCompactMalformed)
}

func TestParseIssued_RejectsEmptyPayloadToken(t *testing.T) {
	header := jwp.NewIssuerHeader(jpa.BLS12381SHA256)
	payloads := testPayloads(`"Alice"`, `42`)

	issued, err := jwp.NewIssued(header, payloads, testKeyPair())
	require.NoError(t, err)

	compact, err := jwp.SerializeIssued(issued)
	require.NoError(t, err)

	parts := splitCompact(compact)
	parts[1] = "~" + parts[1] // inserts a leading empty payload token
	_, err = jwp.ParseIssued(parts[0] + "." + parts[1] + "." + parts[2])
	require.ErrorIs(t, err, jwp.ErrCompactMalformed)
}

func TestPresented_CompactRoundTrip(t *testing.T) {
	header := jwp.NewIssuerHeader(jpa.BLS12381SHA256)
	header.SetClaims([]string{"given_name", "family_name", "age"})
	require.NoError(t, header.SetProofJWK(testPublicKey()))

	payloads := testPayloads(`"Alice"`, `"Doe"`, `42`)

	issued, err := jwp.NewIssued(header, payloads, testKeyPair())
	require.NoError(t, err)

	presHeader := jwp.NewPresentationHeader(jpa.BLS12381SHA256Proof)
	presHeader.SetNonce("n-1")

	presented, err := jwp.Present(issued, presHeader, []int{0, 2})
	require.NoError(t, err)

	compact, err := jwp.SerializePresented(presented)
	require.NoError(t, err)

	parsed, err := jwp.ParsePresented(compact)
	require.NoError(t, err)

	require.NoError(t, parsed.Verify(testPublicKey()))
	assertNoDiff(t, parsed.DisclosedPayloads(), presented.DisclosedPayloads())

	full := parsed.Payloads()
	require.Nil(t, full[1])
}

func TestParsePresented_RejectsAlgMismatch(t *testing.T) {
	header := jwp.NewIssuerHeader(jpa.BLS12381SHA256)
	payloads := testPayloads(`"Alice"`)

	issued, err := jwp.NewIssued(header, payloads, testKeyPair())
	require.NoError(t, err)

	compact, err := jwp.SerializeIssued(issued)
	require.NoError(t, err)

	mismatchedPresHeader := jwp.NewPresentationHeader(jpa.BLS12381SHAKE256Proof)
	presEncoded, _, err := mismatchedPresHeader.Encode()
	require.NoError(t, err)

	issuerHeaderEncoded := splitCompact(compact)[0]
	forged := issuerHeaderEncoded + "." + presEncoded + "." + splitCompact(compact)[1] + "." + splitCompact(compact)[2]

	_, err = jwp.ParsePresented(forged)
	require.ErrorIs(t, err, jwp.ErrAlgMismatch)
}

func splitCompact(compact string) []string {
	var parts []string
	start := 0
	for i := 0; i < len(compact); i++ {
		if compact[i] == '.' {
			parts = append(parts, compact[start:i])
			start = i + 1
		}
	}
	parts = append(parts, compact[start:])
	return parts
}
