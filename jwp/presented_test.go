package jwp_test

import (
	"strings"
	"testing"

	"github.com/halimath/jwp/internal/encoding"
	"github.com/halimath/jwp/jpa"
	"github.com/halimath/jwp/jwp"
	"github.com/stretchr/testify/require"
)

func issuedFixture(t *testing.T) (*jwp.IssuedJWP, [][]byte) {
	t.Helper()
	header := jwp.NewIssuerHeader(jpa.BLS12381SHA256)
	header.SetClaims([]string{"given_name", "family_name", "age"})
	require.NoError(t, header.SetProofJWK(testPublicKey()))

	payloads := testPayloads(`"Alice"`, `"Doe"`, `42`)

	issued, err := jwp.NewIssued(header, payloads, testKeyPair())
	require.NoError(t, err)

	return issued, payloads
}

func TestPresent_DiscloseSubsetAndVerify(t *testing.T) {
	issued, payloads := issuedFixture(t)

	presHeader := jwp.NewPresentationHeader(jpa.BLS12381SHA256Proof)
	presHeader.SetNonce("n-1")

	presented, err := jwp.Present(issued, presHeader, []int{0, 2})
	require.NoError(t, err)

	require.NoError(t, presented.Verify(testPublicKey()))

	disclosed := presented.DisclosedPayloads()
	require.Len(t, disclosed, 2)
	assertNoDiff(t, disclosed[0].Payload, payloads[0])
	require.Equal(t, 0, disclosed[0].Index)
	assertNoDiff(t, disclosed[1].Payload, payloads[2])
	require.Equal(t, 2, disclosed[1].Index)

	full := presented.Payloads()
	require.Nil(t, full[1])
}

func TestPresent_FullDisclosure(t *testing.T) {
	issued, payloads := issuedFixture(t)

	presHeader := jwp.NewPresentationHeader(jpa.BLS12381SHA256Proof)
	presented, err := jwp.Present(issued, presHeader, []int{0, 1, 2})
	require.NoError(t, err)
	require.NoError(t, presented.Verify(testPublicKey()))

	disclosed := presented.DisclosedPayloads()
	require.Len(t, disclosed, 3)
	for i, d := range disclosed {
		assertNoDiff(t, d.Payload, payloads[i])
	}
}

func TestPresent_EmptyDisclosure(t *testing.T) {
	issued, _ := issuedFixture(t)

	presHeader := jwp.NewPresentationHeader(jpa.BLS12381SHA256Proof)
	presented, err := jwp.Present(issued, presHeader, nil)
	require.NoError(t, err)
	require.NoError(t, presented.Verify(testPublicKey()))
	require.Empty(t, presented.DisclosedPayloads())
}

func TestPresent_RejectsAlgMismatch(t *testing.T) {
	issued, _ := issuedFixture(t)

	presHeader := jwp.NewPresentationHeader(jpa.BLS12381SHAKE256Proof)

	_, err := jwp.Present(issued, presHeader, []int{0})
	require.ErrorIs(t, err, jwp.ErrAlgMismatch)
}

func TestPresent_RejectsDuplicateIndices(t *testing.T) {
	issued, _ := issuedFixture(t)

	presHeader := jwp.NewPresentationHeader(jpa.BLS12381SHA256Proof)

	_, err := jwp.Present(issued, presHeader, []int{0, 0})
	require.ErrorIs(t, err, jwp.ErrBadDisclosure)
}

func TestPresent_RejectsOutOfRangeIndices(t *testing.T) {
	issued, _ := issuedFixture(t)

	presHeader := jwp.NewPresentationHeader(jpa.BLS12381SHA256Proof)

	_, err := jwp.Present(issued, presHeader, []int{5})
	require.ErrorIs(t, err, jwp.ErrBadDisclosure)
}

func TestPresentedJWP_Verify_TamperedDisclosedPayloadFails(t *testing.T) {
	issued, _ := issuedFixture(t)

	presHeader := jwp.NewPresentationHeader(jpa.BLS12381SHA256Proof)
	presented, err := jwp.Present(issued, presHeader, []int{0})
	require.NoError(t, err)

	compact, err := jwp.SerializePresented(presented)
	require.NoError(t, err)

	parts := strings.Split(compact, ".")
	require.Len(t, parts, 4)

	payloadTokens := strings.Split(parts[2], "~")
	payloadTokens[0] = encoding.Encode([]byte(`"Mallory"`))
	parts[2] = strings.Join(payloadTokens, "~")

	corrupt, err := jwp.ParsePresented(strings.Join(parts, "."))
	require.NoError(t, err)

	err = corrupt.Verify(testPublicKey())
	require.Error(t, err)
}

func TestPresent_DeriveProofIsRerandomized(t *testing.T) {
	issued, _ := issuedFixture(t)

	presHeader := jwp.NewPresentationHeader(jpa.BLS12381SHA256Proof)

	p1, err := jwp.Present(issued, presHeader, []int{0})
	require.NoError(t, err)
	p2, err := jwp.Present(issued, presHeader, []int{0})
	require.NoError(t, err)

	require.NotEqual(t, p1.Proof(), p2.Proof())
	require.NoError(t, p1.Verify(testPublicKey()))
	require.NoError(t, p2.Verify(testPublicKey()))
}
