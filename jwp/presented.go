package jwp

import (
	"fmt"
	"sort"

	"github.com/halimath/jwp/bbs"
	"github.com/halimath/jwp/jpa"
	"github.com/halimath/jwp/jwk"
)

// DisclosedPayload pairs a disclosed payload with its position in the
// original, full payload vector.
type DisclosedPayload struct {
	Index   int
	Payload []byte
}

// PresentedJWP is a JSON Web Proof in the Presented state (spec.md §3,
// §4.F): the same ordered payload vector as its originating Issued JWP,
// with hidden positions nulled out, plus a presentation proof derived
// from the issuer's proof. There is no transition back to Issued.
type PresentedJWP struct {
	issuerHeader            *IssuerHeader
	issuerHeaderBytes       []byte
	presentationHeader      *PresentationHeader
	presentationHeaderBytes []byte
	payloads                [][]byte // nil entries are hidden positions
	proof                   []byte
}

// Present derives a Presented JWP from issued, disclosing the payloads at
// disclosedIndices. presentationHeader's alg must be the proof suite
// corresponding to issued's signing suite. disclosedIndices need not be
// sorted; out-of-range or duplicate indices fail with ErrBadDisclosure.
func Present(issued *IssuedJWP, presentationHeader *PresentationHeader, disclosedIndices []int) (*PresentedJWP, error) {
	issuerAlg, err := issued.header.Alg()
	if err != nil {
		return nil, err
	}

	presAlg, err := presentationHeader.Alg()
	if err != nil {
		return nil, err
	}

	expected, err := issuerAlg.ProofAlg()
	if err != nil {
		return nil, err
	}
	if presAlg != expected {
		return nil, fmt.Errorf("%w: issuer alg %s requires presentation alg %s, got %s", ErrAlgMismatch, issuerAlg, expected, presAlg)
	}

	n := len(issued.payloads)
	disclosed, err := sortUniqueIndices(disclosedIndices, n)
	if err != nil {
		return nil, err
	}

	discSet := make(map[int]bool, len(disclosed))
	for _, i := range disclosed {
		discSet[i] = true
	}

	payloadsOut := make([][]byte, n)
	for i, p := range issued.payloads {
		if discSet[i] {
			payloadsOut[i] = copyBytes(p)
		}
	}

	suite, err := jpa.Lookup(presAlg)
	if err != nil {
		return nil, err
	}

	_, presHeaderBytes, err := presentationHeader.Encode()
	if err != nil {
		return nil, err
	}

	key, err := resolvePublicKey(issued.header, nil)
	if err != nil {
		return nil, err
	}

	proof, err := suite.DeriveProof(key.PublicOctets(), issued.headerBytes, presHeaderBytes, issued.payloads, disclosed, issued.proof)
	if err != nil {
		return nil, translateSuiteErr(err)
	}

	return &PresentedJWP{
		issuerHeader:            issued.header,
		issuerHeaderBytes:       issued.headerBytes,
		presentationHeader:      presentationHeader,
		presentationHeaderBytes: presHeaderBytes,
		payloads:                payloadsOut,
		proof:                   copyBytes(proof),
	}, nil
}

// Verify checks the Presented JWP's presentation proof against the
// disclosed payloads, both header byte images, and the issuer's public
// key. If publicKey is nil, the Issuer header's proof_jwk is used.
func (p *PresentedJWP) Verify(publicKey *jwk.Key) error {
	presAlg, err := p.presentationHeader.Alg()
	if err != nil {
		return err
	}

	suite, err := jpa.Lookup(presAlg)
	if err != nil {
		return err
	}

	key, err := resolvePublicKey(p.issuerHeader, publicKey)
	if err != nil {
		return err
	}

	disclosed := p.DisclosedPayloads()
	bbsDisclosed := make([]bbs.DisclosedPayload, len(disclosed))
	for i, d := range disclosed {
		bbsDisclosed[i] = bbs.DisclosedPayload{Index: d.Index, Payload: d.Payload}
	}

	if err := suite.VerifyProof(key.PublicOctets(), p.issuerHeaderBytes, p.presentationHeaderBytes, bbsDisclosed, len(p.payloads), p.proof); err != nil {
		return translateSuiteErr(err)
	}

	return nil
}

// IssuerHeader returns the Presented JWP's Issuer header.
func (p *PresentedJWP) IssuerHeader() *IssuerHeader { return p.issuerHeader }

// PresentationHeader returns the Presented JWP's Presentation header.
func (p *PresentedJWP) PresentationHeader() *PresentationHeader { return p.presentationHeader }

// Proof returns a copy of the opaque presentation proof octets.
func (p *PresentedJWP) Proof() []byte { return copyBytes(p.proof) }

// Payloads returns a deep copy of the payload vector, with hidden
// positions as nil.
func (p *PresentedJWP) Payloads() [][]byte { return copyPayloads(p.payloads) }

// DisclosedIndices returns the sorted set of disclosed payload positions.
func (p *PresentedJWP) DisclosedIndices() []int {
	out := make([]int, 0, len(p.payloads))
	for i, pl := range p.payloads {
		if pl != nil {
			out = append(out, i)
		}
	}
	return out
}

// DisclosedPayloads returns the (index, payload) pairs for every disclosed
// position, ascending by index.
func (p *PresentedJWP) DisclosedPayloads() []DisclosedPayload {
	out := make([]DisclosedPayload, 0, len(p.payloads))
	for i, pl := range p.payloads {
		if pl != nil {
			out = append(out, DisclosedPayload{Index: i, Payload: copyBytes(pl)})
		}
	}
	return out
}

func sortUniqueIndices(indices []int, total int) ([]int, error) {
	seen := make(map[int]bool, len(indices))
	out := make([]int, 0, len(indices))
	for _, i := range indices {
		if i < 0 || i >= total {
			return nil, fmt.Errorf("%w: index %d out of range [0,%d)", ErrBadDisclosure, i, total)
		}
		if seen[i] {
			return nil, fmt.Errorf("%w: duplicate index %d", ErrBadDisclosure, i)
		}
		seen[i] = true
		out = append(out, i)
	}
	sort.Ints(out)
	return out, nil
}
