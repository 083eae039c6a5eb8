package jpt

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/halimath/jwp/internal/ordered"
	"github.com/halimath/jwp/jpa"
	"github.com/halimath/jwp/jwk"
	"github.com/halimath/jwp/jwp"
)

// HeaderExtras carries the Issuer header fields Issue sets beyond "alg",
// "claims" and the payload-derived fields. ClaimsSetID is generated with
// uuid.NewString if left empty.
type HeaderExtras struct {
	KeyID       string
	Issuer      string
	Type        string
	ClaimsSetID string
	ProofJWK    *jwk.Key
}

// Issue flattens claimsJSON into an ordered payload vector, records the
// parallel claim paths in the Issuer header's "claims", and signs the
// result under signingKey. claimsJSON must decode to a JSON object.
func Issue(claimsJSON []byte, alg jpa.Alg, signingKey *jwk.Key, extras HeaderExtras) (*jwp.IssuedJWP, error) {
	v, err := ordered.Parse(claimsJSON)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrClaimsMalformed, err)
	}

	obj, ok := v.(*ordered.Object)
	if !ok {
		return nil, fmt.Errorf("%w: claims document is not a JSON object", ErrClaimsMalformed)
	}

	entries := flattenTree(obj)

	paths := make([]string, len(entries))
	payloads := make([][]byte, len(entries))
	for i, e := range entries {
		paths[i] = e.path

		b, err := ordered.Marshal(e.value)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrClaimsMalformed, err)
		}
		payloads[i] = b
	}

	header := jwp.NewIssuerHeader(alg)
	header.SetClaims(paths)

	cid := extras.ClaimsSetID
	if cid == "" {
		cid = uuid.NewString()
	}
	header.SetClaimsSetID(cid)

	if extras.KeyID != "" {
		header.SetKeyID(extras.KeyID)
	}
	if extras.Issuer != "" {
		header.SetIssuer(extras.Issuer)
	}
	if extras.Type != "" {
		header.SetType(extras.Type)
	}
	if extras.ProofJWK != nil {
		if err := header.SetProofJWK(extras.ProofJWK); err != nil {
			return nil, err
		}
	}

	return jwp.NewIssued(header, payloads, signingKey)
}

// Present resolves paths against issued's "claims" header field and
// delegates to jwp.Present with the resulting indices. A path not present
// in the header fails with ErrUnknownClaim.
func Present(issued *jwp.IssuedJWP, presentationHeader *jwp.PresentationHeader, paths []string) (*jwp.PresentedJWP, error) {
	claims, ok := issued.Header().Claims()
	if !ok {
		return nil, fmt.Errorf("%w: issued token carries no claims header", ErrClaimsMalformed)
	}

	indexOf := make(map[string]int, len(claims))
	for i, p := range claims {
		indexOf[p] = i
	}

	indices := make([]int, len(paths))
	for i, p := range paths {
		idx, ok := indexOf[p]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownClaim, p)
		}
		indices[i] = idx
	}

	return jwp.Present(issued, presentationHeader, indices)
}

// PresentIndices derives a presentation disclosing disclosedIndices
// directly, bypassing claim-path resolution. It is equivalent to calling
// jwp.Present directly; it exists so callers working exclusively with the
// jpt package never need to import jwp for this operation.
func PresentIndices(issued *jwp.IssuedJWP, presentationHeader *jwp.PresentationHeader, disclosedIndices []int) (*jwp.PresentedJWP, error) {
	return jwp.Present(issued, presentationHeader, disclosedIndices)
}

// VerifyAndReconstruct verifies presented's presentation proof, then rebuilds
// a sparse claims tree from the disclosed payloads mapped back through the
// Issuer header's "claims" paths. Paths that were not disclosed are absent
// from the result.
func VerifyAndReconstruct(presented *jwp.PresentedJWP, publicKey *jwk.Key) (*ordered.Object, error) {
	if err := presented.Verify(publicKey); err != nil {
		return nil, err
	}

	claims, ok := presented.IssuerHeader().Claims()
	if !ok {
		return nil, fmt.Errorf("%w: presented token carries no claims header", ErrClaimsMalformed)
	}

	disclosed := presented.DisclosedPayloads()
	entries := make([]flatEntry, 0, len(disclosed))
	for _, d := range disclosed {
		if d.Index < 0 || d.Index >= len(claims) {
			return nil, fmt.Errorf("%w: disclosed index %d has no claim path", ErrClaimsMalformed, d.Index)
		}

		v, err := ordered.Parse(d.Payload)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrClaimsMalformed, err)
		}

		entries = append(entries, flatEntry{path: claims[d.Index], value: v})
	}

	return unflattenTree(entries), nil
}
