package jpa

import (
	"errors"
	"fmt"
	"sort"

	"github.com/halimath/jwp/bbs"
)

// Suite is the contract §4.D binds to an alg: a BBS+ backend fixed to one
// hash family, plus the disclosure-index validation the JPA layer owns.
type Suite interface {
	// Alg returns the algorithm identifier this Suite implements.
	Alg() Alg

	// Sign computes a BBS+ signature over payloads with headerBytes bound
	// in as the signature's header input.
	Sign(secretOctets, headerBytes []byte, payloads [][]byte) ([]byte, error)

	// Verify checks a signature produced by Sign.
	Verify(publicOctets, headerBytes []byte, payloads [][]byte, proof []byte) error

	// DeriveProof runs BBS+ ProofGen, disclosing only the payloads at
	// disclosedIndices. Indices are range-checked, checked for duplicates
	// and sorted here before reaching the backend; a violation is
	// ErrBadDisclosure.
	DeriveProof(publicOctets, issuerHeaderBytes, presentationHeaderBytes []byte, payloads [][]byte, disclosedIndices []int, issuerProof []byte) ([]byte, error)

	// VerifyProof runs BBS+ ProofVerify against the disclosed payloads.
	// disclosed indices are range-checked against totalCount and checked
	// for duplicates before reaching the backend.
	VerifyProof(publicOctets, issuerHeaderBytes, presentationHeaderBytes []byte, disclosed []bbs.DisclosedPayload, totalCount int, proof []byte) error
}

type suite struct {
	alg     Alg
	backend bbs.Backend
}

func (s *suite) Alg() Alg { return s.alg }

func (s *suite) Sign(secretOctets, headerBytes []byte, payloads [][]byte) ([]byte, error) {
	proof, err := s.backend.Sign(secretOctets, headerBytes, payloads)
	if err != nil {
		return nil, wrapBackendErr(err)
	}
	return proof, nil
}

func (s *suite) Verify(publicOctets, headerBytes []byte, payloads [][]byte, proof []byte) error {
	if err := s.backend.Verify(publicOctets, headerBytes, payloads, proof); err != nil {
		return wrapBackendErr(err)
	}
	return nil
}

func (s *suite) DeriveProof(publicOctets, issuerHeaderBytes, presentationHeaderBytes []byte, payloads [][]byte, disclosedIndices []int, issuerProof []byte) ([]byte, error) {
	sorted, err := sortUniqueInRange(disclosedIndices, len(payloads))
	if err != nil {
		return nil, err
	}

	proof, err := s.backend.DeriveProof(publicOctets, issuerHeaderBytes, presentationHeaderBytes, payloads, sorted, issuerProof)
	if err != nil {
		return nil, wrapBackendErr(err)
	}
	return proof, nil
}

func (s *suite) VerifyProof(publicOctets, issuerHeaderBytes, presentationHeaderBytes []byte, disclosed []bbs.DisclosedPayload, totalCount int, proof []byte) error {
	seen := make(map[int]bool, len(disclosed))
	for _, d := range disclosed {
		if d.Index < 0 || d.Index >= totalCount {
			return fmt.Errorf("%w: index %d out of range [0,%d)", ErrBadDisclosure, d.Index, totalCount)
		}
		if seen[d.Index] {
			return fmt.Errorf("%w: duplicate index %d", ErrBadDisclosure, d.Index)
		}
		seen[d.Index] = true
	}

	if err := s.backend.VerifyProof(publicOctets, issuerHeaderBytes, presentationHeaderBytes, disclosed, totalCount, proof); err != nil {
		return wrapBackendErr(err)
	}
	return nil
}

func sortUniqueInRange(indices []int, total int) ([]int, error) {
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

func wrapBackendErr(err error) error {
	if errors.Is(err, bbs.ErrInvalidProof) {
		return fmt.Errorf("%w: %w", ErrInvalidProof, err)
	}
	return fmt.Errorf("%w: %w", ErrCryptoFailure, err)
}

// registry is the data-driven alg -> backend table (spec.md §9's open
// question on alg-name churn): adding or renaming a suite is an edit here,
// never a type switch elsewhere.
var registry = map[Alg]func() bbs.Backend{
	BLS12381SHA256:        func() bbs.Backend { return bbs.NewAries(bbs.SHA256) },
	BLS12381SHAKE256:      func() bbs.Backend { return bbs.NewAries(bbs.SHAKE256) },
	BLS12381SHA256Proof:   func() bbs.Backend { return bbs.NewAries(bbs.SHA256) },
	BLS12381SHAKE256Proof: func() bbs.Backend { return bbs.NewAries(bbs.SHAKE256) },
}

// Register installs backend as the constructor used for alg, replacing any
// existing entry. It exists so the alg table stays genuinely data-driven:
// an alternative or test backend can be swapped in without a structural
// change to Lookup or its callers.
func Register(alg Alg, backend func() bbs.Backend) {
	registry[alg] = backend
}

// Lookup resolves alg to its Suite, or ErrUnknownAlg if alg names no
// registered suite.
func Lookup(alg Alg) (Suite, error) {
	ctor, ok := registry[alg]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownAlg, alg)
	}
	return &suite{alg: alg, backend: ctor()}, nil
}
