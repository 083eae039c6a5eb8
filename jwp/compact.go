package jwp

import (
	"fmt"
	"strings"

	"github.com/halimath/jwp/internal/encoding"
)

// SerializeIssued returns j's compact serialization: two "."-separated
// segments of header and proof around a "~"-joined payload list.
func SerializeIssued(j *IssuedJWP) (string, error) {
	headerEncoded, _, err := j.header.Encode()
	if err != nil {
		return "", err
	}

	payloadsEncoded, err := encodePayloads(j.payloads, false)
	if err != nil {
		return "", err
	}

	return headerEncoded + "." + payloadsEncoded + "." + encoding.Encode(j.proof), nil
}

// ParseIssued parses compact as an Issued JWP. It fails with
// ErrCompactMalformed if compact does not have exactly two dots, if any
// payload token is empty, or if any segment fails base64url-nopad
// decoding; alg mismatches propagate from ParseIssuerHeader.
func ParseIssued(compact string) (*IssuedJWP, error) {
	parts := strings.Split(compact, ".")
	if len(parts) != 3 {
		return nil, fmt.Errorf("%w: expected 3 dot-separated parts, got %d", ErrCompactMalformed, len(parts))
	}

	header, headerBytes, err := ParseIssuerHeader(parts[0])
	if err != nil {
		return nil, err
	}

	payloads, err := decodePayloads(parts[1], false)
	if err != nil {
		return nil, err
	}

	proof, err := encoding.Decode(parts[2])
	if err != nil {
		return nil, fmt.Errorf("%w: invalid proof encoding: %s", ErrCompactMalformed, err)
	}

	if claims, ok := header.Claims(); ok && len(claims) != len(payloads) {
		return nil, fmt.Errorf("%w: header carries %d claim names for %d payloads", ErrHeaderMalformed, len(claims), len(payloads))
	}

	return &IssuedJWP{
		header:      header,
		headerBytes: headerBytes,
		payloads:    payloads,
		proof:       proof,
	}, nil
}

// SerializePresented returns p's compact serialization: three
// "."-separated segments of issuer header, presentation header, and proof
// around a "~"-joined payload list in which hidden positions are empty
// tokens.
func SerializePresented(p *PresentedJWP) (string, error) {
	issuerEncoded, _, err := p.issuerHeader.Encode()
	if err != nil {
		return "", err
	}

	presEncoded, _, err := p.presentationHeader.Encode()
	if err != nil {
		return "", err
	}

	payloadsEncoded, err := encodePayloads(p.payloads, true)
	if err != nil {
		return "", err
	}

	return issuerEncoded + "." + presEncoded + "." + payloadsEncoded + "." + encoding.Encode(p.proof), nil
}

// ParsePresented parses compact as a Presented JWP. It fails with
// ErrCompactMalformed if compact does not have exactly three dots or a
// segment fails base64url-nopad decoding, and with ErrAlgMismatch if the
// presentation header's alg does not match the issuer header's signing
// suite.
func ParsePresented(compact string) (*PresentedJWP, error) {
	parts := strings.Split(compact, ".")
	if len(parts) != 4 {
		return nil, fmt.Errorf("%w: expected 4 dot-separated parts, got %d", ErrCompactMalformed, len(parts))
	}

	issuerHeader, issuerHeaderBytes, err := ParseIssuerHeader(parts[0])
	if err != nil {
		return nil, err
	}

	presentationHeader, presentationHeaderBytes, err := ParsePresentationHeader(parts[1])
	if err != nil {
		return nil, err
	}

	issuerAlg, err := issuerHeader.Alg()
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
		return nil, fmt.Errorf("%w: issuer alg %s expects presentation alg %s, got %s", ErrAlgMismatch, issuerAlg, expected, presAlg)
	}

	payloads, err := decodePayloads(parts[2], true)
	if err != nil {
		return nil, err
	}

	proof, err := encoding.Decode(parts[3])
	if err != nil {
		return nil, fmt.Errorf("%w: invalid proof encoding: %s", ErrCompactMalformed, err)
	}

	return &PresentedJWP{
		issuerHeader:            issuerHeader,
		issuerHeaderBytes:       issuerHeaderBytes,
		presentationHeader:      presentationHeader,
		presentationHeaderBytes: presentationHeaderBytes,
		payloads:                payloads,
		proof:                   proof,
	}, nil
}

func encodePayloads(payloads [][]byte, allowNull bool) (string, error) {
	tokens := make([]string, len(payloads))
	for i, p := range payloads {
		if p == nil {
			if !allowNull {
				return "", fmt.Errorf("%w: payload %d is null in an issued form", ErrCompactMalformed, i)
			}
			tokens[i] = ""
			continue
		}
		tokens[i] = encoding.Encode(p)
	}
	return strings.Join(tokens, "~"), nil
}

func decodePayloads(s string, allowNull bool) ([][]byte, error) {
	tokens := strings.Split(s, "~")
	out := make([][]byte, len(tokens))
	for i, t := range tokens {
		if t == "" {
			if !allowNull {
				return nil, fmt.Errorf("%w: empty payload token %d in an issued form", ErrCompactMalformed, i)
			}
			out[i] = nil
			continue
		}
		b, err := encoding.Decode(t)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid payload %d encoding: %s", ErrCompactMalformed, i, err)
		}
		out[i] = b
	}
	return out, nil
}
