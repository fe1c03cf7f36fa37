package signing

import (
	"math/big"

	"github.com/kaspanet/hdwallet/libhdwallet/curves"
	"github.com/kaspanet/hdwallet/libhdwallet/hderrors"
	"golang.org/x/crypto/cryptobyte"
	"golang.org/x/crypto/cryptobyte/asn1"
)

const scalarSize = curves.CompactSignatureSize / 2

// Signature is an ECDSA signature held as its r and s components.
type Signature struct {
	compact curves.CompactSignature
}

// NewSignature wraps a 64-byte r ‖ s signature.
func NewSignature(compact *curves.CompactSignature) *Signature {
	return &Signature{compact: *compact}
}

// R returns the big-endian r component.
func (sig *Signature) R() [32]byte {
	var r [32]byte
	copy(r[:], sig.compact[:scalarSize])
	return r
}

// S returns the big-endian s component.
func (sig *Signature) S() [32]byte {
	var s [32]byte
	copy(s[:], sig.compact[scalarSize:])
	return s
}

// Compact returns the 64-byte r ‖ s form.
func (sig *Signature) Compact() curves.CompactSignature {
	return sig.compact
}

// Serialize returns the DER encoding of the signature: a SEQUENCE of the
// two INTEGERs r and s, each in minimal two's-complement form.
func (sig *Signature) Serialize() []byte {
	r := new(big.Int).SetBytes(sig.compact[:scalarSize])
	s := new(big.Int).SetBytes(sig.compact[scalarSize:])

	var builder cryptobyte.Builder
	builder.AddASN1(asn1.SEQUENCE, func(sequence *cryptobyte.Builder) {
		sequence.AddASN1BigInt(r)
		sequence.AddASN1BigInt(s)
	})
	return builder.BytesOrPanic()
}

// IsEqual reports whether both signatures have the same r and s.
func (sig *Signature) IsEqual(other *Signature) bool {
	return sig.compact == other.compact
}

// ParseDERSignature decodes a strictly encoded DER signature. Non-minimal
// lengths or integers, negative or zero components, components wider than
// 256 bits and trailing data are rejected with ErrMalformedInput.
func ParseDERSignature(der []byte) (*Signature, error) {
	input := cryptobyte.String(der)
	var sequence cryptobyte.String
	if !input.ReadASN1(&sequence, asn1.SEQUENCE) {
		return nil, hderrors.Errorf(hderrors.ErrMalformedInput, "signature is not a DER sequence")
	}
	if !input.Empty() {
		return nil, hderrors.Errorf(hderrors.ErrMalformedInput, "signature has %d bytes of trailing data", len(input))
	}

	r, s := new(big.Int), new(big.Int)
	if !sequence.ReadASN1Integer(r) {
		return nil, hderrors.Errorf(hderrors.ErrMalformedInput, "malformed r component")
	}
	if !sequence.ReadASN1Integer(s) {
		return nil, hderrors.Errorf(hderrors.ErrMalformedInput, "malformed s component")
	}
	if !sequence.Empty() {
		return nil, hderrors.Errorf(hderrors.ErrMalformedInput, "signature sequence has %d bytes of trailing data",
			len(sequence))
	}

	signature := &Signature{}
	for i, component := range []*big.Int{r, s} {
		if component.Sign() <= 0 {
			return nil, hderrors.Errorf(hderrors.ErrMalformedInput, "signature component %d is not positive", i)
		}
		if component.BitLen() > scalarSize*8 {
			return nil, hderrors.Errorf(hderrors.ErrMalformedInput, "signature component %d is %d bits long",
				i, component.BitLen())
		}
		component.FillBytes(signature.compact[i*scalarSize : (i+1)*scalarSize])
	}

	return signature, nil
}
