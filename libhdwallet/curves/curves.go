// Package curves defines the elliptic-curve capabilities the HD wallet
// engine consumes, and the secp256k1 backends that provide them.
package curves

import (
	"github.com/kaspanet/hdwallet/libhdwallet/hderrors"
	"github.com/pkg/errors"
)

// Sizes of the fixed-length values exchanged with a Provider.
const (
	PrivateKeySize       = 32
	PublicKeySize        = 33
	DigestSize           = 32
	CompactSignatureSize = 64
)

// Secp256k1Name is the identifier of the secp256k1 curve.
const Secp256k1Name = "secp256k1"

// Backend names accepted by New.
const (
	BackendBtcec        = "btcec"
	BackendLibsecp256k1 = "libsecp256k1"
)

// PrivateKey is a big-endian private scalar.
type PrivateKey [PrivateKeySize]byte

// Zero overwrites the scalar with zeros.
func (key *PrivateKey) Zero() {
	for i := range key {
		key[i] = 0
	}
}

// PublicKey is a compressed public point.
type PublicKey [PublicKeySize]byte

// Digest is a 32-byte message hash to be signed.
type Digest [DigestSize]byte

// CompactSignature is an ECDSA signature serialized as r ‖ s, each 32
// bytes big-endian.
type CompactSignature [CompactSignatureSize]byte

var (
	// ErrScalarOutOfRange is returned when a scalar or tweak is not below the curve order.
	ErrScalarOutOfRange = errors.New("scalar is not below the curve order")

	// ErrScalarZero is returned when a scalar or tweak result is zero.
	ErrScalarZero = errors.New("scalar is zero")

	// ErrPointAtInfinity is returned when a point tweak yields the point at infinity.
	ErrPointAtInfinity = errors.New("point is at infinity")
)

// Provider is the capability set of one curve. Implementations must be
// deterministic and safe for concurrent use.
type Provider interface {
	// Name is the curve identifier, e.g. "secp256k1".
	Name() string

	// Backend names the library implementing the arithmetic.
	Backend() string

	// SeedKey is the HMAC key used to derive a master key from a seed.
	SeedKey() []byte

	// ValidatePrivateKey fails unless key is in [1, n-1].
	ValidatePrivateKey(key *PrivateKey) error

	// PublicKey returns key·G in compressed form.
	PublicKey(key *PrivateKey) (*PublicKey, error)

	// ParsePublicKey fails unless serialized is a compressed point on the curve.
	ParsePublicKey(serialized []byte) (*PublicKey, error)

	// TweakAddPrivateKey returns (key + tweak) mod n. It fails when tweak ≥ n
	// or the result is zero.
	TweakAddPrivateKey(key *PrivateKey, tweak *[32]byte) (*PrivateKey, error)

	// TweakAddPublicKey returns key + tweak·G. It fails when tweak ≥ n or the
	// result is the point at infinity.
	TweakAddPublicKey(key *PublicKey, tweak *[32]byte) (*PublicKey, error)

	// SignDigest returns a deterministic (RFC6979) low-S ECDSA signature.
	// Equal inputs give identical signatures on every backend.
	SignDigest(key *PrivateKey, digest *Digest) (*CompactSignature, error)

	// VerifyDigest reports whether signature is valid for digest under key.
	VerifyDigest(key *PublicKey, digest *Digest, signature *CompactSignature) bool
}

// New returns the provider for the given curve and backend. An empty
// backend selects the pure-Go btcec backend.
func New(curveName string, backend string) (Provider, error) {
	if curveName != Secp256k1Name {
		return nil, hderrors.Errorf(hderrors.ErrUnsupportedOperation, "unsupported curve %q", curveName)
	}

	switch backend {
	case "", BackendBtcec:
		log.Debugf("Using the %s backend for %s", BackendBtcec, curveName)
		return NewBtcec(), nil
	case BackendLibsecp256k1:
		log.Debugf("Using the %s backend for %s", BackendLibsecp256k1, curveName)
		return NewLibsecp256k1(), nil
	}

	return nil, hderrors.Errorf(hderrors.ErrUnsupportedOperation, "unknown %s backend %q", curveName, backend)
}

// Backends lists the backend names New accepts.
func Backends() []string {
	return []string{BackendBtcec, BackendLibsecp256k1}
}

var bitcoinSeedKey = []byte("Bitcoin seed")

func secp256k1SeedKey() []byte {
	seedKey := make([]byte, len(bitcoinSeedKey))
	copy(seedKey, bitcoinSeedKey)
	return seedKey
}
