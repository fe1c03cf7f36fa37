package bip32

import (
	"crypto/subtle"
	"sync"

	"github.com/kaspanet/hdwallet/libhdwallet/curves"
	"github.com/kaspanet/hdwallet/libhdwallet/hderrors"
)

// ExtendedKey is one node of an HD derivation tree: a private or public key
// together with its chain code and its position in the tree.
//
// An ExtendedKey is immutable once created and is safe for concurrent use.
// The public key of a private node is computed on first use and memoized.
type ExtendedKey struct {
	curve             curves.Provider
	privateKey        *curves.PrivateKey
	publicKey         *publicKeyMemo
	depth             uint8
	parentFingerprint [4]byte
	childIndex        uint32
	chainCode         [32]byte
}

type publicKeyMemo struct {
	once      sync.Once
	publicKey *curves.PublicKey
	err       error
}

func newPrivateExtendedKey(curve curves.Provider, privateKey *curves.PrivateKey, chainCode [32]byte,
	depth uint8, parentFingerprint [4]byte, childIndex uint32) *ExtendedKey {

	return &ExtendedKey{
		curve:             curve,
		privateKey:        privateKey,
		publicKey:         &publicKeyMemo{},
		depth:             depth,
		parentFingerprint: parentFingerprint,
		childIndex:        childIndex,
		chainCode:         chainCode,
	}
}

func newPublicExtendedKey(curve curves.Provider, publicKey *curves.PublicKey, chainCode [32]byte,
	depth uint8, parentFingerprint [4]byte, childIndex uint32) *ExtendedKey {

	memo := &publicKeyMemo{publicKey: publicKey}
	memo.once.Do(func() {})

	return &ExtendedKey{
		curve:             curve,
		publicKey:         memo,
		depth:             depth,
		parentFingerprint: parentFingerprint,
		childIndex:        childIndex,
		chainCode:         chainCode,
	}
}

// IsPrivate returns true if the key carries a private scalar.
func (extKey *ExtendedKey) IsPrivate() bool {
	return extKey.privateKey != nil
}

// PrivateKey returns a copy of the private scalar, or an
// ErrUnsupportedOperation error for a public-only key.
func (extKey *ExtendedKey) PrivateKey() (*curves.PrivateKey, error) {
	if !extKey.IsPrivate() {
		return nil, hderrors.Errorf(hderrors.ErrUnsupportedOperation, "public-only key has no private key")
	}
	privateKey := *extKey.privateKey
	return &privateKey, nil
}

// PublicKey returns the compressed public key, computing it from the private
// scalar on first use.
func (extKey *ExtendedKey) PublicKey() (*curves.PublicKey, error) {
	memo := extKey.publicKey
	if memo == nil {
		return nil, hderrors.Errorf(hderrors.ErrUnsupportedOperation, "extended key is not initialized")
	}
	memo.once.Do(func() {
		memo.publicKey, memo.err = extKey.curve.PublicKey(extKey.privateKey)
	})
	if memo.err != nil {
		return nil, hderrors.Wrap(hderrors.ErrInvalidDerivation, memo.err)
	}

	publicKey := *memo.publicKey
	return &publicKey, nil
}

// Public returns the public-only copy of this key. It is the identity for
// keys that are already public-only.
func (extKey *ExtendedKey) Public() (*ExtendedKey, error) {
	if !extKey.IsPrivate() {
		return extKey, nil
	}

	publicKey, err := extKey.PublicKey()
	if err != nil {
		return nil, err
	}

	return newPublicExtendedKey(extKey.curve, publicKey, extKey.chainCode,
		extKey.depth, extKey.parentFingerprint, extKey.childIndex), nil
}

// Curve returns the curve provider the key's arithmetic belongs to.
func (extKey *ExtendedKey) Curve() curves.Provider {
	return extKey.curve
}

// CurveName returns the identifier of the key's curve.
func (extKey *ExtendedKey) CurveName() string {
	return extKey.curve.Name()
}

// Depth returns the number of derivation steps from the master key.
func (extKey *ExtendedKey) Depth() uint8 {
	return extKey.depth
}

// ParentFingerprint returns the fingerprint of the parent key, zero for a
// master key.
func (extKey *ExtendedKey) ParentFingerprint() [4]byte {
	return extKey.parentFingerprint
}

// ChildIndex returns the index this key was derived at. The high bit is set
// for hardened keys.
func (extKey *ExtendedKey) ChildIndex() uint32 {
	return extKey.childIndex
}

// ChainCode returns a copy of the key's chain code.
func (extKey *ExtendedKey) ChainCode() [32]byte {
	return extKey.chainCode
}

// Equal reports whether both keys hold the same key material and tree
// position. Private scalars are compared in constant time.
func (extKey *ExtendedKey) Equal(other *ExtendedKey) bool {
	if extKey == other {
		return true
	}
	if extKey == nil || other == nil {
		return false
	}
	if extKey.CurveName() != other.CurveName() ||
		extKey.depth != other.depth ||
		extKey.parentFingerprint != other.parentFingerprint ||
		extKey.childIndex != other.childIndex ||
		extKey.chainCode != other.chainCode ||
		extKey.IsPrivate() != other.IsPrivate() {
		return false
	}

	if extKey.IsPrivate() {
		return subtle.ConstantTimeCompare(extKey.privateKey[:], other.privateKey[:]) == 1
	}

	publicKey, err := extKey.PublicKey()
	if err != nil {
		return false
	}
	otherPublicKey, err := other.PublicKey()
	if err != nil {
		return false
	}
	return *publicKey == *otherPublicKey
}

// Zero wipes the private scalar and the chain code. The key must not be
// used afterwards.
func (extKey *ExtendedKey) Zero() {
	if extKey.privateKey != nil {
		extKey.privateKey.Zero()
	}
	zero(extKey.chainCode[:])
}
