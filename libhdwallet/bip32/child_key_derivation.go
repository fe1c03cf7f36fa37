package bip32

import (
	"encoding/binary"

	"github.com/kaspanet/hdwallet/libhdwallet/curves"
	"github.com/kaspanet/hdwallet/libhdwallet/hderrors"
	"github.com/pkg/errors"
)

// HardenedKeyStart is the first hardened child index.
const HardenedKeyStart = 0x80000000

const maxDepth = 255

// NewMaster derives the master key of the tree defined by seed on the
// given curve. A seed that yields an invalid scalar is rejected with
// ErrInvalidSeed; it is never retried with a modified seed.
func NewMaster(seed []byte, curve curves.Provider) (*ExtendedKey, error) {
	if len(seed) == 0 {
		return nil, hderrors.Errorf(hderrors.ErrInvalidSeed, "seed is empty")
	}

	mac := newHMACWriter(curve.SeedKey())
	mac.InfallibleWrite(seed)
	iL, iR := mac.sumHalves()
	defer zero(iR[:])

	privateKey := curves.PrivateKey(iL)
	zero(iL[:])

	err := curve.ValidatePrivateKey(&privateKey)
	if err != nil {
		privateKey.Zero()
		return nil, hderrors.Wrap(hderrors.ErrInvalidSeed, err)
	}

	log.Tracef("Derived %s master key", curve.Name())
	return newPrivateExtendedKey(curve, &privateKey, iR, 0, [4]byte{}, 0), nil
}

func isHardened(i uint32) bool {
	return i >= HardenedKeyStart
}

// Child derives the child key at index i. Indexes at or above
// HardenedKeyStart derive hardened children, which require a private key.
// The receiver is never modified.
func (extKey *ExtendedKey) Child(i uint32) (*ExtendedKey, error) {
	if extKey.depth == maxDepth {
		return nil, hderrors.Errorf(hderrors.ErrInvalidDerivation, "cannot derive beyond depth %d", maxDepth)
	}
	if isHardened(i) && !extKey.IsPrivate() {
		return nil, hderrors.Errorf(hderrors.ErrUnsupportedOperation,
			"cannot derive hardened child %d from a public key", i)
	}

	iL, iR, err := extKey.calcI(i)
	if err != nil {
		return nil, err
	}
	defer zero(iL[:])
	defer zero(iR[:])

	fingerprint, err := extKey.Fingerprint()
	if err != nil {
		return nil, err
	}

	if extKey.IsPrivate() {
		childPrivateKey, err := extKey.curve.TweakAddPrivateKey(extKey.privateKey, &iL)
		if err != nil {
			return nil, hderrors.Wrap(hderrors.ErrInvalidDerivation, errors.Wrapf(err, "child %d", i))
		}

		log.Tracef("Derived private child %d at depth %d", i, extKey.depth+1)
		return newPrivateExtendedKey(extKey.curve, childPrivateKey, iR,
			extKey.depth+1, fingerprint, i), nil
	}

	publicKey, err := extKey.PublicKey()
	if err != nil {
		return nil, err
	}
	childPublicKey, err := extKey.curve.TweakAddPublicKey(publicKey, &iL)
	if err != nil {
		return nil, hderrors.Wrap(hderrors.ErrInvalidDerivation, errors.Wrapf(err, "child %d", i))
	}

	log.Tracef("Derived public child %d at depth %d", i, extKey.depth+1)
	return newPublicExtendedKey(extKey.curve, childPublicKey, iR,
		extKey.depth+1, fingerprint, i), nil
}

// calcI computes HMAC-SHA512(chainCode, data ‖ ser32(i)) where data is
// 0x00 ‖ ser256(k) for hardened children and serP(K) otherwise.
func (extKey *ExtendedKey) calcI(i uint32) (iL, iR [32]byte, err error) {
	mac := newHMACWriter(extKey.chainCode[:])
	if isHardened(i) {
		var data [1 + curves.PrivateKeySize]byte
		copy(data[1:], extKey.privateKey[:])
		mac.InfallibleWrite(data[:])
		zero(data[:])
	} else {
		publicKey, err := extKey.PublicKey()
		if err != nil {
			return iL, iR, err
		}

		mac.InfallibleWrite(publicKey[:])
	}

	mac.InfallibleWrite(serializeUint32(i))
	iL, iR = mac.sumHalves()
	return iL, iR, nil
}

// Fingerprint returns the first 4 bytes of RIPEMD160(SHA256(serP(K))).
// Children record their parent's fingerprint.
func (extKey *ExtendedKey) Fingerprint() ([4]byte, error) {
	publicKey, err := extKey.PublicKey()
	if err != nil {
		return [4]byte{}, err
	}

	hash := hash160(publicKey[:])
	var fingerprint [4]byte
	copy(fingerprint[:], hash[:4])
	return fingerprint, nil
}

func serializeUint32(v uint32) []byte {
	serialized := make([]byte, 4)
	binary.BigEndian.PutUint32(serialized, v)
	return serialized
}
