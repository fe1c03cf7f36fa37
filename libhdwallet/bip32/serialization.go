package bip32

import (
	"encoding/binary"

	"github.com/btcsuite/btcutil/base58"
	"github.com/kaspanet/hdwallet/libhdwallet/curves"
	"github.com/kaspanet/hdwallet/libhdwallet/hderrors"
	"github.com/pkg/errors"
)

const (
	versionSerializationLen     = 4
	depthSerializationLen       = 1
	fingerprintSerializationLen = 4
	childNumberSerializationLen = 4
	chainCodeSerializationLen   = 32
	keySerializationLen         = 33
	checkSumLen                 = 4
)

const (
	depthOffset       = versionSerializationLen
	fingerprintOffset = depthOffset + depthSerializationLen
	childNumberOffset = fingerprintOffset + fingerprintSerializationLen
	chainCodeOffset   = childNumberOffset + childNumberSerializationLen
	keyOffset         = chainCodeOffset + chainCodeSerializationLen
	checkSumOffset    = keyOffset + keySerializationLen
)

const extendedKeySerializationLen = checkSumOffset + checkSumLen

const invalidExtendedKeyString = "<invalid extended key>"

// MaxSerializedExtendedKeyLen is the longest Base58 text an extended key
// can encode to. Buffers passed to SerializePrivateTo and
// SerializePublicTo of at least this size never fail for lack of space.
const MaxSerializedExtendedKeyLen = 112

func (extKey *ExtendedKey) serialize(version [4]byte, private bool) ([]byte, error) {
	serialized := make([]byte, extendedKeySerializationLen)
	copy(serialized[:versionSerializationLen], version[:])
	serialized[depthOffset] = extKey.depth
	copy(serialized[fingerprintOffset:], extKey.parentFingerprint[:])
	binary.BigEndian.PutUint32(serialized[childNumberOffset:], extKey.childIndex)
	copy(serialized[chainCodeOffset:], extKey.chainCode[:])

	if private {
		if !extKey.IsPrivate() {
			return nil, hderrors.Errorf(hderrors.ErrSerialization, "cannot serialize a public-only key as private")
		}
		serialized[keyOffset] = 0
		copy(serialized[keyOffset+1:], extKey.privateKey[:])
	} else {
		publicKey, err := extKey.PublicKey()
		if err != nil {
			return nil, hderrors.Wrap(hderrors.ErrSerialization, err)
		}
		copy(serialized[keyOffset:], publicKey[:])
	}

	copy(serialized[checkSumOffset:], calcChecksum(serialized[:checkSumOffset]))
	return serialized, nil
}

func (extKey *ExtendedKey) encode(version [4]byte, private bool) (string, error) {
	serialized, err := extKey.serialize(version, private)
	if err != nil {
		return "", err
	}
	defer zero(serialized)

	return base58.Encode(serialized), nil
}

// SerializePrivate encodes the key in the Base58Check extended private key
// format under the given version.
func (extKey *ExtendedKey) SerializePrivate(version [4]byte) (string, error) {
	return extKey.encode(version, true)
}

// SerializePublic encodes the key in the Base58Check extended public key
// format under the given version.
func (extKey *ExtendedKey) SerializePublic(version [4]byte) (string, error) {
	return extKey.encode(version, false)
}

// SerializePrivateTo writes the extended private key text into dst and
// returns the number of bytes written.
func (extKey *ExtendedKey) SerializePrivateTo(dst []byte, version [4]byte) (int, error) {
	return extKey.encodeTo(dst, version, true)
}

// SerializePublicTo writes the extended public key text into dst and
// returns the number of bytes written.
func (extKey *ExtendedKey) SerializePublicTo(dst []byte, version [4]byte) (int, error) {
	return extKey.encodeTo(dst, version, false)
}

func (extKey *ExtendedKey) encodeTo(dst []byte, version [4]byte, private bool) (int, error) {
	encoded, err := extKey.encode(version, private)
	if err != nil {
		return 0, err
	}
	if len(dst) < len(encoded) {
		return 0, hderrors.Errorf(hderrors.ErrSerialization,
			"buffer of %d bytes is too small for %d bytes", len(dst), len(encoded))
	}

	return copy(dst, encoded), nil
}

// SerializeWith encodes the key in its private form when it holds a private
// key and in its public form otherwise.
func (extKey *ExtendedKey) SerializeWith(versions KeyVersions) (string, error) {
	if extKey.IsPrivate() {
		return extKey.SerializePrivate(versions.Private)
	}
	return extKey.SerializePublic(versions.Public)
}

// String returns the mainnet (xprv or xpub) encoding of the key. String
// cannot return an error, so a key that fails to serialize is logged and
// rendered as invalidExtendedKeyString.
func (extKey *ExtendedKey) String() string {
	encoded, err := extKey.SerializeWith(BitcoinMainnet)
	if err != nil {
		log.Debugf("Failed to serialize extended key: %s", err)
		return invalidExtendedKeyString
	}
	return encoded
}

// Deserialize decodes a Base58Check extended key. Only the given version
// sets are accepted, or KnownVersions when none are given. Any decoding
// failure is reported as ErrMalformedInput and no key is returned.
func Deserialize(extKeyString string, curve curves.Provider, acceptedVersions ...KeyVersions) (
	*ExtendedKey, KeyVersions, error) {

	if len(acceptedVersions) == 0 {
		acceptedVersions = KnownVersions()
	}

	serialized := base58.Decode(extKeyString)
	defer zero(serialized)

	extKey, versions, err := deserialize(serialized, curve, acceptedVersions)
	if err != nil {
		return nil, KeyVersions{}, hderrors.Wrap(hderrors.ErrMalformedInput, err)
	}
	return extKey, versions, nil
}

func deserialize(serialized []byte, curve curves.Provider, acceptedVersions []KeyVersions) (
	*ExtendedKey, KeyVersions, error) {

	if len(serialized) != extendedKeySerializationLen {
		return nil, KeyVersions{}, errors.Errorf("key length must be %d bytes but got %d",
			extendedKeySerializationLen, len(serialized))
	}

	err := validateChecksum(serialized)
	if err != nil {
		return nil, KeyVersions{}, err
	}

	var version [4]byte
	copy(version[:], serialized[:versionSerializationLen])
	versions, isPrivate, ok := matchVersion(version, acceptedVersions)
	if !ok {
		return nil, KeyVersions{}, errors.Errorf("unsupported version %x", version)
	}

	depth := serialized[depthOffset]
	var parentFingerprint [4]byte
	copy(parentFingerprint[:], serialized[fingerprintOffset:childNumberOffset])
	childIndex := binary.BigEndian.Uint32(serialized[childNumberOffset:chainCodeOffset])
	var chainCode [32]byte
	copy(chainCode[:], serialized[chainCodeOffset:keyOffset])

	if depth == 0 && (parentFingerprint != [4]byte{} || childIndex != 0) {
		return nil, KeyVersions{}, errors.Errorf("master key has non-zero parent fingerprint %x or index %d",
			parentFingerprint, childIndex)
	}

	keyData := serialized[keyOffset:checkSumOffset]
	if isPrivate {
		if keyData[0] != 0 {
			return nil, KeyVersions{}, errors.Errorf("expected 0 padding for private key but got %d", keyData[0])
		}

		var privateKey curves.PrivateKey
		copy(privateKey[:], keyData[1:])
		err := curve.ValidatePrivateKey(&privateKey)
		if err != nil {
			privateKey.Zero()
			return nil, KeyVersions{}, errors.Wrap(err, "invalid private key")
		}

		return newPrivateExtendedKey(curve, &privateKey, chainCode, depth, parentFingerprint, childIndex),
			versions, nil
	}

	publicKey, err := curve.ParsePublicKey(keyData)
	if err != nil {
		return nil, KeyVersions{}, errors.Wrap(err, "invalid public key")
	}

	return newPublicExtendedKey(curve, publicKey, chainCode, depth, parentFingerprint, childIndex),
		versions, nil
}
