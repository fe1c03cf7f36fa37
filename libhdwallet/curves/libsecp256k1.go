package curves

import (
	"github.com/kaspanet/go-secp256k1"
	"github.com/pkg/errors"
)

type libsecp256k1Provider struct{}

// NewLibsecp256k1 returns a secp256k1 provider backed by the cgo
// binding to bitcoin-core's libsecp256k1.
func NewLibsecp256k1() Provider {
	return libsecp256k1Provider{}
}

func (libsecp256k1Provider) Name() string {
	return Secp256k1Name
}

func (libsecp256k1Provider) Backend() string {
	return BackendLibsecp256k1
}

func (libsecp256k1Provider) SeedKey() []byte {
	return secp256k1SeedKey()
}

func (libsecp256k1Provider) ValidatePrivateKey(key *PrivateKey) error {
	_, err := deserializePrivateKey(key)
	return err
}

func (libsecp256k1Provider) PublicKey(key *PrivateKey) (*PublicKey, error) {
	privateKey, err := deserializePrivateKey(key)
	if err != nil {
		return nil, err
	}

	publicKey, err := privateKey.ECDSAPublicKey()
	if err != nil {
		return nil, errors.Wrap(err, "error calculating point")
	}

	return serializePublicKey(publicKey)
}

func (libsecp256k1Provider) ParsePublicKey(serialized []byte) (*PublicKey, error) {
	if len(serialized) != PublicKeySize {
		return nil, errors.Errorf("public key must be %d bytes but got %d", PublicKeySize, len(serialized))
	}

	publicKey, err := secp256k1.DeserializeECDSAPubKey(serialized)
	if err != nil {
		return nil, errors.Wrap(err, "error parsing public key")
	}

	return serializePublicKey(publicKey)
}

func (libsecp256k1Provider) TweakAddPrivateKey(key *PrivateKey, tweak *[32]byte) (*PrivateKey, error) {
	privateKey, err := deserializePrivateKey(key)
	if err != nil {
		return nil, err
	}

	// libsecp256k1 reports overflow and a zero result with the same error,
	// so tell them apart before tweaking.
	if !belowOrder(tweak) {
		return nil, ErrScalarOutOfRange
	}

	err = privateKey.Add(*tweak)
	if err != nil {
		return nil, ErrScalarZero
	}

	var result PrivateKey
	copy(result[:], privateKey.Serialize()[:])
	return &result, nil
}

func (libsecp256k1Provider) TweakAddPublicKey(key *PublicKey, tweak *[32]byte) (*PublicKey, error) {
	if !belowOrder(tweak) {
		return nil, ErrScalarOutOfRange
	}

	publicKey, err := secp256k1.DeserializeECDSAPubKey(key[:])
	if err != nil {
		return nil, errors.Wrap(err, "error parsing public key")
	}

	err = publicKey.Add(*tweak)
	if err != nil {
		return nil, ErrPointAtInfinity
	}

	return serializePublicKey(publicKey)
}

// SignDigest signs through btcec. The binding's ECDSASign mixes fresh
// randomness into the RFC6979 nonce, so its signatures are not reproducible.
// The result is checked against libsecp256k1 before it is returned.
func (provider libsecp256k1Provider) SignDigest(key *PrivateKey, digest *Digest) (*CompactSignature, error) {
	privateKey, err := deserializePrivateKey(key)
	if err != nil {
		return nil, err
	}
	publicKey, err := privateKey.ECDSAPublicKey()
	if err != nil {
		return nil, errors.Wrap(err, "error calculating point")
	}
	serializedPublicKey, err := serializePublicKey(publicKey)
	if err != nil {
		return nil, err
	}

	signature, err := btcecProvider{}.SignDigest(key, digest)
	if err != nil {
		return nil, errors.Wrap(err, "error signing digest")
	}

	if !provider.VerifyDigest(serializedPublicKey, digest, signature) {
		return nil, errors.New("libsecp256k1 rejected the signature")
	}

	log.Tracef("Signed digest with btcec, verified with libsecp256k1")
	return signature, nil
}

func (libsecp256k1Provider) VerifyDigest(key *PublicKey, digest *Digest, signature *CompactSignature) bool {
	publicKey, err := secp256k1.DeserializeECDSAPubKey(key[:])
	if err != nil {
		return false
	}

	deserializedSignature, err := secp256k1.DeserializeECDSASignatureFromSlice(signature[:])
	if err != nil {
		return false
	}

	hash := secp256k1.Hash(*digest)
	return publicKey.ECDSAVerify(&hash, deserializedSignature)
}

func deserializePrivateKey(key *PrivateKey) (*secp256k1.ECDSAPrivateKey, error) {
	if isZero(key[:]) {
		return nil, ErrScalarZero
	}
	if !belowOrder((*[32]byte)(key)) {
		return nil, ErrScalarOutOfRange
	}

	privateKey, err := secp256k1.DeserializeECDSAPrivateKeyFromSlice(key[:])
	if err != nil {
		return nil, errors.Wrap(err, "error deserializing private key")
	}
	return privateKey, nil
}

func serializePublicKey(publicKey *secp256k1.ECDSAPublicKey) (*PublicKey, error) {
	serialized, err := publicKey.Serialize()
	if err != nil {
		return nil, errors.Wrap(err, "error serializing public key")
	}

	var result PublicKey
	copy(result[:], serialized[:])
	return &result, nil
}

// secp256k1Order is n, the order of the secp256k1 base point.
var secp256k1Order = [32]byte{
	0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
	0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xfe,
	0xba, 0xae, 0xdc, 0xe6, 0xaf, 0x48, 0xa0, 0x3b,
	0xbf, 0xd2, 0x5e, 0x8c, 0xd0, 0x36, 0x41, 0x41,
}

func belowOrder(scalar *[32]byte) bool {
	for i := range scalar {
		if scalar[i] != secp256k1Order[i] {
			return scalar[i] < secp256k1Order[i]
		}
	}
	return false
}

func isZero(b []byte) bool {
	for _, v := range b {
		if v != 0 {
			return false
		}
	}
	return true
}
