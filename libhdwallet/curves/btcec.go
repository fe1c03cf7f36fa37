package curves

import (
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/pkg/errors"
)

type btcecProvider struct{}

// NewBtcec returns a secp256k1 provider backed by the pure-Go btcec library.
func NewBtcec() Provider {
	return btcecProvider{}
}

func (btcecProvider) Name() string {
	return Secp256k1Name
}

func (btcecProvider) Backend() string {
	return BackendBtcec
}

func (btcecProvider) SeedKey() []byte {
	return secp256k1SeedKey()
}

func (btcecProvider) ValidatePrivateKey(key *PrivateKey) error {
	var scalar btcec.ModNScalar
	defer scalar.Zero()

	return setScalar(&scalar, (*[32]byte)(key))
}

func (btcecProvider) PublicKey(key *PrivateKey) (*PublicKey, error) {
	var scalar btcec.ModNScalar
	defer scalar.Zero()

	err := setScalar(&scalar, (*[32]byte)(key))
	if err != nil {
		return nil, err
	}

	var point btcec.JacobianPoint
	btcec.ScalarBaseMultNonConst(&scalar, &point)
	point.ToAffine()

	return serializeJacobian(&point), nil
}

func (btcecProvider) ParsePublicKey(serialized []byte) (*PublicKey, error) {
	if len(serialized) != PublicKeySize {
		return nil, errors.Errorf("public key must be %d bytes but got %d", PublicKeySize, len(serialized))
	}
	if serialized[0] != 0x02 && serialized[0] != 0x03 {
		return nil, errors.Errorf("public key has invalid compressed format %#02x", serialized[0])
	}

	parsed, err := btcec.ParsePubKey(serialized)
	if err != nil {
		return nil, errors.Wrap(err, "error parsing public key")
	}

	var publicKey PublicKey
	copy(publicKey[:], parsed.SerializeCompressed())
	return &publicKey, nil
}

func (btcecProvider) TweakAddPrivateKey(key *PrivateKey, tweak *[32]byte) (*PrivateKey, error) {
	var scalar, tweakScalar btcec.ModNScalar
	defer scalar.Zero()
	defer tweakScalar.Zero()

	err := setScalar(&scalar, (*[32]byte)(key))
	if err != nil {
		return nil, err
	}
	if tweakScalar.SetBytes(tweak) != 0 {
		return nil, ErrScalarOutOfRange
	}

	scalar.Add(&tweakScalar)
	if scalar.IsZero() {
		return nil, ErrScalarZero
	}

	var result PrivateKey
	scalar.PutBytes((*[32]byte)(&result))
	return &result, nil
}

func (btcecProvider) TweakAddPublicKey(key *PublicKey, tweak *[32]byte) (*PublicKey, error) {
	var tweakScalar btcec.ModNScalar
	if tweakScalar.SetBytes(tweak) != 0 {
		return nil, ErrScalarOutOfRange
	}

	parent, err := btcec.ParsePubKey(key[:])
	if err != nil {
		return nil, errors.Wrap(err, "error parsing public key")
	}

	var parentPoint, tweakPoint, result btcec.JacobianPoint
	parent.AsJacobian(&parentPoint)
	btcec.ScalarBaseMultNonConst(&tweakScalar, &tweakPoint)
	btcec.AddNonConst(&parentPoint, &tweakPoint, &result)

	if (result.X.IsZero() && result.Y.IsZero()) || result.Z.IsZero() {
		return nil, ErrPointAtInfinity
	}
	result.ToAffine()

	return serializeJacobian(&result), nil
}

func (btcecProvider) SignDigest(key *PrivateKey, digest *Digest) (*CompactSignature, error) {
	err := btcecProvider{}.ValidatePrivateKey(key)
	if err != nil {
		return nil, err
	}

	privateKey, _ := btcec.PrivKeyFromBytes(key[:])
	defer privateKey.Zero()

	signature := ecdsa.Sign(privateKey, digest[:])
	r := signature.R()
	s := signature.S()

	var compact CompactSignature
	r.PutBytesUnchecked(compact[:32])
	s.PutBytesUnchecked(compact[32:])
	return &compact, nil
}

func (btcecProvider) VerifyDigest(key *PublicKey, digest *Digest, signature *CompactSignature) bool {
	publicKey, err := btcec.ParsePubKey(key[:])
	if err != nil {
		return false
	}

	var r, s btcec.ModNScalar
	if r.SetByteSlice(signature[:32]) || r.IsZero() {
		return false
	}
	if s.SetByteSlice(signature[32:]) || s.IsZero() {
		return false
	}

	return ecdsa.NewSignature(&r, &s).Verify(digest[:], publicKey)
}

func setScalar(scalar *btcec.ModNScalar, serialized *[32]byte) error {
	if scalar.SetBytes(serialized) != 0 {
		return ErrScalarOutOfRange
	}
	if scalar.IsZero() {
		return ErrScalarZero
	}
	return nil
}

func serializeJacobian(point *btcec.JacobianPoint) *PublicKey {
	var publicKey PublicKey
	copy(publicKey[:], btcec.NewPublicKey(&point.X, &point.Y).SerializeCompressed())
	return &publicKey
}
