package vectors

import (
	"encoding/binary"
	"io"

	"github.com/kaspanet/hdwallet/libhdwallet/bip32"
	"github.com/kaspanet/hdwallet/libhdwallet/curves"
	"github.com/kaspanet/hdwallet/libhdwallet/signing"
	"github.com/pkg/errors"
)

const (
	maxExtraPathSteps = 4
	maxGeneratedIndex = 200
)

type randomSource struct {
	io.Reader
}

func (r randomSource) read(n int) ([]byte, error) {
	b := make([]byte, n)
	_, err := io.ReadFull(r, b)
	if err != nil {
		return nil, errors.Wrap(err, "cannot read randomness")
	}
	return b, nil
}

// intn returns a number in [0, n). The modulo bias is irrelevant for
// test vectors.
func (r randomSource) intn(n int) (int, error) {
	b, err := r.read(4)
	if err != nil {
		return 0, err
	}
	return int(binary.BigEndian.Uint32(b) % uint32(n)), nil
}

func (r randomSource) path() (bip32.Path, error) {
	path := bip32.Path{{Index: 0, Hardened: true}}

	extraSteps, err := r.intn(maxExtraPathSteps + 1)
	if err != nil {
		return nil, err
	}
	for i := 0; i < extraSteps; i++ {
		index, err := r.intn(maxGeneratedIndex + 1)
		if err != nil {
			return nil, err
		}
		hardened, err := r.intn(2)
		if err != nil {
			return nil, err
		}
		path = append(path, bip32.PathStep{Index: uint32(index), Hardened: hardened == 1})
	}

	return path, nil
}

// Generate builds a vector from random material drawn from random: a seed
// of bip32.MinSeedBytes to bip32.MaxSeedBytes bytes, the path m/0'
// followed by up to 4 more steps, and a random digest. The expected
// values are computed with curve.
func Generate(random io.Reader, curve curves.Provider, versions bip32.KeyVersions) (*Vector, error) {
	source := randomSource{random}

	seedLength, err := source.intn(bip32.MaxSeedBytes - bip32.MinSeedBytes + 1)
	if err != nil {
		return nil, err
	}
	seed, err := source.read(bip32.MinSeedBytes + seedLength)
	if err != nil {
		return nil, err
	}
	path, err := source.path()
	if err != nil {
		return nil, err
	}
	digest, err := source.read(curves.DigestSize)
	if err != nil {
		return nil, err
	}

	extendedKey, err := bip32.NewMasterWithPath(seed, curve, path)
	if err != nil {
		return nil, err
	}
	defer extendedKey.Zero()

	extendedPublicKey, err := extendedKey.SerializePublic(versions.Public)
	if err != nil {
		return nil, err
	}
	extendedPrivateKey, err := extendedKey.SerializePrivate(versions.Private)
	if err != nil {
		return nil, err
	}
	signature, err := signing.SignDER(extendedKey, digest)
	if err != nil {
		return nil, err
	}

	return &Vector{
		Seed:               seed,
		Path:               path,
		ExtendedPublicKey:  extendedPublicKey,
		ExtendedPrivateKey: extendedPrivateKey,
		Digest:             digest,
		Signature:          signature,
	}, nil
}
