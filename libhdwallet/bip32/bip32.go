package bip32

import (
	"crypto/rand"

	"github.com/kaspanet/hdwallet/libhdwallet/curves"
	"github.com/pkg/errors"
)

// Seed lengths accepted by GenerateSeed.
const (
	MinSeedBytes       = 16
	MaxSeedBytes       = 64
	RecommendedSeedLen = 32
)

// GenerateSeed generates a random seed of the given length that can be used
// to initialize a master key.
func GenerateSeed(length int) ([]byte, error) {
	if length < MinSeedBytes || length > MaxSeedBytes {
		return nil, errors.Errorf("seed length must be between %d and %d bytes but got %d",
			MinSeedBytes, MaxSeedBytes, length)
	}

	randBytes := make([]byte, length)
	_, err := rand.Read(randBytes)
	if err != nil {
		return nil, err
	}

	return randBytes, nil
}

// NewMasterWithPath returns the key at path in the tree defined by seed.
func NewMasterWithPath(seed []byte, curve curves.Provider, path Path) (*ExtendedKey, error) {
	masterKey, err := NewMaster(seed, curve)
	if err != nil {
		return nil, err
	}

	descendantKey, err := masterKey.DeriveFromPath(path)
	if len(path) > 0 {
		masterKey.Zero()
	}
	if err != nil {
		return nil, err
	}

	return descendantKey, nil
}

// NewPublicMasterWithPath returns the public-only key at path in the tree
// defined by seed.
func NewPublicMasterWithPath(seed []byte, curve curves.Provider, path Path) (*ExtendedKey, error) {
	descendantKey, err := NewMasterWithPath(seed, curve, path)
	if err != nil {
		return nil, err
	}
	defer descendantKey.Zero()

	return descendantKey.Public()
}
