// Package libhdwallet turns BIP39 mnemonics into seeds and HD tree keys.
package libhdwallet

import (
	"github.com/kaspanet/hdwallet/libhdwallet/bip32"
	"github.com/kaspanet/hdwallet/libhdwallet/curves"
	"github.com/kaspanet/hdwallet/libhdwallet/hderrors"
	"github.com/pkg/errors"
	"github.com/tyler-smith/go-bip39"
)

// DefaultMnemonicBits is the entropy size of mnemonics created by the
// wallet, giving 24 words.
const DefaultMnemonicBits = 256

// DefaultPath is the BIP44 account path for the first bitcoin account.
const DefaultPath = "m/44'/0'/0'"

// CreateMnemonic returns a new random mnemonic encoding bitSize bits of
// entropy. bitSize must be a multiple of 32 between 128 and 256.
func CreateMnemonic(bitSize int) (string, error) {
	entropy, err := bip39.NewEntropy(bitSize)
	if err != nil {
		return "", errors.Wrapf(err, "cannot create %d bits of entropy", bitSize)
	}
	defer zero(entropy)

	return bip39.NewMnemonic(entropy)
}

// SeedFromMnemonic validates the mnemonic's words and checksum and returns
// the seed it stretches to under passphrase.
func SeedFromMnemonic(mnemonic string, passphrase string) ([]byte, error) {
	seed, err := bip39.NewSeedWithErrorChecking(mnemonic, passphrase)
	if err != nil {
		return nil, hderrors.Wrap(hderrors.ErrMalformedInput, err)
	}

	return seed, nil
}

// ExtendedKeyFromMnemonic returns the key at path in the tree whose seed
// the mnemonic stretches to.
func ExtendedKeyFromMnemonic(mnemonic string, passphrase string, path string, curve curves.Provider) (
	*bip32.ExtendedKey, error) {

	parsedPath, err := bip32.ParsePath(path)
	if err != nil {
		return nil, err
	}

	seed, err := SeedFromMnemonic(mnemonic, passphrase)
	if err != nil {
		return nil, err
	}
	defer zero(seed)

	extendedKey, err := bip32.NewMasterWithPath(seed, curve, parsedPath)
	if err != nil {
		return nil, err
	}

	log.Debugf("Derived the key at %s from a mnemonic", parsedPath)
	return extendedKey, nil
}

// ExtendedPublicKeyFromMnemonic returns the serialized extended public key
// at path in the tree whose seed the mnemonic stretches to.
func ExtendedPublicKeyFromMnemonic(mnemonic string, passphrase string, path string, curve curves.Provider,
	versions bip32.KeyVersions) (string, error) {

	extendedKey, err := ExtendedKeyFromMnemonic(mnemonic, passphrase, path, curve)
	if err != nil {
		return "", err
	}
	defer extendedKey.Zero()

	extendedPublicKey, err := extendedKey.Public()
	if err != nil {
		return "", err
	}

	return extendedPublicKey.SerializePublic(versions.Public)
}

func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
