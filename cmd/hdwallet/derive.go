package main

import (
	"encoding/hex"
	"fmt"

	"github.com/kaspanet/hdwallet/libhdwallet"
	"github.com/kaspanet/hdwallet/libhdwallet/bip32"
	"github.com/pkg/errors"
)

func derive(conf *deriveConfig) error {
	extendedKey, err := deriveExtendedKey(conf)
	if err != nil {
		return err
	}
	defer extendedKey.Zero()

	extendedPublicKey, err := extendedKey.SerializePublic(conf.Versions().Public)
	if err != nil {
		return err
	}

	fmt.Printf("path: %s\n", conf.Path)
	fmt.Printf("xpub: %s\n", extendedPublicKey)
	if conf.Public {
		return nil
	}

	extendedPrivateKey, err := extendedKey.SerializePrivate(conf.Versions().Private)
	if err != nil {
		return err
	}
	fmt.Printf("xprv: %s\n", extendedPrivateKey)
	return nil
}

func deriveExtendedKey(conf *deriveConfig) (*bip32.ExtendedKey, error) {
	numSources := 0
	for _, isSet := range []bool{conf.Seed != "", conf.Mnemonic != "", conf.Prompt} {
		if isSet {
			numSources++
		}
	}
	if numSources != 1 {
		return nil, errors.New("exactly one of --seed, --mnemonic and --prompt must be given")
	}

	if conf.Seed != "" {
		if conf.Passphrase != "" {
			return nil, errors.New("--passphrase only applies to mnemonics")
		}
		seed, err := hex.DecodeString(conf.Seed)
		if err != nil {
			return nil, errors.Wrap(err, "malformed --seed")
		}
		path, err := bip32.ParsePath(conf.Path)
		if err != nil {
			return nil, err
		}
		return bip32.NewMasterWithPath(seed, conf.Curve(), path)
	}

	mnemonic := conf.Mnemonic
	if conf.Prompt {
		var err error
		mnemonic, err = readSecret("Mnemonic: ")
		if err != nil {
			return nil, err
		}
	}

	return libhdwallet.ExtendedKeyFromMnemonic(mnemonic, conf.Passphrase, conf.Path, conf.Curve())
}
