package main

import (
	"encoding/hex"
	"fmt"

	"github.com/kaspanet/hdwallet/libhdwallet/bip32"
	"github.com/kaspanet/hdwallet/libhdwallet/signing"
	"github.com/pkg/errors"
)

func sign(conf *signConfig) error {
	digest, err := hex.DecodeString(conf.Digest)
	if err != nil {
		return errors.Wrap(err, "malformed --digest")
	}

	extendedKey, _, err := bip32.Deserialize(conf.ExtendedKey, conf.Curve(), acceptedVersions(conf.Versions())...)
	if err != nil {
		return err
	}
	defer extendedKey.Zero()

	signingKey, err := extendedKey.Path(conf.Path)
	if err != nil {
		return err
	}
	if signingKey != extendedKey {
		defer signingKey.Zero()
	}

	signature, err := signing.SignDER(signingKey, digest)
	if err != nil {
		return err
	}

	fmt.Println(hex.EncodeToString(signature))
	return nil
}

// acceptedVersions returns the well known version sets followed by the
// active one, which may be a custom set.
func acceptedVersions(active bip32.KeyVersions) []bip32.KeyVersions {
	return append(bip32.KnownVersions(), active)
}
