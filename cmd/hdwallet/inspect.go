package main

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/kaspanet/hdwallet/libhdwallet/bip32"
)

func inspect(conf *inspectConfig) error {
	extendedKey, versions, err := bip32.Deserialize(strings.TrimSpace(conf.Args.ExtendedKey), conf.Curve(),
		acceptedVersions(conf.Versions())...)
	if err != nil {
		return err
	}
	defer extendedKey.Zero()

	publicKey, err := extendedKey.PublicKey()
	if err != nil {
		return err
	}
	fingerprint, err := extendedKey.Fingerprint()
	if err != nil {
		return err
	}
	parentFingerprint := extendedKey.ParentFingerprint()
	chainCode := extendedKey.ChainCode()

	fmt.Printf("network:            %s\n", versions.Name)
	fmt.Printf("private:            %t\n", extendedKey.IsPrivate())
	fmt.Printf("depth:              %d\n", extendedKey.Depth())
	fmt.Printf("parent fingerprint: %s\n", hex.EncodeToString(parentFingerprint[:]))
	fmt.Printf("child index:        %s\n", formatChildIndex(extendedKey.ChildIndex()))
	fmt.Printf("fingerprint:        %s\n", hex.EncodeToString(fingerprint[:]))
	fmt.Printf("chain code:         %s\n", hex.EncodeToString(chainCode[:]))
	fmt.Printf("public key:         %s\n", hex.EncodeToString(publicKey[:]))
	return nil
}

func formatChildIndex(childIndex uint32) string {
	step := bip32.PathStep{Index: childIndex &^ bip32.HardenedKeyStart, Hardened: childIndex >= bip32.HardenedKeyStart}
	return step.String()
}
