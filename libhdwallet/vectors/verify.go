package vectors

import (
	"bytes"
	"encoding/hex"
	"fmt"

	"github.com/kaspanet/hdwallet/libhdwallet/bip32"
	"github.com/kaspanet/hdwallet/libhdwallet/curves"
	"github.com/kaspanet/hdwallet/libhdwallet/signing"
)

// Fields a MismatchError can name.
const (
	FieldExtendedPublicKey  = "xpub"
	FieldExtendedPrivateKey = "xprv"
	FieldSignature          = "signature"
)

// MismatchError is returned by Verify when a computed value differs from
// the one the vector expects.
type MismatchError struct {
	Field    string
	Expected string
	Actual   string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("%s mismatch: expected %s but got %s", e.Field, e.Expected, e.Actual)
}

// Verify derives the vector's key from its seed and path, and checks the
// extended keys and the signature of the digest against the vector.
func Verify(vector *Vector, curve curves.Provider, versions bip32.KeyVersions) error {
	extendedKey, err := bip32.NewMasterWithPath(vector.Seed, curve, vector.Path)
	if err != nil {
		return err
	}
	defer extendedKey.Zero()

	extendedPublicKey, err := extendedKey.SerializePublic(versions.Public)
	if err != nil {
		return err
	}
	if extendedPublicKey != vector.ExtendedPublicKey {
		return &MismatchError{Field: FieldExtendedPublicKey, Expected: vector.ExtendedPublicKey, Actual: extendedPublicKey}
	}

	extendedPrivateKey, err := extendedKey.SerializePrivate(versions.Private)
	if err != nil {
		return err
	}
	if extendedPrivateKey != vector.ExtendedPrivateKey {
		// The private key itself is not echoed into the error.
		return &MismatchError{Field: FieldExtendedPrivateKey, Expected: "<redacted>", Actual: "<redacted>"}
	}

	signature, err := signing.SignDER(extendedKey, vector.Digest)
	if err != nil {
		return err
	}
	if !bytes.Equal(signature, vector.Signature) {
		return &MismatchError{
			Field:    FieldSignature,
			Expected: hex.EncodeToString(vector.Signature),
			Actual:   hex.EncodeToString(signature),
		}
	}

	return nil
}
