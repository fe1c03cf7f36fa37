// Package signing produces and checks deterministic ECDSA signatures over
// 32-byte digests with the keys of an HD tree.
package signing

import (
	"github.com/kaspanet/hdwallet/libhdwallet/bip32"
	"github.com/kaspanet/hdwallet/libhdwallet/curves"
	"github.com/kaspanet/hdwallet/libhdwallet/hderrors"
)

func toDigest(digest []byte) (*curves.Digest, error) {
	if len(digest) != curves.DigestSize {
		return nil, hderrors.Errorf(hderrors.ErrSigning, "digest must be %d bytes but got %d",
			curves.DigestSize, len(digest))
	}

	var fixedDigest curves.Digest
	copy(fixedDigest[:], digest)
	return &fixedDigest, nil
}

// Sign signs digest with the private key of extKey. The nonce is derived
// deterministically (RFC6979) and the signature is normalized to low-S,
// so the same key and digest always produce the same signature. The
// digest is the hash of the message and is signed as is.
func Sign(extKey *bip32.ExtendedKey, digest []byte) (*Signature, error) {
	fixedDigest, err := toDigest(digest)
	if err != nil {
		return nil, err
	}

	if !extKey.IsPrivate() {
		return nil, hderrors.Errorf(hderrors.ErrSigning, "cannot sign with a public-only key")
	}
	privateKey, err := extKey.PrivateKey()
	if err != nil {
		return nil, hderrors.Wrap(hderrors.ErrSigning, err)
	}
	defer privateKey.Zero()

	compact, err := extKey.Curve().SignDigest(privateKey, fixedDigest)
	if err != nil {
		return nil, hderrors.Wrap(hderrors.ErrSigning, err)
	}

	log.Tracef("Signed digest %x with a key at depth %d", digest, extKey.Depth())
	return NewSignature(compact), nil
}

// SignDER signs digest like Sign does and returns the DER encoding of the
// signature.
func SignDER(extKey *bip32.ExtendedKey, digest []byte) ([]byte, error) {
	signature, err := Sign(extKey, digest)
	if err != nil {
		return nil, err
	}
	return signature.Serialize(), nil
}

// Verify reports whether signature is a valid signature of digest under
// the public key of extKey.
func Verify(extKey *bip32.ExtendedKey, digest []byte, signature *Signature) (bool, error) {
	fixedDigest, err := toDigest(digest)
	if err != nil {
		return false, err
	}

	publicKey, err := extKey.PublicKey()
	if err != nil {
		return false, err
	}

	return extKey.Curve().VerifyDigest(publicKey, fixedDigest, &signature.compact), nil
}
