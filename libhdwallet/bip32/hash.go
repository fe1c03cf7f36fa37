package bip32

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/sha512"
	"crypto/subtle"
	"hash"

	"github.com/pkg/errors"
	"golang.org/x/crypto/ripemd160"
)

func newHMACWriter(key []byte) hmacWriter {
	return hmacWriter{
		Hash: hmac.New(sha512.New, key),
	}
}

type hmacWriter struct {
	hash.Hash
}

func (hw hmacWriter) InfallibleWrite(p []byte) {
	_, err := hw.Write(p)
	if err != nil {
		panic(errors.Wrap(err, "writing to hmac should never fail"))
	}
}

// sumHalves returns the left and right 32 bytes of the HMAC-SHA512 output.
// The caller owns both halves and is expected to zero them.
func (hw hmacWriter) sumHalves() (iL, iR [32]byte) {
	I := hw.Sum(nil)
	copy(iL[:], I[:32])
	copy(iR[:], I[32:])
	zero(I)
	return iL, iR
}

func calcChecksum(data []byte) []byte {
	return doubleSha256(data)[:checkSumLen]
}

func doubleSha256(data []byte) []byte {
	first := sha256.Sum256(data)
	second := sha256.Sum256(first[:])
	return second[:]
}

func validateChecksum(data []byte) error {
	checksum := data[len(data)-checkSumLen:]
	expectedChecksum := calcChecksum(data[:len(data)-checkSumLen])
	if subtle.ConstantTimeCompare(expectedChecksum, checksum) != 1 {
		return errors.Errorf("expected checksum %x but got %x", expectedChecksum, checksum)
	}

	return nil
}

// hash160 returns RIPEMD160(SHA256(data)).
func hash160(data []byte) []byte {
	sha := sha256.Sum256(data)
	hasher := ripemd160.New()
	_, _ = hasher.Write(sha[:])
	return hasher.Sum(nil)
}

func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
