package signing

import (
	"bytes"
	"encoding/hex"
	"errors"
	"testing"

	"github.com/kaspanet/hdwallet/libhdwallet/curves"
	"github.com/kaspanet/hdwallet/libhdwallet/hderrors"
)

func TestSerialize(t *testing.T) {
	tests := []struct {
		name        string
		r           string
		s           string
		expectedDER string
	}{
		{
			name:        "no padding",
			r:           "66f2b321820c5a01367794a53112c0782d7763e9516542ef9cafaf2c31af3630",
			s:           "4c8a71d1dbe925eeedc6371d633b9cbea856a63c15efe70fd235acf17b8edc58",
			expectedDER: "3044022066f2b321820c5a01367794a53112c0782d7763e9516542ef9cafaf2c31af363002204c8a71d1dbe925eeedc6371d633b9cbea856a63c15efe70fd235acf17b8edc58",
		},
		{
			name:        "high bit of r set",
			r:           "93573debed4231b1aa1c2f489b8b5d6533b792065435cb4255b89b605a1d4a4c",
			s:           "6f5e83370603a094329a1e8fd3298de96bde507af16a0acbe64b7808411f5e60",
			expectedDER: "304502210093573debed4231b1aa1c2f489b8b5d6533b792065435cb4255b89b605a1d4a4c02206f5e83370603a094329a1e8fd3298de96bde507af16a0acbe64b7808411f5e60",
		},
		{
			name:        "short components",
			r:           "0000000000000000000000000000000000000000000000000000000000000001",
			s:           "0000000000000000000000000000000000000000000000000000000000000080",
			expectedDER: "300702010102020080",
		},
	}

	for _, test := range tests {
		var compact curves.CompactSignature
		copy(compact[:32], mustDecodeHex(t, test.r))
		copy(compact[32:], mustDecodeHex(t, test.s))
		signature := NewSignature(&compact)

		der := signature.Serialize()
		if hex.EncodeToString(der) != test.expectedDER {
			t.Fatalf("%s: expected %s but got %x", test.name, test.expectedDER, der)
		}

		parsed, err := ParseDERSignature(der)
		if err != nil {
			t.Fatalf("%s: ParseDERSignature: %+v", test.name, err)
		}
		if !parsed.IsEqual(signature) {
			t.Fatalf("%s: round trip changed the signature", test.name)
		}
		r, s := parsed.R(), parsed.S()
		if !bytes.Equal(r[:], compact[:32]) || !bytes.Equal(s[:], compact[32:]) {
			t.Fatalf("%s: unexpected components %x %x", test.name, r, s)
		}
	}
}

func TestParseDERSignatureErrors(t *testing.T) {
	tests := []struct {
		name string
		der  string
	}{
		{name: "empty", der: ""},
		{name: "not a sequence", der: "0406020101020101"},
		{name: "set instead of sequence", der: "3106020101020101"},
		{name: "truncated", der: "30060201010201"},
		{name: "trailing data", der: "300602010102010100"},
		{name: "trailing data in sequence", der: "3009020101020101020101"},
		{name: "missing s", der: "3003020101"},
		{name: "non-minimal length", der: "308106020101020101"},
		{name: "non-minimal integer", der: "300702020001020101"},
		{name: "negative r", der: "30060201ff020101"},
		{name: "zero s", der: "3006020101020100"},
		{name: "r wider than 256 bits", der: "30260221010000000000000000000000000000000000000000000000000000000000000000020101"},
	}

	for _, test := range tests {
		der := mustDecodeHex(t, test.der)

		signature, err := ParseDERSignature(der)
		if !errors.Is(err, hderrors.ErrMalformedInput) {
			t.Fatalf("%s: expected ErrMalformedInput but got %v", test.name, err)
		}
		if signature != nil {
			t.Fatalf("%s: expected no signature on failure", test.name)
		}
	}
}
