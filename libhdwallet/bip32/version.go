package bip32

import (
	"encoding/hex"

	"github.com/kaspanet/hdwallet/libhdwallet/hderrors"
)

// KeyVersions holds the 4-byte version prefixes an extended key is
// serialized with. They distinguish the network and the private and
// public forms.
type KeyVersions struct {
	Name    string
	Private [4]byte
	Public  [4]byte
}

// BitcoinMainnet is the canonical xprv/xpub encoding.
var BitcoinMainnet = KeyVersions{
	Name:    "mainnet",
	Private: [4]byte{0x04, 0x88, 0xad, 0xe4},
	Public:  [4]byte{0x04, 0x88, 0xb2, 0x1e},
}

// BitcoinTestnet is the tprv/tpub encoding used by testnet and regtest.
var BitcoinTestnet = KeyVersions{
	Name:    "testnet",
	Private: [4]byte{0x04, 0x35, 0x83, 0x94},
	Public:  [4]byte{0x04, 0x35, 0x87, 0xcf},
}

// BitcoinSimnet is the sprv/spub encoding used by the simulation network.
var BitcoinSimnet = KeyVersions{
	Name:    "simnet",
	Private: [4]byte{0x04, 0x20, 0xb9, 0x00},
	Public:  [4]byte{0x04, 0x20, 0xbd, 0x3a},
}

// KnownVersions returns the version sets Deserialize accepts when the
// caller doesn't name any.
func KnownVersions() []KeyVersions {
	return []KeyVersions{BitcoinMainnet, BitcoinTestnet, BitcoinSimnet}
}

// ParseVersion decodes a 4-byte version from its hex form, e.g. "0488ade4".
func ParseVersion(hexVersion string) ([4]byte, error) {
	decoded, err := hex.DecodeString(hexVersion)
	if err != nil {
		return [4]byte{}, hderrors.Wrap(hderrors.ErrMalformedInput, err)
	}
	if len(decoded) != versionSerializationLen {
		return [4]byte{}, hderrors.Errorf(hderrors.ErrMalformedInput,
			"version must be %d bytes but got %d", versionSerializationLen, len(decoded))
	}

	var version [4]byte
	copy(version[:], decoded)
	return version, nil
}

// matchVersion finds the version set the given version belongs to, and
// whether it is the private form.
func matchVersion(version [4]byte, candidates []KeyVersions) (versions KeyVersions, isPrivate bool, ok bool) {
	for _, candidate := range candidates {
		switch version {
		case candidate.Private:
			return candidate, true, true
		case candidate.Public:
			return candidate, false, true
		}
	}
	return KeyVersions{}, false, false
}
