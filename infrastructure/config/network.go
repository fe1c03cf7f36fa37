// Package config holds the command line flags shared by the HD wallet
// tools: which network's version bytes to use and which curve backend
// does the arithmetic.
package config

import (
	"fmt"
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/kaspanet/hdwallet/libhdwallet/bip32"
	"github.com/kaspanet/hdwallet/libhdwallet/curves"
	"github.com/pkg/errors"
)

// NetworkFlags holds the network configuration, that is which version
// bytes extended keys are serialized with.
type NetworkFlags struct {
	Testnet        bool   `long:"testnet" description:"Use the test network versions (tprv/tpub)"`
	Regtest        bool   `long:"regtest" description:"Use the regression test network versions (tprv/tpub)"`
	Simnet         bool   `long:"simnet" description:"Use the simulation test network versions (sprv/spub)"`
	PrivateVersion string `long:"private-version" description:"Override the extended private key version, in hex (e.g. 0488ade4)"`
	PublicVersion  string `long:"public-version" description:"Override the extended public key version, in hex (e.g. 0488b21e)"`

	ActiveVersions bip32.KeyVersions
}

// ResolveNetwork parses the network command line arguments and sets
// ActiveVersions accordingly. It returns an error if more than one network
// was selected or a version override is malformed.
func (networkFlags *NetworkFlags) ResolveNetwork(parser *flags.Parser) error {
	// Default net is main net
	networkFlags.ActiveVersions = bip32.BitcoinMainnet
	numNets := 0
	if networkFlags.Testnet {
		numNets++
		networkFlags.ActiveVersions = bip32.BitcoinTestnet
	}
	if networkFlags.Regtest {
		numNets++
		networkFlags.ActiveVersions = bip32.BitcoinTestnet
		networkFlags.ActiveVersions.Name = "regtest"
	}
	if networkFlags.Simnet {
		numNets++
		networkFlags.ActiveVersions = bip32.BitcoinSimnet
	}
	if numNets > 1 {
		message := "Multiple networks parameters (testnet, regtest, simnet) cannot be used " +
			"together. Please choose only one network"
		err := errors.New(message)
		fmt.Fprintln(os.Stderr, err)
		parser.WriteHelp(os.Stderr)
		return err
	}

	return networkFlags.overrideVersions()
}

func (networkFlags *NetworkFlags) overrideVersions() error {
	if networkFlags.PrivateVersion != "" {
		version, err := bip32.ParseVersion(networkFlags.PrivateVersion)
		if err != nil {
			return errors.Wrap(err, "invalid --private-version")
		}
		networkFlags.ActiveVersions.Private = version
		networkFlags.ActiveVersions.Name = "custom"
	}

	if networkFlags.PublicVersion != "" {
		version, err := bip32.ParseVersion(networkFlags.PublicVersion)
		if err != nil {
			return errors.Wrap(err, "invalid --public-version")
		}
		networkFlags.ActiveVersions.Public = version
		networkFlags.ActiveVersions.Name = "custom"
	}

	if networkFlags.ActiveVersions.Private == networkFlags.ActiveVersions.Public {
		return errors.Errorf("private and public versions must differ but both are %x",
			networkFlags.ActiveVersions.Private)
	}

	return nil
}

// Versions returns the ActiveVersions
func (networkFlags *NetworkFlags) Versions() bip32.KeyVersions {
	return networkFlags.ActiveVersions
}

// CurveFlags selects the library doing the secp256k1 arithmetic.
type CurveFlags struct {
	Backend string `long:"backend" description:"Curve arithmetic backend (btcec or libsecp256k1, default btcec)"`

	ActiveCurve curves.Provider
}

// ResolveCurve sets ActiveCurve to the provider named by the backend flag.
func (curveFlags *CurveFlags) ResolveCurve() error {
	curve, err := curves.New(curves.Secp256k1Name, curveFlags.Backend)
	if err != nil {
		return err
	}
	curveFlags.ActiveCurve = curve
	return nil
}

// Curve returns the ActiveCurve
func (curveFlags *CurveFlags) Curve() curves.Provider {
	return curveFlags.ActiveCurve
}
