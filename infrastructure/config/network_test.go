package config

import (
	"testing"

	"github.com/jessevdk/go-flags"
	"github.com/kaspanet/hdwallet/libhdwallet/bip32"
	"github.com/kaspanet/hdwallet/libhdwallet/curves"
)

type testConfig struct {
	NetworkFlags
	CurveFlags
}

func parseTestConfig(t *testing.T, args ...string) (*testConfig, *flags.Parser) {
	cfg := &testConfig{}
	parser := flags.NewParser(cfg, flags.None)
	_, err := parser.ParseArgs(args)
	if err != nil {
		t.Fatalf("ParseArgs(%v): %+v", args, err)
	}
	return cfg, parser
}

func TestResolveNetwork(t *testing.T) {
	tests := []struct {
		args             []string
		expectedVersions bip32.KeyVersions
	}{
		{args: nil, expectedVersions: bip32.BitcoinMainnet},
		{args: []string{"--testnet"}, expectedVersions: bip32.BitcoinTestnet},
		{
			args: []string{"--regtest"},
			expectedVersions: bip32.KeyVersions{
				Name:    "regtest",
				Private: bip32.BitcoinTestnet.Private,
				Public:  bip32.BitcoinTestnet.Public,
			},
		},
		{args: []string{"--simnet"}, expectedVersions: bip32.BitcoinSimnet},
		{
			args: []string{"--private-version", "0488ade5", "--public-version", "0488b21f"},
			expectedVersions: bip32.KeyVersions{
				Name:    "custom",
				Private: [4]byte{0x04, 0x88, 0xad, 0xe5},
				Public:  [4]byte{0x04, 0x88, 0xb2, 0x1f},
			},
		},
		{
			args: []string{"--testnet", "--public-version", "0488b21e"},
			expectedVersions: bip32.KeyVersions{
				Name:    "custom",
				Private: bip32.BitcoinTestnet.Private,
				Public:  bip32.BitcoinMainnet.Public,
			},
		},
	}

	for _, test := range tests {
		cfg, parser := parseTestConfig(t, test.args...)
		err := cfg.ResolveNetwork(parser)
		if err != nil {
			t.Fatalf("ResolveNetwork(%v): %+v", test.args, err)
		}
		if cfg.Versions() != test.expectedVersions {
			t.Fatalf("ResolveNetwork(%v): expected %+v but got %+v", test.args, test.expectedVersions, cfg.Versions())
		}
	}
}

func TestResolveNetworkErrors(t *testing.T) {
	tests := [][]string{
		{"--testnet", "--simnet"},
		{"--testnet", "--regtest"},
		{"--private-version", "0488ad"},
		{"--public-version", "not hex!"},
		{"--private-version", "0488b21e"},
	}

	for _, args := range tests {
		cfg, parser := parseTestConfig(t, args...)
		err := cfg.ResolveNetwork(parser)
		if err == nil {
			t.Fatalf("ResolveNetwork(%v): expected an error", args)
		}
	}
}

func TestResolveCurve(t *testing.T) {
	tests := []struct {
		args            []string
		expectedBackend string
	}{
		{args: nil, expectedBackend: curves.BackendBtcec},
		{args: []string{"--backend", "btcec"}, expectedBackend: curves.BackendBtcec},
		{args: []string{"--backend", "libsecp256k1"}, expectedBackend: curves.BackendLibsecp256k1},
	}

	for _, test := range tests {
		cfg, _ := parseTestConfig(t, test.args...)
		err := cfg.ResolveCurve()
		if err != nil {
			t.Fatalf("ResolveCurve(%v): %+v", test.args, err)
		}
		if cfg.Curve().Backend() != test.expectedBackend {
			t.Fatalf("ResolveCurve(%v): expected %s but got %s", test.args, test.expectedBackend, cfg.Curve().Backend())
		}
	}

	cfg, _ := parseTestConfig(t, "--backend", "openssl")
	err := cfg.ResolveCurve()
	if err == nil {
		t.Fatalf("ResolveCurve: expected an error for an unknown backend")
	}
}
