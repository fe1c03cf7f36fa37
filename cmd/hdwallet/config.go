package main

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/jessevdk/go-flags"
	"github.com/kaspanet/hdwallet/infrastructure/config"
	"github.com/kaspanet/hdwallet/infrastructure/logger"
	"github.com/kaspanet/hdwallet/libhdwallet"
	"github.com/pkg/errors"
)

const (
	verifySubCmd   = "verify"
	generateSubCmd = "generate"
	deriveSubCmd   = "derive"
	signSubCmd     = "sign"
	inspectSubCmd  = "inspect"
)

const (
	defaultLogLevel    = "info"
	defaultLogFilename = "hdwallet.log"
	defaultErrLogFile  = "hdwallet_err.log"
)

// CommonFlags are accepted both before and after the sub-command.
type CommonFlags struct {
	LogLevel string `long:"loglevel" description:"Logging level for all subsystems {trace, debug, info, warn, error, critical} -- You may also specify <subsystem>=<level>,<subsystem2>=<level>,... to set the log level for individual subsystems"`
	LogDir   string `long:"logdir" description:"Directory to write log files to, in addition to stderr"`
	Profile  string `long:"profile" description:"Enable HTTP profiling on given port -- NOTE port must be between 1024 and 65535"`
	config.NetworkFlags
	config.CurveFlags
}

type verifyConfig struct {
	File    string `long:"file" short:"f" description:"CSV file of test vectors (seed,path,xpub,xprv,digest,signature). Reads stdin when omitted"`
	Workers int    `long:"workers" short:"w" description:"Number of vectors verified in parallel. Defaults to one per CPU"`
	CommonFlags
}

type generateConfig struct {
	Count  int    `long:"count" short:"n" description:"Number of vectors to generate" default:"10"`
	Output string `long:"output" short:"o" description:"File to write the vectors to. Writes to stdout when omitted"`
	CommonFlags
}

type deriveConfig struct {
	Seed       string `long:"seed" description:"The seed to derive from (encoded in hex)"`
	Mnemonic   string `long:"mnemonic" description:"The BIP39 mnemonic to derive from"`
	Prompt     bool   `long:"prompt" description:"Prompt for the mnemonic without echoing it"`
	Passphrase string `long:"passphrase" description:"The BIP39 passphrase of the mnemonic"`
	Path       string `long:"path" short:"p" description:"Derivation path, e.g. m/44'/0'/0'"`
	Public     bool   `long:"public" description:"Print only the extended public key"`
	CommonFlags
}

type signConfig struct {
	ExtendedKey string `long:"key" short:"k" description:"The extended private key to sign with" required:"true"`
	Path        string `long:"path" short:"p" description:"Path to derive from the key before signing" default:"m"`
	Digest      string `long:"digest" short:"d" description:"The 32-byte digest to sign (encoded in hex)" required:"true"`
	CommonFlags
}

type inspectConfig struct {
	Args struct {
		ExtendedKey string `positional-arg-name:"extended-key" required:"true"`
	} `positional-args:"yes"`
	CommonFlags
}

func parseCommandLine() (subCommand string, config interface{}) {
	cfg := &CommonFlags{}
	parser := flags.NewParser(cfg, flags.PrintErrors|flags.HelpFlag)

	verifyConf := &verifyConfig{}
	parser.AddCommand(verifySubCmd, "Verifies test vectors",
		"Derives the key of every test vector, and checks its extended keys and the signature of its digest", verifyConf)

	generateConf := &generateConfig{}
	parser.AddCommand(generateSubCmd, "Generates random test vectors",
		"Generates random test vectors and writes them as CSV", generateConf)

	deriveConf := &deriveConfig{}
	parser.AddCommand(deriveSubCmd, "Derives an extended key from a seed or a mnemonic",
		"Derives the extended key at a path from a hex seed or a BIP39 mnemonic", deriveConf)

	signConf := &signConfig{}
	parser.AddCommand(signSubCmd, "Signs a digest",
		"Signs a 32-byte digest with an extended private key and prints the DER signature", signConf)

	inspectConf := &inspectConfig{}
	parser.AddCommand(inspectSubCmd, "Shows the content of an extended key",
		"Decodes an extended key and shows its network, depth, fingerprints and keys", inspectConf)

	_, err := parser.Parse()

	if err != nil {
		var flagsErr *flags.Error
		if ok := errors.As(err, &flagsErr); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		} else {
			os.Exit(1)
		}
		return "", nil
	}

	switch parser.Command.Active.Name {
	case verifySubCmd:
		resolveCommonFlags(parser, &verifyConf.CommonFlags, cfg)
		config = verifyConf
	case generateSubCmd:
		resolveCommonFlags(parser, &generateConf.CommonFlags, cfg)
		if generateConf.Count < 0 {
			printErrorAndExit(errors.Errorf("--count must not be negative but is %d", generateConf.Count))
		}
		config = generateConf
	case deriveSubCmd:
		resolveCommonFlags(parser, &deriveConf.CommonFlags, cfg)
		if deriveConf.Path == "" {
			deriveConf.Path = libhdwallet.DefaultPath
		}
		config = deriveConf
	case signSubCmd:
		resolveCommonFlags(parser, &signConf.CommonFlags, cfg)
		config = signConf
	case inspectSubCmd:
		resolveCommonFlags(parser, &inspectConf.CommonFlags, cfg)
		config = inspectConf
	}

	return parser.Command.Active.Name, config
}

func resolveCommonFlags(parser *flags.Parser, dst, src *CommonFlags) {
	combineCommonFlags(dst, src)

	err := dst.ResolveNetwork(parser)
	if err != nil {
		printErrorAndExit(err)
	}
	err = dst.ResolveCurve()
	if err != nil {
		printErrorAndExit(err)
	}
	err = initLog(dst)
	if err != nil {
		printErrorAndExit(err)
	}
	err = validateProfilePort(dst.Profile)
	if err != nil {
		printErrorAndExit(err)
	}
}

func validateProfilePort(profile string) error {
	if profile == "" {
		return nil
	}
	profilePort, err := strconv.Atoi(profile)
	if err != nil || profilePort < 1024 || profilePort > 65535 {
		return errors.Errorf("The profile port must be between 1024 and 65535")
	}
	return nil
}

func combineCommonFlags(dst, src *CommonFlags) {
	dst.Testnet = dst.Testnet || src.Testnet
	dst.Regtest = dst.Regtest || src.Regtest
	dst.Simnet = dst.Simnet || src.Simnet
	if dst.PrivateVersion == "" {
		dst.PrivateVersion = src.PrivateVersion
	}
	if dst.PublicVersion == "" {
		dst.PublicVersion = src.PublicVersion
	}
	if dst.Backend == "" {
		dst.Backend = src.Backend
	}
	if dst.LogLevel == "" {
		dst.LogLevel = src.LogLevel
	}
	if dst.LogLevel == "" {
		dst.LogLevel = defaultLogLevel
	}
	if dst.LogDir == "" {
		dst.LogDir = src.LogDir
	}
	if dst.Profile == "" {
		dst.Profile = src.Profile
	}
}

func initLog(cfg *CommonFlags) error {
	logger.InitLogStdErr(logger.LevelTrace)
	if cfg.LogDir != "" {
		logger.InitLog(filepath.Join(cfg.LogDir, defaultLogFilename), filepath.Join(cfg.LogDir, defaultErrLogFile))
	}

	err := logger.ParseAndSetLogLevels(cfg.LogLevel)
	if err != nil {
		return err
	}

	return logger.BackendLog.Run()
}
