package main

import (
	"fmt"
	"os"

	"github.com/kaspanet/hdwallet/infrastructure/logger"
	"github.com/kaspanet/hdwallet/util/panics"
	"github.com/kaspanet/hdwallet/util/profiling"
	"github.com/pkg/errors"
)

func main() {
	defer panics.HandlePanic(log, nil)

	subCmd, config := parseCommandLine()
	if profile := commonFlagsOf(config).Profile; profile != "" {
		profiling.Start(profile, log)
	}

	var err error
	switch subCmd {
	case verifySubCmd:
		err = verify(config.(*verifyConfig))
	case generateSubCmd:
		err = generate(config.(*generateConfig))
	case deriveSubCmd:
		err = derive(config.(*deriveConfig))
	case signSubCmd:
		err = sign(config.(*signConfig))
	case inspectSubCmd:
		err = inspect(config.(*inspectConfig))
	default:
		err = errors.Errorf("Unknown sub-command '%s'\n", subCmd)
	}

	if err != nil {
		printErrorAndExit(err)
	}
	logger.BackendLog.Close()
}

func commonFlagsOf(config interface{}) *CommonFlags {
	switch conf := config.(type) {
	case *verifyConfig:
		return &conf.CommonFlags
	case *generateConfig:
		return &conf.CommonFlags
	case *deriveConfig:
		return &conf.CommonFlags
	case *signConfig:
		return &conf.CommonFlags
	case *inspectConfig:
		return &conf.CommonFlags
	}
	return &CommonFlags{}
}

func printErrorAndExit(err error) {
	if logger.BackendLog.IsRunning() {
		logger.BackendLog.Close()
	}
	fmt.Fprintf(os.Stderr, "%s\n", err)
	os.Exit(1)
}
