package main

import (
	"fmt"
	"io"
	"os"

	"github.com/kaspanet/hdwallet/libhdwallet/vectors"
)

func verify(conf *verifyConfig) error {
	var input io.Reader = os.Stdin
	if conf.File != "" {
		file, err := os.Open(conf.File)
		if err != nil {
			return err
		}
		defer file.Close()
		input = file
	}

	log.Infof("Verifying vectors with the %s backend and %s versions", conf.Curve().Backend(), conf.Versions().Name)
	runner := vectors.NewRunner(conf.Curve(), conf.Versions(), conf.Workers)
	verified, err := runner.VerifyAll(input)
	if err != nil {
		return err
	}

	fmt.Printf("verified: %d signatures\n", verified)
	return nil
}
