package main

import (
	"crypto/rand"
	"io"
	"os"

	"github.com/kaspanet/hdwallet/libhdwallet/vectors"
)

func generate(conf *generateConfig) error {
	var output io.Writer = os.Stdout
	if conf.Output != "" {
		file, err := os.Create(conf.Output)
		if err != nil {
			return err
		}
		defer file.Close()
		output = file
	}

	writer := vectors.NewWriter(output)
	for i := 0; i < conf.Count; i++ {
		vector, err := vectors.Generate(rand.Reader, conf.Curve(), conf.Versions())
		if err != nil {
			return err
		}
		err = writer.Write(vector)
		if err != nil {
			return err
		}
	}

	err := writer.Flush()
	if err != nil {
		return err
	}
	log.Infof("Generated %d vectors", conf.Count)
	return nil
}
