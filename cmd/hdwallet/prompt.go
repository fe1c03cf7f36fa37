package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/pkg/errors"
	"golang.org/x/term"
)

// readSecret was adapted from https://gist.github.com/jlinoff/e8e26b4ffa38d379c7f1891fd174a6d0#file-getpassword2-go
func readSecret(prompt string) (string, error) {
	stdin := int(syscall.Stdin)
	if !term.IsTerminal(stdin) {
		return "", errors.New("--prompt requires stdin to be a terminal")
	}

	// Get the initial state of the terminal.
	initialTermState, err := term.GetState(stdin)
	if err != nil {
		return "", err
	}

	// Restore it in the event of an interrupt.
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		_, ok := <-c
		if !ok {
			return
		}
		_ = term.Restore(stdin, initialTermState)
		os.Exit(1)
	}()
	defer func() {
		signal.Stop(c)
		close(c)
	}()

	fmt.Fprint(os.Stderr, prompt)
	secret, err := term.ReadPassword(stdin)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(string(secret)), nil
}
