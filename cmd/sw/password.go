package main

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// readPassword prompts on stderr and reads a password from the
// controlling terminal with echo disabled. Prompting on stderr keeps
// stdout clean for piped output.
func readPassword() (string, error) {
	fmt.Fprint(os.Stderr, "Password: ")
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(raw), nil
}

func readInput(path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}
