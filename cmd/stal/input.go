package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// resolveInput turns the optional text argument into the document to
// classify: a literal string, the contents of a .txt file, or stdin (one
// line when interactive, the whole stream when piped).
func resolveInput(arg string) (string, error) {
	if arg != "" {
		if strings.HasSuffix(arg, ".txt") {
			data, err := os.ReadFile(arg)
			if err != nil {
				return "", fmt.Errorf("failed to read input file %q: %w", arg, err)
			}
			return string(data), nil
		}
		return arg, nil
	}

	if isTerminal(os.Stdin) {
		fmt.Println("Please enter the text:")
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && err != io.EOF {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
		return line, nil
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read piped input: %w", err)
	}
	return string(data), nil
}
