package repl

import "os"

// readFile loads a source file's contents as a string. It exists as its own
// function only so handleRead's call site reads like the rest of the REPL's
// small, single-purpose helpers.
func readFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
