package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

// configError marks failures caused by configuration rather than input.
type configError struct {
	err error
}

func (e configError) Error() string { return e.err.Error() }
func (e configError) Unwrap() error { return e.err }

func exitCode(err error) int {
	var ce configError
	if errors.As(err, &ce) {
		return ExitConfigError
	}
	return ExitError
}

// outputJSON writes a value as formatted JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func outputHuman(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}
