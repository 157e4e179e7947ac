package forwarder

import (
	"fmt"
	"strings"
)

// Unrecoverable condition, the loop stopped and the connection was closed
type FatalError struct {
	Op  string
	Err error
}

func (err *FatalError) Error() string {
	return fmt.Sprintf("%s: %v", err.Op, err.Err)
}

func (err *FatalError) Unwrap() error {
	return err.Err
}

// Required configuration keys absent from the config file
type MissingKeysError struct {
	Keys []string
}

func (err *MissingKeysError) Error() string {
	return fmt.Sprintf("missing required config key(s): %s", strings.Join(err.Keys, ", "))
}
