// Package options holds validation helpers shared by the functional-option
// layers of parser and splitter.
package options

import (
	"fmt"
	"slices"

	"github.com/erraggy/oasplit/oaserrors"
)

// ValidateSingleInputSource ensures exactly one input source is specified.
// sources holds one boolean per possible source, true when that source is set.
func ValidateSingleInputSource(noSourceMsg, multiSourceMsg string, sources ...bool) error {
	count := 0
	for _, set := range sources {
		if set {
			count++
		}
	}

	switch {
	case count == 0:
		return &oaserrors.ConfigError{Option: "input", Message: noSourceMsg}
	case count > 1:
		return &oaserrors.ConfigError{Option: "input", Message: multiSourceMsg}
	}
	return nil
}

// ValidateOneOf returns a ConfigError when value is not in allowed.
func ValidateOneOf(option, value string, allowed ...string) error {
	if slices.Contains(allowed, value) {
		return nil
	}
	return &oaserrors.ConfigError{
		Option:  option,
		Value:   value,
		Message: fmt.Sprintf("must be one of: %v", allowed),
	}
}

// ValidatePositive returns a ConfigError when value is below 1.
func ValidatePositive(option string, value int) error {
	if value >= 1 {
		return nil
	}
	return &oaserrors.ConfigError{Option: option, Value: value, Message: "must be at least 1"}
}
