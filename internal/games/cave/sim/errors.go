package sim

import (
	"errors"
	"fmt"
)

// ErrInvalidAttrs is wrapped by every ConfigError returned from Spawn.
var ErrInvalidAttrs = errors.New("sim: invalid attributes")

// ConfigError reports a spawn attribute rejected at the world boundary.
// The physics core never clamps such values silently.
type ConfigError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("sim: %s=%v: %s", e.Field, e.Value, e.Reason)
}

func (e *ConfigError) Unwrap() error {
	return ErrInvalidAttrs
}
