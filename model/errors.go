package model

import (
	"errors"
	"fmt"
)

// ErrInvalidConfiguration is returned when parameters describe a structurally
// impossible pool, workload or run.  It is never silently corrected.
var ErrInvalidConfiguration = errors.New("memfit: invalid configuration")

// InvalidConfigurationf wraps ErrInvalidConfiguration with a formatted reason.
func InvalidConfigurationf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfiguration, fmt.Sprintf(format, args...))
}
