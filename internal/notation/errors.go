package notation

import "fmt"

// ConfigurationError reports an invalid practice configuration. Generation
// never starts (and no randomness is consumed) when one is returned.
type ConfigurationError struct {
	Field   string
	Message string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Message)
}
