package service

import "fmt"

// InvalidArgumentError reports a caller-supplied argument that cannot be
// clamped or coerced (malformed identifier, unknown sort key). It always
// names the offending parameter.
type InvalidArgumentError struct {
	Param string
	Value string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid argument %s: %q", e.Param, e.Value)
}
