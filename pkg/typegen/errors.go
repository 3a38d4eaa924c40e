package typegen

import "fmt"

// MalformedSampleError reports a sample value that the engine's own type
// contract should make unreachable, such as an uninitialized Value kind. It
// is raised instead of producing a partial hash or declaration.
type MalformedSampleError struct {
	Reason string
}

func (e *MalformedSampleError) Error() string {
	return fmt.Sprintf("malformed sample: %s", e.Reason)
}

// ResourceExceededError reports that classification hit the configured
// recursion depth limit. Truncating silently would produce an incorrect
// schema, so the whole synthesis run fails instead.
type ResourceExceededError struct {
	Depth int
	Limit int
}

func (e *ResourceExceededError) Error() string {
	return fmt.Sprintf("sample nesting depth %d exceeds limit %d", e.Depth, e.Limit)
}
