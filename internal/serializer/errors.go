package serializer

import "fmt"

// WorkbenchLayoutError reports a payload version no migration chain can
// upgrade. It is not recoverable.
type WorkbenchLayoutError struct {
	Version int
}

func (e *WorkbenchLayoutError) Error() string {
	return fmt.Sprintf("unsupported layout version %d (current is %d)", e.Version, CurrentVersion)
}

// SerializeError reports a malformed payload or a tree that cannot be
// encoded.
type SerializeError struct {
	Msg string
	Err error
}

func (e *SerializeError) Error() string {
	if e.Err == nil {
		return "serialize: " + e.Msg
	}
	return fmt.Sprintf("serialize: %s: %v", e.Msg, e.Err)
}

func (e *SerializeError) Unwrap() error { return e.Err }
