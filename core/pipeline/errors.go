package pipeline

import "fmt"

// ValidationError rejects an input before any audio work starts: missing
// file, extension outside the allow-list, or an out-of-range adjustment.
type ValidationError struct {
	Path   string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("cannot process %s: %s", e.Path, e.Reason)
}

// DecodeError means the input passed validation but could not be decoded.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// WriteError means a lossless write (direct output or intermediate) failed.
// No partially written file is left under the final name.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to write %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// TranscodeError means the lossy delivery encode failed or was abandoned.
// It is never fatal: the run degrades to delivering the lossless
// intermediate and surfaces this as a warning.
type TranscodeError struct {
	Source      string
	Destination string
	Err         error
}

func (e *TranscodeError) Error() string {
	return fmt.Sprintf("transcode of %s to %s failed: %v", e.Source, e.Destination, e.Err)
}

func (e *TranscodeError) Unwrap() error { return e.Err }
