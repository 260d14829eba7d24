package tailer

import "fmt"

// ConfigurationError reports an invalid construction of the Tailer. It is
// never retried: running without a listener is a caller bug.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "tailer configuration: " + e.Reason
}

// NotFoundError reports that the tailed file was absent at startup.
type NotFoundError struct {
	Path string
	Err  error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s does not exist: %s", e.Path, e.Err)
}

func (e *NotFoundError) Unwrap() error {
	return e.Err
}

// FatalIOError reports an unrecoverable I/O failure while tailing. The
// listener is notified through HandleException before this is returned.
type FatalIOError struct {
	Path string
	Err  error
}

func (e *FatalIOError) Error() string {
	return fmt.Sprintf("while tailing %s: %s", e.Path, e.Err)
}

func (e *FatalIOError) Unwrap() error {
	return e.Err
}
