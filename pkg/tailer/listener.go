package tailer

// Listener receives the events produced while tailing a file. All methods
// are invoked synchronously from the tailing goroutine: a blocking callback
// stalls the whole loop.
//
// IsValid is the only method most implementations need to provide; embed
// NoopListener to get defaults for the rest.
type Listener interface {
	// IsValid is called with the accumulated-but-undelivered text each time
	// a new chunk is appended. Returning true delivers the record and resets
	// the accumulation buffer. This is the sole record framing hook.
	IsValid(candidate string) bool

	// Handle is called once per delivered record, in file order. source is
	// the path the record was read from (the archived path during rotation
	// catch-up).
	Handle(source string, record string)

	// Rotated is called once per detected rotation, with the offset of the
	// last delivered record and the current read offset. The returned path
	// names the archived file so the remainder can be caught up; return ""
	// to skip catch-up and accept losing the tail of the old file.
	Rotated(lastValidatedPosition, currentPosition int64) string

	// NotExists is called exactly once if the tailed file is absent at
	// startup, before the run terminates.
	NotExists()

	// HandleException is called once before any fatal error terminates the
	// run.
	HandleException(err error)
}

// NoopListener provides do-nothing implementations of every Listener hook
// except IsValid. Embed it and implement IsValid.
type NoopListener struct{}

func (NoopListener) Handle(string, string) {}

func (NoopListener) Rotated(int64, int64) string { return "" }

func (NoopListener) NotExists() {}

func (NoopListener) HandleException(error) {}
