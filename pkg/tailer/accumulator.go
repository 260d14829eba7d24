package tailer

// recordAccumulator tracks the read position within the current file epoch
// and holds the text accumulated since the last delivered record.
//
// Invariant: lastValidated <= position.
type recordAccumulator struct {
	// byte offset of the next unread character
	position int64
	// byte offset immediately after the last delivered record
	lastValidated int64
	// accumulated, not yet validated text
	pending string
}

// append adds one read chunk to the pending record and advances the
// position past the chunk, plus one for its terminator when present.
// position stays an exact byte offset either way, which is what makes the
// catch-up seek after a rotation land on the right character.
func (a *recordAccumulator) append(chunk string, terminated bool) {
	a.pending += chunk

	a.position += int64(len(chunk))
	if terminated {
		a.position++
	}
}

// markDelivered records that the pending content was handed to the listener.
// The buffer is replaced, not truncated, so a reference carried into rotation
// catch-up stays valid.
func (a *recordAccumulator) markDelivered() {
	a.lastValidated = a.position
	a.pending = ""
}

// reset returns the accumulator to the state of a fresh file epoch.
func (a *recordAccumulator) reset() {
	a.position = 0
	a.lastValidated = 0
	a.pending = ""
}
