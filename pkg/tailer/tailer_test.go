package tailer

import (
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingListener captures every engine callback so tests can assert on
// them. valid and archived are optional overrides for the framing and
// rotation policies.
type recordingListener struct {
	mu       sync.Mutex
	valid    func(candidate string) bool
	archived func(lastValidated, current int64) string

	records    []string
	sources    []string
	validSeen  []string
	rotations  int
	notExists  int
	exceptions []error
}

func (l *recordingListener) IsValid(candidate string) bool {
	l.mu.Lock()
	l.validSeen = append(l.validSeen, candidate)
	valid := l.valid
	l.mu.Unlock()

	if valid == nil {
		return true
	}

	return valid(candidate)
}

func (l *recordingListener) Handle(source string, record string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.records = append(l.records, record)
	l.sources = append(l.sources, source)
}

func (l *recordingListener) Rotated(lastValidated, current int64) string {
	l.mu.Lock()
	l.rotations++
	archived := l.archived
	l.mu.Unlock()

	if archived == nil {
		return ""
	}

	return archived(lastValidated, current)
}

func (l *recordingListener) NotExists() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.notExists++
}

func (l *recordingListener) HandleException(err error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.exceptions = append(l.exceptions, err)
}

func (l *recordingListener) handled() []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	return slices.Clone(l.records)
}

func (l *recordingListener) handledSources() []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	return slices.Clone(l.sources)
}

func (l *recordingListener) seenCandidate(candidate string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	return slices.Contains(l.validSeen, candidate)
}

func (l *recordingListener) rotationCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.rotations
}

func (l *recordingListener) notExistsCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.notExists
}

func (l *recordingListener) exceptionCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return len(l.exceptions)
}

func appendFile(t *testing.T, path string, data string) {
	t.Helper()

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	require.NoError(t, err)

	_, err = f.WriteString(data)
	require.NoError(t, err)

	require.NoError(t, f.Close())
}

func startTailer(t *testing.T, tl *Tailer) chan error {
	t.Helper()

	done := make(chan error, 1)

	go func() {
		done <- tl.Run()
	}()

	return done
}

func stopTailer(t *testing.T, tl *Tailer, done chan error) {
	t.Helper()

	tl.Stop()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("tailer did not stop")
	}
}

func TestNewWithoutListener(t *testing.T) {
	_, err := New(nil, time.Second, "/tmp/garbage")

	var confErr *ConfigurationError

	require.ErrorAs(t, err, &confErr)
}

func TestNewNegativeInterval(t *testing.T) {
	_, err := New(&recordingListener{}, -time.Second, "/tmp/garbage")

	var confErr *ConfigurationError

	require.ErrorAs(t, err, &confErr)
}

func TestInexistentFile(t *testing.T) {
	l := &recordingListener{}

	tl, err := New(l, 10*time.Millisecond, filepath.Join(t.TempDir(), "missing.log"))
	require.NoError(t, err)

	err = tl.Run()

	var nfErr *NotFoundError

	require.ErrorAs(t, err, &nfErr)
	require.ErrorIs(t, err, fs.ErrNotExist)

	assert.Equal(t, 1, l.notExistsCount())
	assert.Equal(t, 0, l.rotationCount())
}

func TestTailDirectory(t *testing.T) {
	l := &recordingListener{}

	tl, err := New(l, 10*time.Millisecond, t.TempDir())
	require.NoError(t, err)

	err = tl.Run()

	var ioErr *FatalIOError

	require.ErrorAs(t, err, &ioErr)

	assert.Equal(t, 1, l.exceptionCount())
	assert.Equal(t, 0, l.rotationCount())
}

func TestDeliverCompleteRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.log")
	appendFile(t, path, "rec-0\nrec-1\nrec-2\n")

	l := &recordingListener{}

	tl, err := New(l, 5*time.Millisecond, path)
	require.NoError(t, err)

	done := startTailer(t, tl)

	require.Eventually(t, func() bool {
		return len(l.handled()) == 3
	}, 2*time.Second, 10*time.Millisecond)

	appendFile(t, path, "rec-3\n")

	require.Eventually(t, func() bool {
		return len(l.handled()) == 4
	}, 2*time.Second, 10*time.Millisecond)

	assert.Equal(t, []string{"rec-0", "rec-1", "rec-2", "rec-3"}, l.handled())
	assert.Equal(t, 0, l.rotationCount())

	stopTailer(t, tl, done)
}

func TestNeverValidNeverHandles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.log")
	appendFile(t, path, "rec-0\nrec-1\n")

	l := &recordingListener{
		valid: func(string) bool { return false },
	}

	tl, err := New(l, 5*time.Millisecond, path)
	require.NoError(t, err)

	done := startTailer(t, tl)

	require.Eventually(t, func() bool {
		return l.seenCandidate("rec-0rec-1")
	}, 2*time.Second, 10*time.Millisecond)

	assert.Empty(t, l.handled())
	assert.Equal(t, 0, l.rotationCount())

	stopTailer(t, tl, done)
}

func TestSlowWriterReassemblesRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.log")
	appendFile(t, path, "hel")

	l := &recordingListener{
		valid: func(candidate string) bool {
			return strings.HasSuffix(candidate, "!")
		},
	}

	tl, err := New(l, 5*time.Millisecond, path)
	require.NoError(t, err)

	done := startTailer(t, tl)

	require.Eventually(t, func() bool {
		return l.seenCandidate("hel")
	}, 2*time.Second, 10*time.Millisecond)

	assert.Empty(t, l.handled())

	appendFile(t, path, "lo!")

	require.Eventually(t, func() bool {
		return len(l.handled()) == 1
	}, 2*time.Second, 10*time.Millisecond)

	appendFile(t, path, "\n")

	assert.Equal(t, []string{"hello!"}, l.handled())

	stopTailer(t, tl, done)
}

func TestRotationNoRecordLostOrDuplicated(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.log")
	archived := path + ".1"

	l := &recordingListener{
		archived: func(int64, int64) string { return archived },
	}

	appendFile(t, path, "rec-0\nrec-1\nrec-2\n")

	tl, err := New(l, 5*time.Millisecond, path)
	require.NoError(t, err)

	done := startTailer(t, tl)

	require.Eventually(t, func() bool {
		return len(l.handled()) == 3
	}, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, os.Rename(path, archived))

	// give the new file a distinct creation timestamp
	time.Sleep(20 * time.Millisecond)

	appendFile(t, path, "rec-3\nrec-4\n")

	require.Eventually(t, func() bool {
		return l.rotationCount() == 1 && len(l.handled()) == 5
	}, 5*time.Second, 10*time.Millisecond)

	assert.Equal(t, []string{"rec-0", "rec-1", "rec-2", "rec-3", "rec-4"}, l.handled())
	assert.Equal(t, 1, l.rotationCount())
	assert.Equal(t, 0, l.exceptionCount())

	stopTailer(t, tl, done)
}

func TestRotationReconstructsSplitRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.log")
	archived := path + ".1"

	l := &recordingListener{
		valid: func(candidate string) bool {
			return strings.HasSuffix(candidate, ";")
		},
		archived: func(int64, int64) string { return archived },
	}

	appendFile(t, path, "alpha;\n")

	tl, err := New(l, 5*time.Millisecond, path)
	require.NoError(t, err)

	done := startTailer(t, tl)

	require.Eventually(t, func() bool {
		return len(l.handled()) == 1
	}, 2*time.Second, 10*time.Millisecond)

	// start a record that will be finished in the archived file
	appendFile(t, path, "tw")

	require.Eventually(t, func() bool {
		return l.seenCandidate("tw")
	}, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, os.Rename(path, archived))
	appendFile(t, archived, "o;\n")

	time.Sleep(20 * time.Millisecond)

	appendFile(t, path, "x;\n")

	require.Eventually(t, func() bool {
		return l.rotationCount() == 1 && len(l.handled()) == 3
	}, 5*time.Second, 10*time.Millisecond)

	assert.Equal(t, []string{"alpha;", "two;", "x;"}, l.handled())
	assert.Equal(t, []string{path, archived, path}, l.handledSources())
	assert.Equal(t, 0, l.exceptionCount())

	stopTailer(t, tl, done)
}

func TestUnlinkRecreateRecovers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.log")

	l := &recordingListener{}

	appendFile(t, path, "a-rec\n")

	tl, err := New(l, 5*time.Millisecond, path)
	require.NoError(t, err)

	done := startTailer(t, tl)

	require.Eventually(t, func() bool {
		return len(l.handled()) == 1
	}, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, os.Remove(path))

	// the engine must ride out the missing window, then treat the empty
	// replacement as a rotation with no archived file to catch up on
	time.Sleep(50 * time.Millisecond)

	appendFile(t, path, "")

	require.Eventually(t, func() bool {
		return l.rotationCount() == 1
	}, 5*time.Second, 10*time.Millisecond)

	appendFile(t, path, "b-rec\n")

	require.Eventually(t, func() bool {
		return len(l.handled()) == 2
	}, 5*time.Second, 10*time.Millisecond)

	assert.Equal(t, []string{"a-rec", "b-rec"}, l.handled())
	assert.Equal(t, 0, l.exceptionCount())

	stopTailer(t, tl, done)
}

func TestCatchUpSkipsMissingArchive(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.log")

	l := &recordingListener{
		archived: func(int64, int64) string {
			return filepath.Join(dir, "nope.log.1")
		},
	}

	appendFile(t, path, "rec-0\nrec-1\n")

	tl, err := New(l, 5*time.Millisecond, path)
	require.NoError(t, err)

	done := startTailer(t, tl)

	require.Eventually(t, func() bool {
		return len(l.handled()) == 2
	}, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, os.Remove(path))
	time.Sleep(50 * time.Millisecond)
	appendFile(t, path, "rec-2\n")

	require.Eventually(t, func() bool {
		return l.rotationCount() == 1 && len(l.handled()) == 3
	}, 5*time.Second, 10*time.Millisecond)

	assert.Equal(t, []string{"rec-0", "rec-1", "rec-2"}, l.handled())
	assert.Equal(t, 0, l.exceptionCount())

	stopTailer(t, tl, done)
}

func TestStopIsObserved(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.log")
	appendFile(t, path, "rec-0\n")

	l := &recordingListener{}

	tl, err := New(l, 5*time.Millisecond, path)
	require.NoError(t, err)

	done := startTailer(t, tl)

	require.Eventually(t, func() bool {
		return len(l.handled()) == 1
	}, 2*time.Second, 10*time.Millisecond)

	stopTailer(t, tl, done)
}
