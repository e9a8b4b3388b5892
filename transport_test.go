package tmcl

import (
	"bytes"
	"errors"
	"io"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chunkReader hands out one chunk per Read, then err.
type chunkReader struct {
	chunks [][]byte
	err    error
}

func (r *chunkReader) Read(b []byte) (int, error) {
	if len(r.chunks) == 0 {
		return 0, r.err
	}
	n := copy(b, r.chunks[0])
	r.chunks[0] = r.chunks[0][n:]
	if len(r.chunks[0]) == 0 {
		r.chunks = r.chunks[1:]
	}
	return n, nil
}

func TestReadFrameShortReads(t *testing.T) {
	want := Encode(GAP, 1, 2, 3, 4)
	r := &chunkReader{chunks: [][]byte{want[:1], want[1:5], want[5:]}}

	f, err := readFrame(r)
	require.NoError(t, err)
	assert.Equal(t, want, f)
}

func TestReadFrameTimeout(t *testing.T) {
	for _, end := range []error{nil, io.EOF} {
		r := &chunkReader{chunks: [][]byte{{1, 2, 3}}, err: end}
		_, err := readFrame(r)
		assert.ErrorIs(t, err, ErrReadTimeout)
		assert.Contains(t, err.Error(), "3 of 9")
	}
}

func TestReadFrameError(t *testing.T) {
	boom := errors.New("boom")
	_, err := readFrame(&chunkReader{err: boom})
	assert.ErrorIs(t, err, boom)
}

type shortWriter struct{}

func (shortWriter) Write(b []byte) (int, error) { return len(b) - 1, nil }

func TestWriteFrame(t *testing.T) {
	var buf bytes.Buffer
	f := Encode(SGP, 1, 1, 0, 1000)
	require.NoError(t, writeFrame(&buf, f))
	assert.Equal(t, f[:], buf.Bytes())

	assert.Error(t, writeFrame(shortWriter{}, f))
}

// blockingPort never completes a write until closed.
type blockingPort struct {
	release chan struct{}
}

func (p *blockingPort) Read([]byte) (int, error) { return 0, nil }

func (p *blockingPort) Write(b []byte) (int, error) {
	<-p.release
	return 0, io.ErrClosedPipe
}

func (p *blockingPort) Close() error {
	close(p.release)
	return nil
}

func TestTimedPortWriteTimeout(t *testing.T) {
	bp := &blockingPort{release: make(chan struct{})}
	p := &timedPort{Port: bp, timeout: 10 * time.Millisecond}
	defer p.Close()

	_, err := p.Write([]byte{1})
	assert.ErrorIs(t, err, ErrWriteTimeout)
}

func TestTimedPortWrite(t *testing.T) {
	fp := &fakePort{}
	p := &timedPort{Port: fp, timeout: time.Second}

	n, err := p.Write([]byte{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, []byte{1, 2, 3}, fp.written.Bytes())
}

func TestOpenerFor(t *testing.T) {
	for driver, want := range map[string]Opener{
		"":          OpenSerial,
		DriverBugst: OpenSerial,
		DriverTarm:  OpenTarm,
	} {
		got, err := OpenerFor(driver)
		require.NoError(t, err)
		assert.Equal(t, reflect.ValueOf(want).Pointer(), reflect.ValueOf(got).Pointer(), driver)
	}

	_, err := OpenerFor("ftdi")
	assert.Error(t, err)
}

func TestTimedPortFlush(t *testing.T) {
	calls := 0
	p := &timedPort{Port: &fakePort{}, timeout: time.Second, flush: func() error {
		calls++
		return nil
	}}

	var f Flusher = p
	require.NoError(t, f.Flush())
	assert.Equal(t, 1, calls)

	assert.NoError(t, (&timedPort{Port: &fakePort{}}).Flush())
}
