package tmcl

import (
	"errors"
	"fmt"
	"io"
	"time"
)

// Port is an open serial connection.
type Port interface {
	io.ReadWriteCloser
}

// Flusher is implemented by ports that can discard received bytes not yet
// read, such as a reply that turned up after its read timed out.
type Flusher interface {
	Flush() error
}

// Opener opens the named port with the given parameters.
type Opener func(name string, cfg Config) (Port, error)

// readFrame reads exactly one frame. The drivers signal an expired read
// timeout by returning no data, with either a nil error or io.EOF.
func readFrame(r io.Reader) (Frame, error) {
	var f Frame
	n := 0
	for n < FrameLen {
		got, err := r.Read(f[n:])
		n += got
		if got > 0 {
			continue
		}
		if err == nil || errors.Is(err, io.EOF) {
			return f, fmt.Errorf("%w after %d of %d bytes", ErrReadTimeout, n, FrameLen)
		}
		return f, err
	}
	return f, nil
}

// writeFrame writes the whole frame or fails.
func writeFrame(w io.Writer, f Frame) error {
	n, err := w.Write(f[:])
	if err != nil {
		return err
	}
	if n != FrameLen {
		return fmt.Errorf("short write: %d of %d bytes", n, FrameLen)
	}
	return nil
}

// timedPort bounds Write with a timeout; neither serial driver has one.
// A write that times out keeps running until the port is closed.
type timedPort struct {
	Port
	timeout time.Duration
	flush   func() error
}

// Flush discards pending input using the driver's own call.
func (p *timedPort) Flush() error {
	if p.flush == nil {
		return nil
	}
	return p.flush()
}

type writeResult struct {
	n   int
	err error
}

func (p *timedPort) Write(b []byte) (int, error) {
	done := make(chan writeResult, 1)
	go func() {
		n, err := p.Port.Write(b)
		done <- writeResult{n, err}
	}()

	t := time.NewTimer(p.timeout)
	defer t.Stop()

	select {
	case res := <-done:
		return res.n, res.err
	case <-t.C:
		return 0, fmt.Errorf("%w after %s", ErrWriteTimeout, p.timeout)
	}
}
