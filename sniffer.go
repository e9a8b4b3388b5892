package tmcl

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// Sniffer passively reassembles TMCL frames from a byte stream, such as a
// port tapped onto the line between a host and a module.
type Sniffer struct {
	Port    io.Reader
	OnFrame func(Frame)

	// StopOnEOF ends Consume at io.EOF, for readers such as files. Serial
	// ports report an idle read timeout as io.EOF and leave it false.
	StopOnEOF bool

	buf []byte
}

// Consume reads until ctx is cancelled, or until EOF when StopOnEOF is set.
// Reads that return no data are expected from ports with a read timeout and
// give the loop a chance to notice cancellation.
func (s *Sniffer) Consume(ctx context.Context) error {
	bs := make([]byte, 64)

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		n, err := s.Port.Read(bs)
		if n > 0 {
			s.feed(bs[:n])
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				if s.StopOnEOF {
					return nil
				}
				continue
			}
			return fmt.Errorf("reading from serial port: %w", err)
		}
	}
}

// feed appends data and emits every complete frame with a valid checksum.
// On a checksum mismatch the window slides by one byte to resynchronise.
func (s *Sniffer) feed(data []byte) {
	s.buf = append(s.buf, data...)

	for len(s.buf) >= FrameLen {
		var f Frame
		copy(f[:], s.buf)
		if !f.Valid() {
			s.buf = s.buf[1:]
			continue
		}

		s.buf = s.buf[FrameLen:]
		if s.OnFrame != nil {
			s.OnFrame(f)
		}
	}

	if len(s.buf) == 0 {
		s.buf = nil
	}
}
