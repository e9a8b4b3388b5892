package tmcl

import (
	"encoding/gob"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"
)

// Direction tells which way a recorded frame travelled.
type Direction uint8

const (
	Tx Direction = iota + 1
	Rx
)

func (d Direction) String() string {
	switch d {
	case Tx:
		return ">"
	case Rx:
		return "<"
	}
	return "?"
}

type Message struct {
	Dir       Direction
	Frame     Frame
	Timestamp time.Time
}

// Recorder writes messages to Dest as a gob stream. It is safe for use by
// several goroutines.
type Recorder struct {
	Dest io.Writer

	enc  *gob.Encoder
	once sync.Once
	mu   sync.Mutex
}

func (r *Recorder) Receive(msg Message) error {
	r.init()

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.enc.Encode(msg)
}

func (r *Recorder) init() {
	r.once.Do(func() {
		r.enc = gob.NewEncoder(r.Dest)
	})
}

// ReadIn decodes a recording from r onto out, closing out when done.
func ReadIn(out chan<- Message, r io.Reader) error {
	defer close(out)

	dec := gob.NewDecoder(r)

	for {
		var msg Message
		if err := dec.Decode(&msg); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}

			return fmt.Errorf("while decoding: %w", err)
		}

		out <- msg
	}
}
