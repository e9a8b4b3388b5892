package tmcl

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/golang/glog"
)

// ConnectionState is whether the session holds an open port.
type ConnectionState int

const (
	Closed ConnectionState = iota
	Open
)

func (s ConnectionState) String() string {
	if s == Open {
		return "open"
	}
	return "closed"
}

// Reply is the result of one exchange.
type Reply struct {
	// Status is the reply status byte, or StatusNoConnection/StatusIOError
	// when no reply was received.
	Status  int
	Outcome Outcome

	// Value is only decoded by Get.
	Value int32

	Request  Frame
	Response Frame
}

// Err returns a *StatusError unless the module accepted the command. An
// exchange that got no reply yields an error wrapping ErrTransport.
func (r Reply) Err() error {
	if r.Outcome.OK() {
		return nil
	}
	if r.Outcome == OutcomeTransportError {
		return fmt.Errorf("%w: %s: no reply", ErrTransport, InstructionName(r.Request[1]))
	}
	return &StatusError{
		Command: ParseCommand(r.Request),
		Status:  r.Status,
	}
}

// Session owns the connection to one TMCL module and runs request/reply
// exchanges over it. Calls are serialised; only one exchange is ever in
// flight.
type Session struct {
	ports []string
	open  Opener
	cfg   Config
	rec   *Recorder
	sleep func(time.Duration)

	mu       sync.Mutex
	selected string
	bound    bool
	port     Port
}

// NewSession creates a closed session choosing among ports. Nothing is
// opened until Open or the first exchange.
func NewSession(ports []string, open Opener, opts ...Option) *Session {
	if open == nil {
		panic("opener cannot be nil")
	}

	s := &Session{
		ports: append([]string(nil), ports...),
		open:  open,
		cfg:   DefaultConfig(),
		sleep: time.Sleep,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Ports returns the names the session may select from.
func (s *Session) Ports() []string {
	return append([]string(nil), s.ports...)
}

// Available reports whether any known port name contains name.
func (s *Session) Available(name string) bool {
	name = strings.TrimSpace(name)
	for _, p := range s.ports {
		if strings.Contains(p, name) {
			return true
		}
	}
	return false
}

// Config returns the parameters applied on open.
func (s *Session) Config() Config {
	return s.cfg
}

// Selected returns the bound port name, or "" if none.
func (s *Session) Selected() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected
}

func (s *Session) State() ConnectionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state()
}

func (s *Session) IsOpen() bool {
	return s.State() == Open
}

func (s *Session) state() ConnectionState {
	if s.port != nil {
		return Open
	}
	return Closed
}

// SelectIndex selects the i'th available port.
func (s *Session) SelectIndex(i int) error {
	if i < 0 || i >= len(s.ports) {
		return fmt.Errorf("%w: index %d of %d ports", ErrInvalidSelection, i, len(s.ports))
	}
	return s.Select(s.ports[i])
}

// Select binds the session to a port. Selecting the bound port again does
// nothing; selecting a different one closes the current port first. The
// new port is not opened.
func (s *Session) Select(name string) error {
	found := false
	for _, p := range s.ports {
		if p == name {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("%w: %q", ErrInvalidSelection, name)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.bound && s.selected == name {
		return nil
	}

	if err := s.close(); err != nil {
		glog.Warningf("tmcl: closing %s: %v", s.selected, err)
	}

	s.selected = name
	s.bound = true
	return nil
}

// Open opens the selected port. It does nothing if already open.
func (s *Session) Open() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.openLocked()
}

func (s *Session) openLocked() error {
	if s.port != nil {
		return nil
	}
	if !s.bound {
		return ErrNoDevice
	}
	if err := s.cfg.Validate(); err != nil {
		return fmt.Errorf("%w %s: %w", ErrOpen, s.selected, err)
	}

	port, err := s.open(s.selected, s.cfg)
	if err != nil {
		return fmt.Errorf("%w %s: %w", ErrOpen, s.selected, err)
	}

	glog.V(1).Infof("tmcl: opened %s at %d baud", s.selected, s.cfg.BaudRate)
	s.port = port
	return nil
}

// Close releases the port. It does nothing if no port is open.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.close()
}

func (s *Session) close() error {
	if s.port == nil {
		return nil
	}

	err := s.port.Close()
	s.port = nil
	if err != nil {
		return fmt.Errorf("closing %s: %w", s.selected, err)
	}
	return nil
}

// Send runs one exchange and reports the status. The reply value is not
// decoded; use Get for commands that return one.
func (s *Session) Send(c Command) (Reply, error) {
	return s.exchange(c, false)
}

// Get runs one exchange and also decodes the 32-bit value from the reply.
func (s *Session) Get(c Command) (Reply, error) {
	return s.exchange(c, true)
}

func (s *Session) exchange(c Command, decode bool) (Reply, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	reply := Reply{
		Status:  StatusNoConnection,
		Outcome: OutcomeTransportError,
		Request: c.Frame(),
	}

	if err := s.openLocked(); err != nil {
		glog.Warningf("tmcl: %s: %v", c, err)
		return reply, err
	}

	reply.Status = StatusIOError

	// a reply that missed its read timeout must not pair with this command
	if f, ok := s.port.(Flusher); ok {
		if err := f.Flush(); err != nil {
			glog.Warningf("tmcl: flushing %s: %v", s.selected, err)
			return reply, fmt.Errorf("%w: flushing %s: %w", ErrTransport, s.selected, err)
		}
	}

	glog.V(2).Infof("tmcl: > %s", reply.Request)
	if err := writeFrame(s.port, reply.Request); err != nil {
		glog.Warningf("tmcl: writing %s to %s: %v", c, s.selected, err)
		if errors.Is(err, ErrWriteTimeout) {
			// closing ends the stalled write so its bytes cannot land later
			if cerr := s.close(); cerr != nil {
				glog.Warningf("tmcl: %v", cerr)
			}
		}
		return reply, fmt.Errorf("%w: writing to %s: %w", ErrTransport, s.selected, err)
	}
	s.record(Tx, reply.Request)

	s.sleep(s.cfg.PairingDelay)

	resp, err := readFrame(s.port)
	if err != nil {
		glog.Warningf("tmcl: reading reply to %s from %s: %v", c, s.selected, err)
		return reply, fmt.Errorf("%w: reading from %s: %w", ErrTransport, s.selected, err)
	}
	glog.V(2).Infof("tmcl: < %s", resp)
	s.record(Rx, resp)

	reply.Response = resp
	reply.Status = int(resp[2])
	reply.Outcome = InterpretStatus(reply.Status)
	if decode {
		reply.Value = DecodeValue(resp[4:8])
	}

	glog.V(1).Infof("tmcl: %s: status %d: %s", c, reply.Status, reply.Outcome)

	if s.cfg.VerifyChecksum && !resp.Valid() {
		return reply, fmt.Errorf("%w: got %02X, want %02X", ErrResponseChecksum, resp[8], resp.Checksum())
	}

	return reply, nil
}

func (s *Session) record(dir Direction, f Frame) {
	if s.rec == nil {
		return
	}
	if err := s.rec.Receive(Message{Dir: dir, Frame: f, Timestamp: time.Now()}); err != nil {
		glog.Warningf("tmcl: recording frame: %v", err)
	}
}
