package tmcl

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSelection is returned by Select for a name or index that is
	// not among the available ports.
	ErrInvalidSelection = errors.New("invalid port selection")

	// ErrNoDevice means no port has been selected yet.
	ErrNoDevice = errors.New("no port selected")

	// ErrOpen wraps failures to open the selected port.
	ErrOpen = errors.New("opening port")

	// ErrTransport wraps write and read failures during an exchange.
	ErrTransport = errors.New("transport error")

	ErrReadTimeout  = errors.New("read timeout")
	ErrWriteTimeout = errors.New("write timeout")

	// ErrValueLength is returned by ParseValue for a buffer that is not 4 bytes.
	ErrValueLength = errors.New("value must be 4 bytes")

	// ErrResponseChecksum is returned when checksum verification is enabled
	// and a reply does not validate.
	ErrResponseChecksum = errors.New("reply checksum mismatch")
)

// StatusError is a reply whose status the module reported as a failure.
type StatusError struct {
	Command Command
	Status  int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: status %d: %s", InstructionName(e.Command.ID), e.Status, InterpretStatus(e.Status))
}

// Outcome interprets the failing status.
func (e *StatusError) Outcome() Outcome {
	return InterpretStatus(e.Status)
}
