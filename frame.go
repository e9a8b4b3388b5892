// Package tmcl speaks the Trinamic Motion Control Language over a serial
// link: fixed 9 byte command frames out, fixed 9 byte reply frames back.
package tmcl

import (
	"encoding/binary"
	"fmt"
)

// FrameLen is the size of every TMCL request and reply.
const FrameLen = 9

// Frame is a single TMCL request or reply as it appears on the wire.
//
//	0 address, 1 command, 2 type (status in replies), 3 bank,
//	4-7 value (big-endian int32), 8 checksum
type Frame [FrameLen]byte

// Command is a logical TMCL request.
type Command struct {
	ID      byte
	Address byte
	Type    byte
	Bank    byte
	Value   int32
}

// Frame encodes the command.
func (c Command) Frame() Frame {
	return Encode(c.ID, c.Address, c.Type, c.Bank, c.Value)
}

func (c Command) String() string {
	return fmt.Sprintf("%s addr=%d type=%d bank=%d value=%d",
		InstructionName(c.ID), c.Address, c.Type, c.Bank, c.Value)
}

// Encode builds the wire frame for a command. The value is always packed
// most significant byte first, independent of host byte order.
func Encode(id, address, typ, bank byte, value int32) Frame {
	var f Frame
	f[0] = address
	f[1] = id
	f[2] = typ
	f[3] = bank
	binary.BigEndian.PutUint32(f[4:8], uint32(value))
	f[8] = f.Checksum()
	return f
}

// Checksum is the low byte of the unsigned sum of the eight header and
// value bytes. It must match the module firmware bit for bit.
func Checksum(b [8]byte) byte {
	var sum byte
	for _, v := range b {
		sum += v
	}
	return sum
}

// Checksum computes the checksum over bytes 0-7 of f.
func (f Frame) Checksum() byte {
	var b [8]byte
	copy(b[:], f[:8])
	return Checksum(b)
}

// Valid reports whether the trailing checksum byte matches the contents.
func (f Frame) Valid() bool {
	return f[8] == f.Checksum()
}

// Value decodes bytes 4-7.
func (f Frame) Value() int32 {
	return DecodeValue(f[4:8])
}

func (f Frame) String() string {
	return fmt.Sprintf("% 02X", f[:])
}

// DecodeValue reconstructs a signed 32-bit value from 4 big-endian bytes.
// Any other length yields 0; use ParseValue to see the error instead.
func DecodeValue(b []byte) int32 {
	v, err := ParseValue(b)
	if err != nil {
		return 0
	}
	return v
}

// ParseValue is DecodeValue with the length check surfaced.
func ParseValue(b []byte) (int32, error) {
	if len(b) != 4 {
		return 0, fmt.Errorf("%w: got %d bytes", ErrValueLength, len(b))
	}
	return int32(binary.BigEndian.Uint32(b)), nil
}

// ParseCommand decodes a request frame.
func ParseCommand(f Frame) Command {
	return Command{
		ID:      f[1],
		Address: f[0],
		Type:    f[2],
		Bank:    f[3],
		Value:   f.Value(),
	}
}

// Response is the decoded view of a reply frame. Address, Command and Bank
// are echoed by the module by convention.
type Response struct {
	Address  byte
	Command  byte
	Status   byte
	Bank     byte
	Value    int32
	Checksum byte
}

// ParseResponse splits a reply frame into its fields. It does not verify the
// checksum; see Frame.Valid.
func ParseResponse(f Frame) Response {
	return Response{
		Address:  f[0],
		Command:  f[1],
		Status:   f[2],
		Bank:     f[3],
		Value:    f.Value(),
		Checksum: f[8],
	}
}

// Outcome interprets the reply status.
func (r Response) Outcome() Outcome {
	return InterpretStatus(int(r.Status))
}
