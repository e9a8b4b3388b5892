package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/golang/glog"
	"go.tigermatt.uk/tmcl"
)

// knownPorts lists the machine's ports, plus extra names the user gave that
// enumeration did not report (ptys, symlinks).
func knownPorts(extra ...string) []string {
	ports, err := tmcl.ListPorts()
	if err != nil {
		glog.Warningf("%v", err)
	}

	for _, name := range extra {
		if !contains(ports, name) {
			ports = append(ports, name)
		}
	}
	return ports
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func newSession(ports []string) (*tmcl.Session, error) {
	open, err := tmcl.OpenerFor(cfg.Driver)
	if err != nil {
		return nil, err
	}
	return tmcl.NewSession(ports, open, tmcl.WithConfig(cfg)), nil
}

// openSession returns a session bound to device.
func openSession(device string) (*tmcl.Session, error) {
	s, err := newSession(knownPorts(device))
	if err != nil {
		return nil, err
	}
	if err := s.Select(device); err != nil {
		return nil, err
	}
	if err := s.Open(); err != nil {
		return nil, err
	}
	return s, nil
}

// parseCommand builds a command from INSTR TYPE BANK [VALUE].
func parseCommand(addr byte, args []string) (tmcl.Command, error) {
	if len(args) < 3 || len(args) > 4 {
		return tmcl.Command{}, fmt.Errorf("expected INSTR TYPE BANK [VALUE], got %d arguments", len(args))
	}

	id, err := tmcl.ParseInstruction(args[0])
	if err != nil {
		return tmcl.Command{}, err
	}

	typ, err := parseByte("type", args[1])
	if err != nil {
		return tmcl.Command{}, err
	}

	bank, err := parseByte("bank", args[2])
	if err != nil {
		return tmcl.Command{}, err
	}

	var value int64
	if len(args) == 4 {
		value, err = strconv.ParseInt(strings.TrimSpace(args[3]), 0, 32)
		if err != nil {
			return tmcl.Command{}, fmt.Errorf("invalid value %q: %w", args[3], err)
		}
	}

	return tmcl.Command{
		ID:      id,
		Address: addr,
		Type:    typ,
		Bank:    bank,
		Value:   int32(value),
	}, nil
}

func parseByte(what, s string) (byte, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(s), 0, 8)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", what, s, err)
	}
	return byte(n), nil
}

func formatReply(r tmcl.Reply, withValue bool) string {
	s := fmt.Sprintf("status %d: %s", r.Status, r.Outcome)
	if withValue {
		s += fmt.Sprintf(" value %d", r.Value)
	}
	return s
}

// describe renders a recorded frame on one line.
func describe(msg tmcl.Message) string {
	f := msg.Frame

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s %s", msg.Timestamp.Format("15:04:05.000"), msg.Dir, f)

	if !f.Valid() {
		sb.WriteString("  INVALID CHK")
		return sb.String()
	}

	switch msg.Dir {
	case tmcl.Tx:
		fmt.Fprintf(&sb, "  %s", tmcl.ParseCommand(f))
	case tmcl.Rx:
		r := tmcl.ParseResponse(f)
		fmt.Fprintf(&sb, "  %s status %d: %s value %d",
			tmcl.InstructionName(r.Command), r.Status, r.Outcome(), r.Value)
	default:
		// a tapped line carries both directions
		c := tmcl.ParseCommand(f)
		if o := tmcl.InterpretStatus(int(c.Type)); o != tmcl.OutcomeUnknown {
			fmt.Fprintf(&sb, "  %s (reply: %s)", c, o)
		} else {
			fmt.Fprintf(&sb, "  %s", c)
		}
	}

	return sb.String()
}

func listenStop() context.Context {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)

	go func() {
		<-sigCh
		cancel()
	}()

	return ctx
}

func outFilename() string {
	return fmt.Sprintf("%d.dat", time.Now().UTC().Unix())
}
