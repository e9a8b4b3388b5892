package tmcl

import (
	"fmt"

	tarm "github.com/tarm/serial"
	"go.bug.st/serial"
)

// Serial drivers accepted by OpenerFor.
const (
	DriverBugst = "bugst"
	DriverTarm  = "tarm"
)

// OpenerFor returns the opener for a driver name. The empty name selects
// the go.bug.st driver.
func OpenerFor(driver string) (Opener, error) {
	switch driver {
	case "", DriverBugst:
		return OpenSerial, nil
	case DriverTarm:
		return OpenTarm, nil
	}
	return nil, fmt.Errorf("unknown serial driver %q", driver)
}

// ListPorts returns the serial ports present on this machine.
func ListPorts() ([]string, error) {
	ports, err := serial.GetPortsList()
	if err != nil {
		return nil, fmt.Errorf("listing serial ports: %w", err)
	}
	return ports, nil
}

// OpenSerial opens a port 8N1 with go.bug.st/serial.
func OpenSerial(name string, cfg Config) (Port, error) {
	port, err := serial.Open(name, &serial.Mode{
		BaudRate: cfg.BaudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	})
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", name, err)
	}

	if err := port.SetReadTimeout(cfg.ReadTimeout); err != nil {
		port.Close()
		return nil, fmt.Errorf("setting read timeout on %s: %w", name, err)
	}

	return &timedPort{Port: port, timeout: cfg.WriteTimeout, flush: port.ResetInputBuffer}, nil
}

// OpenTarm opens a port 8N1 with github.com/tarm/serial.
func OpenTarm(name string, cfg Config) (Port, error) {
	port, err := tarm.OpenPort(&tarm.Config{
		Name:        name,
		Baud:        cfg.BaudRate,
		ReadTimeout: cfg.ReadTimeout,
		Size:        8,
		Parity:      tarm.ParityNone,
		StopBits:    tarm.Stop1,
	})
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", name, err)
	}

	return &timedPort{Port: port, timeout: cfg.WriteTimeout, flush: port.Flush}, nil
}
