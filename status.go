package tmcl

import "fmt"

// Reply status codes defined by TMCL.
const (
	StatusSuccess             = 100
	StatusCommandLoaded       = 101
	StatusIncorrectChecksum   = 1
	StatusInvalidCommand      = 2
	StatusWrongType           = 3
	StatusInvalidValue        = 4
	StatusEEPROMLocked        = 5
	StatusCommandNotAvailable = 6
)

// Sentinel statuses reported by a Session when no reply was received. Both
// lie outside the 0-255 range of a status byte.
const (
	StatusNoConnection = -1000
	StatusIOError      = -1
)

// Outcome is the meaning of a reply status.
type Outcome int

const (
	OutcomeUnknown Outcome = iota
	OutcomeSuccess
	OutcomeCommandLoaded
	OutcomeIncorrectChecksum
	OutcomeInvalidCommand
	OutcomeWrongType
	OutcomeInvalidValue
	OutcomeEEPROMLocked
	OutcomeCommandNotAvailable
	// OutcomeTransportError is never derived from a status byte; a Session
	// reports it when the exchange itself failed.
	OutcomeTransportError
)

var outcomeNames = map[Outcome]string{
	OutcomeUnknown:             "Unknown Status Code",
	OutcomeSuccess:             "Success",
	OutcomeCommandLoaded:       "Command loaded",
	OutcomeIncorrectChecksum:   "Incorrect Checksum",
	OutcomeInvalidCommand:      "Invalid Command",
	OutcomeWrongType:           "Wrong Type",
	OutcomeInvalidValue:        "Invalid Value",
	OutcomeEEPROMLocked:        "EEPROM Locked",
	OutcomeCommandNotAvailable: "Command not Available",
	OutcomeTransportError:      "Transport Error",
}

func (o Outcome) String() string {
	if s, ok := outcomeNames[o]; ok {
		return s
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

// OK reports whether the module accepted the command.
func (o Outcome) OK() bool {
	return o == OutcomeSuccess || o == OutcomeCommandLoaded
}

// InterpretStatus maps a status code to its outcome. Codes outside the TMCL
// table, including the Session sentinels, are OutcomeUnknown.
func InterpretStatus(code int) Outcome {
	switch code {
	case StatusSuccess:
		return OutcomeSuccess
	case StatusCommandLoaded:
		return OutcomeCommandLoaded
	case StatusIncorrectChecksum:
		return OutcomeIncorrectChecksum
	case StatusInvalidCommand:
		return OutcomeInvalidCommand
	case StatusWrongType:
		return OutcomeWrongType
	case StatusInvalidValue:
		return OutcomeInvalidValue
	case StatusEEPROMLocked:
		return OutcomeEEPROMLocked
	case StatusCommandNotAvailable:
		return OutcomeCommandNotAvailable
	}
	return OutcomeUnknown
}
