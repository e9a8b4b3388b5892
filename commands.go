package tmcl

import (
	"fmt"
	"strconv"
	"strings"
)

// TMCL instruction numbers.
const (
	ROR  = 1  // rotate right
	ROL  = 2  // rotate left
	MST  = 3  // motor stop
	MVP  = 4  // move to position
	SAP  = 5  // set axis parameter
	GAP  = 6  // get axis parameter
	STAP = 7  // store axis parameter
	RSAP = 8  // restore axis parameter
	SGP  = 9  // set global parameter
	GGP  = 10 // get global parameter
	STGP = 11 // store global parameter
	RSGP = 12 // restore global parameter
	RFS  = 13 // reference search
	SIO  = 14 // set output
	GIO  = 15 // get input
	CALC = 19
	COMP = 20
	JC   = 21
	JA   = 22
	CSUB = 23
	RSUB = 24
	WAIT = 27
	STOP = 28
	SCO  = 30 // set coordinate
	GCO  = 31 // get coordinate
	CCO  = 32 // capture coordinate

	StopApplication        = 128
	RunApplication         = 129
	StepApplication        = 130
	ResetApplication       = 131
	StartDownload          = 132
	QuitDownload           = 133
	ReadMemory             = 134
	GetApplicationStatus   = 135
	GetFirmwareVersion     = 136
	RestoreFactoryDefaults = 137
)

var instructionNames = map[byte]string{
	ROR:  "ROR",
	ROL:  "ROL",
	MST:  "MST",
	MVP:  "MVP",
	SAP:  "SAP",
	GAP:  "GAP",
	STAP: "STAP",
	RSAP: "RSAP",
	SGP:  "SGP",
	GGP:  "GGP",
	STGP: "STGP",
	RSGP: "RSGP",
	RFS:  "RFS",
	SIO:  "SIO",
	GIO:  "GIO",
	CALC: "CALC",
	COMP: "COMP",
	JC:   "JC",
	JA:   "JA",
	CSUB: "CSUB",
	RSUB: "RSUB",
	WAIT: "WAIT",
	STOP: "STOP",
	SCO:  "SCO",
	GCO:  "GCO",
	CCO:  "CCO",

	StopApplication:        "STOPAPP",
	RunApplication:         "RUNAPP",
	StepApplication:        "STEPAPP",
	ResetApplication:       "RESETAPP",
	StartDownload:          "DOWNLOAD",
	QuitDownload:           "QUITDOWNLOAD",
	ReadMemory:             "READMEM",
	GetApplicationStatus:   "APPSTATUS",
	GetFirmwareVersion:     "VERSION",
	RestoreFactoryDefaults: "FACTORY",
}

var instructionIDs = func() map[string]byte {
	m := make(map[string]byte, len(instructionNames))
	for id, name := range instructionNames {
		m[name] = id
	}
	return m
}()

// InstructionName returns the mnemonic for id, or its number if unnamed.
func InstructionName(id byte) string {
	if name, ok := instructionNames[id]; ok {
		return name
	}
	return fmt.Sprintf("CMD%d", id)
}

// ParseInstruction accepts a mnemonic ("sgp", "GAP") or a number in any base
// strconv understands ("9", "0x0A").
func ParseInstruction(s string) (byte, error) {
	s = strings.TrimSpace(s)
	if id, ok := instructionIDs[strings.ToUpper(s)]; ok {
		return id, nil
	}
	n, err := strconv.ParseUint(s, 0, 8)
	if err != nil {
		return 0, fmt.Errorf("unknown instruction %q", s)
	}
	return byte(n), nil
}
