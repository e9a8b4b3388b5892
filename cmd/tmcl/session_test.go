package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.tigermatt.uk/tmcl"
)

func TestParseCommand(t *testing.T) {
	for _, c := range []struct {
		args []string
		want tmcl.Command
	}{
		{
			args: []string{"SGP", "1", "0", "1000"},
			want: tmcl.Command{ID: tmcl.SGP, Address: 1, Type: 1, Bank: 0, Value: 1000},
		},
		{
			args: []string{"gap", "0x03", "0"},
			want: tmcl.Command{ID: tmcl.GAP, Address: 1, Type: 3},
		},
		{
			args: []string{"4", "0", "2", "-51200"},
			want: tmcl.Command{ID: tmcl.MVP, Address: 1, Bank: 2, Value: -51200},
		},
	} {
		got, err := parseCommand(1, c.args)
		require.NoError(t, err, c.args)
		assert.Equal(t, c.want, got, c.args)
	}
}

func TestParseCommandInvalid(t *testing.T) {
	for _, args := range [][]string{
		{"SGP", "1"},
		{"SGP", "1", "0", "1", "2"},
		{"BOGUS", "1", "0"},
		{"SGP", "256", "0"},
		{"SGP", "1", "x"},
		{"SGP", "1", "0", "4294967296"},
	} {
		_, err := parseCommand(1, args)
		assert.Error(t, err, args)
	}
}

func TestDescribe(t *testing.T) {
	ts := time.Date(2021, 1, 2, 13, 14, 15, 16e6, time.UTC)

	req := tmcl.Encode(tmcl.SGP, 1, 1, 0, 1000)
	assert.Equal(t,
		"13:14:15.016 > 01 09 01 00 00 00 03 E8 F6  SGP addr=1 type=1 bank=0 value=1000",
		describe(tmcl.Message{Dir: tmcl.Tx, Frame: req, Timestamp: ts}))

	resp := tmcl.Encode(tmcl.SGP, 1, 100, 0, 0)
	assert.Equal(t,
		"13:14:15.016 < 01 09 64 00 00 00 00 00 6E  SGP status 100: Success value 0",
		describe(tmcl.Message{Dir: tmcl.Rx, Frame: resp, Timestamp: ts}))

	assert.Contains(t, describe(tmcl.Message{Frame: resp, Timestamp: ts}), "(reply: Success)")

	bad := req
	bad[8]++
	assert.True(t, strings.HasSuffix(describe(tmcl.Message{Dir: tmcl.Tx, Frame: bad}), "INVALID CHK"))
}

func TestDumpTo(t *testing.T) {
	var capture bytes.Buffer
	rec := &tmcl.Recorder{Dest: &capture}
	require.NoError(t, rec.Receive(tmcl.Message{Dir: tmcl.Tx, Frame: tmcl.Encode(tmcl.GGP, 1, 1, 0, 0)}))
	require.NoError(t, rec.Receive(tmcl.Message{Dir: tmcl.Rx, Frame: tmcl.Encode(tmcl.GGP, 1, 100, 0, 42)}))

	var out bytes.Buffer
	require.NoError(t, dumpTo(&out, &capture))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "GGP addr=1 type=1")
	assert.Contains(t, lines[1], "status 100: Success value 42")
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestDumpToWriteError(t *testing.T) {
	var capture bytes.Buffer
	rec := &tmcl.Recorder{Dest: &capture}
	for i := 0; i < 3; i++ {
		require.NoError(t, rec.Receive(tmcl.Message{Dir: tmcl.Tx, Frame: tmcl.Encode(tmcl.GGP, 1, 1, 0, int32(i))}))
	}

	assert.Error(t, dumpTo(failWriter{}, &capture))
}

func TestFormatReply(t *testing.T) {
	r := tmcl.Reply{Status: 100, Outcome: tmcl.OutcomeSuccess, Value: -5}
	assert.Equal(t, "status 100: Success", formatReply(r, false))
	assert.Equal(t, "status 100: Success value -5", formatReply(r, true))
}

func TestApplyFlags(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.Flags().StringVar(&driver, "driver", driver, "")
	cmd.Flags().Uint8Var(&address, "address", address, "")
	cmd.Flags().DurationVar(&delay, "delay", delay, "")
	cmd.Flags().BoolVar(&verify, "verify", verify, "")
	require.NoError(t, cmd.Flags().Parse([]string{"--address", "7", "--verify"}))

	c := tmcl.DefaultConfig()
	c.PairingDelay = time.Second
	require.NoError(t, applyFlags(&c, cmd))
	assert.Equal(t, byte(7), c.Address)
	assert.True(t, c.VerifyChecksum)
	assert.Equal(t, time.Second, c.PairingDelay, "unset flags keep the configured value")

	require.NoError(t, cmd.Flags().Parse([]string{"--driver", "nope"}))
	assert.Error(t, applyFlags(&c, cmd))
}

func TestSelectPort(t *testing.T) {
	s := tmcl.NewSession([]string{"/dev/ttyACM0", "7"}, func(string, tmcl.Config) (tmcl.Port, error) {
		return nil, errors.New("unused")
	})

	require.NoError(t, selectPort(s, "0"))
	assert.Equal(t, "/dev/ttyACM0", s.Selected())

	require.NoError(t, selectPort(s, "7"))
	assert.Equal(t, "7", s.Selected(), "names win over indices")

	assert.ErrorIs(t, selectPort(s, "5"), tmcl.ErrInvalidSelection)
	assert.Equal(t, "[7 closed] > ", prompt(s))
}

func TestContains(t *testing.T) {
	assert.True(t, contains([]string{"a", "b"}, "b"))
	assert.False(t, contains(nil, "b"))
}
