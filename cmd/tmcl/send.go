package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.tigermatt.uk/tmcl"
)

func sendCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "send DEVICE INSTR TYPE BANK VALUE",
		Short: "Send one command and print the reply status",
		Args:  cobra.ExactArgs(5),
		RunE: func(_ *cobra.Command, args []string) error {
			return exchange(args[0], args[1:], false)
		},
	}
}

func getCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get DEVICE INSTR TYPE BANK [VALUE]",
		Short: "Send one command and print the value it returns",
		Args:  cobra.RangeArgs(4, 5),
		RunE: func(_ *cobra.Command, args []string) error {
			return exchange(args[0], args[1:], true)
		},
	}
}

func portsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ports",
		Short: "List serial ports",
		Args:  cobra.ExactArgs(0),
		RunE: func(*cobra.Command, []string) error {
			ports, err := tmcl.ListPorts()
			if err != nil {
				return err
			}
			for i, p := range ports {
				fmt.Printf("%d: %s\n", i, p)
			}
			return nil
		},
	}
}

func exchange(device string, args []string, get bool) error {
	c, err := parseCommand(cfg.Address, args)
	if err != nil {
		return err
	}

	s, err := openSession(device)
	if err != nil {
		return err
	}
	defer s.Close()

	var r tmcl.Reply
	if get {
		r, err = s.Get(c)
	} else {
		r, err = s.Send(c)
	}
	if err != nil && !errors.Is(err, tmcl.ErrResponseChecksum) {
		return err
	}

	fmt.Println(formatReply(r, get))
	if err != nil {
		return err
	}
	return r.Err()
}
