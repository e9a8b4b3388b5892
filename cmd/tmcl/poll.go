package main

import (
	"log"
	"time"

	"github.com/spf13/cobra"
)

var pollInterval = time.Second

func pollCommand() *cobra.Command {
	cmd := cobra.Command{
		Use:   "poll DEVICE INSTR TYPE BANK [VALUE]",
		Short: "Repeat a command until interrupted, logging each reply",
		Args:  cobra.RangeArgs(4, 5),
		RunE:  poll,
	}
	cmd.Flags().DurationVar(&pollInterval, "interval", pollInterval, "Time between commands")

	return &cmd
}

func poll(_ *cobra.Command, args []string) error {
	ctx := listenStop()

	c, err := parseCommand(cfg.Address, args[1:])
	if err != nil {
		return err
	}

	s, err := openSession(args[0])
	if err != nil {
		return err
	}
	defer s.Close()

	t := time.NewTicker(pollInterval)
	defer t.Stop()

	for {
		log.Printf("> %s", c)
		r, err := s.Get(c)
		if err != nil {
			return err
		}
		log.Printf("< %s %s", r.Response, formatReply(r, true))

		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
		}
	}
}
