package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.tigermatt.uk/tmcl"
	"golang.org/x/sync/errgroup"
)

func dump(_ *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("reading file: %w", err)
	}
	defer f.Close()

	return dumpTo(os.Stdout, f)
}

func dumpTo(w io.Writer, r io.Reader) error {
	msgs := make(chan tmcl.Message, 100)

	var g errgroup.Group
	g.Go(func() error { return processMsgs(w, msgs) })
	g.Go(func() error { return tmcl.ReadIn(msgs, r) })

	return g.Wait()
}

func processMsgs(w io.Writer, msgs <-chan tmcl.Message) error {
	for msg := range msgs {
		if _, err := fmt.Fprintln(w, describe(msg)); err != nil {
			// keep draining so ReadIn is not blocked
			for range msgs {
			}
			return err
		}
	}

	return nil
}
