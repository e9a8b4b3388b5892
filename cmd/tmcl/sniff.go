package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.tigermatt.uk/tmcl"
	"golang.org/x/sync/errgroup"
)

var (
	sniffOut   = ""
	sniffQuiet = false
)

func sniffCommand() *cobra.Command {
	cmd := cobra.Command{
		Use:   "sniff DEVICE",
		Short: "Capture TMCL frames seen on a serial line",
		Args:  cobra.ExactArgs(1),
		RunE:  sniff,
	}
	cmd.Flags().StringVar(&sniffOut, "out", sniffOut, "Capture file (default <unix time>.dat)")
	cmd.Flags().BoolVar(&sniffQuiet, "quiet", sniffQuiet, "Do not print frames as they arrive")

	return &cmd
}

func sniff(_ *cobra.Command, args []string) error {
	open, err := tmcl.OpenerFor(cfg.Driver)
	if err != nil {
		return err
	}

	port, err := open(args[0], cfg)
	if err != nil {
		return fmt.Errorf("opening serial: %w", err)
	}
	defer port.Close()

	if sniffOut == "" {
		sniffOut = outFilename()
	}
	f, err := os.Create(sniffOut)
	if err != nil {
		return fmt.Errorf("creating capture: %w", err)
	}
	defer f.Close()

	rec := &tmcl.Recorder{Dest: f}
	frames := make(chan tmcl.Frame, 100)

	g, ctx := errgroup.WithContext(listenStop())
	g.Go(func() error {
		defer close(frames)

		s := &tmcl.Sniffer{
			Port: port,
			OnFrame: func(fr tmcl.Frame) {
				select {
				case frames <- fr:
				case <-ctx.Done():
				}
			},
		}
		return s.Consume(ctx)
	})
	g.Go(func() error {
		for fr := range frames {
			msg := tmcl.Message{Frame: fr, Timestamp: time.Now()}
			if !sniffQuiet {
				fmt.Println(describe(msg))
			}
			if err := rec.Receive(msg); err != nil {
				return fmt.Errorf("recording: %w", err)
			}
		}
		return nil
	})

	return g.Wait()
}
