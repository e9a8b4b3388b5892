// Command tmcl talks to Trinamic motor modules over a serial port.
package main

import (
	"flag"
	"log"

	"github.com/golang/glog"
	"github.com/spf13/cobra"
	"go.tigermatt.uk/tmcl"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	configPath = ""
	logFile    = ""

	driver  = tmcl.DefaultConfig().Driver
	address = tmcl.DefaultConfig().Address
	delay   = tmcl.DefaultConfig().PairingDelay
	verify  = false

	cfg = tmcl.DefaultConfig()
)

func main() {
	cmd := &cobra.Command{
		Use:               "tmcl",
		Args:              cobra.ExactArgs(0),
		SilenceUsage:      true,
		PersistentPreRunE: setup,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&configPath, "config", configPath, "YAML configuration file")
	flags.StringVar(&logFile, "log-file", logFile, "Write log output to a rotated file")
	flags.StringVar(&driver, "driver", driver, "Serial driver (bugst or tarm)")
	flags.Uint8Var(&address, "address", address, "Module address")
	flags.DurationVar(&delay, "delay", delay, "Pause between command and reply")
	flags.BoolVar(&verify, "verify", verify, "Reject replies with a bad checksum")
	flags.AddGoFlagSet(flag.CommandLine)

	cmd.AddCommand(portsCommand())
	cmd.AddCommand(sendCommand())
	cmd.AddCommand(getCommand())
	cmd.AddCommand(pollCommand())
	cmd.AddCommand(sniffCommand())
	cmd.AddCommand(shellCommand())
	cmd.AddCommand(&cobra.Command{
		Use:  "dump FILE",
		Args: cobra.ExactArgs(1),
		RunE: dump,
	})

	err := cmd.Execute()
	glog.Flush()
	if err != nil {
		log.Fatalln(err)
	}
}

func setup(cmd *cobra.Command, _ []string) error {
	if logFile != "" {
		log.SetOutput(&lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     28,
		})
	}

	if configPath != "" {
		loaded, err := tmcl.LoadConfig(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	return applyFlags(&cfg, cmd)
}

// applyFlags overrides the configuration with flags set on the command line.
func applyFlags(c *tmcl.Config, cmd *cobra.Command) error {
	changed := cmd.Flags().Changed

	if changed("driver") {
		c.Driver = driver
	}
	if changed("address") {
		c.Address = address
	}
	if changed("delay") {
		c.PairingDelay = delay
	}
	if changed("verify") {
		c.VerifyChecksum = verify
	}

	return c.Validate()
}
