package tmcl

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"
)

// Config holds the transport and exchange parameters applied when a port is
// opened.
type Config struct {
	BaudRate     int           `yaml:"baud_rate"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`

	// PairingDelay is slept between writing a command and reading its
	// reply, giving the module time to process it.
	PairingDelay time.Duration `yaml:"pairing_delay"`

	// VerifyChecksum rejects replies whose checksum does not match.
	VerifyChecksum bool `yaml:"verify_checksum"`

	// Driver names the serial implementation; see OpenerFor.
	Driver string `yaml:"driver"`

	// Address is the default module address used by the command line tools.
	Address byte `yaml:"address"`
}

// DefaultConfig returns the settings TMCL modules ship with.
func DefaultConfig() Config {
	return Config{
		BaudRate:     9600,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 300 * time.Millisecond,
		PairingDelay: 5 * time.Millisecond,
		Driver:       DriverBugst,
		Address:      1,
	}
}

// LoadConfig reads a YAML file over the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, cfg.Validate()
}

// Validate checks the settings are usable.
func (c Config) Validate() error {
	if c.BaudRate <= 0 {
		return fmt.Errorf("invalid baud rate %d", c.BaudRate)
	}
	if c.ReadTimeout <= 0 {
		return fmt.Errorf("read timeout must be positive, got %s", c.ReadTimeout)
	}
	if c.WriteTimeout <= 0 {
		return fmt.Errorf("write timeout must be positive, got %s", c.WriteTimeout)
	}
	if c.PairingDelay < 0 {
		return fmt.Errorf("pairing delay must not be negative, got %s", c.PairingDelay)
	}
	if _, err := OpenerFor(c.Driver); err != nil {
		return err
	}
	return nil
}
