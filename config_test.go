package tmcl

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tmcl.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 9600, cfg.BaudRate)
	assert.Equal(t, 5*time.Second, cfg.ReadTimeout)
	assert.Equal(t, 300*time.Millisecond, cfg.WriteTimeout)
	assert.Equal(t, 5*time.Millisecond, cfg.PairingDelay)
	assert.Equal(t, byte(1), cfg.Address)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
baud_rate: 115200
pairing_delay: 20ms
verify_checksum: true
driver: tarm
address: 3
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 115200, cfg.BaudRate)
	assert.Equal(t, 20*time.Millisecond, cfg.PairingDelay)
	assert.True(t, cfg.VerifyChecksum)
	assert.Equal(t, DriverTarm, cfg.Driver)
	assert.Equal(t, byte(3), cfg.Address)

	// untouched keys keep their defaults
	assert.Equal(t, 5*time.Second, cfg.ReadTimeout)
	assert.Equal(t, 300*time.Millisecond, cfg.WriteTimeout)
}

func TestLoadConfigInvalid(t *testing.T) {
	for name, body := range map[string]string{
		"baud":    "baud_rate: 0\n",
		"read":    "read_timeout: 0s\n",
		"delay":   "pairing_delay: -1s\n",
		"driver":  "driver: usb\n",
		"garbage": "baud_rate: [\n",
	} {
		_, err := LoadConfig(writeConfig(t, body))
		assert.Error(t, err, name)
	}

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
