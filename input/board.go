package input

import (
	"bytes"
	"os"
)

// isRaspberryPi reports whether the device tree names a Raspberry Pi.
func isRaspberryPi() bool {
	model, err := os.ReadFile("/proc/device-tree/model")
	if err != nil {
		return false
	}
	return bytes.Contains(model, []byte("Raspberry Pi"))
}
