//go:build tinygo && baremetal && (nrf || sam)

package hal

import (
	"machine"
	"strconv"
)

const spiNorFrequency = 8_000_000

// spiFlashCS is the chip-select pin number of a serial NOR on SPI0, set at
// link time:
//
//	tinygo build -ldflags "-X flashhal/hal.spiFlashCS=27" ...
//
// Without it the board has no flash transport.
var spiFlashCS string

func newFlashTransport() Transport {
	n, err := strconv.Atoi(spiFlashCS)
	if err != nil || n < 0 || n >= int(machine.NoPin) {
		return stubFlash{}
	}
	if err := machine.SPI0.Configure(machine.SPIConfig{Frequency: spiNorFrequency}); err != nil {
		return stubFlash{}
	}
	return newSPINorTransport(machine.SPI0, machine.Pin(n))
}
