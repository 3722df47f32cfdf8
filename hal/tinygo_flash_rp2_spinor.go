//go:build tinygo && baremetal && (rp2040 || rp2350) && spinor

package hal

import "machine"

const spiNorFrequency = 8_000_000

// newFlashTransport drives an external serial NOR on SPI0:
// GP18 SCK, GP19 SDO, GP16 SDI, GP17 CS.
func newFlashTransport() Transport {
	err := machine.SPI0.Configure(machine.SPIConfig{
		Frequency: spiNorFrequency,
		SCK:       machine.GP18,
		SDO:       machine.GP19,
		SDI:       machine.GP16,
	})
	if err != nil {
		return stubFlash{}
	}
	return newSPINorTransport(machine.SPI0, machine.GP17)
}
