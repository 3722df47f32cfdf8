//go:build tinygo && baremetal

package hal

import (
	"machine"

	"tinygo.org/x/drivers"
)

// newSPINorTransport probes a serial NOR on bus selected by cs (active low).
// When no part answers the stub transport is returned.
func newSPINorTransport(bus drivers.SPI, cs machine.Pin) Transport {
	cs.Configure(machine.PinConfig{Mode: machine.PinOutput})
	cs.High()
	dev, err := ProbeSPINor(bus, SPINorConfig{
		ChipSelect: func(selected bool) { cs.Set(!selected) },
	})
	if err != nil {
		return stubFlash{}
	}
	return NewBlockTransport(dev)
}
