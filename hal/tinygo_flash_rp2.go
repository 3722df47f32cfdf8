//go:build tinygo && baremetal && (rp2040 || rp2350) && !spinor

package hal

import "machine"

// newFlashTransport exposes the on-chip flash data region. Offset 0 is the
// first byte after the program image, so firmware is not addressable through it.
func newFlashTransport() Transport {
	if machine.Flash.Size() <= 0 {
		return stubFlash{}
	}
	return NewBlockTransport(machine.Flash)
}
