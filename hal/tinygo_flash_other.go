//go:build tinygo && baremetal && !(rp2040 || rp2350 || nrf || sam)

package hal

func newFlashTransport() Transport { return stubFlash{} }
