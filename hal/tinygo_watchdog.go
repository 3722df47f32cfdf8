//go:build tinygo && baremetal

package hal

import "machine"

type machineWatchdog struct{}

func newMachineWatchdog(timeoutMillis uint32) Watchdog {
	if err := machine.Watchdog.Configure(machine.WatchdogConfig{TimeoutMillis: timeoutMillis}); err != nil {
		return NopWatchdog{}
	}
	if err := machine.Watchdog.Start(); err != nil {
		return NopWatchdog{}
	}
	return machineWatchdog{}
}

func (machineWatchdog) Reload() { machine.Watchdog.Update() }
