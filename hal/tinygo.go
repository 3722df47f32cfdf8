//go:build tinygo && baremetal

package hal

import (
	"machine"
)

const tinyGoWatchdogTimeoutMillis = 2000

type tinyGoHAL struct {
	logger *uartLogger
	flash  Transport
	wdg    Watchdog
}

// New returns the on-device HAL.
//
// UART: UART0 on the board's default pins, 115200 8N1.
func New() HAL {
	uart := machine.DefaultUART
	uart.Configure(machine.UARTConfig{BaudRate: 115200})

	return &tinyGoHAL{
		logger: &uartLogger{uart: uart},
		flash:  newFlashTransport(),
		wdg:    newMachineWatchdog(tinyGoWatchdogTimeoutMillis),
	}
}

func (h *tinyGoHAL) Logger() Logger     { return h.logger }
func (h *tinyGoHAL) Flash() Transport   { return h.flash }
func (h *tinyGoHAL) Watchdog() Watchdog { return h.wdg }

// uartLogger writes CRLF-terminated lines to a UART.
type uartLogger struct {
	uart *machine.UART
}

func (l *uartLogger) WriteLineString(s string) { l.writeLine([]byte(s)) }

func (l *uartLogger) WriteLineBytes(b []byte) { l.writeLine(b) }

func (l *uartLogger) writeLine(b []byte) {
	_, _ = l.uart.Write(b)
	_, _ = l.uart.Write([]byte("\r\n"))
}
