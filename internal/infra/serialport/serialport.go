// Package serialport открывает порт контроллера и отдаёт его как построчный источник.
package serialport

import (
	"context"
	"fmt"
	"time"

	"go.bug.st/serial"

	"github.com/Spok95/smartcounter/internal/ingest"
)

// Arduino перезагружается при открытии порта; первые байты — мусор загрузчика.
const settleDelay = 2 * time.Second

func mode(baud int) *serial.Mode {
	return &serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
}

func Open(ctx context.Context, name string, baud int) (*ingest.LineSource, error) {
	port, err := serial.Open(name, mode(baud))
	if err != nil {
		return nil, fmt.Errorf("open serial %s: %w", name, err)
	}

	select {
	case <-ctx.Done():
		_ = port.Close()
		return nil, ctx.Err()
	case <-time.After(settleDelay):
	}
	if err := port.ResetInputBuffer(); err != nil {
		_ = port.Close()
		return nil, fmt.Errorf("reset serial %s: %w", name, err)
	}
	return ingest.NewLineSource(port), nil
}

// Ports — список доступных портов, для сообщения об ошибке конфигурации.
func Ports() []string {
	ports, err := serial.GetPortsList()
	if err != nil {
		return nil
	}
	return ports
}
