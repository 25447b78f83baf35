package transport

import (
	"sync"

	"github.com/goburrow/serial"
	"github.com/pkg/errors"
)

// SerialPort writes to a tty, such as a bound /dev/rfcomm0 or a USB adapter.
type SerialPort struct {
	port serial.Port
	lock sync.Mutex
}

func openSerial(cfg Config) (Transport, error) {
	if cfg.Address == "" {
		return nil, errors.New("serial transport requires an address")
	}

	port, err := serial.Open(&serial.Config{
		Address:  cfg.Address,
		BaudRate: cfg.BaudRate,
		DataBits: 8,
		StopBits: 1,
		Parity:   "N",
		Timeout:  cfg.Timeout,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "unable to open serial port %s", cfg.Address)
	}

	return &SerialPort{port: port}, nil
}

func (p *SerialPort) Write(buf []byte) (int, error) {
	p.lock.Lock()
	defer p.lock.Unlock()

	return p.port.Write(buf)
}

func (p *SerialPort) Close() error {
	return p.port.Close()
}
