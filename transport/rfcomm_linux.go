package transport

import (
	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// RFCOMMSocket is a direct Bluetooth serial port profile connection.
type RFCOMMSocket struct {
	fd int
}

func openRFCOMM(cfg Config) (Transport, error) {
	addr, err := ParseBDAddr(cfg.Address)
	if err != nil {
		return nil, err
	}

	fd, err := unix.Socket(unix.AF_BLUETOOTH, unix.SOCK_STREAM, unix.BTPROTO_RFCOMM)
	if err != nil {
		return nil, errors.Wrap(err, "unable to create rfcomm socket")
	}

	sa := &unix.SockaddrRFCOMM{Addr: addr, Channel: cfg.Channel}
	if err = unix.Connect(fd, sa); err != nil {
		unix.Close(fd)
		return nil, errors.Wrapf(err, "unable to connect to %s channel %d", cfg.Address, cfg.Channel)
	}

	return &RFCOMMSocket{fd: fd}, nil
}

// Write blocks until the whole buffer has been queued on the socket.
func (s *RFCOMMSocket) Write(buf []byte) (n int, err error) {
	for n < len(buf) {
		var w int
		w, err = unix.Write(s.fd, buf[n:])
		if err != nil {
			return
		}
		n += w
	}
	return
}

func (s *RFCOMMSocket) Close() error {
	return unix.Close(s.fd)
}
