package transport

import (
	"encoding/hex"
	"strings"

	"github.com/pkg/errors"
)

// ParseBDAddr parses a Bluetooth address written as AA:BB:CC:DD:EE:FF. The
// result is in the reversed byte order the kernel expects.
func ParseBDAddr(s string) (addr [6]byte, err error) {
	parts := strings.Split(s, ":")
	if len(parts) != len(addr) {
		return addr, errors.Errorf("invalid bluetooth address %q", s)
	}

	for i, part := range parts {
		if len(part) != 2 {
			return addr, errors.Errorf("invalid bluetooth address %q", s)
		}
		b, err := hex.DecodeString(part)
		if err != nil {
			return addr, errors.Wrapf(err, "invalid bluetooth address %q", s)
		}
		addr[len(addr)-1-i] = b[0]
	}

	return addr, nil
}
