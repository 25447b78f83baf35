//go:build !linux
// +build !linux

package transport

import (
	"runtime"

	nxterrors "github.com/CodedInternet/gonxt/nxt/errors"
)

func openRFCOMM(cfg Config) (Transport, error) {
	return nil, nxterrors.IncorrectPlatformError{Name: runtime.GOOS, Action: "rfcomm"}
}
