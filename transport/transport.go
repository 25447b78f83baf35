// Package transport provides the write only links used to reach a brick.
package transport

import (
	"io"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	KindSerial = "serial"
	KindRFCOMM = "rfcomm"
	KindSim    = "sim"

	DefaultBaudRate = 115200
	DefaultChannel  = 1
	DefaultTimeout  = 500 * time.Millisecond
)

// Transport owns the physical connection. Writes are not framed, retried or
// acknowledged.
type Transport interface {
	io.Writer
	io.Closer
}

type Config struct {
	Kind     string        `yaml:"kind"`
	Address  string        `yaml:"address"` // tty path, or the brick's MAC for rfcomm
	BaudRate int           `yaml:"baud"`
	Channel  uint8         `yaml:"channel"`
	Timeout  time.Duration `yaml:"timeout"`
}

func (c *Config) populateDefaults() {
	if c.Kind == "" {
		c.Kind = KindSerial
	}
	if c.BaudRate == 0 {
		c.BaudRate = DefaultBaudRate
	}
	if c.Channel == 0 {
		c.Channel = DefaultChannel
	}
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
}

// Open connects the transport described by cfg.
func Open(cfg Config, logger *zap.SugaredLogger) (Transport, error) {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	cfg.populateDefaults()

	switch cfg.Kind {
	case KindSerial:
		return openSerial(cfg)
	case KindRFCOMM:
		return openRFCOMM(cfg)
	case KindSim:
		return NewSimulated(logger), nil
	}
	return nil, errors.Errorf("unknown transport kind %q", cfg.Kind)
}

var ErrClosed = errors.New("transport is closed")
