package comms

import (
	"fmt"

	"github.com/CodedInternet/gonxt/brick"
	"github.com/CodedInternet/gonxt/nxt"
	"go.uber.org/zap"
)

const (
	CMD_SET_MOTOR = "set_motor"
	CMD_STOP      = "stop"
	CMD_BRAKE     = "brake"
	CMD_DRIVE     = "drive"
)

// Cmd is a single remote control instruction as sent by a client.
type Cmd struct {
	Cmd   string  `json:"cmd"`
	Name  string  `json:"name,omitempty"`
	Power int     `json:"power,omitempty"`
	Brake bool    `json:"brake,omitempty"`
	Sync  bool    `json:"sync,omitempty"`
	Speed bool    `json:"speed,omitempty"`
	Ramp  string  `json:"ramp,omitempty"`
	X     float64 `json:"x,omitempty"`
	Y     float64 `json:"y,omitempty"`
}

// Device is the part of a brick the conductor drives.
type Device interface {
	SetMotor(name string, cmd brick.MotorCommand) error
	Stop(brake bool) error
	Drive(x, y float64) error
}

type ConductorInterface interface {
	ProcessCommand(cmd Cmd) error
}

type Conductor struct {
	Device Device
	Logger *zap.SugaredLogger
}

func (c *Conductor) logger() *zap.SugaredLogger {
	if c.Logger == nil {
		return zap.NewNop().Sugar()
	}
	return c.Logger
}

func (c *Conductor) ProcessCommand(cmd Cmd) (err error) {
	switch cmd.Cmd {
	case CMD_SET_MOTOR:
		var ramp nxt.RampMode
		ramp, err = nxt.ParseRampMode(cmd.Ramp)
		if err != nil {
			break
		}
		err = c.Device.SetMotor(cmd.Name, brick.MotorCommand{
			Power:           cmd.Power,
			Brake:           cmd.Brake,
			Sync:            cmd.Sync,
			SpeedRegulation: cmd.Speed,
			Ramp:            ramp,
		})

	case CMD_STOP:
		err = c.Device.Stop(false)

	case CMD_BRAKE:
		err = c.Device.Stop(true)

	case CMD_DRIVE:
		err = c.Device.Drive(cmd.X, cmd.Y)

	default:
		err = fmt.Errorf("unknown command %q", cmd.Cmd)
	}

	if err != nil {
		c.logger().Warnw("command rejected", "cmd", cmd.Cmd, "name", cmd.Name, "error", err)
	}
	return err
}
