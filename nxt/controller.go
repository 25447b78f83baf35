package nxt

import (
	"io"
)

// MotorController updates the state of motors on a remote robot.
type MotorController interface {
	// SetMotorStates sends every state in a single transport write.
	SetMotorStates(states ...MotorState) error
	SetMotorState(state MotorState) error
}

// RemoteMotorController drives the motors of an NXT over a write only link,
// usually a Bluetooth serial port. It performs no retries and does not read
// replies.
type RemoteMotorController struct {
	w io.Writer
}

func NewRemoteMotorController(w io.Writer) *RemoteMotorController {
	return &RemoteMotorController{w: w}
}

func (c *RemoteMotorController) SetMotorStates(states ...MotorState) error {
	if len(states) == 0 {
		return nil
	}
	_, err := c.w.Write(Encode(states))
	return err
}

func (c *RemoteMotorController) SetMotorState(state MotorState) error {
	return c.SetMotorStates(state)
}
