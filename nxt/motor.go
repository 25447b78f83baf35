package nxt

import (
	"fmt"
	"strings"

	nxterrors "github.com/CodedInternet/gonxt/nxt/errors"
)

// Motor is an output port on the brick.
type Motor byte

const (
	MotorA   Motor = 0x00
	MotorB   Motor = 0x01
	MotorC   Motor = 0x02
	MotorAll Motor = 0xff // broadcast to every port, never a valid builder target
)

// ParseMotor reads a port name such as "A" or "all".
func ParseMotor(s string) (Motor, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "A":
		return MotorA, nil
	case "B":
		return MotorB, nil
	case "C":
		return MotorC, nil
	case "ALL":
		return MotorAll, nil
	}
	return 0, nxterrors.UnknownMotorError{Name: s}
}

func (m Motor) String() string {
	switch m {
	case MotorA:
		return "A"
	case MotorB:
		return "B"
	case MotorC:
		return "C"
	case MotorAll:
		return "ALL"
	}
	return fmt.Sprintf("Motor(0x%02x)", byte(m))
}

func (m *Motor) UnmarshalText(text []byte) error {
	v, err := ParseMotor(string(text))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

func (m *Motor) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	return m.UnmarshalText([]byte(s))
}

func (m Motor) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// Mode holds the output mode bits. The bits combine freely.
type Mode byte

const (
	ModeMotorOn   Mode = 0x01
	ModeBrake     Mode = 0x02
	ModeRegulated Mode = 0x04
)

func (m Mode) Has(flag Mode) bool {
	return m&flag == flag
}

func (m Mode) String() string {
	return flagString(byte(m), []flagName{
		{byte(ModeMotorOn), "MOTORON"},
		{byte(ModeBrake), "BRAKE"},
		{byte(ModeRegulated), "REGULATED"},
	}, "OFF")
}

// RegulationMode selects the firmware control loop. Speed and sync may both
// be set, but only alongside ModeRegulated.
type RegulationMode byte

const (
	RegulationIdle  RegulationMode = 0x00
	RegulationSpeed RegulationMode = 0x01
	RegulationSync  RegulationMode = 0x02
)

func (r RegulationMode) Has(flag RegulationMode) bool {
	return r&flag == flag
}

func (r RegulationMode) String() string {
	return flagString(byte(r), []flagName{
		{byte(RegulationSpeed), "SPEED"},
		{byte(RegulationSync), "SYNC"},
	}, "IDLE")
}

// RunState is the output run state. Idle is the absence of every bit, so it
// can never be combined with Running.
type RunState byte

const (
	RunStateIdle     RunState = 0x00
	RunStateRampUp   RunState = 0x10
	RunStateRunning  RunState = 0x20
	RunStateRampDown RunState = 0x40
)

func (r RunState) Has(flag RunState) bool {
	return r&flag == flag
}

func (r RunState) String() string {
	return flagString(byte(r), []flagName{
		{byte(RunStateRampUp), "RAMPUP"},
		{byte(RunStateRunning), "RUNNING"},
		{byte(RunStateRampDown), "RAMPDOWN"},
	}, "IDLE")
}

// RampMode is accepted by the builder but has no representation in the
// encoded frame.
type RampMode int

const (
	RampNone RampMode = iota
	RampUp
	RampDown
)

func ParseRampMode(s string) (RampMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return RampNone, nil
	case "up":
		return RampUp, nil
	case "down":
		return RampDown, nil
	}
	return RampNone, fmt.Errorf("unknown ramp mode %q", s)
}

func (r RampMode) String() string {
	switch r {
	case RampUp:
		return "up"
	case RampDown:
		return "down"
	}
	return "none"
}

func (r RampMode) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

func (r *RampMode) UnmarshalText(text []byte) error {
	v, err := ParseRampMode(string(text))
	if err != nil {
		return err
	}
	*r = v
	return nil
}

type flagName struct {
	bit  byte
	name string
}

func flagString(v byte, names []flagName, zero string) string {
	if v == 0 {
		return zero
	}
	var parts []string
	for _, n := range names {
		if v&n.bit != 0 {
			parts = append(parts, n.name)
			v &^= n.bit
		}
	}
	if v != 0 {
		parts = append(parts, fmt.Sprintf("0x%02x", v))
	}
	return strings.Join(parts, "|")
}
