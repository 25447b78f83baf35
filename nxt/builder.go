package nxt

import (
	nxterrors "github.com/CodedInternet/gonxt/nxt/errors"
)

const (
	MinPower = -100
	MaxPower = 100
)

// MotorStateBuilder collects the intent for a single motor and reduces it to
// a consistent MotorState. A builder is not safe for concurrent use. Create
// does not reset it, so it may be finalized any number of times.
type MotorStateBuilder struct {
	motor   Motor
	power   int8
	running bool

	regulate      bool // always sync || regulateSpeed
	regulateSpeed bool
	sync          bool

	brake       bool
	rampMode    RampMode
	tachoTarget int32
}

func NewMotorStateBuilder() *MotorStateBuilder {
	return new(MotorStateBuilder)
}

// SetMotor selects the port. MotorAll is rejected.
func (b *MotorStateBuilder) SetMotor(m Motor) error {
	if m != MotorA && m != MotorB && m != MotorC {
		return nxterrors.InvalidArgumentError{Op: "SetMotor", Arg: "motor", Value: int(m)}
	}
	b.motor = m
	return nil
}

// SetPower sets the power in percent, -100 to 100. Any non zero power marks
// the motor as running.
func (b *MotorStateBuilder) SetPower(power int) error {
	if power < MinPower || power > MaxPower {
		return nxterrors.InvalidArgumentError{Op: "SetPower", Arg: "power", Value: power}
	}
	b.power = int8(power)
	b.running = power != 0
	return nil
}

func (b *MotorStateBuilder) SetBrake(brake bool) {
	b.brake = brake
}

func (b *MotorStateBuilder) SetSync(sync bool) {
	b.sync = sync
	b.regulate = recomputeRegulation(b.sync, b.regulateSpeed)
}

func (b *MotorStateBuilder) SetSpeedRegulation(regulate bool) {
	b.regulateSpeed = regulate
	b.regulate = recomputeRegulation(b.sync, b.regulateSpeed)
}

func (b *MotorStateBuilder) SetRampMode(mode RampMode) {
	b.rampMode = mode
}

func (b *MotorStateBuilder) RampMode() RampMode {
	return b.rampMode
}

func recomputeRegulation(sync, regulateSpeed bool) bool {
	return sync || regulateSpeed
}

// reduction folds one precedence rule of the builder into the state.
type reduction func(b *MotorStateBuilder, s *MotorState)

// Applied in order. Brake is last so it wins over the idle rule.
var reductions = []reduction{
	reduceRunning,
	reduceIdle,
	reduceBrake,
}

func reduceRunning(b *MotorStateBuilder, s *MotorState) {
	if !b.running {
		return
	}
	s.mode |= ModeMotorOn
	s.runState |= RunStateRunning
	if !b.regulate {
		return
	}
	s.mode |= ModeRegulated
	if b.regulateSpeed {
		s.regMode |= RegulationSpeed
	}
	if b.sync {
		s.regMode |= RegulationSync
	}
}

func reduceIdle(b *MotorStateBuilder, s *MotorState) {
	if b.running {
		return
	}
	s.regMode = RegulationIdle
	s.runState = RunStateIdle
}

func reduceBrake(b *MotorStateBuilder, s *MotorState) {
	if !b.brake {
		return
	}
	s.mode |= ModeMotorOn | ModeBrake
	s.runState |= RunStateRunning
}

// Create reduces the current intent into a MotorState. It never fails, the
// setters have already rejected anything out of range.
func (b *MotorStateBuilder) Create() MotorState {
	s := MotorState{
		motor:      b.motor,
		power:      b.power,
		tachoLimit: b.tachoTarget,
	}
	for _, reduce := range reductions {
		reduce(b, &s)
	}
	return s
}
