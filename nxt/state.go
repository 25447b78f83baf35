package nxt

// MotorState holds the register values for one output port, ready to be
// encoded. It is only produced by MotorStateBuilder.Create.
type MotorState struct {
	motor      Motor
	power      int8
	mode       Mode
	regMode    RegulationMode
	runState   RunState
	tachoLimit int32 // never set by the builder
}

func (s MotorState) Motor() Motor {
	return s.motor
}

func (s MotorState) Power() int8 {
	return s.power
}

func (s MotorState) Mode() Mode {
	return s.mode
}

func (s MotorState) RegulationMode() RegulationMode {
	return s.regMode
}

func (s MotorState) RunState() RunState {
	return s.runState
}

func (s MotorState) TachoLimit() int32 {
	return s.tachoLimit
}

