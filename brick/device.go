package brick

import (
	"errors"
	"sort"
	"sync"

	"github.com/CodedInternet/gonxt/nxt"
	nxterrors "github.com/CodedInternet/gonxt/nxt/errors"
	"go.uber.org/zap"
)

var (
	ErrNoDrive = errors.New("no drive motors configured")
)

// MotorCommand is the high level intent for a single motor.
type MotorCommand struct {
	Power           int          `json:"power" yaml:"power"`
	Brake           bool         `json:"brake" yaml:"brake"`
	Sync            bool         `json:"sync" yaml:"sync"`
	SpeedRegulation bool         `json:"speed_regulation" yaml:"speed_regulation"`
	Ramp            nxt.RampMode `json:"ramp,omitempty" yaml:"ramp,omitempty"`
}

func (cmd MotorCommand) state(port nxt.Motor) (state nxt.MotorState, err error) {
	b := nxt.NewMotorStateBuilder()
	if err = b.SetMotor(port); err != nil {
		return
	}
	if err = b.SetPower(cmd.Power); err != nil {
		return
	}
	b.SetBrake(cmd.Brake)
	b.SetSync(cmd.Sync)
	b.SetSpeedRegulation(cmd.SpeedRegulation)
	b.SetRampMode(cmd.Ramp)

	return b.Create(), nil
}

// MotorReport describes the last state sent to a motor.
type MotorReport struct {
	Port           string `json:"port"`
	Power          int8   `json:"power"`
	Mode           string `json:"mode"`
	RegulationMode string `json:"regulation_mode"`
	RunState       string `json:"run_state"`
}

func newMotorReport(s nxt.MotorState) MotorReport {
	return MotorReport{
		Port:           s.Motor().String(),
		Power:          s.Power(),
		Mode:           s.Mode().String(),
		RegulationMode: s.RegulationMode().String(),
		RunState:       s.RunState().String(),
	}
}

// Brick maps named motors onto the ports of a single NXT. All writes are
// serialized so callers on different goroutines never interleave frames.
type Brick struct {
	ctrl   nxt.MotorController
	config BrickConfig
	lock   sync.Mutex
	last   map[string]nxt.MotorState
	logger *zap.SugaredLogger
}

func NewBrick(ctrl nxt.MotorController, config BrickConfig, logger *zap.SugaredLogger) (b *Brick, err error) {
	if err = config.Validate(); err != nil {
		return
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	b = &Brick{
		ctrl:   ctrl,
		config: config,
		last:   make(map[string]nxt.MotorState, len(config.Motors)),
		logger: logger,
	}
	return
}

func (b *Brick) Port(name string) (nxt.Motor, error) {
	port, ok := b.config.Motors[name]
	if !ok {
		return 0, nxterrors.UnknownMotorError{Name: name}
	}
	return port, nil
}

func (b *Brick) MotorNames() []string {
	return b.config.MotorNames()
}

// Apply sends the commands in a single write, ordered by port. Nothing is
// written if any command is invalid.
func (b *Brick) Apply(cmds map[string]MotorCommand) error {
	if len(cmds) == 0 {
		return nil
	}

	names := make([]string, 0, len(cmds))
	for name := range cmds {
		if _, err := b.Port(name); err != nil {
			return err
		}
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return b.config.Motors[names[i]] < b.config.Motors[names[j]]
	})

	states := make([]nxt.MotorState, len(names))
	for i, name := range names {
		state, err := cmds[name].state(b.config.Motors[name])
		if err != nil {
			return err
		}
		states[i] = state
	}

	b.lock.Lock()
	defer b.lock.Unlock()

	if err := b.ctrl.SetMotorStates(states...); err != nil {
		return err
	}
	for i, name := range names {
		b.last[name] = states[i]
		b.logger.Debugw("motor updated",
			"motor", name,
			"port", states[i].Motor().String(),
			"power", states[i].Power(),
			"mode", states[i].Mode().String(),
		)
	}

	return nil
}

func (b *Brick) SetMotor(name string, cmd MotorCommand) error {
	return b.Apply(map[string]MotorCommand{name: cmd})
}

// Stop cuts power to every configured motor, optionally holding them with
// the brake.
func (b *Brick) Stop(brake bool) error {
	cmds := make(map[string]MotorCommand, len(b.config.Motors))
	for name := range b.config.Motors {
		cmds[name] = MotorCommand{Brake: brake}
	}
	return b.Apply(cmds)
}

// Drive runs the configured drive motors from a joystick position, see Mix.
func (b *Brick) Drive(x, y float64) error {
	if b.config.Drive == nil {
		return ErrNoDrive
	}

	left, right := Mix(x, y)
	regulate := b.config.Drive.Regulate
	return b.Apply(map[string]MotorCommand{
		b.config.Drive.Left:  {Power: left, SpeedRegulation: regulate},
		b.config.Drive.Right: {Power: right, SpeedRegulation: regulate},
	})
}

// State reports the last state sent to each motor that has been updated.
func (b *Brick) State() map[string]MotorReport {
	b.lock.Lock()
	defer b.lock.Unlock()

	reports := make(map[string]MotorReport, len(b.last))
	for name, s := range b.last {
		reports[name] = newMotorReport(s)
	}
	return reports
}
