package brick

import (
	"errors"
	"testing"

	"github.com/CodedInternet/gonxt/nxt"
	nxterrors "github.com/CodedInternet/gonxt/nxt/errors"
	. "github.com/smartystreets/goconvey/convey"
)

type testController struct {
	batches [][]nxt.MotorState
	err     error
}

func (c *testController) SetMotorStates(states ...nxt.MotorState) error {
	c.batches = append(c.batches, states)
	return c.err
}

func (c *testController) SetMotorState(state nxt.MotorState) error {
	return c.SetMotorStates(state)
}

func createTestBrick() (ctrl *testController, b *Brick) {
	ctrl = &testController{}
	config := BrickConfig{
		Version: "1.0.0",
		Motors: map[string]nxt.Motor{
			"left":  nxt.MotorC,
			"right": nxt.MotorA,
			"arm":   nxt.MotorB,
		},
		Drive: &DriveConfig{Left: "left", Right: "right", Regulate: true},
	}

	b, err := NewBrick(ctrl, config, nil)
	if err != nil {
		panic(err)
	}
	return
}

func TestBrick_Apply(t *testing.T) {
	Convey("commands for several motors share one write", t, func() {
		ctrl, b := createTestBrick()
		err := b.Apply(map[string]MotorCommand{
			"left":  {Power: 40, Sync: true},
			"right": {Power: 40, Sync: true},
			"arm":   {Brake: true},
		})
		So(err, ShouldBeNil)
		So(len(ctrl.batches), ShouldEqual, 1)

		batch := ctrl.batches[0]
		So(len(batch), ShouldEqual, 3)
		So(batch[0].Motor(), ShouldEqual, nxt.MotorA)
		So(batch[1].Motor(), ShouldEqual, nxt.MotorB)
		So(batch[2].Motor(), ShouldEqual, nxt.MotorC)

		So(batch[0].RegulationMode(), ShouldEqual, nxt.RegulationSync)
		So(batch[1].Mode(), ShouldEqual, nxt.ModeMotorOn|nxt.ModeBrake)

		Convey("and the state is reported", func() {
			state := b.State()
			So(len(state), ShouldEqual, 3)
			So(state["left"], ShouldResemble, MotorReport{
				Port:           "C",
				Power:          40,
				Mode:           "MOTORON|REGULATED",
				RegulationMode: "SYNC",
				RunState:       "RUNNING",
			})
		})
	})

	Convey("an invalid command writes nothing", t, func() {
		ctrl, b := createTestBrick()

		err := b.Apply(map[string]MotorCommand{
			"left":  {Power: 50},
			"right": {Power: 150},
		})
		So(errors.Is(err, nxterrors.ErrInvalidArgument), ShouldBeTrue)

		err = b.SetMotor("wheel", MotorCommand{Power: 10})
		So(err, ShouldResemble, nxterrors.UnknownMotorError{Name: "wheel"})

		So(len(ctrl.batches), ShouldEqual, 0)
		So(len(b.State()), ShouldEqual, 0)
	})

	Convey("write errors are returned and the state is not recorded", t, func() {
		ctrl, b := createTestBrick()
		ctrl.err = errors.New("link down")

		So(b.SetMotor("arm", MotorCommand{Power: 10}), ShouldEqual, ctrl.err)
		So(len(b.State()), ShouldEqual, 0)
	})

	Convey("no commands is a no-op", t, func() {
		ctrl, b := createTestBrick()
		So(b.Apply(nil), ShouldBeNil)
		So(len(ctrl.batches), ShouldEqual, 0)
	})
}

func TestBrick_Stop(t *testing.T) {
	Convey("stop idles every motor at once", t, func() {
		ctrl, b := createTestBrick()
		So(b.Stop(false), ShouldBeNil)
		So(len(ctrl.batches), ShouldEqual, 1)
		for _, s := range ctrl.batches[0] {
			So(s.Mode(), ShouldEqual, nxt.Mode(0))
			So(s.RunState(), ShouldEqual, nxt.RunStateIdle)
		}

		Convey("or holds them with the brake", func() {
			So(b.Stop(true), ShouldBeNil)
			for _, s := range ctrl.batches[1] {
				So(s.Mode(), ShouldEqual, nxt.ModeMotorOn|nxt.ModeBrake)
				So(s.RunState(), ShouldEqual, nxt.RunStateRunning)
			}
		})
	})
}

func TestBrick_Drive(t *testing.T) {
	Convey("drive powers the configured tracks", t, func() {
		ctrl, b := createTestBrick()
		So(b.Drive(1, 0), ShouldBeNil)
		So(len(ctrl.batches), ShouldEqual, 1)

		batch := ctrl.batches[0]
		So(len(batch), ShouldEqual, 2)
		// right is on A, left on C
		So(batch[0].Power(), ShouldEqual, int8(-100))
		So(batch[1].Power(), ShouldEqual, int8(100))
		So(batch[1].RegulationMode(), ShouldEqual, nxt.RegulationSpeed)
	})

	Convey("drive needs a drive section", t, func() {
		_, b := createTestBrick()
		b.config.Drive = nil
		So(b.Drive(0, 1), ShouldEqual, ErrNoDrive)
	})
}

func TestBrick_Port(t *testing.T) {
	Convey("aliases resolve to ports", t, func() {
		_, b := createTestBrick()
		port, err := b.Port("arm")
		So(err, ShouldBeNil)
		So(port, ShouldEqual, nxt.MotorB)
		So(b.MotorNames(), ShouldResemble, []string{"right", "arm", "left"})
	})
}
