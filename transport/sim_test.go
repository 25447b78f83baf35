package transport

import (
	"testing"

	"github.com/CodedInternet/gonxt/nxt"
	. "github.com/smartystreets/goconvey/convey"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestSimulated(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	sim := NewSimulated(zap.New(core).Sugar())

	b := nxt.NewMotorStateBuilder()
	b.SetMotor(nxt.MotorC)
	b.SetPower(-40)
	state := b.Create()

	Convey("writes are recorded and every frame is logged", t, func() {
		raw := nxt.Encode([]nxt.MotorState{state, state})
		n, err := sim.Write(raw)
		So(err, ShouldBeNil)
		So(n, ShouldEqual, len(raw))

		So(sim.Writes(), ShouldResemble, [][]byte{raw})

		entries := logs.FilterMessage("simulated frame").All()
		So(len(entries), ShouldEqual, 2)
		fields := entries[0].ContextMap()
		So(fields["port"], ShouldEqual, "C")
		So(fields["runstate"], ShouldEqual, "RUNNING")

		Convey("the recorded buffer is a copy", func() {
			raw[4] = 0x00
			So(sim.Writes()[0][4], ShouldEqual, byte(nxt.MotorC))
		})
	})

	Convey("partial frames are flagged", t, func() {
		_, err := sim.Write([]byte{0x0c, 0x00})
		So(err, ShouldBeNil)
		So(logs.FilterMessage("trailing bytes after last frame").Len(), ShouldBeGreaterThan, 0)
	})

	Convey("a closed transport refuses writes", t, func() {
		So(sim.Close(), ShouldBeNil)
		_, err := sim.Write([]byte{0x00})
		So(err, ShouldEqual, ErrClosed)
	})
}
