package transport

import (
	"encoding/hex"
	"testing"
	"time"

	"github.com/pkg/errors"
	. "github.com/smartystreets/goconvey/convey"
	"gopkg.in/yaml.v2"
)

func TestOpen(t *testing.T) {
	Convey("the simulated kind needs no hardware", t, func() {
		tr, err := Open(Config{Kind: KindSim}, nil)
		So(err, ShouldBeNil)
		So(tr, ShouldHaveSameTypeAs, &Simulated{})
		So(tr.Close(), ShouldBeNil)
	})

	Convey("unknown kinds are rejected", t, func() {
		tr, err := Open(Config{Kind: "carrier-pigeon"}, nil)
		So(err, ShouldBeError, `unknown transport kind "carrier-pigeon"`)
		So(tr, ShouldBeNil)
	})

	Convey("serial needs an address", t, func() {
		tr, err := Open(Config{}, nil)
		So(err, ShouldNotBeNil)
		So(tr, ShouldBeNil)
	})

	Convey("rfcomm rejects a malformed address before touching a socket", t, func() {
		tr, err := Open(Config{Kind: KindRFCOMM, Address: "not-a-mac"}, nil)
		So(err, ShouldNotBeNil)
		So(tr, ShouldBeNil)
	})
}

func TestConfig(t *testing.T) {
	Convey("defaults fill the gaps", t, func() {
		cfg := Config{}
		cfg.populateDefaults()
		So(cfg.Kind, ShouldEqual, KindSerial)
		So(cfg.BaudRate, ShouldEqual, DefaultBaudRate)
		So(cfg.Channel, ShouldEqual, uint8(DefaultChannel))
		So(cfg.Timeout, ShouldEqual, DefaultTimeout)
	})

	Convey("yaml parses durations", t, func() {
		var cfg Config
		err := yaml.Unmarshal([]byte("kind: rfcomm\naddress: 00:16:53:01:02:03\nchannel: 2\ntimeout: 2s\n"), &cfg)
		So(err, ShouldBeNil)
		So(cfg.Kind, ShouldEqual, KindRFCOMM)
		So(cfg.Channel, ShouldEqual, uint8(2))
		So(cfg.Timeout, ShouldEqual, 2*time.Second)
	})
}

func TestParseBDAddr(t *testing.T) {
	Convey("addresses are reversed for the kernel", t, func() {
		addr, err := ParseBDAddr("00:16:53:0A:bb:FF")
		So(err, ShouldBeNil)
		So(addr, ShouldResemble, [6]byte{0xff, 0xbb, 0x0a, 0x53, 0x16, 0x00})
	})

	Convey("bad hex keeps the decoder error as the cause", t, func() {
		_, err := ParseBDAddr("zz:16:53:0A:BB:FF")
		So(err, ShouldNotBeNil)
		So(err.Error(), ShouldStartWith, `invalid bluetooth address "zz:16:53:0A:BB:FF"`)
		So(errors.Cause(err), ShouldHaveSameTypeAs, hex.InvalidByteError(0))
	})

	Convey("malformed addresses fail", t, func() {
		for _, s := range []string{"", "00:16:53:0A:BB", "00:16:53:0A:BB:FF:00", "0:16:53:0A:BB:FF", "zz:16:53:0A:BB:FF"} {
			_, err := ParseBDAddr(s)
			So(err, ShouldNotBeNil)
		}
	})
}
