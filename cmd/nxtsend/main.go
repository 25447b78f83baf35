package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/CodedInternet/gonxt/nxt"
	"github.com/CodedInternet/gonxt/transport"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// RFCOMM channels run from 1 to 30.
const maxChannel = 30

func main() {
	kind := flag.String("kind", transport.KindSerial, "Transport to use: serial, rfcomm or sim")
	address := flag.String("address", "/dev/rfcomm0", "tty path, or Bluetooth address for rfcomm")
	baud := flag.Int("baud", transport.DefaultBaudRate, "Serial baud rate")
	channel := flag.Uint("channel", transport.DefaultChannel, "RFCOMM channel")
	motor := flag.String("motor", "A", "Motor port: A, B or C")
	power := flag.Int("power", 0, "Power from -100 to 100")
	brake := flag.Bool("brake", false, "Hold the motor with the brake")
	sync := flag.Bool("sync", false, "Synchronise with the other regulated motors")
	speed := flag.Bool("speed", false, "Use speed regulation")
	ramp := flag.String("ramp", "none", "Ramp mode: none, up or down")
	dump := flag.Bool("dump", false, "Print the frame without opening a transport")
	flag.Parse()

	state, err := buildState(*motor, *power, *brake, *sync, *speed, *ramp)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	frame := nxt.EncodeState(state)
	fmt.Printf("%s [%d] \t", state.Motor(), len(frame))
	for i := 0; i < len(frame); i++ {
		fmt.Printf("%02x ", frame[i])
	}
	fmt.Printf("\n")

	if *dump {
		return
	}

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	config, err := transportConfig(*kind, *address, *baud, *channel)
	if err != nil {
		logger.Sugar().Fatalw("invalid transport flags", "error", err)
	}

	link, err := transport.Open(config, logger.Sugar())
	if err != nil {
		logger.Sugar().Fatalw("unable to open transport", "kind", *kind, "address", *address, "error", err)
	}
	defer link.Close()

	if err := nxt.NewRemoteMotorController(link).SetMotorState(state); err != nil {
		logger.Sugar().Fatalw("write failed", "error", err)
	}
}

// transportConfig checks the flags that the transport config would
// otherwise truncate.
func transportConfig(kind, address string, baud int, channel uint) (config transport.Config, err error) {
	if channel < 1 || channel > maxChannel {
		return config, errors.Errorf("rfcomm channel %d is out of range 1-%d", channel, maxChannel)
	}
	if baud <= 0 {
		return config, errors.Errorf("baud rate %d is not valid", baud)
	}

	return transport.Config{
		Kind:     kind,
		Address:  address,
		BaudRate: baud,
		Channel:  uint8(channel),
	}, nil
}

func buildState(motor string, power int, brake, sync, speed bool, ramp string) (state nxt.MotorState, err error) {
	port, err := nxt.ParseMotor(motor)
	if err != nil {
		return
	}
	rampMode, err := nxt.ParseRampMode(ramp)
	if err != nil {
		return
	}

	b := nxt.NewMotorStateBuilder()
	if err = b.SetMotor(port); err != nil {
		return
	}
	if err = b.SetPower(power); err != nil {
		return
	}
	b.SetBrake(brake)
	b.SetSync(sync)
	b.SetSpeedRegulation(speed)
	b.SetRampMode(rampMode)

	return b.Create(), nil
}
