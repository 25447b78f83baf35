package nxt

import (
	"encoding/binary"
)

const (
	FrameLength = 14

	// first two bytes carry the length of the telegram that follows them
	frameHeader uint16 = FrameLength - 2

	CMD_DIRECT_NO_REPLY  = 0x80
	CMD_SET_OUTPUT_STATE = 0x04
)

// Frame offsets for a SETOUTPUTSTATE telegram.
const (
	offHeader     = 0
	offCmdType    = 2
	offCmd        = 3
	offPort       = 4
	offPower      = 5
	offMode       = 6
	offRegMode    = 7
	offTurnRatio  = 8
	offRunState   = 9
	offTachoLimit = 10
)

// EncodeState encodes a single state into one frame.
func EncodeState(s MotorState) []byte {
	return Encode([]MotorState{s})
}

// Encode packs one frame per state, in order, into a single buffer of
// FrameLength*len(states) bytes.
func Encode(states []MotorState) []byte {
	buf := make([]byte, FrameLength*len(states))
	for i, s := range states {
		putFrame(buf[i*FrameLength:(i+1)*FrameLength], s)
	}
	return buf
}

func putFrame(raw []byte, s MotorState) {
	binary.LittleEndian.PutUint16(raw[offHeader:], frameHeader)
	raw[offCmdType] = CMD_DIRECT_NO_REPLY
	raw[offCmd] = CMD_SET_OUTPUT_STATE
	raw[offPort] = byte(s.motor)
	raw[offPower] = byte(s.power)
	raw[offMode] = byte(s.mode)
	raw[offRegMode] = byte(s.regMode)
	raw[offTurnRatio] = 0 // synchronised turning is not supported
	raw[offRunState] = byte(s.runState)
	binary.LittleEndian.PutUint32(raw[offTachoLimit:], uint32(s.tachoLimit))
}
