package comms

import (
	"encoding/json"
	"errors"
)

var ErrInvalidJSON = errors.New("invalid json")

// Reply is sent back for every command received.
type Reply struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

func decodeCmd(msg []byte) (cmd Cmd, err error) {
	if err = json.Unmarshal(msg, &cmd); err != nil {
		return cmd, ErrInvalidJSON
	}
	return
}

// handleMessage decodes and runs one raw command.
func handleMessage(conductor ConductorInterface, msg []byte) Reply {
	cmd, err := decodeCmd(msg)
	if err == nil {
		err = conductor.ProcessCommand(cmd)
	}
	if err != nil {
		return Reply{Error: err.Error()}
	}
	return Reply{OK: true}
}
