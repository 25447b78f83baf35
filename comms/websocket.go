package comms

import (
	"github.com/gorilla/websocket"
)

// ServeClient processes JSON commands from conn until it is closed. Every
// command, valid or not, gets exactly one Reply.
func ServeClient(conn *websocket.Conn, conductor ConductorInterface) error {
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return err
		}

		if err := conn.WriteJSON(handleMessage(conductor, msg)); err != nil {
			return err
		}
	}
}
