package main

import (
	"net/http"

	"github.com/CodedInternet/gonxt/comms"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// ControlHandler upgrades the connection and feeds every message to the
// conductor until the client goes away.
func ControlHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		ENV.Logger.Warnw("upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}
	defer conn.Close()

	ENV.Logger.Infow("control client connected", "remote", r.RemoteAddr)
	if err := comms.ServeClient(conn, ENV.Conductor); err != nil {
		ENV.Logger.Infow("control client dropped", "remote", r.RemoteAddr, "error", err)
		return
	}
	ENV.Logger.Infow("control client disconnected", "remote", r.RemoteAddr)
}
