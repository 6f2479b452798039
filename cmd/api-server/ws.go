package main

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/wib2/futsal-record/internals/state"
)

// StateMessage is what every websocket client receives after each accepted
// mutation or remote update: the whole fresh snapshot. Clients re-render
// from it; there are no incremental patches.
type StateMessage struct {
	Type  string             `json:"type"`
	State state.PersistShape `json:"state"`
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

func (app *App) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		http.Error(w, "Could not open websocket connection", http.StatusBadRequest)
		return
	}

	app.ClientsM.Lock()
	app.WS[conn] = struct{}{}
	app.ClientsM.Unlock()

	// New clients get the current snapshot immediately.
	if data, err := json.Marshal(StateMessage{Type: "state", State: app.Syncer.Snapshot()}); err == nil {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			app.dropClient(conn)
			return
		}
	}

	// Reader loop exists only to notice disconnects; clients never send.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				app.dropClient(conn)
				return
			}
		}
	}()
}

// BroadcastState pushes a snapshot to every connected client. Wired as the
// syncer's change listener.
func (app *App) BroadcastState(snap state.PersistShape) {
	data, err := json.Marshal(StateMessage{Type: "state", State: snap})
	if err != nil {
		log.Printf("could not marshal state broadcast: %v", err)
		return
	}

	app.ClientsM.Lock()
	for conn := range app.WS {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			conn.Close()
			delete(app.WS, conn)
		}
	}
	app.ClientsM.Unlock()
}

func (app *App) dropClient(conn *websocket.Conn) {
	app.ClientsM.Lock()
	if _, ok := app.WS[conn]; ok {
		conn.Close()
		delete(app.WS, conn)
	}
	app.ClientsM.Unlock()
}
