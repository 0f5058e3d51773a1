// Copyright (c) tkc17.

package server

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/tkc17/iw-parser/model"
	"github.com/tkc17/iw-parser/util"
)

// Hub fans live samples out to WebSocket subscribers. Samples are
// written from the collector goroutine only.
type Hub struct {
	upgrader    websocket.Upgrader
	mutex       sync.RWMutex
	subscribers map[*websocket.Conn]struct{}
	closed      bool
}

// NewHub returns an empty hub.
func NewHub() *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		subscribers: map[*websocket.Conn]struct{}{},
	}
}

// HandleStream upgrades the request and subscribes the client to the
// sample stream.
func (hub *Hub) HandleStream(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	conn, err := hub.upgrader.Upgrade(w, r, nil)
	if err != nil {
		util.FileLogger().Errorf(ctx, "WebSocket upgrade failed - %s", err.Error())
		return
	}
	hub.mutex.Lock()
	if hub.closed {
		hub.mutex.Unlock()
		conn.Close()
		return
	}
	hub.subscribers[conn] = struct{}{}
	count := len(hub.subscribers)
	hub.mutex.Unlock()
	util.FileLogger().Infof(ctx, "Stream subscriber connected (%d active)", count)
	go hub.readLoop(conn)
}

// Publish sends the sample to every subscriber. A subscriber that
// fails to accept the message is dropped.
func (hub *Hub) Publish(sample *model.Sample) {
	hub.mutex.RLock()
	conns := make([]*websocket.Conn, 0, len(hub.subscribers))
	for conn := range hub.subscribers {
		conns = append(conns, conn)
	}
	hub.mutex.RUnlock()
	for _, conn := range conns {
		if err := conn.WriteJSON(sample); err != nil {
			hub.drop(conn)
		}
	}
}

// SubscriberCount returns the number of connected subscribers.
func (hub *Hub) SubscriberCount() int {
	hub.mutex.RLock()
	defer hub.mutex.RUnlock()
	return len(hub.subscribers)
}

// readLoop drains client messages until the connection goes away.
func (hub *Hub) readLoop(conn *websocket.Conn) {
	defer hub.drop(conn)
	for {
		if _, _, err := conn.NextReader(); err != nil {
			return
		}
	}
}

func (hub *Hub) drop(conn *websocket.Conn) {
	conn.Close()
	hub.mutex.Lock()
	delete(hub.subscribers, conn)
	hub.mutex.Unlock()
}

// Close drops all subscribers and rejects new ones.
func (hub *Hub) Close() {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	hub.closed = true
	for conn := range hub.subscribers {
		conn.Close()
		delete(hub.subscribers, conn)
	}
}
