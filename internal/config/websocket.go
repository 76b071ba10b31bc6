package config

import (
	"net/http"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/gorilla/websocket"
)

type WebSocket struct {
	Upgrader  websocket.Upgrader
	WriteWait time.Duration
	IdleWait  time.Duration
}

type wsTimeouts struct {
	WriteWait time.Duration `env:"WS_WRITE_WAIT" envDefault:"10s"`
	IdleWait  time.Duration `env:"WS_IDLE_WAIT" envDefault:"5m"`
}

func NewWebSocket() (*WebSocket, error) {
	timeouts, err := env.ParseAs[wsTimeouts]()
	if err != nil {
		return nil, err
	}

	ws := &WebSocket{
		Upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		WriteWait: timeouts.WriteWait,
		IdleWait:  timeouts.IdleWait,
	}

	return ws, nil
}
