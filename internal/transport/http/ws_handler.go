package http

import (
	"encoding/json"
	"net/http"

	"eco-quest-service/internal/app"
	"eco-quest-service/internal/game"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

type WSHandler struct {
	service  *app.PlayerService
	upgrader websocket.Upgrader
}

func NewWSHandler(service *app.PlayerService) *WSHandler {
	return &WSHandler{
		service: service,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type loginPayload struct {
	Username string `json:"username"`
}

type answerPayload struct {
	Index *int `json:"index"`
}

type connectedPayload struct {
	PlayerID string `json:"playerId"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// simpleActions carry no payload.
var simpleActions = map[string]game.Action{
	"startQuiz":    game.ActionStartQuiz,
	"startPicture": game.ActionStartPicture,
	"next":         game.ActionNext,
	"back":         game.ActionBack,
	"logout":       game.ActionLogout,
}

// ServeWS upgrades HTTP requests to websockets; each connection is one player's game.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	playerID := r.URL.Query().Get("playerId")
	if playerID == "" {
		playerID = uuid.NewString()
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("ws upgrade failed")
		return
	}
	defer conn.Close()

	ctx := r.Context()
	if _, err := h.service.Connect(ctx, playerID); err != nil {
		_ = conn.WriteJSON(outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: err.Error()}})
		return
	}
	defer h.service.Leave(ctx, playerID)

	updates, cancel, err := h.service.Subscribe(ctx, playerID)
	if err != nil {
		_ = conn.WriteJSON(outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: err.Error()}})
		return
	}
	defer cancel()

	send := make(chan outboundMessage[any], 16)
	closeSignals := make(chan struct{})
	writerDone := make(chan struct{})
	updatesDone := make(chan struct{})

	// Single writer: gorilla connections do not support concurrent writes.
	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				log.Debug().Err(err).Str("player", playerID).Msg("ws write error")
				return
			}
		}
	}()

	send <- outboundMessage[any]{Type: "connected", Payload: connectedPayload{PlayerID: playerID}}

	go func() {
		defer close(updatesDone)
		for {
			select {
			case snap, ok := <-updates:
				if !ok {
					return
				}
				select {
				case send <- outboundMessage[any]{Type: "state", Payload: snap}:
				case <-closeSignals:
					return
				}
			case <-closeSignals:
				return
			}
		}
	}()

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		ev, msg := decodeEvent(inbound)
		if msg != "" {
			send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: msg}}
			continue
		}
		// Invalid game actions are silently ignored; state updates arrive via the subscription.
		if _, err := h.service.Dispatch(ctx, playerID, ev); err != nil {
			send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: err.Error()}}
		}
	}

	close(closeSignals)
	<-updatesDone
	close(send)
	<-writerDone
}

func decodeEvent(in inboundMessage) (game.Event, string) {
	if action, ok := simpleActions[in.Type]; ok {
		return game.Event{Action: action}, ""
	}
	switch in.Type {
	case "login":
		var payload loginPayload
		if err := json.Unmarshal(in.Payload, &payload); err != nil {
			return game.Event{}, "invalid login payload"
		}
		return game.Event{Action: game.ActionLogin, Username: payload.Username}, ""
	case "answer":
		var payload answerPayload
		if err := json.Unmarshal(in.Payload, &payload); err != nil || payload.Index == nil || *payload.Index < 0 {
			return game.Event{}, "invalid answer payload"
		}
		return game.Event{Action: game.ActionAnswer, Index: *payload.Index}, ""
	default:
		return game.Event{}, "unsupported message type"
	}
}
