package domain

import (
	"github.com/pkg/errors"
)

var (
	ErrConnectionClosed = errors.New("connection closed")
	ErrClientGone       = errors.New("client is not connected")
)

const (
	ClientUuidHeader = "X-Client-Key"
)

type MessageType string

// client -> server
const (
	Join   = MessageType("join")
	Leave  = MessageType("leave")
	Action = MessageType("action")
)

// server -> client
const (
	Hello        = MessageType("hello")
	Waiting      = MessageType("waiting")
	GameStarted  = MessageType("game-started")
	StateUpdated = MessageType("state-updated")
	MoveRejected = MessageType("move-rejected")
	GameEnded    = MessageType("game-ended")
	Error        = MessageType("error")
)

type Message struct {
	Type    MessageType `json:"type"`
	Payload any         `json:"payload,omitempty"`
}

type HelloPayload struct {
	ClientUuid string `json:"clientId"`
}

type QueuePayload struct {
	Kind Kind `json:"kind" validate:"required,oneof=tictactoe morris chess"`
}

type ActionType string

const (
	MoveAction   = ActionType("move")
	PlaceAction  = ActionType("place")
	SelectAction = ActionType("select")
)

// ActionPayload is both the websocket action message and the REST action body.
type ActionPayload struct {
	Kind     Kind       `json:"kind,omitempty" validate:"omitempty,oneof=tictactoe morris chess"`
	GameUuid string     `json:"gameId,omitempty"`
	Type     ActionType `json:"type" validate:"omitempty,oneof=move place select"`
	Position *int       `json:"position,omitempty" validate:"omitempty,min=0,max=8"`
	From     *Square    `json:"from,omitempty"`
	To       *Square    `json:"to,omitempty"`
	Player   string     `json:"player,omitempty" validate:"omitempty,oneof=X O white black"`
}

type GameStartedPayload struct {
	GameUuid string `json:"gameId"`
	Kind     Kind   `json:"kind"`
	Mark     string `json:"mark"`
}

type StatePayload struct {
	GameUuid          string `json:"gameId"`
	Kind              Kind   `json:"kind"`
	Game              any    `json:"game"`
	LegalDestinations []int  `json:"validMoves,omitempty"`
}

type MoveRejectedPayload struct {
	GameUuid string `json:"gameId,omitempty"`
	Reason   string `json:"reason"`
}

type EndReason string

const (
	Finished     = EndReason("finished")
	Disconnected = EndReason("disconnect")
	Inactivity   = EndReason("inactivity")
)

type GameEndedPayload struct {
	GameUuid string    `json:"gameId"`
	Kind     Kind      `json:"kind"`
	Winner   Result    `json:"winner,omitempty"`
	Reason   EndReason `json:"reason"`
	Game     any       `json:"game,omitempty"`
}

type ErrorPayload struct {
	Code   string `json:"code,omitempty"`
	Reason string `json:"reason"`
}

type Client interface {
	WriteMessage(msg Message) error
	ReadMessage() (Message, error)
	Uuid() string
	Close()
}

// Notifier delivers server events to connected clients by their opaque id.
type Notifier interface {
	Notify(clientUuid string, msg Message) error
}
