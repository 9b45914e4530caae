package domain

import (
	"context"
	"time"
)

type CreateOptions struct {
	VsComputer bool       `json:"vsComputer"`
	Difficulty Difficulty `json:"difficulty,omitempty" validate:"omitempty,oneof=easy medium hard"`
}

// ActionRequest is a move, placement or selection against a stored game.
// Player is trusted only for local and computer games; online games resolve
// the acting marker from ClientUuid.
type ActionRequest struct {
	Kind       Kind
	GameUuid   string
	Type       ActionType
	Position   *int
	From       *Square
	To         *Square
	Player     string
	ClientUuid string
}

// Snapshot is a detached copy of a game state handed to transports.
type Snapshot struct {
	GameUuid          string `json:"gameId"`
	Kind              Kind   `json:"kind"`
	Game              any    `json:"game"`
	Winner            Result `json:"winner,omitempty"`
	LegalDestinations []int  `json:"validMoves,omitempty"`
}

type GameUseCase interface {
	Create(ctx context.Context, kind Kind, opts CreateOptions) (Snapshot, error)
	CreateOnline(ctx context.Context, kind Kind, first string, second string) (Snapshot, error)
	Get(ctx context.Context, kind Kind, gameUuid string) (Snapshot, error)
	Apply(ctx context.Context, req ActionRequest) (Snapshot, error)
	ComputerMove(ctx context.Context, kind Kind, gameUuid string) (Snapshot, error)
	Disconnect(ctx context.Context, clientUuid string)
	EndIdle(ctx context.Context, deadline time.Time) int
}

type JoinResult struct {
	Waiting bool
	Game    *GameStartedPayload
}

type HubUseCase interface {
	Join(ctx context.Context, kind Kind, clientUuid string) (JoinResult, error)
	Leave(kind Kind, clientUuid string)
	Disconnect(ctx context.Context, clientUuid string)
}

type HealthCheckResponse struct {
	Status      string `json:"status"`
	Connections int    `json:"connections"`
}
