package webapi

import (
	"github.com/kiryu-dev/board-games/internal/domain"
)

// GameView is the part of a 3x3 game state the terminal client renders.
type GameView struct {
	Board         domain.Board  `json:"board"`
	CurrentPlayer domain.Cell   `json:"currentPlayer"`
	Winner        domain.Result `json:"winner"`
	Phase         string        `json:"phase,omitempty"`
	SelectedPiece *int          `json:"selectedPiece,omitempty"`
}

// Snapshot mirrors domain.Snapshot with a typed game for the 3x3 kinds.
type Snapshot struct {
	GameUuid          string        `json:"gameId"`
	Kind              domain.Kind   `json:"kind"`
	Game              GameView      `json:"game"`
	Winner            domain.Result `json:"winner"`
	LegalDestinations []int         `json:"validMoves"`
}
