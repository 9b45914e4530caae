package webapi

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/kiryu-dev/board-games/internal/config"
	"github.com/kiryu-dev/board-games/internal/domain"
	"github.com/kiryu-dev/board-games/internal/transport/ws"
	"github.com/kiryu-dev/board-games/internal/usecase/game"
	"github.com/kiryu-dev/board-games/internal/usecase/hub"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newRepository(t *testing.T) repository {
	logger := zaptest.NewLogger(t)
	clients := ws.NewRegistry(logger)
	games := game.New(clients, logger)
	server := ws.New(config.ServerConfig{}, games, hub.New(games, clients, logger), clients, logger)
	ts := httptest.NewServer(server.Handler())
	t.Cleanup(ts.Close)
	return New(ts.URL, "cli")
}

func TestRepository(t *testing.T) {
	ctx := context.Background()
	repo := newRepository(t)

	health, err := repo.HealthCheck(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ok", health.Status)

	// Given: a local morris game
	created, err := repo.Create(ctx, domain.Morris, domain.CreateOptions{})
	require.NoError(t, err)
	assert.Equal(t, domain.Morris, created.Kind)
	assert.Equal(t, "placing", created.Game.Phase)

	// When: X places on the center
	position := 4
	snapshot, err := repo.Apply(ctx, domain.Morris, created.GameUuid, domain.ActionPayload{Position: &position})

	// Then: the typed view reflects it
	require.NoError(t, err)
	assert.Equal(t, domain.X, snapshot.Game.Board[4])
	assert.Equal(t, domain.O, snapshot.Game.CurrentPlayer)

	// When: the computer plays for O
	snapshot, err = repo.ComputerMove(ctx, domain.Morris, created.GameUuid)
	require.NoError(t, err)
	assert.Len(t, snapshot.Game.Board.EmptyCells(), 7)

	fetched, err := repo.Get(ctx, domain.Morris, created.GameUuid)
	require.NoError(t, err)
	assert.Equal(t, snapshot.Game.Board, fetched.Game.Board)
}

func TestRepository_Errors(t *testing.T) {
	ctx := context.Background()
	repo := newRepository(t)

	_, err := repo.Get(ctx, domain.TicTacToe, "missing")
	require.ErrorIs(t, err, domain.ErrNotFound)

	created, err := repo.Create(ctx, domain.TicTacToe, domain.CreateOptions{})
	require.NoError(t, err)
	position := 0
	_, err = repo.Apply(ctx, domain.TicTacToe, created.GameUuid, domain.ActionPayload{Position: &position})
	require.NoError(t, err)

	_, err = repo.Apply(ctx, domain.TicTacToe, created.GameUuid, domain.ActionPayload{Position: &position})
	require.ErrorIs(t, err, domain.ErrInvalidMove)
	assert.Contains(t, err.Error(), "occupied")
	assert.NotErrorIs(t, err, domain.ErrBadRequest)

	_, err = repo.Apply(ctx, domain.TicTacToe, created.GameUuid, domain.ActionPayload{Type: domain.PlaceAction, Position: &position})
	require.ErrorIs(t, err, domain.ErrBadRequest)
	assert.NotErrorIs(t, err, domain.ErrInvalidMove)

	_, err = repo.Create(ctx, domain.Chess, domain.CreateOptions{VsComputer: true})
	require.ErrorIs(t, err, domain.ErrBadRequest)
}
