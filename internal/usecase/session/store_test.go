package session

import (
	"sync"
	"testing"
	"time"

	"github.com/kiryu-dev/board-games/internal/domain"
	"github.com/kiryu-dev/board-games/internal/usecase/tictactoe"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

var now = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func newStore(t *testing.T) *Store[*tictactoe.State] {
	return New[*tictactoe.State](domain.TicTacToe, zaptest.NewLogger(t))
}

func TestStore_CreateGet(t *testing.T) {
	store := newStore(t)

	gameUuid := store.Create(tictactoe.New(false, domain.Medium, now))
	game, err := store.Get(gameUuid)

	require.NoError(t, err)
	require.Equal(t, domain.X, game.CurrentPlayer)
	require.Equal(t, 1, store.Len())

	// the copy is detached from the stored state
	game.Board[0] = domain.X
	stored, err := store.Get(gameUuid)
	require.NoError(t, err)
	require.Equal(t, domain.None, stored.Board[0])
}

func TestStore_UniqueIds(t *testing.T) {
	store := newStore(t)
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		gameUuid := store.Create(tictactoe.New(false, domain.Medium, now))
		require.False(t, seen[gameUuid])
		seen[gameUuid] = true
	}
}

func TestStore_NotFound(t *testing.T) {
	store := newStore(t)

	_, err := store.Get("missing")
	require.ErrorIs(t, err, domain.ErrNotFound)

	err = store.Update("missing", func(*tictactoe.State) (bool, error) { return false, nil })
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_Update(t *testing.T) {
	t.Run("error is passed through and the session stays", func(t *testing.T) {
		store := newStore(t)
		gameUuid := store.Create(tictactoe.New(false, domain.Medium, now))
		errBoom := errors.New("boom")

		err := store.Update(gameUuid, func(*tictactoe.State) (bool, error) { return false, errBoom })

		require.ErrorIs(t, err, errBoom)
		require.Equal(t, 1, store.Len())
	})

	t.Run("done removes the session", func(t *testing.T) {
		store := newStore(t)
		gameUuid := store.Create(tictactoe.New(false, domain.Medium, now))

		err := store.Update(gameUuid, func(game *tictactoe.State) (bool, error) {
			return true, game.MakeMove(0, domain.X, now)
		})

		require.NoError(t, err)
		_, err = store.Get(gameUuid)
		require.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("updates of one session never interleave", func(t *testing.T) {
		store := newStore(t)
		gameUuid := store.Create(tictactoe.New(false, domain.Medium, now))

		var wg sync.WaitGroup
		for i := 0; i < 100; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_ = store.Update(gameUuid, func(game *tictactoe.State) (bool, error) {
					last := game.LastActivity
					time.Sleep(time.Microsecond)
					game.Touch(last.Add(time.Second))
					return false, nil
				})
			}()
		}
		wg.Wait()

		game, err := store.Get(gameUuid)
		require.NoError(t, err)
		require.Equal(t, now.Add(100*time.Second), game.LastActivity)
	})
}

func TestStore_Delete(t *testing.T) {
	store := newStore(t)
	gameUuid := store.Create(tictactoe.New(false, domain.Medium, now))
	e := store.entries[gameUuid]

	_, ok := store.Delete(gameUuid)
	require.True(t, ok)
	_, ok = store.Delete(gameUuid)
	require.False(t, ok)

	// a holder of the old entry sees the tombstone
	require.True(t, e.deleted)
	require.Zero(t, store.Len())
}

func TestStore_ConcurrentDelete(t *testing.T) {
	store := newStore(t)
	gameUuid := store.Create(tictactoe.New(false, domain.Medium, now))

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		removed int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, ok := store.Delete(gameUuid); ok {
				mu.Lock()
				removed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, removed)
}

func TestStore_DeleteIf(t *testing.T) {
	store := newStore(t)
	gameUuid := store.Create(tictactoe.New(false, domain.Medium, now))

	_, ok := store.DeleteIf(gameUuid, func(game *tictactoe.State) bool { return game.Finished() })
	require.False(t, ok)
	require.Equal(t, 1, store.Len())

	game, ok := store.DeleteIf(gameUuid, func(game *tictactoe.State) bool { return !game.Finished() })
	require.True(t, ok)
	require.NotNil(t, game)
	require.Zero(t, store.Len())
}

func TestStore_Queries(t *testing.T) {
	store := newStore(t)
	idle := store.Create(tictactoe.New(false, domain.Medium, now.Add(-time.Hour)))
	fresh := tictactoe.New(false, domain.Medium, now)
	fresh.Players = map[string]string{"X": "alice", "O": "bob"}
	active := store.Create(fresh)

	assert.Equal(t, []string{idle}, store.IdleSince(now.Add(-30*time.Minute)))
	assert.Equal(t, []string{active}, store.FindByParticipant("bob"))
	assert.Empty(t, store.FindByParticipant("carol"))
	assert.Equal(t, domain.TicTacToe, store.Kind())
}
