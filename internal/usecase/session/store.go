package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/kiryu-dev/board-games/internal/domain"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Game is a state the store can hold: it exposes its metadata and can copy itself.
type Game[G any] interface {
	Metadata() *domain.Meta
	Clone() G
}

// Op runs with exclusive access to one session. Returning done removes the
// session once the op has finished.
type Op[G any] func(game G) (done bool, err error)

type entry[G any] struct {
	mu      sync.Mutex
	game    G
	deleted bool
}

// Store maps session ids to the states of one game kind. Operations on the
// same id never interleave; different ids proceed in parallel.
//
// Lock order is entry, then store. The store lock is never held while
// waiting for an entry.
type Store[G Game[G]] struct {
	kind    domain.Kind
	entries map[string]*entry[G]
	mu      *sync.RWMutex
	logger  *zap.Logger
}

func New[G Game[G]](kind domain.Kind, logger *zap.Logger) *Store[G] {
	return &Store[G]{
		kind:    kind,
		entries: make(map[string]*entry[G]),
		mu:      &sync.RWMutex{},
		logger:  logger.With(zap.String("kind", string(kind))),
	}
}

func (s *Store[G]) Kind() domain.Kind {
	return s.kind
}

func (s *Store[G]) Create(game G) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	gameUuid := uuid.NewString()
	for s.entries[gameUuid] != nil {
		gameUuid = uuid.NewString()
	}
	s.entries[gameUuid] = &entry[G]{game: game}
	s.logger.Debug("session created", zap.String("game uuid", gameUuid))
	return gameUuid
}

func (s *Store[G]) lookup(gameUuid string) (*entry[G], error) {
	s.mu.RLock()
	e, ok := s.entries[gameUuid]
	s.mu.RUnlock()
	if !ok {
		return nil, errors.WithMessagef(domain.ErrNotFound, "%s game '%s'", s.kind, gameUuid)
	}
	return e, nil
}

// Get returns a copy of the stored state.
func (s *Store[G]) Get(gameUuid string) (G, error) {
	var result G
	err := s.Update(gameUuid, func(game G) (bool, error) {
		result = game.Clone()
		return false, nil
	})
	return result, err
}

// Update applies op to the stored state under the session's lock.
func (s *Store[G]) Update(gameUuid string, op Op[G]) error {
	e, err := s.lookup(gameUuid)
	if err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.deleted {
		return errors.WithMessagef(domain.ErrNotFound, "%s game '%s' was removed", s.kind, gameUuid)
	}
	done, err := op(e.game)
	if done {
		s.remove(gameUuid, e)
	}
	return err
}

// Delete removes the session. Deleting an absent session is a no-op that
// reports false.
func (s *Store[G]) Delete(gameUuid string) (G, bool) {
	return s.DeleteIf(gameUuid, func(G) bool { return true })
}

// DeleteIf removes the session when pred holds for its current state. The
// check and the removal happen under the session's lock.
func (s *Store[G]) DeleteIf(gameUuid string, pred func(game G) bool) (G, bool) {
	var zero G
	e, err := s.lookup(gameUuid)
	if err != nil {
		return zero, false
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.deleted || !pred(e.game) {
		return zero, false
	}
	s.remove(gameUuid, e)
	return e.game, true
}

// remove must be called with e.mu held.
func (s *Store[G]) remove(gameUuid string, e *entry[G]) {
	e.deleted = true
	s.mu.Lock()
	if s.entries[gameUuid] == e {
		delete(s.entries, gameUuid)
	}
	s.mu.Unlock()
	s.logger.Debug("session removed", zap.String("game uuid", gameUuid))
}

type snapshotEntry[G any] struct {
	uuid  string
	entry *entry[G]
}

func (s *Store[G]) snapshot() []snapshotEntry[G] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]snapshotEntry[G], 0, len(s.entries))
	for gameUuid, e := range s.entries {
		result = append(result, snapshotEntry[G]{uuid: gameUuid, entry: e})
	}
	return result
}

func (s *Store[G]) filter(pred func(game G) bool) []string {
	var result []string
	for _, v := range s.snapshot() {
		v.entry.mu.Lock()
		if !v.entry.deleted && pred(v.entry.game) {
			result = append(result, v.uuid)
		}
		v.entry.mu.Unlock()
	}
	return result
}

// IdleSince lists sessions whose last activity predates deadline.
func (s *Store[G]) IdleSince(deadline time.Time) []string {
	return s.filter(func(game G) bool {
		return game.Metadata().LastActivity.Before(deadline)
	})
}

func (s *Store[G]) FindByParticipant(clientUuid string) []string {
	return s.filter(func(game G) bool {
		_, ok := game.Metadata().MarkerOf(clientUuid)
		return ok
	})
}

func (s *Store[G]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
