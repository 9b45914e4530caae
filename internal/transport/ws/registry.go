package ws

import (
	"sync"

	"github.com/kiryu-dev/board-games/internal/domain"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var errDuplicateClient = errors.New("client is already connected")

// registry tracks the live connections by client id and delivers the events
// of the use cases to them.
type registry struct {
	clients map[string]domain.Client
	mu      *sync.RWMutex
	logger  *zap.Logger
}

func NewRegistry(logger *zap.Logger) *registry {
	return &registry{
		clients: make(map[string]domain.Client),
		mu:      &sync.RWMutex{},
		logger:  logger,
	}
}

func (r *registry) add(c domain.Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.clients[c.Uuid()]; ok {
		return errors.WithMessagef(errDuplicateClient, "client '%s'", c.Uuid())
	}
	r.clients[c.Uuid()] = c
	return nil
}

// remove reports whether c was registered; only the first call for a
// connection gets true.
func (r *registry) remove(c domain.Client) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.clients[c.Uuid()] != c {
		return false
	}
	delete(r.clients, c.Uuid())
	return true
}

func (r *registry) connected(clientUuid string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.clients[clientUuid]
	return ok
}

func (r *registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.clients)
}

func (r *registry) closeAll() {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.clients {
		c.Close()
	}
}

func (r *registry) Notify(clientUuid string, msg domain.Message) error {
	r.mu.RLock()
	c, ok := r.clients[clientUuid]
	r.mu.RUnlock()
	if !ok {
		return errors.WithMessagef(domain.ErrClientGone, "client '%s'", clientUuid)
	}
	if err := c.WriteMessage(msg); err != nil {
		return errors.WithMessagef(err, "notify client '%s'", clientUuid)
	}
	return nil
}
