package inmemory

import (
	"log/slog"
	"sync"

	"github.com/Sumit-Saurabh98/SyncWatch/internal/domain"
	"github.com/Sumit-Saurabh98/SyncWatch/internal/registry"
)

type entry struct {
	userID string
	sender domain.Sender
}

// Repo maps live connection ids to the user identity and outbound sender
// attached to each. It owns no room knowledge.
type Repo struct {
	entries map[string]entry
	logger  *slog.Logger
	mu      sync.RWMutex
}

func NewRepo(logger *slog.Logger) *Repo {
	return &Repo{
		entries: make(map[string]entry),
		logger:  logger,
	}
}

func (r *Repo) Register(connID, userID string, sender domain.Sender) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[connID]; ok {
		r.logger.Info("failed to register connection", "conn_id", connID, "error", registry.ErrAlreadyExists)
		return registry.ErrAlreadyExists
	}

	r.entries[connID] = entry{userID: userID, sender: sender}

	r.logger.Debug("connection registered", "conn_id", connID, "user_id", userID)
	return nil
}

func (r *Repo) IdentityOf(connID string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[connID]
	if !ok {
		return "", registry.ErrNotFound
	}

	return e.userID, nil
}

func (r *Repo) SenderOf(connID string) (domain.Sender, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[connID]
	if !ok {
		return nil, registry.ErrNotFound
	}

	return e.sender, nil
}

func (r *Repo) Unregister(connID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[connID]; !ok {
		r.logger.Info("failed to unregister connection", "conn_id", connID, "error", registry.ErrNotFound)
		return registry.ErrNotFound
	}

	delete(r.entries, connID)

	r.logger.Debug("connection unregistered", "conn_id", connID)
	return nil
}
