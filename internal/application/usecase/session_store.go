// internal/application/usecase/session_store.go
package usecase

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

var ErrSessionNotFound = errors.New("app: session not found")

// SessionStore keeps one AppStateMachine per presentation client.
type SessionStore struct {
	newMachine func() *AppStateMachine
	idleTTL    time.Duration

	mu       sync.Mutex
	machines map[string]*AppStateMachine
}

// NewSessionStore builds machines with factory. idleTTL <= 0 disables sweeping.
func NewSessionStore(factory func() *AppStateMachine, idleTTL time.Duration) *SessionStore {
	return &SessionStore{
		newMachine: factory,
		idleTTL:    idleTTL,
		machines:   make(map[string]*AppStateMachine),
	}
}

func (s *SessionStore) Create() (string, *AppStateMachine) {
	id := uuid.NewString()
	m := s.newMachine()

	s.mu.Lock()
	s.machines[id] = m
	s.mu.Unlock()

	log.Printf("[session] created id=%s", id)
	return id, m
}

func (s *SessionStore) Get(id string) (*AppStateMachine, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrSessionNotFound
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.machines[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return m, nil
}

// Delete disconnects the wallet and forgets the session. Sessions with a
// creation in flight cannot be deleted.
func (s *SessionStore) Delete(ctx context.Context, id string) error {
	m, err := s.Get(id)
	if err != nil {
		return err
	}
	if err := m.Close(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	delete(s.machines, id)
	s.mu.Unlock()

	log.Printf("[session] deleted id=%s", id)
	return nil
}

func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.machines)
}

// Sweep drops sessions idle for longer than the TTL and returns how many.
func (s *SessionStore) Sweep(ctx context.Context) int {
	if s.idleTTL <= 0 {
		return 0
	}

	s.mu.Lock()
	var stale []string
	for id, m := range s.machines {
		if m.Idle() > s.idleTTL {
			stale = append(stale, id)
		}
	}
	s.mu.Unlock()

	n := 0
	for _, id := range stale {
		if err := s.Delete(ctx, id); err != nil {
			log.Printf("[session] sweep id=%s skipped: %v", id, err)
			continue
		}
		n++
	}
	if n > 0 {
		log.Printf("[session] swept %d idle session(s)", n)
	}
	return n
}

// RunSweeper calls Sweep every interval until ctx is done.
func (s *SessionStore) RunSweeper(ctx context.Context, interval time.Duration) {
	if s.idleTTL <= 0 || interval <= 0 {
		return
	}
	t := time.NewTicker(interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.Sweep(ctx)
		}
	}
}
