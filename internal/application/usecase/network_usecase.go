// internal/application/usecase/network_usecase.go
package usecase

import (
	"log"
	"sync"
	"time"

	"tokencreator/internal/domain/network"
)

// NetworkSwitchNotice is how long Switching reports true after a change.
const NetworkSwitchNotice = 800 * time.Millisecond

// NetworkSelector holds the chosen cluster. It does not know about token
// creation; AppStateMachine refuses changes while one is in flight.
type NetworkSelector struct {
	mu         sync.Mutex
	current    network.Network
	switchedAt time.Time

	now func() time.Time
}

func NewNetworkSelector(initial network.Network) *NetworkSelector {
	if !initial.Valid() {
		initial = network.Default
	}
	return &NetworkSelector{current: initial, now: time.Now}
}

// Select switches to n and reports whether anything changed.
func (s *NetworkSelector) Select(n network.Network) (bool, error) {
	if !n.Valid() {
		return false, network.ErrUnknownNetwork
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == n {
		return false, nil
	}
	log.Printf("[network] switching %s -> %s", s.current, n)
	s.current = n
	s.switchedAt = s.now()
	return true, nil
}

func (s *NetworkSelector) Current() network.Network {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Switching is the short-lived acknowledgement shown after a change.
func (s *NetworkSelector) Switching() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.switchedAt.IsZero() {
		return false
	}
	return s.now().Sub(s.switchedAt) < NetworkSwitchNotice
}
