// internal/application/usecase/app_state.go
package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"tokencreator/internal/domain/network"
	tokendom "tokencreator/internal/domain/token"
	walletdom "tokencreator/internal/domain/wallet"
)

// Phase is the presentation state.
type Phase string

const (
	PhaseDisconnected Phase = "disconnected"
	PhaseConnected    Phase = "connected"
	PhaseCreating     Phase = "creating"
	PhaseSuccess      Phase = "success"
)

const defaultCreateTimeout = 90 * time.Second

// Guard rejections. These are the only errors intents return; domain failures
// end up in Snapshot.Error.
var (
	ErrInvalidTransition = errors.New("app: intent not allowed in the current phase")
	ErrCreationInFlight  = errors.New("app: a token creation is already in progress")
	ErrNetworkLocked     = errors.New("app: network cannot change while a token is being created")
	ErrIntentInFlight    = errors.New("app: another wallet request is still pending")
)

// ErrorState is the message shown to the user after a failed intent.
type ErrorState struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// Snapshot is everything the presentation needs.
type Snapshot struct {
	Phase            Phase              `json:"phase"`
	Session          *walletdom.Session `json:"session"`
	Network          network.Network    `json:"network"`
	NetworkSwitching bool               `json:"networkSwitching"`
	Error            *ErrorState        `json:"error"`
	Result           *tokendom.Result   `json:"result"`
}

type tokenCreator interface {
	Create(
		ctx context.Context,
		req tokendom.Request,
		session walletdom.Session,
		signer walletdom.Provider,
		n network.Network,
	) (tokendom.Result, error)
}

// AppStateMachine is the single source of truth for one user.
type AppStateMachine struct {
	conn          *ConnectionController
	net           *NetworkSelector
	creator       tokenCreator
	createTimeout time.Duration

	// serializes connect/disconnect
	opMu sync.Mutex

	mu       sync.Mutex
	phase    Phase
	errState *ErrorState
	result   *tokendom.Result
	inflight chan struct{}
	touched  time.Time

	now func() time.Time
}

// NewAppStateMachine starts in PhaseDisconnected. createTimeout <= 0 uses 90s.
func NewAppStateMachine(
	conn *ConnectionController,
	net *NetworkSelector,
	creator tokenCreator,
	createTimeout time.Duration,
) *AppStateMachine {
	if createTimeout <= 0 {
		createTimeout = defaultCreateTimeout
	}
	m := &AppStateMachine{
		conn:          conn,
		net:           net,
		creator:       creator,
		createTimeout: createTimeout,
		phase:         PhaseDisconnected,
		now:           time.Now,
	}
	m.touched = m.now()
	return m
}

// Connect: disconnected -> connected, or stays disconnected with an error.
func (m *AppStateMachine) Connect(ctx context.Context, t walletdom.Type) error {
	if !m.opMu.TryLock() {
		return ErrIntentInFlight
	}
	defer m.opMu.Unlock()

	if _, ok := walletdom.Describe(t); !ok {
		return walletdom.ErrUnknownType
	}

	m.mu.Lock()
	if m.phase != PhaseDisconnected {
		m.mu.Unlock()
		return ErrInvalidTransition
	}
	m.mu.Unlock()

	_, err := m.conn.Connect(ctx, t)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.touched = m.now()

	if err != nil {
		m.errState = newErrorState(err)
		return nil
	}
	m.phase = PhaseConnected
	m.errState = nil
	m.result = nil
	return nil
}

// Disconnect: connected|success -> disconnected. Local state is cleared even
// if the wallet fails to disconnect.
func (m *AppStateMachine) Disconnect(ctx context.Context) error {
	if !m.opMu.TryLock() {
		return ErrIntentInFlight
	}
	defer m.opMu.Unlock()

	m.mu.Lock()
	switch m.phase {
	case PhaseConnected, PhaseSuccess:
	default:
		m.mu.Unlock()
		return ErrInvalidTransition
	}
	m.phase = PhaseDisconnected
	m.errState = nil
	m.result = nil
	m.touched = m.now()
	m.mu.Unlock()

	if err := m.conn.Disconnect(ctx); err != nil && !errors.Is(err, walletdom.ErrNoActiveSession) {
		log.Printf("[app] disconnect: %v", err)
	}
	return nil
}

// SelectNetwork is refused while a creation is in flight.
func (m *AppStateMachine) SelectNetwork(n network.Network) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.phase == PhaseCreating {
		return ErrNetworkLocked
	}
	if _, err := m.net.Select(n); err != nil {
		return err
	}
	m.touched = m.now()
	return nil
}

// Submit gates connected -> creating and runs the orchestrator in the
// background. The returned channel closes once the phase has left creating.
// The run is detached from ctx cancellation and bounded by the create timeout.
func (m *AppStateMachine) Submit(ctx context.Context, req tokendom.Request) (<-chan struct{}, error) {
	m.mu.Lock()
	switch m.phase {
	case PhaseConnected:
	case PhaseCreating:
		m.mu.Unlock()
		return nil, ErrCreationInFlight
	default:
		m.mu.Unlock()
		return nil, ErrInvalidTransition
	}

	session, _ := m.conn.Session()
	signer := m.conn.Provider()
	n := m.net.Current()

	done := make(chan struct{})
	m.phase = PhaseCreating
	m.errState = nil
	m.inflight = done
	m.touched = m.now()
	m.mu.Unlock()

	runCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), m.createTimeout)
	go func() {
		defer close(done)
		defer cancel()

		res, err := m.creator.Create(runCtx, req, session, signer, n)
		if err != nil && runCtx.Err() != nil && !errors.Is(err, tokendom.ErrNetworkUnreachable) {
			err = &tokendom.NetworkError{Op: "token creation", Err: runCtx.Err()}
		}
		m.finishCreate(res, err)
	}()

	return done, nil
}

func (m *AppStateMachine) finishCreate(res tokendom.Result, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.inflight = nil
	m.touched = m.now()
	if err != nil {
		m.phase = PhaseConnected
		m.result = nil
		m.errState = newErrorState(err)
		return
	}
	m.phase = PhaseSuccess
	m.result = &res
	m.errState = nil
}

// CreateAnother: success -> connected, result dropped, session kept.
func (m *AppStateMachine) CreateAnother() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.phase != PhaseSuccess {
		return ErrInvalidTransition
	}
	m.phase = PhaseConnected
	m.result = nil
	m.errState = nil
	m.touched = m.now()
	return nil
}

// Snapshot copies the current state.
func (m *AppStateMachine) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := Snapshot{
		Phase:            m.phase,
		Network:          m.net.Current(),
		NetworkSwitching: m.net.Switching(),
	}
	if sess, ok := m.conn.Session(); ok && m.phase != PhaseDisconnected {
		s.Session = &sess
	}
	if m.errState != nil {
		e := *m.errState
		s.Error = &e
	}
	if m.result != nil {
		r := *m.result
		s.Result = &r
	}
	return s
}

// Wait blocks until no creation is in flight or ctx ends.
func (m *AppStateMachine) Wait(ctx context.Context) error {
	m.mu.Lock()
	done := m.inflight
	m.mu.Unlock()

	if done == nil {
		return nil
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Idle reports how long the machine has gone without an intent. Machines
// with a creation in flight are never idle.
func (m *AppStateMachine) Idle() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.phase == PhaseCreating {
		return 0
	}
	return m.now().Sub(m.touched)
}

// Close disconnects the wallet if one is connected.
func (m *AppStateMachine) Close(ctx context.Context) error {
	m.mu.Lock()
	phase := m.phase
	m.mu.Unlock()

	switch phase {
	case PhaseCreating:
		return ErrCreationInFlight
	case PhaseDisconnected:
		return nil
	}
	return m.Disconnect(ctx)
}

func newErrorState(err error) *ErrorState {
	return &ErrorState{Kind: errorKind(err), Message: userMessage(err)}
}

func errorKind(err error) string {
	switch {
	case errors.Is(err, walletdom.ErrWalletNotFound):
		return "wallet_not_found"
	case errors.Is(err, walletdom.ErrConnectionRejected):
		return "connection_rejected"
	case errors.Is(err, tokendom.ErrSessionExpired):
		return "session_expired"
	case errors.Is(err, tokendom.ErrValidation):
		return "validation"
	case errors.Is(err, tokendom.ErrNetworkUnreachable):
		return "network_unreachable"
	case errors.Is(err, tokendom.ErrUserRejectedSignature):
		return "user_rejected_signature"
	case errors.Is(err, tokendom.ErrTransactionFailed):
		return "transaction_failed"
	}
	return "internal"
}

// userMessage drops the package prefix of bare sentinels.
func userMessage(err error) string {
	msg := err.Error()
	for _, p := range []string{"token: ", "wallet: "} {
		msg = strings.TrimPrefix(msg, p)
	}
	return msg
}
