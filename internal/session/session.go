// Package session owns the authenticated-member state of the client. The
// Manager is the only writer of the persisted profile slot; everything else
// reads through Snapshot, Subscribe or the token the HTTP adapter attaches.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"ev-marketplace/internal/marketerrors"
	"ev-marketplace/internal/models"
	"ev-marketplace/internal/storage"
	"ev-marketplace/utils"

	"github.com/golang-jwt/jwt/v5"
)

// State tags the session lifecycle.
type State int

const (
	Unauthenticated State = iota
	// Pending means a profile was restored from storage but not yet
	// confirmed by the backend.
	Pending
	Authenticated
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Authenticated:
		return "authenticated"
	default:
		return "unauthenticated"
	}
}

// Snapshot is an immutable view of the session.
type Snapshot struct {
	State   State
	Profile *models.Profile
}

// SignedIn reports whether a profile is present (pending or confirmed).
func (s Snapshot) SignedIn() bool { return s.State != Unauthenticated }

// AuthClient is the slice of the Auth endpoints the session needs.
type AuthClient interface {
	Login(ctx context.Context, req models.LoginRequest) (models.AuthResult, error)
	Register(ctx context.Context, req models.RegisterRequest) (models.Profile, error)
	Me(ctx context.Context) (models.Profile, error)
}

// Listener receives every committed snapshot.
type Listener func(Snapshot)

// ErrNotSignedIn is returned by Verify when there is nothing to verify.
var ErrNotSignedIn = errors.New("session: not signed in")

// Manager holds the session state machine.
type Manager struct {
	mu        sync.Mutex
	store     storage.ProfileStore
	auth      AuthClient
	snap      Snapshot
	listeners map[int]Listener
	nextID    int
	now       func() time.Time
}

// New derives the initial state synchronously from the store: a stored
// profile makes the session Pending, anything else Unauthenticated. A
// corrupt blob is cleared.
func New(store storage.ProfileStore, auth AuthClient) *Manager {
	m := &Manager{
		store:     store,
		auth:      auth,
		listeners: make(map[int]Listener),
		now:       time.Now,
	}

	p, err := store.Load()
	switch {
	case err != nil:
		utils.Warn("discarding unreadable stored profile", map[string]any{"error": err.Error()})
		if clearErr := store.Clear(); clearErr != nil {
			utils.Error("could not clear unreadable profile", map[string]any{"error": clearErr.Error()})
		}
	case p != nil:
		m.snap = Snapshot{State: Pending, Profile: p}
	}
	return m
}

// Snapshot returns the current state.
func (m *Manager) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snap.clone()
}

func (s Snapshot) clone() Snapshot {
	if s.Profile == nil {
		return s
	}
	p := *s.Profile
	return Snapshot{State: s.State, Profile: &p}
}

// Subscribe registers fn for future transitions.
func (m *Manager) Subscribe(fn Listener) (unsubscribe func()) {
	m.mu.Lock()
	id := m.nextID
	m.nextID++
	m.listeners[id] = fn
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		delete(m.listeners, id)
		m.mu.Unlock()
	}
}

// commit persists the target state and only then publishes it, under one
// lock. If persisting fails, memory is left untouched so memory and storage
// keep agreeing.
func (m *Manager) commit(next Snapshot) error {
	_, err := m.commitIf(nil, next)
	return err
}

// commitIf is commit guarded by a check of the current state made under the
// same lock. applied is false when guard rejects the current state.
func (m *Manager) commitIf(guard func(cur Snapshot) bool, next Snapshot) (applied bool, err error) {
	m.mu.Lock()
	if guard != nil && !guard(m.snap) {
		m.mu.Unlock()
		return false, nil
	}
	if next.Profile == nil {
		err = m.store.Clear()
	} else {
		err = m.store.Save(next.Profile)
	}
	if err != nil {
		m.mu.Unlock()
		return false, fmt.Errorf("session: persist %s: %w", next.State, err)
	}
	m.snap = next
	snap := next.clone()
	listeners := make([]Listener, 0, len(m.listeners))
	for _, fn := range m.listeners {
		listeners = append(listeners, fn)
	}
	m.mu.Unlock()

	for _, fn := range listeners {
		fn(snap)
	}
	return true, nil
}

// stillPending matches the session Verify started from. A login or logout
// that lands while Auth/me is in flight wins over the verification result.
func stillPending(token string) func(Snapshot) bool {
	return func(cur Snapshot) bool {
		return cur.State == Pending && cur.Profile != nil && cur.Profile.Token == token
	}
}

// Verify confirms the stored profile with the backend. Success makes the
// session Authenticated with the returned profile; an authentication or
// decode failure, or a token that has already expired, resets it. A network
// failure keeps the Pending state so a later call can retry.
func (m *Manager) Verify(ctx context.Context) (Snapshot, error) {
	cur := m.Snapshot()
	if cur.Profile == nil {
		return cur, ErrNotSignedIn
	}

	guard := stillPending(cur.Profile.Token)

	if tokenExpired(cur.Profile.Token, m.now()) {
		utils.Info("stored token expired, signing out", map[string]any{"user_id": cur.Profile.ID})
		if _, err := m.commitIf(guard, Snapshot{State: Unauthenticated}); err != nil {
			return m.Snapshot(), err
		}
		return m.Snapshot(), &marketerrors.HTTPError{Status: 401, Message: "token expired"}
	}

	me, err := m.auth.Me(ctx)
	if err != nil {
		if errors.Is(err, marketerrors.ErrNetwork) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			utils.Warn("session verification deferred", map[string]any{"error": err.Error()})
			return m.Snapshot(), err
		}
		utils.Warn("session verification failed, signing out", map[string]any{"error": err.Error()})
		if _, resetErr := m.commitIf(guard, Snapshot{State: Unauthenticated}); resetErr != nil {
			return m.Snapshot(), errors.Join(err, resetErr)
		}
		return m.Snapshot(), err
	}

	me.Token = cur.Profile.Token
	applied, err := m.commitIf(guard, Snapshot{State: Authenticated, Profile: &me})
	if err != nil {
		return m.Snapshot(), err
	}
	if !applied {
		utils.Info("session changed during verification, result dropped", map[string]any{"user_id": me.ID})
		return m.Snapshot(), nil
	}
	utils.Info("session verified", map[string]any{"user_id": me.ID})
	return m.Snapshot(), nil
}

// Login authenticates and commits the returned profile.
func (m *Manager) Login(ctx context.Context, email, password string) (Snapshot, error) {
	res, err := m.auth.Login(ctx, models.LoginRequest{Email: email, Password: password})
	if err != nil {
		return m.Snapshot(), fmt.Errorf("session: login: %w", err)
	}
	if res.Token == "" {
		return m.Snapshot(), &marketerrors.DecodeError{Err: errors.New("login response has no token")}
	}
	p := res.Profile
	p.Token = res.Token
	if err := m.commit(Snapshot{State: Authenticated, Profile: &p}); err != nil {
		return m.Snapshot(), err
	}
	utils.Info("signed in", map[string]any{"user_id": p.ID})
	return m.Snapshot(), nil
}

// Register creates an account and signs in with the same credentials.
func (m *Manager) Register(ctx context.Context, req models.RegisterRequest) (Snapshot, error) {
	var missing []string
	if req.FullName == "" {
		missing = append(missing, "fullName")
	}
	if req.Email == "" {
		missing = append(missing, "email")
	}
	if req.Password == "" {
		missing = append(missing, "password")
	}
	if len(missing) > 0 {
		return m.Snapshot(), &marketerrors.ValidationError{Fields: missing}
	}

	if _, err := m.auth.Register(ctx, req); err != nil {
		return m.Snapshot(), fmt.Errorf("session: register: %w", err)
	}
	return m.Login(ctx, req.Email, req.Password)
}

// Logout clears memory and storage in one step.
func (m *Manager) Logout() error {
	if err := m.reset(); err != nil {
		return err
	}
	utils.Info("signed out", nil)
	return nil
}

func (m *Manager) reset() error {
	return m.commit(Snapshot{State: Unauthenticated})
}

// tokenExpired inspects the exp claim without verifying the signature; the
// backend remains the authority, this only avoids a doomed round-trip.
func tokenExpired(token string, now time.Time) bool {
	if token == "" {
		return false
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return !now.Before(exp.Time)
}
