package session

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// User identifies the logged-in operator
type User struct {
	ID       string
	Username string
}

// Manager owns the login state and the inactivity deadline for one
// terminal. It replaces what would otherwise be process-global state:
// construct one and hand it to the UI layer.
//
// State machine: LoggedOut -> Login -> LoggedIn; Touch while LoggedIn
// pushes the deadline out; the deadline passing or Logout returns to
// LoggedOut. At most one timer is live at any moment.
type Manager struct {
	mu sync.Mutex

	timeout time.Duration
	storage Storage
	logger  *zap.Logger

	user   *User
	expiry time.Time
	timer  *time.Timer
	gen    uint64

	onExpire func()
}

// NewManager creates a session manager. timeout is the inactivity
// window; storage persists the remembered username.
func NewManager(timeout time.Duration, storage Storage, logger *zap.Logger) *Manager {
	return &Manager{
		timeout: timeout,
		storage: storage,
		logger:  logger,
	}
}

// OnExpire registers the callback fired when the inactivity deadline
// passes. The UI uses it to return to the login screen. It is invoked
// after the state has already moved to LoggedOut, outside the lock.
func (m *Manager) OnExpire(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onExpire = fn
}

// Login moves the session to LoggedIn, remembers the username and
// starts the inactivity timer
func (m *Manager) Login(id, username string) {
	m.mu.Lock()
	m.user = &User{ID: id, Username: username}
	m.resetTimerLocked()
	m.mu.Unlock()

	if err := m.storage.SetLastUsername(username); err != nil {
		m.logger.Warn("failed to persist last username", zap.Error(err))
	}
}

// Logout moves the session to LoggedOut and cancels any pending timer.
// The remembered username is deliberately kept.
func (m *Manager) Logout() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clearLocked()
}

// Touch restarts the inactivity timer. Calls while logged out are
// ignored. Every qualifying UI event (click, keypress, pointer move)
// should land here.
func (m *Manager) Touch() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.user == nil {
		return
	}
	m.resetTimerLocked()
}

// Current returns the logged-in user, if any
func (m *Manager) Current() (User, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.user == nil {
		return User{}, false
	}
	return *m.user, true
}

// Expiry returns the current inactivity deadline, if logged in
func (m *Manager) Expiry() (time.Time, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.user == nil {
		return time.Time{}, false
	}
	return m.expiry, true
}

// LastUsername returns the username remembered from the previous
// session, for pre-filling the login form
func (m *Manager) LastUsername() string {
	username, err := m.storage.LastUsername()
	if err != nil {
		m.logger.Warn("failed to load last username", zap.Error(err))
		return ""
	}
	return username
}

// resetTimerLocked supersedes any live timer with a fresh one. Caller
// holds m.mu. The callback carries the generation current at arm time;
// the generation is bumped before the timer is armed, so the value the
// callback closes over is fixed before the timer goroutine can run.
func (m *Manager) resetTimerLocked() {
	if m.timer != nil {
		m.timer.Stop()
	}

	m.expiry = time.Now().Add(m.timeout)

	m.gen++
	gen := m.gen
	m.timer = time.AfterFunc(m.timeout, func() {
		m.expire(gen)
	})
}

// clearLocked cancels the timer and drops the user. Safe to call in
// any state. Caller holds m.mu.
func (m *Manager) clearLocked() {
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
	m.user = nil
	m.expiry = time.Time{}
}

// expire handles the timer firing. A fired timer that has since been
// superseded or cancelled carries a stale generation and does nothing,
// so a stale expiry can never log out a newer session.
func (m *Manager) expire(gen uint64) {
	m.mu.Lock()
	if gen != m.gen || m.user == nil {
		m.mu.Unlock()
		return
	}

	username := m.user.Username
	m.clearLocked()
	onExpire := m.onExpire
	m.mu.Unlock()

	m.logger.Info("session expired from inactivity", zap.String("username", username))
	if onExpire != nil {
		onExpire()
	}
}
