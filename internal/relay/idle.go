package relay

import (
	"sync"
	"time"
)

// IdleTracker tracks server activity and determines when the server is idle.
// A server with open subscriptions is never idle.
type IdleTracker struct {
	mu           sync.Mutex
	lastActivity time.Time
	idleTimeout  time.Duration
	streams      int
	shutdownChan chan struct{}
	stopChan     chan struct{}
	stopOnce     sync.Once
	tick         time.Duration
}

// NewIdleTracker creates a new idle tracker with the specified timeout.
// If timeout is 0, the tracker is disabled (never triggers shutdown).
func NewIdleTracker(timeout time.Duration) *IdleTracker {
	return &IdleTracker{
		lastActivity: time.Now(),
		idleTimeout:  timeout,
		shutdownChan: make(chan struct{}),
		stopChan:     make(chan struct{}),
		tick:         30 * time.Second,
	}
}

// Touch updates the last activity time.
func (t *IdleTracker) Touch() {
	t.mu.Lock()
	t.lastActivity = time.Now()
	t.mu.Unlock()
}

func (t *IdleTracker) StreamStarted() {
	t.mu.Lock()
	t.streams++
	t.lastActivity = time.Now()
	t.mu.Unlock()
}

func (t *IdleTracker) StreamEnded() {
	t.mu.Lock()
	t.streams--
	t.lastActivity = time.Now()
	t.mu.Unlock()
}

// IsEnabled returns true if idle timeout is enabled.
func (t *IdleTracker) IsEnabled() bool {
	return t.idleTimeout > 0
}

// IdleTimeout returns the configured idle timeout.
func (t *IdleTracker) IdleTimeout() time.Duration {
	return t.idleTimeout
}

// ShutdownChan returns a channel that will be closed when idle timeout is reached.
func (t *IdleTracker) ShutdownChan() <-chan struct{} {
	return t.shutdownChan
}

// Start begins monitoring for idle timeout.
// This should be called in a goroutine.
func (t *IdleTracker) Start() {
	if !t.IsEnabled() {
		return
	}

	ticker := time.NewTicker(t.tick)
	defer ticker.Stop()

	for {
		select {
		case <-t.stopChan:
			return
		case <-ticker.C:
		}

		if t.idle() {
			close(t.shutdownChan)
			return
		}
	}
}

func (t *IdleTracker) idle() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.streams == 0 && time.Since(t.lastActivity) >= t.idleTimeout
}

// Stop stops the idle tracker.
func (t *IdleTracker) Stop() {
	t.stopOnce.Do(func() { close(t.stopChan) })
}
