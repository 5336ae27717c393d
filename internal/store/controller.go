package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/inovacc/fieldlog/internal/cache"
	"github.com/inovacc/fieldlog/internal/migrate"
	"github.com/inovacc/fieldlog/internal/model"
	"github.com/inovacc/fieldlog/internal/remote"
)

// ErrClosed is returned by Mutate after Close.
var ErrClosed = errors.New("store: controller closed")

// Cache is the durable copy of the document.
type Cache interface {
	// Read returns the stored bytes, or cache.ErrNotFound before the first write.
	Read() (json.RawMessage, error)
	Write(doc model.Document) error
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger used by the controller and its mirror.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithMirrorOptions passes options to the remote mirror.
func WithMirrorOptions(opts ...remote.Option) Option {
	return func(c *Controller) {
		c.mirrorOpts = append(c.mirrorOpts, opts...)
	}
}

// WithObserver registers fn to receive a copy of every new document. fn runs
// under the controller lock and must not call back into the controller.
func WithObserver(fn func(doc model.Document, origin Origin)) Option {
	return func(c *Controller) {
		c.observe = fn
	}
}

// Origin tells where a document transition came from.
type Origin string

const (
	OriginLoad   Origin = "load"
	OriginLocal  Origin = "local"
	OriginRemote Origin = "remote"
)

// Controller serializes every document transition.
type Controller struct {
	cache      Cache
	mirror     *remote.Mirror
	mirrorOpts []remote.Option
	logger     *slog.Logger
	observe    func(model.Document, Origin)

	// mu guards the document. Lock order is mu, then the mirror's own lock.
	mu     sync.Mutex
	doc    model.Document
	closed bool

	// life serializes mirror restarts and is never taken under mu.
	life sync.Mutex
	// active is the configuration the mirror serves. Written holding both
	// life and mu.
	active string
}

// New creates a controller holding the default document until Initialize.
func New(c Cache, opts ...Option) *Controller {
	ctrl := &Controller{
		cache:  c,
		logger: slog.Default(),
		doc:    model.DefaultDocument(),
	}

	for _, opt := range opts {
		opt(ctrl)
	}

	mirrorOpts := append([]remote.Option{remote.WithLogger(ctrl.logger)}, ctrl.mirrorOpts...)
	ctrl.mirror = remote.New(ctrl, mirrorOpts...)

	return ctrl
}

// Initialize loads the cached document, migrates it, persists the migrated
// shape and starts the mirror when a connection configuration is set. A bad
// configuration only leaves the controller local; cache failures are
// returned.
func (c *Controller) Initialize(ctx context.Context) (model.Document, error) {
	if err := ctx.Err(); err != nil {
		return model.Document{}, err
	}

	raw, err := c.cache.Read()
	if err != nil && !errors.Is(err, cache.ErrNotFound) {
		return model.Document{}, fmt.Errorf("store: load document: %w", err)
	}

	doc := migrate.Migrate(raw)

	c.mu.Lock()

	if c.closed {
		c.mu.Unlock()
		return model.Document{}, ErrClosed
	}

	if err := c.cache.Write(doc); err != nil {
		c.mu.Unlock()
		return model.Document{}, fmt.Errorf("store: persist document: %w", err)
	}

	c.doc = doc
	c.notify(OriginLoad)
	out := doc.Clone()
	c.mu.Unlock()

	c.logger.Info("document loaded",
		"technicians", len(doc.Technicians),
		"projects", len(doc.Projects),
		"vehicles", len(doc.Vehicles),
		"reports", len(doc.Reports),
		"remote", doc.ConnectionConfig != "",
	)

	c.syncMirror()

	return out, nil
}

// Mutate applies fn to a copy of the current document. The result is
// written to the cache, becomes current and is pushed when connected. On any
// error the current document is unchanged.
func (c *Controller) Mutate(fn model.Mutation) (model.Document, error) {
	c.mu.Lock()

	if c.closed {
		c.mu.Unlock()
		return model.Document{}, ErrClosed
	}

	next, err := fn(c.doc.Clone())
	if err != nil {
		c.mu.Unlock()
		return model.Document{}, err
	}

	next = next.Clone()

	if err := c.cache.Write(next); err != nil {
		c.mu.Unlock()
		return model.Document{}, fmt.Errorf("store: persist document: %w", err)
	}

	reconfigured := next.ConnectionConfig != c.doc.ConnectionConfig
	c.doc = next
	c.notify(OriginLocal)

	// Until syncMirror catches up the mirror still serves the old
	// configuration, which must not receive this document.
	if c.mirrorCurrent() {
		c.mirror.Push(next.Clone())
	}

	out := next.Clone()
	c.mu.Unlock()

	if reconfigured {
		c.syncMirror()
	}

	return out, nil
}

// RemoteUpdate replaces the document with a remote snapshot, keeping the
// local connection configuration.
func (c *Controller) RemoteUpdate(doc model.Document) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || !c.mirrorCurrent() {
		c.logger.Debug("dropping snapshot from a retired mirror")
		return
	}

	doc = keepLocalConfig(doc, c.doc)

	if err := c.cache.Write(doc); err != nil {
		c.logger.Error("remote snapshot not applied", "error", err)
		return
	}

	c.doc = doc
	c.notify(OriginRemote)

	c.logger.Info("document replaced by remote snapshot",
		"reports", len(doc.Reports),
		"technicians", len(doc.Technicians),
	)
}

// RemoteEmpty seeds the remote with the current document.
func (c *Controller) RemoteEmpty() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || !c.mirrorCurrent() {
		return
	}

	if c.mirror.Push(c.doc.Clone()) {
		c.logger.Info("seeding remote document with local copy")
	}
}

// notify hands the current document to the observer. Callers hold mu.
func (c *Controller) notify(origin Origin) {
	if c.observe != nil {
		c.observe(c.doc.Clone(), origin)
	}
}

// mirrorCurrent reports whether the mirror serves the document's current
// configuration. Callers hold mu.
func (c *Controller) mirrorCurrent() bool {
	return c.doc.ConnectionConfig == c.active
}

// keepLocalConfig returns remote with local's connection configuration.
func keepLocalConfig(remote, local model.Document) model.Document {
	remote.ConnectionConfig = local.ConnectionConfig
	return remote
}

// Snapshot returns a copy of the current document.
func (c *Controller) Snapshot() model.Document {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.doc.Clone()
}

// Status returns cloud while the mirror is connected and local otherwise.
func (c *Controller) Status() remote.Status {
	return c.mirror.Status()
}

// State returns the mirror state.
func (c *Controller) State() remote.State {
	return c.mirror.State()
}

// LastSyncError returns why the mirror is not connected, if it failed.
func (c *Controller) LastSyncError() error {
	return c.mirror.LastError()
}

// WaitSynced blocks until the mirror has delivered its first snapshot or
// given up connecting. It returns immediately when no mirror runs.
func (c *Controller) WaitSynced(ctx context.Context) error {
	select {
	case <-c.mirror.Settled():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close flushes queued pushes within ctx and stops the mirror. The mirror is
// stopped even when the flush times out.
func (c *Controller) Close(ctx context.Context) error {
	flushErr := c.mirror.Flush(ctx)

	c.life.Lock()
	defer c.life.Unlock()

	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()

	c.mirror.Stop()

	if flushErr != nil {
		return fmt.Errorf("store: flush pending pushes: %w", flushErr)
	}

	return nil
}

// syncMirror starts, restarts or stops the mirror to match the current
// connection configuration.
func (c *Controller) syncMirror() {
	c.life.Lock()
	defer c.life.Unlock()

	c.mu.Lock()
	stale := !c.closed && c.doc.ConnectionConfig != c.active
	c.mu.Unlock()

	if !stale {
		return
	}

	// Once Stop returns the old subscription delivers nothing more.
	c.mirror.Stop()

	c.mu.Lock()
	cfg := c.doc.ConnectionConfig
	c.active = cfg
	c.mu.Unlock()

	if cfg == "" {
		c.logger.Info("remote mirror disabled, running local only")
		return
	}

	if err := c.mirror.Start(cfg); err != nil {
		c.logger.Warn("remote mirror not started, running local only", "error", err)
	}
}
