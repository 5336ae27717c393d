package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	v1 "github.com/inovacc/fieldlog/internal/api/v1"
	"github.com/inovacc/fieldlog/internal/migrate"
	"github.com/inovacc/fieldlog/internal/model"
)

const (
	defaultPushTimeout = 10 * time.Second
	defaultQueueSize   = 32
)

// Listener receives remote snapshots. Calls come from the mirror's
// subscription goroutine, one at a time, and never after Stop returns.
type Listener interface {
	// RemoteUpdate delivers a remote document, already migrated.
	RemoteUpdate(doc model.Document)

	// RemoteEmpty reports that the relay holds no document yet.
	RemoteEmpty()
}

// Option configures a Mirror.
type Option func(*Mirror)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Mirror) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithDialOptions appends gRPC dial options to every connection.
func WithDialOptions(opts ...grpc.DialOption) Option {
	return func(m *Mirror) {
		m.dialOpts = append(m.dialOpts, opts...)
	}
}

// WithPushTimeout bounds each push.
func WithPushTimeout(d time.Duration) Option {
	return func(m *Mirror) {
		if d > 0 {
			m.pushTimeout = d
		}
	}
}

// WithQueueSize sets how many pushes may wait for the relay.
func WithQueueSize(n int) Option {
	return func(m *Mirror) {
		if n > 0 {
			m.queueSize = n
		}
	}
}

// Mirror keeps the document in sync with a relay.
type Mirror struct {
	listener    Listener
	origin      string
	logger      *slog.Logger
	dialOpts    []grpc.DialOption
	pushTimeout time.Duration
	queueSize   int

	// life serializes Start and Stop
	life sync.Mutex

	mu      sync.Mutex
	state   State
	lastErr error
	sub     *subscription
	seq     uint64
}

// pushItem is a document to push, or a barrier when doc is nil.
type pushItem struct {
	doc  *model.Document
	seq  uint64
	done chan struct{}
}

type subscription struct {
	cfg    Config
	conn   *grpc.ClientConn
	client v1.DocumentServiceClient

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	queue  chan pushItem

	// lastQueued is the sequence of the newest push queued on this
	// subscription, guarded by Mirror.mu
	lastQueued uint64

	settled    chan struct{}
	settleOnce sync.Once
}

// settle marks the first snapshot as applied, or the subscription as over.
func (s *subscription) settle() {
	s.settleOnce.Do(func() { close(s.settled) })
}

// New creates a disconnected mirror that reports snapshots to listener.
func New(listener Listener, opts ...Option) *Mirror {
	m := &Mirror{
		listener:    listener,
		origin:      uuid.NewString(),
		logger:      slog.Default(),
		pushTimeout: defaultPushTimeout,
		queueSize:   defaultQueueSize,
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Start tears down any current subscription and connects with the given
// configuration. It returns once the connection attempt is underway; the
// health check and subscription continue in the background. An empty
// configuration leaves the mirror disconnected and returns ErrNoConfig.
func (m *Mirror) Start(raw string) error {
	m.life.Lock()
	defer m.life.Unlock()

	m.stop()

	cfg, err := ParseConfig(raw)
	if err != nil {
		if !errors.Is(err, ErrNoConfig) {
			m.setError(err)
		}

		return err
	}

	dialOpts := append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	}, m.dialOpts...)

	conn, err := grpc.NewClient(cfg.Endpoint, dialOpts...)
	if err != nil {
		err = &TransportError{Op: "dial", Err: err}
		m.setError(err)

		return err
	}

	ctx, cancel := context.WithCancel(context.Background())

	s := &subscription{
		cfg:     cfg,
		conn:    conn,
		client:  v1.NewDocumentServiceClient(conn),
		ctx:     ctx,
		cancel:  cancel,
		queue:   make(chan pushItem, m.queueSize),
		settled: make(chan struct{}),
	}

	m.mu.Lock()
	m.sub = s
	m.state = StateConnecting
	m.lastErr = nil
	m.mu.Unlock()

	m.logger.Info("remote mirror connecting", "endpoint", cfg.Endpoint, "document", cfg.Ref().Key())

	s.wg.Add(2)

	go m.subscribe(s)
	go m.pushLoop(s)

	return nil
}

// Stop ends the current subscription and waits for its goroutines. No
// listener call happens after Stop returns. Stop is idempotent.
func (m *Mirror) Stop() {
	m.life.Lock()
	defer m.life.Unlock()

	m.stop()
}

func (m *Mirror) stop() {
	m.mu.Lock()
	s := m.sub
	m.sub = nil
	m.state = StateDisconnected
	m.lastErr = nil
	m.mu.Unlock()

	if s == nil {
		return
	}

	s.cancel()
	s.wg.Wait()
	s.settle()

	if err := s.conn.Close(); err != nil {
		m.logger.Debug("close relay connection", "error", err)
	}

	m.logger.Info("remote mirror stopped")
}

// Push queues doc for the relay. It reports false, without blocking, when
// the mirror is not connected or the queue is full.
func (m *Mirror) Push(doc model.Document) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.sub == nil || m.state != StateConnected {
		return false
	}

	seq := m.seq + 1

	select {
	case m.sub.queue <- pushItem{doc: &doc, seq: seq}:
		m.seq = seq
		m.sub.lastQueued = seq

		return true
	default:
		m.logger.Warn("remote push queue full, dropping push", "queued", len(m.sub.queue))
		return false
	}
}

// Flush waits until every push queued before the call has been attempted.
func (m *Mirror) Flush(ctx context.Context) error {
	m.mu.Lock()
	s := m.sub
	m.mu.Unlock()

	if s == nil {
		return nil
	}

	done := make(chan struct{})

	select {
	case s.queue <- pushItem{done: done}:
	case <-s.ctx.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case <-done:
		return nil
	case <-s.ctx.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Settled is closed once the first snapshot of the current subscription has
// been delivered, or the subscription has ended. Without a subscription the
// returned channel is already closed.
func (m *Mirror) Settled() <-chan struct{} {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.sub == nil {
		ch := make(chan struct{})
		close(ch)

		return ch
	}

	return m.sub.settled
}

// State returns the connection state.
func (m *Mirror) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.state
}

// Status returns cloud while connected and local otherwise.
func (m *Mirror) Status() Status {
	return m.State().Status()
}

// LastError returns the error that moved the mirror to StateError.
func (m *Mirror) LastError() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.lastErr
}

// Origin returns the identifier this mirror writes with.
func (m *Mirror) Origin() string {
	return m.origin
}

func (m *Mirror) setError(err error) {
	m.mu.Lock()
	m.state = StateError
	m.lastErr = err
	m.mu.Unlock()

	m.logger.Warn("remote mirror unavailable, staying local", "error", err)
}

// fail records err for s unless s has already been replaced or stopped.
func (m *Mirror) fail(s *subscription, err error) {
	m.mu.Lock()
	current := m.sub == s && s.ctx.Err() == nil
	if current {
		m.state = StateError
		m.lastErr = err
	}
	m.mu.Unlock()

	s.cancel()

	if current {
		m.logger.Warn("remote mirror disconnected, staying local", "error", err)
	}
}

func (m *Mirror) connected(s *subscription) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.sub != s || s.ctx.Err() != nil {
		return false
	}

	m.state = StateConnected

	return true
}

func (m *Mirror) subscribe(s *subscription) {
	defer s.wg.Done()
	defer s.settle()

	if err := m.checkHealth(s); err != nil {
		m.fail(s, &TransportError{Op: "health check", Err: err})
		return
	}

	stream, err := s.client.Subscribe(s.ctx, &v1.SubscribeRequest{Ref: s.cfg.Ref(), Origin: m.origin})
	if err != nil {
		m.fail(s, &TransportError{Op: "subscribe", Err: err})
		return
	}

	if !m.connected(s) {
		return
	}

	m.logger.Info("remote mirror connected", "endpoint", s.cfg.Endpoint)

	for {
		snap, err := stream.Recv()
		if err != nil {
			if s.ctx.Err() == nil {
				m.fail(s, &TransportError{Op: "receive snapshot", Err: err})
			}

			return
		}

		if s.ctx.Err() != nil {
			return
		}

		m.deliver(s, snap)
		s.settle()
	}
}

func (m *Mirror) checkHealth(s *subscription) error {
	ctx, cancel := context.WithTimeout(s.ctx, s.cfg.ConnectTimeout())
	defer cancel()

	resp, err := healthpb.NewHealthClient(s.conn).Check(ctx, &healthpb.HealthCheckRequest{})
	if err != nil {
		return err
	}

	if resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
		return fmt.Errorf("relay is %s", resp.GetStatus())
	}

	return nil
}

func (m *Mirror) deliver(s *subscription, snap *v1.Snapshot) {
	if !snap.GetExists() {
		m.logger.Info("remote document does not exist yet")
		m.listener.RemoteEmpty()

		return
	}

	if m.superseded(s, snap) {
		m.logger.Debug("skipping echo of an older own push",
			"revision", snap.GetRevision(),
			"sequence", snap.GetSequence(),
		)

		return
	}

	m.logger.Debug("remote snapshot received",
		"revision", snap.GetRevision(),
		"own", snap.GetOrigin() == m.origin,
		"bytes", len(snap.GetData()),
	)

	m.listener.RemoteUpdate(migrate.Migrate(snap.GetData()))
}

// superseded reports whether snap echoes one of this mirror's pushes while a
// later push is queued on s. That later push reaches the relay after the
// echoed one, so applying the echo would only roll local state back.
func (m *Mirror) superseded(s *subscription, snap *v1.Snapshot) bool {
	if snap.GetOrigin() != m.origin {
		return false
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	return snap.GetSequence() < s.lastQueued
}

func (m *Mirror) pushLoop(s *subscription) {
	defer s.wg.Done()

	for {
		select {
		case <-s.ctx.Done():
			return
		case item := <-s.queue:
			if item.doc == nil {
				close(item.done)
				continue
			}

			m.push(s, *item.doc, item.seq)
		}
	}
}

func (m *Mirror) push(s *subscription, doc model.Document, seq uint64) {
	data, err := json.Marshal(doc)
	if err != nil {
		m.logger.Error("encode document for push", "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(s.ctx, m.pushTimeout)
	defer cancel()

	resp, err := s.client.Push(ctx, &v1.PushRequest{Ref: s.cfg.Ref(), Origin: m.origin, Data: data, Sequence: seq})
	if err != nil {
		if s.ctx.Err() == nil {
			m.logger.Warn("remote push failed", "error", &TransportError{Op: "push", Err: err})
		}

		return
	}

	m.logger.Debug("document pushed", "revision", resp.GetRevision(), "sequence", seq, "bytes", len(data))
}
