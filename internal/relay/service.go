package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/timestamppb"

	v1 "github.com/inovacc/fieldlog/internal/api/v1"
	"github.com/inovacc/fieldlog/internal/database"
)

// record is the persisted form of one hosted document.
type record struct {
	Revision  string          `json:"revision"`
	Origin    string          `json:"origin"`
	Sequence  uint64          `json:"sequence,omitempty"`
	Data      json.RawMessage `json:"data"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

func (r *record) snapshot() *v1.Snapshot {
	if r == nil {
		return &v1.Snapshot{Exists: false}
	}

	return &v1.Snapshot{
		Exists:    true,
		Revision:  r.Revision,
		Origin:    r.Origin,
		Sequence:  r.Sequence,
		Data:      r.Data,
		UpdatedAt: timestamppb.New(r.UpdatedAt),
	}
}

// subscriber holds at most one pending snapshot. A newer snapshot replaces an
// undelivered older one, since each snapshot is the whole document.
type subscriber struct {
	ch chan *v1.Snapshot
}

func (s *subscriber) offer(snap *v1.Snapshot) {
	select {
	case <-s.ch:
	default:
	}

	s.ch <- snap
}

// Service hosts whole documents and fans every accepted write out to all
// subscribers of that document. The last accepted write wins.
type Service struct {
	v1.UnimplementedDocumentServiceServer

	mu     sync.Mutex
	db     database.Store
	docs   map[string]*record
	subs   map[string]map[*subscriber]struct{}
	done   chan struct{}
	closed bool
	logger *slog.Logger
}

// NewService loads every document already stored in db.
func NewService(db database.Store, logger *slog.Logger) (*Service, error) {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Service{
		db:     db,
		docs:   make(map[string]*record),
		subs:   make(map[string]map[*subscriber]struct{}),
		done:   make(chan struct{}),
		logger: logger,
	}

	keys, err := db.Keys()
	if err != nil {
		return nil, fmt.Errorf("listing stored documents: %w", err)
	}

	for _, key := range keys {
		data, err := db.Get(key)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", key, err)
		}

		var rec record
		if err := json.Unmarshal(data, &rec); err != nil {
			logger.Warn("skipping unreadable document", "key", key, "error", err)
			continue
		}

		s.docs[key] = &rec
	}

	logger.Info("relay documents loaded", "count", len(s.docs))

	return s, nil
}

func validateRef(ref *v1.DocumentRef) error {
	if ref.GetCollection() == "" || ref.GetDocument() == "" {
		return status.Error(codes.InvalidArgument, "collection and document are required")
	}

	return nil
}

// Push replaces the whole document and broadcasts it.
func (s *Service) Push(ctx context.Context, req *v1.PushRequest) (*v1.PushResponse, error) {
	if err := validateRef(req.GetRef()); err != nil {
		return nil, err
	}

	data := bytes.TrimSpace(req.GetData())
	if len(data) == 0 || data[0] != '{' || !json.Valid(data) {
		return nil, status.Error(codes.InvalidArgument, "data must be a JSON object")
	}

	key := req.GetRef().Key()

	rec := &record{
		Revision:  ulid.Make().String(),
		Origin:    req.GetOrigin(),
		Sequence:  req.GetSequence(),
		Data:      append(json.RawMessage(nil), data...),
		UpdatedAt: time.Now().UTC(),
	}

	encoded, err := json.Marshal(rec)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encoding document: %v", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, status.Error(codes.Unavailable, "relay is shutting down")
	}

	if err := s.db.Put(key, encoded); err != nil {
		return nil, status.Errorf(codes.Unavailable, "storing document: %v", err)
	}

	s.docs[key] = rec

	for sub := range s.subs[key] {
		sub.offer(rec.snapshot())
	}

	s.logger.Info("document replaced", "key", key, "revision", rec.Revision, "origin", rec.Origin, "subscribers", len(s.subs[key]))

	return &v1.PushResponse{Revision: rec.Revision}, nil
}

// Subscribe sends the current snapshot, then every later one, until the
// client goes away or the service closes.
func (s *Service) Subscribe(req *v1.SubscribeRequest, stream v1.DocumentService_SubscribeServer) error {
	if err := validateRef(req.GetRef()); err != nil {
		return err
	}

	key := req.GetRef().Key()
	sub := &subscriber{ch: make(chan *v1.Snapshot, 1)}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return status.Error(codes.Unavailable, "relay is shutting down")
	}

	if s.subs[key] == nil {
		s.subs[key] = make(map[*subscriber]struct{})
	}

	s.subs[key][sub] = struct{}{}
	sub.offer(s.docs[key].snapshot())
	s.mu.Unlock()

	s.logger.Info("subscriber joined", "key", key, "origin", req.GetOrigin())

	defer func() {
		s.mu.Lock()
		delete(s.subs[key], sub)
		if len(s.subs[key]) == 0 {
			delete(s.subs, key)
		}
		s.mu.Unlock()

		s.logger.Info("subscriber left", "key", key, "origin", req.GetOrigin())
	}()

	ctx := stream.Context()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-s.done:
			return status.Error(codes.Unavailable, "relay is shutting down")
		case snap := <-sub.ch:
			if err := stream.Send(snap); err != nil {
				return err
			}
		}
	}
}

// Snapshot returns the stored state of ref.
func (s *Service) Snapshot(ref *v1.DocumentRef) *v1.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.docs[ref.Key()].snapshot()
}

// Subscribers returns the number of open subscriptions for ref.
func (s *Service) Subscribers(ref *v1.DocumentRef) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.subs[ref.Key()])
}

// Close ends every open subscription and rejects further calls.
func (s *Service) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	s.closed = true
	close(s.done)
}
