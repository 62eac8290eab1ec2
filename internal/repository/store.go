package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/JayR61/congregation-connect/pkg/kv"
)

// StoreObserver receives timings for backend calls.
type StoreObserver interface {
	ObserveStoreOperation(op, key string, duration time.Duration, err error)
}

// Store adapts an opaque kv backend into JSON get/set semantics. Failures are
// logged and absorbed so callers always receive a usable value.
type Store struct {
	backend  kv.Store
	logger   *zap.Logger
	observer StoreObserver

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewStore wraps backend with the JSON adapter.
func NewStore(backend kv.Store, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{backend: backend, logger: logger, locks: make(map[string]*sync.Mutex)}
}

// WithObserver attaches timing instrumentation.
func (s *Store) WithObserver(observer StoreObserver) *Store {
	s.observer = observer
	return s
}

// Backend exposes the wrapped kv store.
func (s *Store) Backend() kv.Store {
	return s.backend
}

// Get returns the value stored under key, or def when the key is absent, the
// payload is malformed, or it does not decode into T.
func Get[T any](ctx context.Context, s *Store, key string, def T) T {
	raw, ok := s.read(ctx, key)
	if !ok {
		return def
	}
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		s.logger.Warn("stored value is unreadable, using default", zap.String("key", key), zap.Error(err))
		return def
	}
	return out
}

// Set encodes value and writes it under key. Encode and write failures are
// logged and dropped.
func Set(ctx context.Context, s *Store, key string, value any) {
	payload, err := json.Marshal(value)
	if err != nil {
		s.logger.Error("failed to encode value, write skipped", zap.String("key", key), zap.Error(err))
		return
	}
	s.write(ctx, key, payload)
}

// Update performs a read-modify-write of key while holding the key's lock.
// When fn returns an error nothing is written.
func Update[T any](ctx context.Context, s *Store, key string, def T, fn func(T) (T, error)) (T, error) {
	lock := s.lockFor(key)
	lock.Lock()
	defer lock.Unlock()

	current := Get(ctx, s, key, def)
	next, err := fn(current)
	if err != nil {
		return current, err
	}
	Set(ctx, s, key, next)
	return next, nil
}

func (s *Store) read(ctx context.Context, key string) ([]byte, bool) {
	start := time.Now()
	raw, ok, err := s.backend.Read(ctx, key)
	s.observe("read", key, start, err)
	if err != nil {
		s.logger.Warn("store read failed, using default", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	if !ok || len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil, false
	}
	return raw, true
}

func (s *Store) write(ctx context.Context, key string, payload []byte) {
	start := time.Now()
	err := s.backend.Write(ctx, key, payload)
	s.observe("write", key, start, err)
	if err != nil {
		s.logger.Error("store write failed, value dropped", zap.String("key", key), zap.Error(err))
	}
}

func (s *Store) observe(op, key string, start time.Time, err error) {
	if s.observer == nil {
		return
	}
	s.observer.ObserveStoreOperation(op, key, time.Since(start), err)
}

func (s *Store) lockFor(key string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[key] = lock
	}
	return lock
}
