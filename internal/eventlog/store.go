// Package eventlog persists the append-only task movement log and the
// problem registry that decorates new events.
package eventlog

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"task-board/internal/domain"
	"task-board/internal/errors"
	"task-board/internal/logging"
	"task-board/internal/registry"
	"task-board/internal/repository"
)

const (
	// HistoryKey holds the JSON-encoded movement log.
	HistoryKey = "taskHistory"
	// RegistryKey holds the JSON-encoded problem registry.
	RegistryKey = "problemRegistry"
)

// Option configures a Store.
type Option func(*Store)

// WithClock sets the clock used to stamp appended movements.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// Store is the event log over a KeyValueStore. The log itself is never
// cached: every read goes to the store and every mutation writes the full log
// back before returning. The registry is held in memory and written through.
type Store struct {
	kv  repository.KeyValueStore
	now func() time.Time

	// mu guards registry. Registration and import hold it for the whole
	// read-modify-write so concurrent callers never lose an update.
	mu       sync.RWMutex
	registry *registry.Registry
}

// Open loads the registry from kv. When no registry has been saved but a log
// exists, the registry is rebuilt from the log.
func Open(ctx context.Context, kv repository.KeyValueStore, opts ...Option) (*Store, error) {
	s := &Store{kv: kv, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}

	reg, err := s.loadRegistry(ctx)
	if err != nil {
		return nil, err
	}
	s.registry = reg
	return s, nil
}

func (s *Store) loadRegistry(ctx context.Context) (*registry.Registry, error) {
	raw, ok, err := s.kv.Get(ctx, RegistryKey)
	if err != nil {
		return nil, persistenceError("read "+RegistryKey, err)
	}
	if ok {
		var problems []domain.Problem
		if err := json.Unmarshal([]byte(raw), &problems); err != nil {
			return nil, errors.NewPersistenceError("decode "+RegistryKey, err)
		}
		return registry.FromProblems(problems), nil
	}

	events, err := s.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(events) > 0 {
		logging.Debugf("rebuilding problem registry from %d logged events", len(events))
	}
	return registry.FromEvents(events), nil
}

// ReadAll returns the full log in append order. An absent log reads as empty.
func (s *Store) ReadAll(ctx context.Context) ([]domain.MovementEvent, error) {
	raw, ok, err := s.kv.Get(ctx, HistoryKey)
	if err != nil {
		return nil, persistenceError("read "+HistoryKey, err)
	}
	if !ok || raw == "" {
		return []domain.MovementEvent{}, nil
	}

	var events []domain.MovementEvent
	if err := json.Unmarshal([]byte(raw), &events); err != nil {
		return nil, errors.NewPersistenceError("decode "+HistoryKey, err)
	}
	if events == nil {
		events = []domain.MovementEvent{}
	}
	return events, nil
}

// Append adds event to the end of the log and persists the full log.
func (s *Store) Append(ctx context.Context, event domain.MovementEvent) error {
	events, err := s.ReadAll(ctx)
	if err != nil {
		return err
	}
	events = append(events, event)
	return s.ReplaceAll(ctx, events)
}

// AppendMovement records a task being placed in column. The result is a
// snapshot of the problem's expected result at this moment; an unregistered
// problem snapshots an empty result.
func (s *Store) AppendMovement(ctx context.Context, id, content string, column domain.Column, problemName string) (domain.MovementEvent, error) {
	s.mu.RLock()
	result := s.registry.ExpectedResult(problemName)
	s.mu.RUnlock()

	event := domain.NewMovementEvent(id, content, column, problemName, result, s.now())
	if err := s.Append(ctx, event); err != nil {
		return domain.MovementEvent{}, err
	}
	return event, nil
}

// ReplaceAll overwrites the stored log with events.
func (s *Store) ReplaceAll(ctx context.Context, events []domain.MovementEvent) error {
	data, err := encodeEvents(events)
	if err != nil {
		return err
	}
	if err := s.kv.Set(ctx, HistoryKey, data); err != nil {
		return persistenceError("write "+HistoryKey, err)
	}
	return nil
}

// Registry returns a copy of the current problem registry.
func (s *Store) Registry() *registry.Registry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.registry.Clone()
}

// RegisterProblem adds p to the registry and persists it. The in-memory
// registry only changes once the write succeeded.
func (s *Store) RegisterProblem(ctx context.Context, p domain.Problem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.registry.Clone()
	if err := next.Register(p); err != nil {
		return err
	}

	data, err := encodeProblems(next.List())
	if err != nil {
		return err
	}
	if err := s.kv.Set(ctx, RegistryKey, data); err != nil {
		return persistenceError("write "+RegistryKey, err)
	}

	s.registry = next
	return nil
}

// Import replaces both the log and the registry in a single batch. Nothing
// changes if the write fails.
func (s *Store) Import(ctx context.Context, events []domain.MovementEvent, reg *registry.Registry) error {
	if reg == nil {
		reg = registry.FromEvents(events)
	}

	logData, err := encodeEvents(events)
	if err != nil {
		return err
	}
	regData, err := encodeProblems(reg.List())
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kv.SetMany(ctx, map[string]string{
		HistoryKey:  logData,
		RegistryKey: regData,
	}); err != nil {
		return persistenceError("import", err)
	}

	s.registry = reg.Clone()
	return nil
}

func encodeEvents(events []domain.MovementEvent) (string, error) {
	if events == nil {
		events = []domain.MovementEvent{}
	}
	data, err := json.Marshal(events)
	if err != nil {
		return "", errors.NewPersistenceError("encode "+HistoryKey, err)
	}
	return string(data), nil
}

func encodeProblems(problems []domain.Problem) (string, error) {
	data, err := json.Marshal(problems)
	if err != nil {
		return "", errors.NewPersistenceError("encode "+RegistryKey, err)
	}
	return string(data), nil
}

// persistenceError keeps AppErrors raised by the store itself and wraps
// anything else.
func persistenceError(operation string, err error) error {
	if errors.IsAppError(err) {
		return err
	}
	return errors.NewPersistenceError(operation, err)
}
