package sema

import (
	"container/list"
	"context"
	"errors"
	"fmt"
	"sync"
)

var ErrClosed = errors.New("semaphore closed")

// Semaphore is an unbounded counting signal. Acquire blocks while the count
// is zero and then decrements it; Release increments it or hands the permit
// straight to the oldest waiter.
type Semaphore struct {
	name string

	mu      sync.Mutex
	count   int
	waiters list.List // of *waiter
	closed  bool

	acquires int64
	releases int64
}

type waiter struct {
	ready chan struct{}
	err   error
}

func New(name string, initial int) *Semaphore {
	if initial < 0 {
		initial = 0
	}
	return &Semaphore{name: name, count: initial}
}

// Acquire takes one permit. It fails without taking one when ctx is done or
// the semaphore is closed, even if permits are available.
func (s *Semaphore) Acquire(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return s.wrap(err)
	}
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return s.wrap(ErrClosed)
	}
	if s.count > 0 && s.waiters.Len() == 0 {
		s.count--
		s.acquires++
		s.mu.Unlock()
		return nil
	}

	w := &waiter{ready: make(chan struct{})}
	elem := s.waiters.PushBack(w)
	s.mu.Unlock()

	select {
	case <-w.ready:
		return w.err
	case <-ctx.Done():
		s.mu.Lock()
		select {
		case <-w.ready:
			// Granted while we were giving up; keep it.
			s.mu.Unlock()
			return w.err
		default:
		}
		s.waiters.Remove(elem)
		s.mu.Unlock()
		return s.wrap(ctx.Err())
	}
}

// Release returns one permit.
func (s *Semaphore) Release() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return s.wrap(ErrClosed)
	}
	s.releases++
	if front := s.waiters.Front(); front != nil {
		w := s.waiters.Remove(front).(*waiter)
		s.acquires++
		close(w.ready)
		return nil
	}
	s.count++
	return nil
}

// ReleaseN calls Release n times and stops at the first failure.
func (s *Semaphore) ReleaseN(n int) error {
	for i := 0; i < n; i++ {
		if err := s.Release(); err != nil {
			return err
		}
	}
	return nil
}

// Close fails every parked waiter and all later calls with ErrClosed.
func (s *Semaphore) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	for e := s.waiters.Front(); e != nil; e = e.Next() {
		w := e.Value.(*waiter)
		w.err = s.wrap(ErrClosed)
		close(w.ready)
	}
	s.waiters.Init()
}

// Count is the number of unclaimed permits.
func (s *Semaphore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.count
}

// Waiting is the number of parked Acquire calls.
func (s *Semaphore) Waiting() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.waiters.Len()
}

func (s *Semaphore) Releases() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.releases
}

func (s *Semaphore) Acquires() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.acquires
}

func (s *Semaphore) wrap(err error) error {
	if s.name == "" {
		return err
	}
	return fmt.Errorf("%s: %w", s.name, err)
}
