// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package syncx contains synchronization helpers shared by the command and
// the driver.
package syncx

import "sync"

// Lazy holds a value computed on first use.
type Lazy[T any] struct {
	once sync.Once
	val  T
	err  error
}

// Get returns the value, calling f to compute it on the first call.
func (l *Lazy[T]) Get(f func() T) T {
	l.once.Do(func() { l.val = f() })
	return l.val
}

// GetErr is like Get, but for computations that can fail. A failure is
// remembered and returned by every later call.
func (l *Lazy[T]) GetErr(f func() (T, error)) (T, error) {
	l.once.Do(func() { l.val, l.err = f() })
	return l.val, l.err
}

// LimitedWaitGroup is a [sync.WaitGroup] that runs at most a fixed number of
// goroutines at once.
type LimitedWaitGroup struct {
	wg    sync.WaitGroup
	slots chan struct{}
}

// NewLimitedWaitGroup returns a [LimitedWaitGroup] allowing limit concurrent
// goroutines. A limit below one is treated as one.
func NewLimitedWaitGroup(limit int) *LimitedWaitGroup {
	return &LimitedWaitGroup{slots: make(chan struct{}, max(limit, 1))}
}

// Go runs f in a new goroutine, blocking while all slots are busy.
func (lwg *LimitedWaitGroup) Go(f func()) {
	lwg.Add(1)
	go func() {
		defer lwg.Done()
		f()
	}()
}

// Add reserves delta slots, blocking until they are free.
func (lwg *LimitedWaitGroup) Add(delta int) {
	for range delta {
		lwg.slots <- struct{}{}
		lwg.wg.Add(1)
	}
}

// Done releases one slot.
func (lwg *LimitedWaitGroup) Done() {
	<-lwg.slots
	lwg.wg.Done()
}

// Wait blocks until every started goroutine has finished.
func (lwg *LimitedWaitGroup) Wait() { lwg.wg.Wait() }
