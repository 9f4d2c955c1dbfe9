// Package cart owns the cart line sequence: merge-by-id add semantics,
// quantity updates, removal, persistence of every mutation and change
// notification.
package cart

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/haysnairpa/urbanwear/internal/domain"
	"github.com/haysnairpa/urbanwear/internal/pricing"
)

const persistTimeout = time.Second

// LineOption sets optional add-time attributes on a new line.
type LineOption func(*domain.CartLine)

func WithSize(size string) LineOption {
	return func(l *domain.CartLine) { l.SelectedSize = size }
}

func WithColor(color string) LineOption {
	return func(l *domain.CartLine) { l.SelectedColor = color }
}

// Engine holds the cart line sequence. Every mutation runs a fixed
// mutate -> persist -> notify pipeline under one mutex, so mutations are
// atomic from the caller's perspective and storage is written before any
// subscriber observes the new state. No mutation returns an error: a failed
// persist is logged and the in-memory sequence stays authoritative.
type Engine struct {
	mu        sync.Mutex
	lines     []domain.CartLine
	storage   Storage
	log       *logrus.Logger
	subs      map[int]func([]domain.CartLine)
	nextSubID int
}

// New loads the persisted cart once. A missing or unparsable persisted cart
// degrades to an empty one; the failure is never surfaced to callers.
func New(storage Storage, log *logrus.Logger) *Engine {
	e := &Engine{
		storage: storage,
		log:     log,
		subs:    make(map[int]func([]domain.CartLine)),
	}
	lines, err := storage.Load(context.Background())
	if err != nil {
		log.WithError(err).Warn("persisted cart unreadable, starting empty")
		lines = nil
	}
	e.lines = lines
	return e
}

// Add merges by product ID: adding a product that is already in the cart
// sums quantities and keeps the earlier size/color selection, even when the
// new call selected a different one. A quantity <= 0 is silently ignored.
func (e *Engine) Add(p domain.Product, quantity int, opts ...LineOption) {
	if quantity <= 0 {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	for i := range e.lines {
		if e.lines[i].ID == p.ID {
			e.lines[i].Quantity += quantity
			e.persistAndNotifyLocked()
			return
		}
	}

	line := domain.CartLine{Product: p, Quantity: quantity}
	for _, opt := range opts {
		opt(&line)
	}
	e.lines = append(e.lines, line)
	e.persistAndNotifyLocked()
}

// SetQuantity sets a line's quantity to exactly quantity (absolute, not a
// delta). Zero or less removes the line entirely.
func (e *Engine) SetQuantity(productID int64, quantity int) {
	if quantity <= 0 {
		e.Remove(productID)
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	for i := range e.lines {
		if e.lines[i].ID == productID {
			e.lines[i].Quantity = quantity
			e.persistAndNotifyLocked()
			return
		}
	}
}

// Remove deletes the line for productID; no-op when absent.
func (e *Engine) Remove(productID int64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i, l := range e.lines {
		if l.ID == productID {
			e.lines = append(e.lines[:i], e.lines[i+1:]...)
			e.persistAndNotifyLocked()
			return
		}
	}
}

// Clear empties the sequence.
func (e *Engine) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.lines = nil
	e.persistAndNotifyLocked()
}

// Lines returns a copy of the current line sequence in insertion order.
func (e *Engine) Lines() []domain.CartLine {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.copyLinesLocked()
}

// ItemCount sums all quantities across lines, used for the navbar badge.
func (e *Engine) ItemCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	count := 0
	for _, l := range e.lines {
		count += l.Quantity
	}
	return count
}

// Subtotal is derived from the current lines on demand, never stored.
func (e *Engine) Subtotal() float64 {
	return pricing.Subtotal(e.Lines())
}

// Subscribe registers fn to run after every persisted mutation. It returns
// an unsubscribe func.
func (e *Engine) Subscribe(fn func([]domain.CartLine)) func() {
	e.mu.Lock()
	defer e.mu.Unlock()
	id := e.nextSubID
	e.nextSubID++
	e.subs[id] = fn
	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		delete(e.subs, id)
	}
}

// persistAndNotifyLocked writes the whole sequence, then tells subscribers.
// The ordering is part of the contract: storage is written before any
// observer sees the new state.
func (e *Engine) persistAndNotifyLocked() {
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()
	if err := e.storage.Save(ctx, e.lines); err != nil {
		e.log.WithError(err).Error("cart persist failed")
	}

	snapshot := e.copyLinesLocked()
	for _, fn := range e.subs {
		fn(snapshot)
	}
}

func (e *Engine) copyLinesLocked() []domain.CartLine {
	out := make([]domain.CartLine, len(e.lines))
	copy(out, e.lines)
	return out
}
