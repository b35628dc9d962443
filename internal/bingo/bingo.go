// Package bingo implements the numbered-ball lottery: draws without
// replacement over 1..Size in an order fixed by a seeded shuffle.
package bingo

import (
	"errors"

	"github.com/xtding233/party-lottery/internal/rng"
)

// DefaultSize is the ball count of American bingo.
const DefaultSize = 75

var ErrInvalidSize = errors.New("bingo: domain size must be >= 1")

// State is derived from how many balls are left.
type State string

const (
	StateReady     State = "ready"
	StateDrawing   State = "drawing"
	StateExhausted State = "exhausted"
)

// Engine holds one round of bingo. It does no locking of its own; whoever
// owns it serializes access.
//
// remaining is a stack: the shuffled order is consumed back to front, so
// each draw is O(1). remaining and history always partition 1..size.
type Engine struct {
	size      int
	remaining []int
	history   []int
	gen       rng.Generator
}

// New builds an engine over 1..size and shuffles it with gen. The engine
// takes ownership of gen.
func New(size int, gen rng.Generator) (*Engine, error) {
	if size < 1 {
		return nil, ErrInvalidSize
	}
	if gen == nil {
		return nil, errors.New("bingo: nil generator")
	}
	e := &Engine{size: size, gen: gen}
	e.fill()
	return e, nil
}

func (e *Engine) fill() {
	if cap(e.remaining) < e.size {
		e.remaining = make([]int, e.size)
	}
	e.remaining = e.remaining[:e.size]
	for i := range e.remaining {
		e.remaining[i] = i + 1
	}
	rng.Shuffle(e.gen, e.remaining)
	e.history = make([]int, 0, e.size)
}

// Draw pops the next ball. Once every ball is out it returns (0, false)
// and leaves the state untouched, however many times it is called.
func (e *Engine) Draw() (int, bool) {
	l := len(e.remaining)
	if l == 0 {
		return 0, false
	}
	n := e.remaining[l-1]
	e.remaining = e.remaining[:l-1]
	e.history = append(e.history, n)
	return n, true
}

// Reset puts every ball back and reshuffles. The generator is not rewound:
// each round continues the stream where the previous one stopped, so
// consecutive rounds get different orders.
func (e *Engine) Reset() {
	e.fill()
}

// Size is the fixed domain size.
func (e *Engine) Size() int { return e.size }

// Remaining returns a copy of the undrawn balls in stack order (the last
// element is drawn next).
func (e *Engine) Remaining() []int { return append([]int(nil), e.remaining...) }

// RemainingCount avoids the copy when only the count is needed.
func (e *Engine) RemainingCount() int { return len(e.remaining) }

// History returns a copy of the drawn balls in draw order.
func (e *Engine) History() []int { return append([]int(nil), e.history...) }

// Last reports the most recently drawn ball.
func (e *Engine) Last() (int, bool) {
	if len(e.history) == 0 {
		return 0, false
	}
	return e.history[len(e.history)-1], true
}

func (e *Engine) State() State {
	switch {
	case len(e.remaining) == 0:
		return StateExhausted
	case len(e.history) == 0:
		return StateReady
	default:
		return StateDrawing
	}
}
