// Package amida implements ladder-lottery prize assignment: a fixed random
// permutation of prize numbers, paired positionally with participant names
// once every slot is filled.
package amida

import (
	"errors"

	"github.com/xtding233/party-lottery/internal/rng"
)

// DefaultSlots is used when no prize count is configured.
const DefaultSlots = 10

var ErrInvalidSlots = errors.New("amida: slot count must be >= 1")

// Pair is one line of the result. Participant comes first everywhere it is
// emitted.
type Pair struct {
	Participant string
	Prize       int
}

type State string

const (
	StateUnconfigured State = "unconfigured"
	StateConfigured   State = "configured"
	StateResolved     State = "resolved"
)

// Engine holds one ladder. The permutation is drawn once in New and never
// reshuffled; only the participant list changes. No locking of its own.
type Engine struct {
	slots        int
	permutation  []int
	participants []string
}

// New shuffles 1..slots into the prize permutation. gen is consumed here
// and not retained.
func New(slots int, gen rng.Generator) (*Engine, error) {
	if slots < 1 {
		return nil, ErrInvalidSlots
	}
	if gen == nil {
		return nil, errors.New("amida: nil generator")
	}
	perm := make([]int, slots)
	for i := range perm {
		perm[i] = i + 1
	}
	rng.Shuffle(gen, perm)
	return &Engine{slots: slots, permutation: perm}, nil
}

// SetParticipants replaces the participant list as given. Lists of the
// wrong length are stored too; they just keep Result unavailable.
func (e *Engine) SetParticipants(names []string) {
	e.participants = append([]string(nil), names...)
}

// Result pairs participants[i] with permutation[i]. It returns (nil, false)
// until the participant count equals the slot count.
func (e *Engine) Result() ([]Pair, bool) {
	if len(e.participants) != e.slots {
		return nil, false
	}
	pairs := make([]Pair, e.slots)
	for i := range pairs {
		pairs[i] = Pair{Participant: e.participants[i], Prize: e.permutation[i]}
	}
	return pairs, true
}

func (e *Engine) Slots() int { return e.slots }

func (e *Engine) Participants() []string { return append([]string(nil), e.participants...) }

func (e *Engine) Permutation() []int { return append([]int(nil), e.permutation...) }

func (e *Engine) State() State {
	switch {
	case len(e.participants) == 0:
		return StateUnconfigured
	case len(e.participants) == e.slots:
		return StateResolved
	default:
		return StateConfigured
	}
}
