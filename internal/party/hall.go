// Package party owns the single authoritative Bingo and Amida games of a
// process and serializes every action against them.
package party

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/xtding233/party-lottery/internal/amida"
	"github.com/xtding233/party-lottery/internal/bingo"
	"github.com/xtding233/party-lottery/internal/rng"
	"github.com/xtding233/party-lottery/internal/seed"
)

// Options configures a Hall. Zero sizes fall back to the game defaults.
type Options struct {
	Algorithm  rng.Algorithm
	Seed       uint32
	BingoSize  int
	AmidaSlots int
	Logger     *slog.Logger
}

// BingoSnapshot is an immutable copy of the Bingo state after an action.
// Number is set only by a successful draw; Last is the most recent ball of
// the round, if any.
type BingoSnapshot struct {
	Number    *int
	Last      *int
	History   []int
	Remaining int
	Size      int
	Round     uuid.UUID
	State     bingo.State
}

// AmidaSnapshot is an immutable copy of the Amida configuration.
type AmidaSnapshot struct {
	Participants []string
	Slots        int
	Revision     uuid.UUID
	State        amida.State
}

// Ready reports whether a result can be read.
func (s AmidaSnapshot) Ready() bool { return s.State == amida.StateResolved }

// Hall guards each engine with its own mutex. The two games never lock each
// other, and no lock is held across I/O.
type Hall struct {
	id   uuid.UUID
	plan seed.Plan
	log  *slog.Logger

	bingoMu sync.Mutex
	bingo   *bingo.Engine
	round   uuid.UUID

	amidaMu  sync.Mutex
	amida    *amida.Engine
	revision uuid.UUID
}

// New derives both generators from opts.Seed through seed.Plan and builds
// the games. It only fails on unusable sizes or an unknown algorithm.
func New(opts Options) (*Hall, error) {
	if opts.BingoSize == 0 {
		opts.BingoSize = bingo.DefaultSize
	}
	if opts.AmidaSlots == 0 {
		opts.AmidaSlots = amida.DefaultSlots
	}
	if opts.Algorithm == "" {
		opts.Algorithm = rng.AlgXorShift
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	plan := seed.NewPlan(opts.Algorithm, opts.Seed, opts.AmidaSlots)

	ag, err := plan.Amida()
	if err != nil {
		return nil, err
	}
	am, err := amida.New(opts.AmidaSlots, ag)
	if err != nil {
		return nil, fmt.Errorf("create amida: %w", err)
	}

	bg, err := plan.Bingo()
	if err != nil {
		return nil, err
	}
	bn, err := bingo.New(opts.BingoSize, bg)
	if err != nil {
		return nil, fmt.Errorf("create bingo: %w", err)
	}

	h := &Hall{
		id:       uuid.New(),
		plan:     plan,
		log:      opts.Logger,
		bingo:    bn,
		round:    uuid.New(),
		amida:    am,
		revision: uuid.New(),
	}
	h.log.Info("party hall ready",
		"instance", h.id,
		"algorithm", plan.Algorithm,
		"seed", bg.Seed(),
		"amida_offset", plan.AmidaOffset,
		"bingo_offset", plan.BingoOffset,
		"bingo_size", opts.BingoSize,
		"amida_slots", opts.AmidaSlots,
	)
	return h, nil
}

// InstanceID identifies this process's games.
func (h *Hall) InstanceID() uuid.UUID { return h.id }

// Seed is the effective root seed (zero already replaced).
func (h *Hall) Seed() uint32 {
	if h.plan.Root == 0 {
		return rng.DefaultSeed
	}
	return h.plan.Root
}

func (h *Hall) Algorithm() rng.Algorithm { return h.plan.Algorithm }

// Plan exposes the offset layout for reporting.
func (h *Hall) Plan() seed.Plan { return h.plan }

// Draw pulls the next ball. When the game is exhausted the snapshot has a
// nil Number and nothing changes.
func (h *Hall) Draw() BingoSnapshot {
	h.bingoMu.Lock()
	defer h.bingoMu.Unlock()

	n, ok := h.bingo.Draw()
	snap := h.bingoSnapshotLocked()
	if !ok {
		h.log.Info("bingo draw on exhausted round", "round", h.round)
		return snap
	}
	snap.Number = &n
	h.log.Info("bingo draw", "round", h.round, "number", n, "remaining", snap.Remaining)
	return snap
}

// ResetBingo starts a new round with a new round id.
func (h *Hall) ResetBingo() BingoSnapshot {
	h.bingoMu.Lock()
	defer h.bingoMu.Unlock()

	prev := h.round
	h.bingo.Reset()
	h.round = uuid.New()
	h.log.Info("bingo reset", "previous_round", prev, "round", h.round)
	return h.bingoSnapshotLocked()
}

// Bingo reads the current state without drawing.
func (h *Hall) Bingo() BingoSnapshot {
	h.bingoMu.Lock()
	defer h.bingoMu.Unlock()
	return h.bingoSnapshotLocked()
}

func (h *Hall) bingoSnapshotLocked() BingoSnapshot {
	snap := BingoSnapshot{
		History:   h.bingo.History(),
		Remaining: h.bingo.RemainingCount(),
		Size:      h.bingo.Size(),
		Round:     h.round,
		State:     h.bingo.State(),
	}
	if n, ok := h.bingo.Last(); ok {
		snap.Last = &n
	}
	return snap
}

// SetParticipants replaces the Amida participant list and bumps the
// revision. The prize permutation is untouched.
func (h *Hall) SetParticipants(names []string) AmidaSnapshot {
	h.amidaMu.Lock()
	defer h.amidaMu.Unlock()

	h.amida.SetParticipants(names)
	h.revision = uuid.New()
	snap := h.amidaSnapshotLocked()
	h.log.Info("amida participants set",
		"revision", h.revision,
		"count", len(names),
		"slots", snap.Slots,
		"ready", snap.Ready(),
	)
	return snap
}

// Amida reads the current configuration.
func (h *Hall) Amida() AmidaSnapshot {
	h.amidaMu.Lock()
	defer h.amidaMu.Unlock()
	return h.amidaSnapshotLocked()
}

// AmidaResult returns the positional pairing, or false until every slot
// has a participant.
func (h *Hall) AmidaResult() ([]amida.Pair, bool) {
	h.amidaMu.Lock()
	defer h.amidaMu.Unlock()
	return h.amida.Result()
}

func (h *Hall) amidaSnapshotLocked() AmidaSnapshot {
	return AmidaSnapshot{
		Participants: h.amida.Participants(),
		Slots:        h.amida.Slots(),
		Revision:     h.revision,
		State:        h.amida.State(),
	}
}
