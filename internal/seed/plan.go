package seed

import (
	"fmt"

	"github.com/xtding233/party-lottery/internal/rng"
)

// Plan fixes how the games share one root seed.
//
// Every game gets its own generator seeded with Root and shifted by a
// distinct offset, so each one reads its own window of the root stream.
// Amida shuffles exactly once, so it reads from offset 0 and consumes
// ShuffleDraws(AmidaSlots) outputs. Bingo keeps drawing across resets, so it
// is placed right after Amida's window and can consume any number of outputs
// without ever reading a value Amida used.
type Plan struct {
	Algorithm   rng.Algorithm
	Root        uint32
	AmidaOffset int
	BingoOffset int
}

// NewPlan lays out the offsets for an Amida board of the given size.
func NewPlan(alg rng.Algorithm, root uint32, amidaSlots int) Plan {
	return Plan{
		Algorithm:   alg,
		Root:        root,
		AmidaOffset: 0,
		BingoOffset: rng.ShuffleDraws(amidaSlots),
	}
}

// Amida returns a fresh generator positioned at the Amida window.
func (p Plan) Amida() (rng.Generator, error) {
	return p.derive(p.AmidaOffset)
}

// Bingo returns a fresh generator positioned at the Bingo window.
func (p Plan) Bingo() (rng.Generator, error) {
	return p.derive(p.BingoOffset)
}

func (p Plan) derive(offset int) (rng.Generator, error) {
	g, err := rng.New(p.Algorithm, p.Root)
	if err != nil {
		return nil, fmt.Errorf("derive generator: %w", err)
	}
	g.Shift(offset)
	return g, nil
}
