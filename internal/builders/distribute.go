package builders

import (
	"errors"
	"math/rand"

	"rogue-engine/internal/geom"
	"rogue-engine/internal/pcg"
)

// Default population densities, in open cells per entity.
const (
	CellsPerMonster = 60
	CellsPerItem    = 180
)

// ErrEmptyPopulation is returned when a population has nothing to pick.
var ErrEmptyPopulation = errors.New("population has no entry with a positive weight")

// Distribution selects how an entry is picked for each placement.
type Distribution uint8

const (
	// Uniform gives every entry the same chance.
	Uniform Distribution = iota
	// Weighted picks entries proportionally to Entry.Weight.
	Weighted
)

// Entry is one candidate of a population.
type Entry struct {
	Weight int
	Key    string
	Args   []string
}

// Amount decides how many entities a population places.
type Amount interface {
	Count(rng *rand.Rand, openCells int) int
}

// Fixed places exactly n entities.
type Fixed int

func (n Fixed) Count(*rand.Rand, int) int { return int(n) }

// Ranged places between Min and Max entities, inclusive.
type Ranged struct{ Min, Max int }

func (r Ranged) Count(rng *rand.Rand, _ int) int { return pcg.Range(rng, r.Min, r.Max+1) }

// PerCells places one entity per n open cells.
type PerCells int

func (n PerCells) Count(_ *rand.Rand, openCells int) int {
	if n <= 0 {
		return 0
	}
	return openCells / int(n)
}

// Population describes the entities placed by one generation phase.
type Population struct {
	Distribution Distribution
	Entries      []Entry
	Amount       Amount
}

// Pick draws one entry.
func (pop Population) Pick(rng *rand.Rand) (Entry, error) {
	if len(pop.Entries) == 0 {
		return Entry{}, ErrEmptyPopulation
	}
	if pop.Distribution == Uniform {
		return pcg.Choice(rng, pop.Entries), nil
	}
	weights := make([]int, len(pop.Entries))
	for i, e := range pop.Entries {
		weights[i] = e.Weight
	}
	i := pcg.WeightedChoice(rng, weights)
	if i < 0 {
		return Entry{}, ErrEmptyPopulation
	}
	return pop.Entries[i], nil
}

// distribute places the population one entity at a time. Each position is
// checked against the placements made so far.
func (b *Builder) distribute(pop Population, check func(geom.Point) bool) ([]Placement, error) {
	if pop.Amount == nil || len(pop.Entries) == 0 {
		return nil, nil
	}
	n := pop.Amount.Count(b.rng, b.OpenCells())
	var out []Placement
	taken := map[geom.Point]bool{}
	for range n {
		pos, err := b.Point(func(p geom.Point) bool { return !taken[p] && check(p) })
		if err != nil {
			return out, err
		}
		e, err := pop.Pick(b.rng)
		if err != nil {
			return out, err
		}
		taken[pos] = true
		out = append(out, Placement{Pos: pos, Key: e.Key, Args: e.Args})
	}
	return out, nil
}
