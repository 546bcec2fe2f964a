package entity

import (
	"fmt"
	"math/rand"

	"rogue-engine/internal/pcg"
)

// Drop is one weighted outcome of a drop group. A nil Make means the draw
// yields nothing.
type Drop struct {
	Weight int
	Make   func() Item
}

// DropTable is a list of groups; each group gets one independent weighted
// draw.
type DropTable [][]Drop

// Flat builds a single-group table.
func Flat(drops ...Drop) DropTable { return DropTable{drops} }

// Roll draws once per group and returns the non-empty outcomes in group
// order.
func (t DropTable) Roll(rng *rand.Rand) ([]Item, error) {
	weights := make([][]int, len(t))
	for i, group := range t {
		weights[i] = make([]int, len(group))
		total := 0
		for j, d := range group {
			weights[i][j] = d.Weight
			total += max(d.Weight, 0)
		}
		if total <= 0 {
			return nil, fmt.Errorf("%w: group %d has no positive weight", ErrMalformedDrops, i)
		}
	}
	var items []Item
	for i, group := range t {
		if mk := group[pcg.WeightedChoice(rng, weights[i])].Make; mk != nil {
			items = append(items, mk())
		}
	}
	return items, nil
}
