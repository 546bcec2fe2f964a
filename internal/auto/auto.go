// Package auto drives queued player movement: walking to a chosen cell and
// exploring until nothing is left to explore.
package auto

import "rogue-engine/internal/geom"

// Planner returns the next path to follow, start cell included, or nil
// when there is nowhere left to go.
type Planner func() []geom.Point

// Movement is a queue of unit shifts. A movement with a planner refills the
// queue from it when the queue runs dry.
type Movement struct {
	queue   []geom.Point
	planner Planner
	done    bool
}

// Walk follows a precomputed path.
func Walk(path []geom.Point) *Movement {
	return &Movement{queue: shifts(path)}
}

// Explore follows plans produced by planner until it returns nil.
func Explore(planner Planner) *Movement {
	return &Movement{planner: planner}
}

// Exploring reports whether the movement replans on its own.
func (m *Movement) Exploring() bool { return m.planner != nil }

// Done reports whether the movement has terminated.
func (m *Movement) Done() bool { return m.done }

// Next pops the next shift. It returns false once the movement is over.
func (m *Movement) Next() (geom.Point, bool) {
	if m.done {
		return geom.Point{}, false
	}
	if len(m.queue) == 0 && m.planner != nil {
		m.queue = shifts(m.planner())
	}
	if len(m.queue) == 0 {
		m.done = true
		return geom.Point{}, false
	}
	d := m.queue[0]
	m.queue = m.queue[1:]
	return d, true
}

// Stop terminates the movement.
func (m *Movement) Stop() {
	m.done = true
	m.queue = nil
}

func shifts(path []geom.Point) []geom.Point {
	if len(path) < 2 {
		return nil
	}
	out := make([]geom.Point, 0, len(path)-1)
	for i := 1; i < len(path); i++ {
		out = append(out, path[i].Sub(path[i-1]))
	}
	return out
}
