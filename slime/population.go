package slime

import (
	"github.com/pthm-cable/slime/components"
)

// Population is the ordered set of live agents. Order is the collision scan
// order and the draw order; later agents are on top.
type Population struct {
	agents []Agent
	index  map[uint64]int // ID -> position in agents
}

// NewPopulation creates a population from the given agents.
func NewPopulation(agents ...Agent) *Population {
	p := &Population{index: make(map[uint64]int)}
	p.Replace(agents)
	return p
}

// Len returns the number of live agents.
func (p *Population) Len() int {
	return len(p.agents)
}

// At returns the agent at position i.
func (p *Population) At(i int) Agent {
	return p.agents[i]
}

// Agents returns the live agents. The slice must not be modified.
func (p *Population) Agents() []Agent {
	return p.agents
}

// Find looks an agent up by ID.
func (p *Population) Find(id uint64) (Agent, bool) {
	i, ok := p.index[id]
	if !ok {
		return nil, false
	}
	return p.agents[i], true
}

// Add appends agents on top of the draw order.
func (p *Population) Add(agents ...Agent) {
	for _, a := range agents {
		p.index[a.State().ID] = len(p.agents)
		p.agents = append(p.agents, a)
	}
}

// Replace swaps in a whole new generation.
func (p *Population) Replace(agents []Agent) {
	p.agents = agents
	clear(p.index)
	for i, a := range agents {
		p.index[a.State().ID] = i
	}
}

// RemoveAt drops the agent at position i, keeping the order of the rest.
// The agent is not released.
func (p *Population) RemoveAt(i int) Agent {
	a := p.agents[i]
	delete(p.index, a.State().ID)
	p.agents = append(p.agents[:i], p.agents[i+1:]...)
	for j := i; j < len(p.agents); j++ {
		p.index[p.agents[j].State().ID] = j
	}
	return a
}

// TopmostAt returns the last-added agent whose disk contains (x, y).
func (p *Population) TopmostAt(x, y float64) (int, Agent, bool) {
	for i := len(p.agents) - 1; i >= 0; i-- {
		if p.agents[i].IsClicked(x, y) {
			return i, p.agents[i], true
		}
	}
	return -1, nil, false
}

// CountByKind returns the number of agents of each kind, indexed by Kind.
func (p *Population) CountByKind() []int {
	counts := make([]int, components.KindCount())
	for _, a := range p.agents {
		counts[a.Kind()]++
	}
	return counts
}

// TotalArea returns the summed disk area of all agents.
func (p *Population) TotalArea() float64 {
	total := 0.0
	for _, a := range p.agents {
		total += a.State().Area()
	}
	return total
}

// Radii returns every agent's radius in population order.
func (p *Population) Radii() []float64 {
	radii := make([]float64, len(p.agents))
	for i, a := range p.agents {
		radii[i] = a.State().R
	}
	return radii
}
