package slime

import (
	"log/slog"

	"github.com/golang/geo/r2"

	"github.com/pthm-cable/slime/components"
	"github.com/pthm-cable/slime/systems"
)

// EffectSink receives one-shot explosion effects.
type EffectSink interface {
	EmitExplosion(center r2.Point, size float64, c1, c2 components.Color)
}

// EventKind classifies a collision outcome.
type EventKind uint8

const (
	EventMerge EventKind = iota
	EventConsume
	EventDetonate
)

// String returns the name of the event kind.
func (k EventKind) String() string {
	switch k {
	case EventMerge:
		return "merge"
	case EventConsume:
		return "consume"
	case EventDetonate:
		return "detonate"
	default:
		return "unknown"
	}
}

// Event records one resolved collision.
type Event struct {
	Kind EventKind
	A, B uint64 // Participants in scan order; for consumption A is the black hole
	// Result is the merged agent's ID, or the black hole's for consumption.
	// Zero for detonations.
	Result     uint64
	ResultKind components.Kind
	Pos        r2.Point // Merge result, black hole, or blast centre
	Size       float64  // Resulting radius, or blast size
}

// Report summarises one resolution pass.
type Report struct {
	Merges       int
	Consumptions int
	Detonations  int
	Events       []Event
}

// Resolver turns pairwise collisions into merges, consumptions and
// detonations.
type Resolver struct {
	factory  *Factory
	effects  EffectSink
	resolved []bool
}

// NewResolver creates a resolver. effects may be nil.
func NewResolver(f *Factory, effects EffectSink) *Resolver {
	return &Resolver{factory: f, effects: effects}
}

// Resolve scans every pair i<j in population order. An agent takes part in
// at most one resolution per call, except a black hole consuming prey. The
// population is replaced by the survivors followed by the merge results.
func (r *Resolver) Resolve(pop *Population) Report {
	var rep Report
	agents := pop.Agents()
	n := len(agents)

	if cap(r.resolved) < n {
		r.resolved = make([]bool, n)
	}
	r.resolved = r.resolved[:n]
	clear(r.resolved)

	var born []Agent
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if r.resolved[i] {
				break
			}
			if r.resolved[j] {
				continue
			}
			a, b := agents[i], agents[j]
			if !a.Intersects(b) {
				continue
			}

			aHole := a.Kind() == components.KindBlackHole
			bHole := b.Kind() == components.KindBlackHole
			switch {
			case aHole && bHole:
				// Two horizons pass through each other
			case aHole:
				rep.add(r.consume(a, b))
				r.resolved[j] = true
			case bHole:
				rep.add(r.consume(b, a))
				r.resolved[i] = true
			case a.State().Shape == components.ShapeBomb || b.State().Shape == components.ShapeBomb:
				rep.add(r.detonate(a, b))
				r.resolved[i] = true
				r.resolved[j] = true
			default:
				merged, ev, ok := r.merge(a, b)
				if !ok {
					continue
				}
				born = append(born, merged)
				rep.add(ev)
				r.resolved[i] = true
				r.resolved[j] = true
			}
		}
	}

	if len(rep.Events) == 0 {
		return rep
	}

	next := make([]Agent, 0, n+len(born))
	for i, a := range agents {
		if !r.resolved[i] {
			next = append(next, a)
		}
	}
	next = append(next, born...)
	pop.Replace(next)
	return rep
}

func (rep *Report) add(ev Event) {
	switch ev.Kind {
	case EventMerge:
		rep.Merges++
	case EventConsume:
		rep.Consumptions++
	case EventDetonate:
		rep.Detonations++
	}
	rep.Events = append(rep.Events, ev)
}

func (r *Resolver) consume(hole, prey Agent) Event {
	h := hole.State()
	p := prey.State()
	h.R = radiusForCombinedArea(h.R, p.R)
	prey.Release()
	return Event{
		Kind:       EventConsume,
		A:          h.ID,
		B:          p.ID,
		Result:     h.ID,
		ResultKind: components.KindBlackHole,
		Pos:        h.Pos,
		Size:       h.R,
	}
}

func (r *Resolver) detonate(a, b Agent) Event {
	sa, sb := a.State(), b.State()
	center := sa.Pos.Add(sb.Pos).Mul(0.5)
	size := sa.R + sb.R
	if r.effects != nil {
		r.effects.EmitExplosion(center, size, sa.Color, sb.Color)
	}
	a.Release()
	b.Release()
	slog.Debug("detonation", "a", sa.ID, "b", sb.ID, "size", size)
	return Event{Kind: EventDetonate, A: sa.ID, B: sb.ID, Pos: center, Size: size}
}

// merge combines two agents conserving area, momentum and colour. It fails
// only for a degenerate pair with no area.
func (r *Resolver) merge(a, b Agent) (Agent, Event, bool) {
	sa, sb := a.State(), b.State()
	areaA, areaB := sa.Area(), sb.Area()
	total := areaA + areaB
	if total <= 0 {
		return nil, Event{}, false
	}

	radius := systems.RadiusForArea(total)
	pos := weighted(sa.Pos, areaA, sb.Pos, areaB)
	vel := weighted(sa.Vel, areaA, sb.Vel, areaB)
	col := MergeColor(sa.Color, areaA, sb.Color, areaB)

	f := r.factory
	var merged Agent
	switch {
	case a.Kind() == components.KindKiller || b.Kind() == components.KindKiller:
		merged = f.NewKiller(pos, vel, radius, col)
	case a.Kind() == components.KindCluster || b.Kind() == components.KindCluster:
		merged = f.NewCluster(pos, vel, radius, col)
	default:
		shape := sb.Shape
		if sa.R > sb.R {
			shape = sa.Shape
		}
		merged = f.NewBasic(pos, vel, radius, col, shape)
	}
	a.Release()
	b.Release()

	return merged, Event{
		Kind:       EventMerge,
		A:          sa.ID,
		B:          sb.ID,
		Result:     merged.State().ID,
		ResultKind: merged.Kind(),
		Pos:        pos,
		Size:       radius,
	}, true
}

func weighted(a r2.Point, wa float64, b r2.Point, wb float64) r2.Point {
	return a.Mul(wa).Add(b.Mul(wb)).Mul(1 / (wa + wb))
}

func radiusForCombinedArea(r1, r2 float64) float64 {
	return systems.RadiusForArea(systems.CircleArea(r1) + systems.CircleArea(r2))
}
