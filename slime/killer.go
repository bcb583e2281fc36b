package slime

import (
	"math"

	"github.com/golang/geo/r2"

	"github.com/pthm-cable/slime/components"
	"github.com/pthm-cable/slime/systems"
)

// Killer hunts the closest smaller agent and flees nearby larger ones.
type Killer struct {
	Body

	// target is the ID of the hunted agent, 0 for none. It never owns the
	// agent and is checked against the population on every read.
	target uint64
}

// Kind implements Agent.
func (k *Killer) Kind() components.Kind {
	return components.KindKiller
}

// Target resolves the hunted agent. A target that has left the population
// is cleared.
func (k *Killer) Target(pop *Population) (Agent, bool) {
	if k.target == 0 || pop == nil {
		return nil, false
	}
	a, ok := pop.Find(k.target)
	if !ok {
		k.target = 0
		return nil, false
	}
	return a, true
}

// TargetID returns the raw target ID without validating it.
func (k *Killer) TargetID() uint64 {
	return k.target
}

// Steering partitions the other agents into predators and prey and returns
// the flee or arrive force. Fleeing always wins and clears the target.
func (k *Killer) Steering(ctx *MoveContext) r2.Point {
	kc := ctx.Cfg.Killer

	var fleeSum r2.Point
	predators := 0
	var prey Agent
	closest := math.Inf(1)

	for _, other := range ctx.Population.Agents() {
		o := other.State()
		if o.ID == k.ID {
			continue
		}
		d := systems.Dist(k.Pos, o.Pos)
		if o.R > k.R {
			if d < k.R+kc.FleeDistance {
				fleeSum = fleeSum.Add(systems.Flee(k.Pos, k.Vel, o.Pos, k.MaxSpeed, k.MaxForce))
				predators++
			}
			continue
		}
		if d < closest {
			closest = d
			prey = other
		}
	}

	switch {
	case predators > 0:
		k.target = 0
		return fleeSum.Mul(kc.FleeWeight / float64(predators))
	case prey != nil:
		k.target = prey.State().ID
		return systems.Arrive(k.Pos, k.Vel, prey.State().Pos, k.MaxSpeed, k.MaxForce, kc.SlowdownRadius)
	default:
		k.target = 0
		return r2.Point{}
	}
}

// Move implements Agent.
func (k *Killer) Move(ctx *MoveContext) {
	kc := ctx.Cfg.Killer

	steer := k.Steering(ctx)
	if steer.Norm() == 0 {
		steer = systems.Wander(k.wanderHeading(ctx), kc.WanderForce)
	}
	if ctx.Flow != nil {
		flow := systems.Follow(k.Vel, ctx.Flow.Lookup(k.Pos.X, k.Pos.Y), k.MaxSpeed, k.MaxForce)
		steer = steer.Add(flow.Mul(kc.FlowWeight))
	}

	k.integrate(ctx, steer, k.MaxSpeed)
}

// Split implements Agent. Killers split into ordinary basics.
func (k *Killer) Split(f *Factory) []Agent {
	return f.splitIntoBasics(&k.Body)
}

// Release implements Agent.
func (k *Killer) Release() {
	k.target = 0
}
