package slime

import (
	"github.com/golang/geo/r2"

	"github.com/pthm-cable/slime/components"
	"github.com/pthm-cable/slime/systems"
)

// Cluster is a soft body. Its position, velocity and radius mirror the
// particle statistics and are refreshed on every Move.
type Cluster struct {
	Body
	soft *systems.SoftBody
}

// Kind implements Agent.
func (c *Cluster) Kind() components.Kind {
	return components.KindCluster
}

// SoftBody exposes the particle aggregate for drawing.
func (c *Cluster) SoftBody() *systems.SoftBody {
	return c.soft
}

// ApplyFlow pushes every particle along the flow field.
func (c *Cluster) ApplyFlow(flow systems.FlowSampler, scale float64) {
	c.soft.ApplyForce(func(p r2.Point) r2.Point {
		return flow.Lookup(p.X, p.Y).Mul(scale)
	})
}

// AddVelocity changes the velocity of every particle.
func (c *Cluster) AddVelocity(dv r2.Point) {
	c.soft.AddVelocity(dv)
	c.Vel = c.Vel.Add(dv)
}

// Move implements Agent. Clusters apply no force of their own; they read
// back what the solver produced and are pushed back inside the bounds.
func (c *Cluster) Move(ctx *MoveContext) {
	c.soft.Recompute()
	c.soft.Contain(ctx.Bounds)
	c.sync()
}

func (c *Cluster) sync() {
	c.Pos = c.soft.Pos
	c.Vel = c.soft.Vel
	c.R = c.soft.Radius
}

// Split implements Agent. Children are clusters carrying the parent's
// velocity plus the kick.
func (c *Cluster) Split(f *Factory) []Agent {
	plan, ok := f.planSplit(&c.Body)
	if !ok {
		return nil
	}
	kick := plan.axis.Mul(f.cfg.Split.Kick)
	first := f.NewCluster(c.Pos.Add(plan.offset), c.Vel.Add(kick), plan.r, plan.c1)
	if plan.blackHole {
		return []Agent{first, f.NewBlackHole(c.Pos.Sub(plan.offset), plan.r)}
	}
	second := f.NewCluster(c.Pos.Sub(plan.offset), c.Vel.Sub(kick), plan.r, plan.c2)
	return []Agent{first, second}
}

// Release implements Agent. It unregisters every particle and spring.
func (c *Cluster) Release() {
	c.soft.Destroy()
}
