package main

import (
	"errors"

	"github.com/pthm-cable/slime/config"
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
	Set     func(cfg *config.Config, v float64)
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of optimizable parameters.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			// Motion
			{Name: "max_speed", Path: "motion.max_speed", Min: 1, Max: 6, Default: 3,
				Set: func(c *config.Config, v float64) { c.Motion.MaxSpeed = v }},
			{Name: "wander_force", Path: "motion.wander_force", Min: 0.02, Max: 0.4, Default: 0.1,
				Set: func(c *config.Config, v float64) { c.Motion.WanderForce = v }},
			// Killers
			{Name: "killer_max_speed", Path: "killer.max_speed", Min: 1, Max: 6, Default: 3,
				Set: func(c *config.Config, v float64) { c.Killer.MaxSpeed = v }},
			{Name: "killer_flee_distance", Path: "killer.flee_distance", Min: 20, Max: 300, Default: 100,
				Set: func(c *config.Config, v float64) { c.Killer.FleeDistance = v }},
			// Splitting
			{Name: "split_kick", Path: "split.kick", Min: 1, Max: 10, Default: 5,
				Set: func(c *config.Config, v float64) { c.Split.Kick = v }},
			{Name: "black_hole_chance", Path: "split.black_hole_chance", Min: 0, Max: 0.5, Default: 0.1,
				Set: func(c *config.Config, v float64) { c.Split.BlackHoleChance = v }},
			// Black holes
			{Name: "black_hole_g", Path: "black_hole.g", Min: 1, Max: 20, Default: 6,
				Set: func(c *config.Config, v float64) { c.BlackHole.G = v }},
			{Name: "black_hole_max_distance", Path: "black_hole.max_distance", Min: 80, Max: 400, Default: 200,
				Set: func(c *config.Config, v float64) { c.BlackHole.MaxDistance = v }},
			// Clusters
			{Name: "spring_strength", Path: "cluster.spring_strength", Min: 0.01, Max: 0.3, Default: 0.05,
				Set: func(c *config.Config, v float64) { c.Cluster.SpringStrength = v }},
			{Name: "cluster_flow_scale", Path: "cluster.flow_scale", Min: 0, Max: 0.5, Default: 0.1,
				Set: func(c *config.Config, v float64) { c.Cluster.FlowScale = v }},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		val := v[i]
		if val < spec.Min {
			val = spec.Min
		}
		if val > spec.Max {
			val = spec.Max
		}
		clamped[i] = val
	}
	return clamped
}

// ApplyToConfig applies clamped parameter values to a Config struct.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	for i, v := range pv.Clamp(values) {
		pv.Specs[i].Set(cfg, v)
	}
}

var (
	errMissingOutput = errors.New("--output is required")
	errNoEvaluations = errors.New("no evaluations completed")
)
