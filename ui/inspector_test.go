package ui

import (
	"testing"

	"github.com/golang/geo/r2"

	"github.com/pthm-cable/slime/components"
	"github.com/pthm-cable/slime/config"
	"github.com/pthm-cable/slime/slime"
)

func rowIDs(rows []InspectorRow) []string {
	ids := make([]string, len(rows))
	for i, r := range rows {
		ids[i] = r.Field.ID
	}
	return ids
}

func TestInspectorRows(t *testing.T) {
	sim := slime.New(config.Default(), 1)
	f := sim.Factory()
	pop := sim.Population()
	fields := components.AgentFieldDescriptors()
	tint := components.Color{R: 200, G: 150, B: 100, A: 60}

	basic := f.NewBasic(r2.Point{X: 100, Y: 100}, r2.Point{}, 20, tint, components.ShapeCircle)
	hole := f.NewBlackHole(r2.Point{X: 300, Y: 300}, 40)
	cluster := f.NewCluster(r2.Point{X: 500, Y: 300}, r2.Point{X: 1}, 40, tint)
	defer cluster.Release()

	tests := []struct {
		name  string
		agent slime.Agent
		want  []string
	}{
		{"basic at rest", basic, []string{"radius", "area", "speed", "max_speed", "alpha"}},
		{"black hole", hole, []string{"radius", "area", "speed", "alpha"}},
		{"cluster", cluster, []string{"radius", "area", "speed", "max_speed", "alpha", "particles"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := rowIDs(Rows(fields, tt.agent, pop))
			if len(got) != len(tt.want) {
				t.Fatalf("rows = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("row %d = %s, want %s", i, got[i], tt.want[i])
				}
			}
		})
	}

	rows := Rows(fields, basic, pop)
	if rows[0].Value != 20 {
		t.Errorf("radius row = %v, want 20", rows[0].Value)
	}
}
