package components

// FieldDescriptor describes an agent field for UI display.
type FieldDescriptor struct {
	ID           string  // Unique identifier
	Label        string  // Display name
	Format       string  // Printf format (e.g., "%.2f")
	Min          float32 // Minimum value (for bars)
	Max          float32 // Maximum value (for bars)
	IsBar        bool    // True to render as progress bar
	ShowWhenZero bool    // Show even when value is zero
	Group        string  // Logical grouping
}

// AgentFieldDescriptors returns metadata for the inspector card.
// Field IDs must match cases in slime.FieldValue().
func AgentFieldDescriptors() []FieldDescriptor {
	return []FieldDescriptor{
		{ID: "radius", Label: "Radius", Format: "%.1f", Min: 0, Max: 150, IsBar: true, ShowWhenZero: true, Group: "body"},
		{ID: "area", Label: "Area", Format: "%.0f", Group: "body"},
		{ID: "speed", Label: "Speed", Format: "%.2f", Min: 0, Max: 5, IsBar: true, ShowWhenZero: true, Group: "motion"},
		{ID: "max_speed", Label: "Max Speed", Format: "%.2f", Group: "motion"},
		{ID: "alpha", Label: "Alpha", Format: "%.0f", Min: 0, Max: 255, IsBar: true, Group: "color"},
		{ID: "particles", Label: "Particles", Format: "%.0f", Group: "cluster"},
		{ID: "target", Label: "Target", Format: "#%.0f", Group: "killer"},
	}
}
