package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// OverlayID uniquely identifies an overlay.
type OverlayID string

// Standard overlay IDs.
const (
	OverlaySpeed      OverlayID = "speed"
	OverlayVorticity  OverlayID = "vorticity"
	OverlayDivergence OverlayID = "divergence"
	OverlayKinds      OverlayID = "cell_kinds"
	OverlayTracers    OverlayID = "tracers"
	OverlayVectors    OverlayID = "vectors"
)

// OverlayDescriptor defines an overlay that can be toggled.
type OverlayDescriptor struct {
	ID          OverlayID   // Unique identifier
	Name        string      // Display name
	Description string      // What this overlay shows
	Key         int32       // Keyboard key to toggle (0 = no key)
	KeyLabel    string      // Key label for display (e.g., "V")
	Category    string      // Grouping ("field" or "debug")
	Exclusive   []OverlayID // Other overlays to disable when this is enabled
}

// OverlayRegistry manages overlay state and metadata.
type OverlayRegistry struct {
	descriptors []OverlayDescriptor
	byID        map[OverlayID]OverlayDescriptor
	enabled     map[OverlayID]bool
}

// NewOverlayRegistry creates a registry with default overlays.
// The speed field, cell kinds and tracers start enabled.
func NewOverlayRegistry() *OverlayRegistry {
	reg := &OverlayRegistry{
		byID:    make(map[OverlayID]OverlayDescriptor),
		enabled: make(map[OverlayID]bool),
	}
	reg.registerDefaults()
	reg.SetEnabled(OverlaySpeed, true)
	reg.SetEnabled(OverlayKinds, true)
	reg.SetEnabled(OverlayTracers, true)
	return reg
}

func (r *OverlayRegistry) registerDefaults() {
	// Scalar fields, one at a time
	fields := []OverlayID{OverlaySpeed, OverlayVorticity, OverlayDivergence}
	others := func(id OverlayID) []OverlayID {
		var out []OverlayID
		for _, f := range fields {
			if f != id {
				out = append(out, f)
			}
		}
		return out
	}

	r.Register(OverlayDescriptor{
		ID:          OverlaySpeed,
		Name:        "Speed",
		Description: "Colour cells by flow speed",
		Key:         rl.KeyC,
		KeyLabel:    "C",
		Category:    "field",
		Exclusive:   others(OverlaySpeed),
	})

	r.Register(OverlayDescriptor{
		ID:          OverlayVorticity,
		Name:        "Vorticity",
		Description: "Colour cells by signed curl",
		Key:         rl.KeyV,
		KeyLabel:    "V",
		Category:    "field",
		Exclusive:   others(OverlayVorticity),
	})

	r.Register(OverlayDescriptor{
		ID:          OverlayDivergence,
		Name:        "Divergence",
		Description: "Colour cells by remaining divergence",
		Key:         rl.KeyD,
		KeyLabel:    "D",
		Category:    "field",
		Exclusive:   others(OverlayDivergence),
	})

	r.Register(OverlayDescriptor{
		ID:          OverlayKinds,
		Name:        "Cell Kinds",
		Description: "Tint wall, inlet and mirrored cells",
		Key:         rl.KeyK,
		KeyLabel:    "K",
		Category:    "debug",
	})

	r.Register(OverlayDescriptor{
		ID:          OverlayTracers,
		Name:        "Tracers",
		Description: "Passive particles advected by the flow",
		Key:         rl.KeyT,
		KeyLabel:    "T",
		Category:    "debug",
	})

	r.Register(OverlayDescriptor{
		ID:          OverlayVectors,
		Name:        "Vectors",
		Description: "Cell-centred velocity arrows",
		Key:         rl.KeyG,
		KeyLabel:    "G",
		Category:    "debug",
	})
}

// Register adds an overlay to the registry.
func (r *OverlayRegistry) Register(desc OverlayDescriptor) {
	r.descriptors = append(r.descriptors, desc)
	r.byID[desc.ID] = desc
	r.enabled[desc.ID] = false
}

// Toggle switches an overlay on/off and handles exclusivity.
func (r *OverlayRegistry) Toggle(id OverlayID) bool {
	if _, ok := r.byID[id]; !ok {
		return false
	}
	r.SetEnabled(id, !r.enabled[id])
	return r.enabled[id]
}

// SetEnabled explicitly sets an overlay's state.
func (r *OverlayRegistry) SetEnabled(id OverlayID, enabled bool) {
	desc, ok := r.byID[id]
	if !ok {
		return
	}

	r.enabled[id] = enabled

	if enabled {
		for _, excl := range desc.Exclusive {
			r.enabled[excl] = false
		}
	}
}

// IsEnabled returns whether an overlay is active.
func (r *OverlayRegistry) IsEnabled(id OverlayID) bool {
	return r.enabled[id]
}

// All returns all registered overlays in registration order.
func (r *OverlayRegistry) All() []OverlayDescriptor {
	return r.descriptors
}

// HandleKeyPress checks if a key corresponds to an overlay toggle.
// Returns the overlay ID and new state if a toggle occurred.
func (r *OverlayRegistry) HandleKeyPress(key int32) (OverlayID, bool, bool) {
	for _, desc := range r.descriptors {
		if desc.Key == key {
			newState := r.Toggle(desc.ID)
			return desc.ID, newState, true
		}
	}
	return "", false, false
}

// ActiveField returns the enabled scalar field overlay, or "" if none.
func (r *OverlayRegistry) ActiveField() OverlayID {
	for _, desc := range r.descriptors {
		if desc.Category == "field" && r.enabled[desc.ID] {
			return desc.ID
		}
	}
	return ""
}
