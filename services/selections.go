package services

// Pipe flashing sizes and vent types the catalog carries.
const (
	PipeFlashingTwoInch   = "2_inch"
	PipeFlashingThreeInch = "3_inch"

	VentGooseneck4  = "gooseneck_4"
	VentGooseneck10 = "gooseneck_10"
	VentOffRidge    = "off_ridge"
)

// AddonQuantity is a user-entered count for one pipe flashing size or vent type.
type AddonQuantity struct {
	Type     string `json:"type"`
	Quantity int    `json:"quantity"`
}

// Selections is the user's add-on choices for one estimate. It is treated as
// an immutable value: Apply returns an updated copy and never mutates the
// receiver, so a half-applied action can never leak into a computation.
type Selections struct {
	PlywoodReplacement bool            `json:"plywood_replacement"`
	FlatRoofISO        bool            `json:"flat_roof_iso"`
	BaseCap            bool            `json:"base_cap"`
	PipeFlashings      []AddonQuantity `json:"pipe_flashings,omitempty"`
	Vents              []AddonQuantity `json:"vents,omitempty"`
}

// SelectionAction mutation kinds for Apply.
const (
	ActionTogglePlywood   = "toggle_plywood"
	ActionToggleISO       = "toggle_iso"
	ActionToggleBaseCap   = "toggle_base_cap"
	ActionSetPipeFlashing = "set_pipe_flashing"
	ActionRemovePipeFlash = "remove_pipe_flashing"
	ActionSetVent         = "set_vent"
	ActionRemoveVent      = "remove_vent"
	ActionClearSelections = "clear"
)

// SelectionAction is one selection change: a kind plus, for the quantity
// actions, the addon type and count.
type SelectionAction struct {
	Kind     string `json:"kind"`
	Type     string `json:"type,omitempty"`
	Quantity int    `json:"quantity,omitempty"`
}

// Apply reduces an action onto a Selections value and returns the result.
// Unknown action kinds return the input unchanged.
func Apply(s Selections, a SelectionAction) Selections {
	switch a.Kind {
	case ActionTogglePlywood:
		s.PlywoodReplacement = !s.PlywoodReplacement
	case ActionToggleISO:
		s.FlatRoofISO = !s.FlatRoofISO
	case ActionToggleBaseCap:
		s.BaseCap = !s.BaseCap
	case ActionSetPipeFlashing:
		s.PipeFlashings = setQuantity(s.PipeFlashings, a.Type, a.Quantity)
	case ActionRemovePipeFlash:
		s.PipeFlashings = removeQuantity(s.PipeFlashings, a.Type)
	case ActionSetVent:
		s.Vents = setQuantity(s.Vents, a.Type, a.Quantity)
	case ActionRemoveVent:
		s.Vents = removeQuantity(s.Vents, a.Type)
	case ActionClearSelections:
		s = Selections{}
	}
	return s
}

// setQuantity upserts an addon count into a fresh slice, preserving order.
func setQuantity(list []AddonQuantity, typ string, qty int) []AddonQuantity {
	out := make([]AddonQuantity, 0, len(list)+1)
	found := false
	for _, q := range list {
		if q.Type == typ {
			q.Quantity = qty
			found = true
		}
		out = append(out, q)
	}
	if !found {
		out = append(out, AddonQuantity{Type: typ, Quantity: qty})
	}
	return out
}

func removeQuantity(list []AddonQuantity, typ string) []AddonQuantity {
	out := make([]AddonQuantity, 0, len(list))
	for _, q := range list {
		if q.Type != typ {
			out = append(out, q)
		}
	}
	return out
}
