package triage

// CompatibilityStatus is the result of the advisory VAN/terminal check.
type CompatibilityStatus string

const (
	CompatibilityNotApplicable   CompatibilityStatus = "not_applicable"
	CompatibilityVanPending      CompatibilityStatus = "van_pending"
	CompatibilityVanIncompatible CompatibilityStatus = "van_incompatible"
	CompatibilityTerminalPending CompatibilityStatus = "terminal_pending"
	CompatibilityCompatible      CompatibilityStatus = "compatible"
	CompatibilitySwapRequired    CompatibilityStatus = "terminal_swap_required"
)

// Compatibility reports whether the store's current VAN and card terminal
// can be kept when the Android POS is replaced. It never changes the
// recommendation.
type Compatibility struct {
	Status             CompatibilityStatus `json:"status"`
	Van                string              `json:"van,omitempty"`
	Terminal           string              `json:"terminal,omitempty"`
	SupportedTerminals []string            `json:"supportedTerminals,omitempty"`
	Message            string              `json:"message"`
}

func compatibilityApplies(s State) bool {
	return s.WillReplaceDevice != nil && *s.WillReplaceDevice &&
		s.CurrentPosPlatform != nil && *s.CurrentPosPlatform == PlatformAndroid
}

// CheckCompatibility runs the VAN/terminal sub-check against c.
func CheckCompatibility(c Catalog, s State) Compatibility {
	if c == nil {
		c = DefaultCatalog()
	}
	if s.Blocked() || !compatibilityApplies(s) {
		return Compatibility{
			Status:  CompatibilityNotApplicable,
			Message: "compatibility check applies only when an Android POS is being replaced",
		}
	}
	if s.SelectedVan == nil {
		return Compatibility{
			Status:  CompatibilityVanPending,
			Message: "select the store's current VAN",
		}
	}

	van := *s.SelectedVan
	if !c.IsCompatibleVan(van) {
		return Compatibility{
			Status:  CompatibilityVanIncompatible,
			Van:     van,
			Message: "VAN is not supported, a new VAN contract is required",
		}
	}

	out := Compatibility{
		Van:                van,
		SupportedTerminals: c.TerminalsFor(van),
	}
	switch {
	case s.SelectedTerminal == nil:
		out.Status = CompatibilityTerminalPending
		out.Message = "select the store's current card terminal"
	case c.IsCompatibleTerminal(van, *s.SelectedTerminal):
		out.Status = CompatibilityCompatible
		out.Terminal = *s.SelectedTerminal
		out.Message = "compatible, no terminal swap needed"
	default:
		out.Status = CompatibilitySwapRequired
		out.Terminal = *s.SelectedTerminal
		out.Message = "VAN is supported but the terminal must be swapped"
	}
	return out
}
