package triage

import "sort"

type BusinessType string

const (
	BusinessFood    BusinessType = "food"
	BusinessNonFood BusinessType = "non_food"
)

func (b BusinessType) Valid() bool {
	return b == BusinessFood || b == BusinessNonFood
}

type StoreType string

const (
	StoreNew      StoreType = "new"
	StoreExisting StoreType = "existing"
)

func (s StoreType) Valid() bool {
	return s == StoreNew || s == StoreExisting
}

type PosPlatform string

const (
	PlatformWindows PosPlatform = "windows"
	PlatformAndroid PosPlatform = "android"
)

func (p PosPlatform) Valid() bool {
	return p == PlatformWindows || p == PlatformAndroid
}

// State is the flat view of a triage session. A nil pointer means the
// question is unanswered or not applicable on the current branch.
type State struct {
	BlockedConditionIDs       []string
	BusinessType              *BusinessType
	StoreType                 *StoreType
	UsesDelivery              *bool
	ContractObligationCleared *bool
	WillReplaceDevice         *bool
	CurrentPosPlatform        *PosPlatform
	SelectedVan               *string
	SelectedTerminal          *string
}

// Blocked reports whether any block condition is checked.
func (s State) Blocked() bool {
	return len(s.BlockedConditionIDs) > 0
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	out := State{
		BusinessType:              clonePtr(s.BusinessType),
		StoreType:                 clonePtr(s.StoreType),
		UsesDelivery:              clonePtr(s.UsesDelivery),
		ContractObligationCleared: clonePtr(s.ContractObligationCleared),
		WillReplaceDevice:         clonePtr(s.WillReplaceDevice),
		CurrentPosPlatform:        clonePtr(s.CurrentPosPlatform),
		SelectedVan:               clonePtr(s.SelectedVan),
		SelectedTerminal:          clonePtr(s.SelectedTerminal),
	}
	if len(s.BlockedConditionIDs) > 0 {
		out.BlockedConditionIDs = normalizeIDs(s.BlockedConditionIDs)
	}
	return out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func ptr[T any](v T) *T {
	return &v
}

// normalizeIDs returns a sorted copy of ids without duplicates or empties.
func normalizeIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Strings(out)
	if len(out) == 0 {
		return nil
	}
	return out
}
