// Package triage implements the sales-eligibility triage engine: the decision
// tree a field agent walks through before filing a consultation for a store.
//
// The engine is pure in-memory logic. It owns no storage and performs no I/O;
// callers keep one Wizard per session and hand the resulting Snapshot to the
// consultation collaborator.
package triage

import (
	"fmt"
	"sort"
)

// ConditionGroup classifies a block condition.
type ConditionGroup string

const (
	GroupDevice  ConditionGroup = "device"
	GroupService ConditionGroup = "service"
)

// BlockCondition is a single disqualifying fact about a prospective store.
type BlockCondition struct {
	ID    string         `json:"id"`
	Label string         `json:"label"`
	Group ConditionGroup `json:"group"`
}

// Severity drives how a recommendation is rendered.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityBlocked Severity = "blocked"
)

// RecommendationKey is the closed set of triage outcomes.
type RecommendationKey string

const (
	NewDelivery            RecommendationKey = "new_delivery"
	NewNoDelivery          RecommendationKey = "new_no_delivery"
	ExistingWindows        RecommendationKey = "existing_windows"
	ExistingAndroid        RecommendationKey = "existing_android"
	BlockedContract        RecommendationKey = "blocked_contract"
	NeedCompatibilityCheck RecommendationKey = "need_compatibility_check"
)

// AllRecommendationKeys lists every RecommendationKey in declaration order.
func AllRecommendationKeys() []RecommendationKey {
	return []RecommendationKey{
		NewDelivery,
		NewNoDelivery,
		ExistingWindows,
		ExistingAndroid,
		BlockedContract,
		NeedCompatibilityCheck,
	}
}

// Valid reports whether k is a member of the closed enum.
func (k RecommendationKey) Valid() bool {
	for _, known := range AllRecommendationKeys() {
		if k == known {
			return true
		}
	}
	return false
}

// RecommendationTemplate is the canned guidance shown for an outcome.
type RecommendationTemplate struct {
	Key      RecommendationKey `json:"key"`
	Title    string            `json:"title"`
	Items    []string          `json:"items"`
	Severity Severity          `json:"severity"`
}

// Catalog is the read-only lookup surface over the static reference tables.
// The resolver never consults it; the wizard and the compatibility check do,
// so tests can swap it without touching decision logic.
type Catalog interface {
	BlockConditions() []BlockCondition
	BlockCondition(id string) (BlockCondition, bool)
	IsCompatibleVan(name string) bool
	IsIncompatibleVan(name string) bool
	TerminalsFor(vanName string) []string
	IsCompatibleTerminal(vanName, terminalModel string) bool
	TemplateFor(key RecommendationKey) RecommendationTemplate
}

// Tables is the in-memory Catalog implementation.
type Tables struct {
	conditions   []BlockCondition
	conditionIdx map[string]BlockCondition
	compatible   map[string][]string
	incompatible map[string]struct{}
	templates    map[RecommendationKey]RecommendationTemplate
}

// TablesSpec describes the data a Tables value is built from.
type TablesSpec struct {
	BlockConditions []BlockCondition
	// CompatibleVans maps each compatible VAN to its supported terminal models, in display order.
	CompatibleVans   map[string][]string
	IncompatibleVans []string
	Templates        []RecommendationTemplate
}

// NewTables builds a Catalog from spec. It rejects duplicate condition IDs, a
// VAN listed on both sides, and templates for unknown keys.
func NewTables(spec TablesSpec) (*Tables, error) {
	t := &Tables{
		conditionIdx: make(map[string]BlockCondition, len(spec.BlockConditions)),
		compatible:   make(map[string][]string, len(spec.CompatibleVans)),
		incompatible: make(map[string]struct{}, len(spec.IncompatibleVans)),
		templates:    make(map[RecommendationKey]RecommendationTemplate, len(spec.Templates)),
	}

	for _, c := range spec.BlockConditions {
		if _, dup := t.conditionIdx[c.ID]; dup {
			return nil, fmt.Errorf("duplicate block condition %q", c.ID)
		}
		t.conditionIdx[c.ID] = c
		t.conditions = append(t.conditions, c)
	}

	for van, terminals := range spec.CompatibleVans {
		t.compatible[van] = append([]string(nil), terminals...)
	}
	for _, van := range spec.IncompatibleVans {
		if _, both := t.compatible[van]; both {
			return nil, fmt.Errorf("van %q listed as both compatible and incompatible", van)
		}
		t.incompatible[van] = struct{}{}
	}

	for _, tpl := range spec.Templates {
		if !tpl.Key.Valid() {
			return nil, fmt.Errorf("template for unknown recommendation key %q", tpl.Key)
		}
		tpl.Items = append([]string(nil), tpl.Items...)
		t.templates[tpl.Key] = tpl
	}

	return t, nil
}

func (t *Tables) BlockConditions() []BlockCondition {
	return append([]BlockCondition(nil), t.conditions...)
}

func (t *Tables) BlockCondition(id string) (BlockCondition, bool) {
	c, ok := t.conditionIdx[id]
	return c, ok
}

func (t *Tables) IsCompatibleVan(name string) bool {
	_, ok := t.compatible[name]
	return ok
}

func (t *Tables) IsIncompatibleVan(name string) bool {
	_, ok := t.incompatible[name]
	return ok
}

// TerminalsFor returns an empty slice for unknown or incompatible VANs.
func (t *Tables) TerminalsFor(vanName string) []string {
	terminals, ok := t.compatible[vanName]
	if !ok {
		return []string{}
	}
	return append([]string{}, terminals...)
}

func (t *Tables) IsCompatibleTerminal(vanName, terminalModel string) bool {
	for _, m := range t.compatible[vanName] {
		if m == terminalModel {
			return true
		}
	}
	return false
}

// TemplateFor panics when key has no template. Every key is covered by the
// default tables; a miss means the enum and the tables drifted apart.
func (t *Tables) TemplateFor(key RecommendationKey) RecommendationTemplate {
	tpl, ok := t.templates[key]
	if !ok {
		panic(fmt.Sprintf("triage: no recommendation template for %q", key))
	}
	tpl.Items = append([]string(nil), tpl.Items...)
	return tpl
}

// CompatibleVans returns the compatible VAN names sorted alphabetically.
func (t *Tables) CompatibleVans() []string {
	out := make([]string, 0, len(t.compatible))
	for van := range t.compatible {
		out = append(out, van)
	}
	sort.Strings(out)
	return out
}

// IncompatibleVans returns the incompatible VAN names sorted alphabetically.
func (t *Tables) IncompatibleVans() []string {
	out := make([]string, 0, len(t.incompatible))
	for van := range t.incompatible {
		out = append(out, van)
	}
	sort.Strings(out)
	return out
}
