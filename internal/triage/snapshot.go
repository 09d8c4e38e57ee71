package triage

import (
	"encoding/json"
	"strings"
)

// SnapshotSchemaVersion is written into every new snapshot. Version 1
// payloads stored boolean answers as "yes"/"no" strings.
const SnapshotSchemaVersion = 2

// Snapshot is the opaque, versioned form of a triage session that travels
// with a consultation record.
type Snapshot struct {
	SchemaVersion             int                `json:"schemaVersion"`
	BlockedConditionIDs       []string           `json:"blockedConditionIds"`
	BusinessType              *BusinessType      `json:"businessType"`
	StoreType                 *StoreType         `json:"storeType"`
	UsesDelivery              *bool              `json:"usesDelivery"`
	ContractObligationCleared *bool              `json:"contractObligationCleared"`
	WillReplaceDevice         *bool              `json:"willReplaceDevice"`
	CurrentPosPlatform        *PosPlatform       `json:"currentPosPlatform"`
	SelectedVan               *string            `json:"selectedVan"`
	SelectedTerminal          *string            `json:"selectedTerminal"`
	Outcome                   *RecommendationKey `json:"outcome"`
}

// TakeSnapshot copies s and records its current outcome.
func TakeSnapshot(s State) Snapshot {
	c := s.Clone()
	ids := c.BlockedConditionIDs
	if ids == nil {
		ids = []string{}
	}
	return Snapshot{
		SchemaVersion:             SnapshotSchemaVersion,
		BlockedConditionIDs:       ids,
		BusinessType:              c.BusinessType,
		StoreType:                 c.StoreType,
		UsesDelivery:              c.UsesDelivery,
		ContractObligationCleared: c.ContractObligationCleared,
		WillReplaceDevice:         c.WillReplaceDevice,
		CurrentPosPlatform:        c.CurrentPosPlatform,
		SelectedVan:               c.SelectedVan,
		SelectedTerminal:          c.SelectedTerminal,
		Outcome:                   Resolve(c),
	}
}

// State returns the raw flat state carried by the snapshot, without
// dropping fields that are unreachable on their branch.
func (s Snapshot) State() State {
	return State{
		BlockedConditionIDs:       normalizeIDs(s.BlockedConditionIDs),
		BusinessType:              clonePtr(s.BusinessType),
		StoreType:                 clonePtr(s.StoreType),
		UsesDelivery:              clonePtr(s.UsesDelivery),
		ContractObligationCleared: clonePtr(s.ContractObligationCleared),
		WillReplaceDevice:         clonePtr(s.WillReplaceDevice),
		CurrentPosPlatform:        clonePtr(s.CurrentPosPlatform),
		SelectedVan:               clonePtr(s.SelectedVan),
		SelectedTerminal:          clonePtr(s.SelectedTerminal),
	}
}

// Restore turns a snapshot back into a state for read-only display. Invalid
// values and answers that do not belong to the recorded branch come back as
// nil.
func Restore(s Snapshot) State {
	return RestoreWizard(DefaultCatalog(), s).State()
}

// RestoreWizard rebuilds a live wizard from a snapshot, applying the same
// tolerance as Restore.
func RestoreWizard(c Catalog, s Snapshot) *Wizard {
	return restoreWizard(c, s.State())
}

// Marshal encodes the snapshot for storage.
func (s Snapshot) Marshal() ([]byte, error) {
	if s.BlockedConditionIDs == nil {
		s.BlockedConditionIDs = []string{}
	}
	return json.Marshal(s)
}

// DecodeSnapshot parses a stored payload. It never fails: malformed input
// yields the empty snapshot and each unreadable field is left nil.
// BlockedConditionIDs is never nil.
func DecodeSnapshot(raw []byte) Snapshot {
	s := Snapshot{BlockedConditionIDs: []string{}}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return s
	}

	if v, ok := decodeInt(fields["schemaVersion"]); ok {
		s.SchemaVersion = v
	}
	if ids := decodeStrings(fields["blockedConditionIds"]); ids != nil {
		s.BlockedConditionIDs = ids
	}

	if v := decodeString(fields["businessType"]); v != nil && BusinessType(*v).Valid() {
		s.BusinessType = ptr(BusinessType(*v))
	}
	if v := decodeString(fields["storeType"]); v != nil && StoreType(*v).Valid() {
		s.StoreType = ptr(StoreType(*v))
	}
	s.UsesDelivery = decodeBool(fields["usesDelivery"])
	s.ContractObligationCleared = decodeBool(fields["contractObligationCleared"])
	s.WillReplaceDevice = decodeBool(fields["willReplaceDevice"])
	if v := decodeString(fields["currentPosPlatform"]); v != nil && PosPlatform(*v).Valid() {
		s.CurrentPosPlatform = ptr(PosPlatform(*v))
	}
	s.SelectedVan = decodeString(fields["selectedVan"])
	s.SelectedTerminal = decodeString(fields["selectedTerminal"])
	if v := decodeString(fields["outcome"]); v != nil && RecommendationKey(*v).Valid() {
		s.Outcome = ptr(RecommendationKey(*v))
	}
	return s
}

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || string(raw) == "null"
}

func decodeInt(raw json.RawMessage) (int, bool) {
	if isNull(raw) {
		return 0, false
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return 0, false
	}
	return int(f), true
}

func decodeString(raw json.RawMessage) *string {
	if isNull(raw) {
		return nil
	}
	var v string
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil
	}
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}

// decodeBool accepts JSON booleans and the legacy yes/no strings.
func decodeBool(raw json.RawMessage) *bool {
	if isNull(raw) {
		return nil
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return &b
	}
	if s := decodeString(raw); s != nil {
		if v, ok := ParseYesNo(*s); ok {
			return &v
		}
	}
	return nil
}

func decodeStrings(raw json.RawMessage) []string {
	if isNull(raw) {
		return nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}
	var out []string
	for _, item := range items {
		if s := decodeString(item); s != nil {
			out = append(out, *s)
		}
	}
	return normalizeIDs(out)
}
