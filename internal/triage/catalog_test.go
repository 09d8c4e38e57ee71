package triage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog_VanCompatibility(t *testing.T) {
	c := DefaultCatalog()

	assert.False(t, c.IsCompatibleVan("KSNET"))
	assert.True(t, c.IsIncompatibleVan("KSNET"))
	assert.True(t, c.IsCompatibleVan("KICC"))
	assert.False(t, c.IsIncompatibleVan("KICC"))
	assert.False(t, c.IsCompatibleVan("UNKNOWN-VAN"))
	assert.False(t, c.IsIncompatibleVan("UNKNOWN-VAN"))

	assert.Contains(t, c.TerminalsFor("KICC"), "TS-114A")
	assert.True(t, c.IsCompatibleTerminal("KICC", "TS-114A"))
	assert.False(t, c.IsCompatibleTerminal("KICC", "unknown-model"))
	assert.False(t, c.IsCompatibleTerminal("KSNET", "TS-114A"))
}

func TestDefaultCatalog_TerminalsFor(t *testing.T) {
	c := DefaultCatalog()

	tests := []struct {
		name string
		van  string
		want []string
	}{
		{name: "compatible van keeps display order", van: "KICC", want: []string{"TS-114A", "ED-785", "ED-955"}},
		{name: "compatible van without enumerated terminals", van: "KCP", want: []string{}},
		{name: "incompatible van", van: "KSNET", want: []string{}},
		{name: "unknown van", van: "nope", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.TerminalsFor(tt.van)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDefaultCatalog_TerminalsForReturnsCopy(t *testing.T) {
	c := DefaultCatalog()

	got := c.TerminalsFor("KICC")
	got[0] = "tampered"

	assert.Equal(t, "TS-114A", c.TerminalsFor("KICC")[0])
}

func TestDefaultCatalog_EveryKeyHasTemplate(t *testing.T) {
	c := DefaultCatalog()

	for _, key := range AllRecommendationKeys() {
		t.Run(string(key), func(t *testing.T) {
			var tpl RecommendationTemplate
			require.NotPanics(t, func() { tpl = c.TemplateFor(key) })
			assert.Equal(t, key, tpl.Key)
			assert.NotEmpty(t, tpl.Title)
			assert.NotEmpty(t, tpl.Items)
			assert.Contains(t, []Severity{SeverityInfo, SeveritySuccess, SeverityWarning, SeverityBlocked}, tpl.Severity)
		})
	}
}

func TestDefaultCatalog_TemplateSeverities(t *testing.T) {
	c := DefaultCatalog()

	assert.Equal(t, SeverityBlocked, c.TemplateFor(BlockedContract).Severity)
	assert.Equal(t, SeverityWarning, c.TemplateFor(NeedCompatibilityCheck).Severity)
	assert.Equal(t, SeveritySuccess, c.TemplateFor(NewDelivery).Severity)
}

func TestDefaultCatalog_BlockConditions(t *testing.T) {
	c := DefaultCatalog()

	conditions := c.BlockConditions()
	require.NotEmpty(t, conditions)

	groups := map[ConditionGroup]int{}
	for _, cond := range conditions {
		assert.NotEmpty(t, cond.ID)
		assert.NotEmpty(t, cond.Label)
		groups[cond.Group]++

		got, ok := c.BlockCondition(cond.ID)
		assert.True(t, ok)
		assert.Equal(t, cond, got)
	}
	assert.Positive(t, groups[GroupDevice])
	assert.Positive(t, groups[GroupService])
	assert.Len(t, groups, 2)

	_, ok := c.BlockCondition("does_not_exist")
	assert.False(t, ok)
}

func TestDefaultCatalog_VanListsAreDisjoint(t *testing.T) {
	c := DefaultCatalog()

	for _, van := range c.CompatibleVans() {
		assert.False(t, c.IsIncompatibleVan(van), van)
	}
	for _, van := range c.IncompatibleVans() {
		assert.False(t, c.IsCompatibleVan(van), van)
		assert.Empty(t, c.TerminalsFor(van))
	}
}

func TestNewTables_Rejects(t *testing.T) {
	tests := []struct {
		name string
		spec TablesSpec
		want string
	}{
		{
			name: "duplicate condition",
			spec: TablesSpec{BlockConditions: []BlockCondition{{ID: "a"}, {ID: "a"}}},
			want: "duplicate block condition",
		},
		{
			name: "van on both lists",
			spec: TablesSpec{
				CompatibleVans:   map[string][]string{"KICC": {"TS-114A"}},
				IncompatibleVans: []string{"KICC"},
			},
			want: "both compatible and incompatible",
		},
		{
			name: "unknown template key",
			spec: TablesSpec{Templates: []RecommendationTemplate{{Key: "bogus"}}},
			want: "unknown recommendation key",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTables(tt.spec)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestTables_TemplateForMissingKeyPanics(t *testing.T) {
	tables, err := NewTables(TablesSpec{})
	require.NoError(t, err)

	assert.Panics(t, func() { tables.TemplateFor(NewDelivery) })
}
