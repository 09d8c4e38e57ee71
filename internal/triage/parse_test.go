package triage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAnswer(t *testing.T) {
	tests := []struct {
		q    Question
		raw  string
		want Answer
	}{
		{QuestionBusinessType, "food", BusinessTypeAnswer{Value: BusinessFood}},
		{QuestionBusinessType, " NON_FOOD ", BusinessTypeAnswer{Value: BusinessNonFood}},
		{QuestionStoreType, "existing", StoreTypeAnswer{Value: StoreExisting}},
		{QuestionUsesDelivery, "yes", DeliveryAnswer{UsesDelivery: true}},
		{QuestionContractCleared, "no", ContractAnswer{Cleared: false}},
		{QuestionWillReplaceDevice, "true", ReplacementAnswer{WillReplace: true}},
		{QuestionPosPlatform, "Android", PlatformAnswer{Platform: PlatformAndroid}},
		{QuestionVan, "kicc", VanAnswer{Van: "KICC"}},
		{QuestionTerminal, " TS-114A ", TerminalAnswer{Terminal: "TS-114A"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.q)+"/"+tt.raw, func(t *testing.T) {
			got, err := ParseAnswer(tt.q, tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseAnswer_Invalid(t *testing.T) {
	tests := []struct {
		q   Question
		raw string
	}{
		{QuestionBusinessType, "retail"},
		{QuestionStoreType, ""},
		{QuestionUsesDelivery, "maybe"},
		{QuestionPosPlatform, "ios"},
		{QuestionVan, "  "},
		{QuestionTerminal, ""},
		{Question("colour"), "red"},
		{QuestionNone, "x"},
	}

	for _, tt := range tests {
		t.Run(string(tt.q)+"/"+tt.raw, func(t *testing.T) {
			_, err := ParseAnswer(tt.q, tt.raw)
			assert.ErrorIs(t, err, ErrInvalidAnswer)
		})
	}
}

func TestParseYesNo(t *testing.T) {
	for _, raw := range []string{"yes", "Y", "TRUE"} {
		v, ok := ParseYesNo(raw)
		assert.True(t, ok, raw)
		assert.True(t, v, raw)
	}
	for _, raw := range []string{"no", "n", "False"} {
		v, ok := ParseYesNo(raw)
		assert.True(t, ok, raw)
		assert.False(t, v, raw)
	}
	_, ok := ParseYesNo("perhaps")
	assert.False(t, ok)
}
