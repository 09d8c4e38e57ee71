package triage

import (
	"fmt"
	"strings"
)

// ParseAnswer converts a raw UI value into a typed answer for q. Boolean
// questions accept "yes"/"no" as well as "true"/"false".
func ParseAnswer(q Question, raw string) (Answer, error) {
	v := strings.TrimSpace(raw)

	switch q {
	case QuestionBusinessType:
		bt := BusinessType(strings.ToLower(v))
		if !bt.Valid() {
			return nil, fmt.Errorf("%w: business type %q", ErrInvalidAnswer, raw)
		}
		return BusinessTypeAnswer{Value: bt}, nil

	case QuestionStoreType:
		st := StoreType(strings.ToLower(v))
		if !st.Valid() {
			return nil, fmt.Errorf("%w: store type %q", ErrInvalidAnswer, raw)
		}
		return StoreTypeAnswer{Value: st}, nil

	case QuestionUsesDelivery, QuestionContractCleared, QuestionWillReplaceDevice:
		b, ok := ParseYesNo(v)
		if !ok {
			return nil, fmt.Errorf("%w: %s expects yes or no, got %q", ErrInvalidAnswer, q, raw)
		}
		switch q {
		case QuestionUsesDelivery:
			return DeliveryAnswer{UsesDelivery: b}, nil
		case QuestionContractCleared:
			return ContractAnswer{Cleared: b}, nil
		default:
			return ReplacementAnswer{WillReplace: b}, nil
		}

	case QuestionPosPlatform:
		p := PosPlatform(strings.ToLower(v))
		if !p.Valid() {
			return nil, fmt.Errorf("%w: pos platform %q", ErrInvalidAnswer, raw)
		}
		return PlatformAnswer{Platform: p}, nil

	case QuestionVan:
		if v == "" {
			return nil, fmt.Errorf("%w: empty van", ErrInvalidAnswer)
		}
		return VanAnswer{Van: strings.ToUpper(v)}, nil

	case QuestionTerminal:
		if v == "" {
			return nil, fmt.Errorf("%w: empty terminal", ErrInvalidAnswer)
		}
		return TerminalAnswer{Terminal: v}, nil
	}

	return nil, fmt.Errorf("%w: unknown question %q", ErrInvalidAnswer, q)
}

// ParseYesNo maps the UI's yes/no literals to a bool.
func ParseYesNo(raw string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "yes", "y", "true":
		return true, true
	case "no", "n", "false":
		return false, true
	}
	return false, false
}
