package triage

// Resolve maps a state to its recommendation, or nil when the state is
// blocked, out of scope (non-food), or missing answers. Rules are evaluated in
// order and the first match wins.
//
// VAN and terminal compatibility are deliberately not folded in: an android
// store resolves to ExistingAndroid whatever CheckCompatibility reports.
func Resolve(s State) *RecommendationKey {
	if s.Blocked() {
		return nil
	}
	if s.BusinessType == nil || *s.BusinessType != BusinessFood {
		return nil
	}
	if s.StoreType == nil {
		return nil
	}

	switch *s.StoreType {
	case StoreNew:
		if s.UsesDelivery == nil {
			return nil
		}
		if *s.UsesDelivery {
			return ptr(NewDelivery)
		}
		return ptr(NewNoDelivery)

	case StoreExisting:
		if s.ContractObligationCleared == nil {
			return nil
		}
		if !*s.ContractObligationCleared {
			return ptr(BlockedContract)
		}
		if s.WillReplaceDevice == nil {
			return nil
		}
		if !*s.WillReplaceDevice {
			return ptr(NeedCompatibilityCheck)
		}
		if s.CurrentPosPlatform == nil {
			return nil
		}
		switch *s.CurrentPosPlatform {
		case PlatformWindows:
			return ptr(ExistingWindows)
		case PlatformAndroid:
			return ptr(ExistingAndroid)
		}
	}

	return nil
}

// IsComplete reports whether the agent has answered enough to proceed to
// filing. Terminal negative outcomes (non-food, contract not cleared, device
// kept) count as complete.
func IsComplete(s State) bool {
	if s.Blocked() || s.BusinessType == nil {
		return false
	}
	if *s.BusinessType == BusinessNonFood {
		return true
	}
	if s.StoreType == nil {
		return false
	}

	switch *s.StoreType {
	case StoreNew:
		return s.UsesDelivery != nil
	case StoreExisting:
		if s.ContractObligationCleared == nil {
			return false
		}
		if !*s.ContractObligationCleared {
			return true
		}
		if s.WillReplaceDevice == nil {
			return false
		}
		if !*s.WillReplaceDevice {
			return true
		}
		return s.CurrentPosPlatform != nil
	}
	return false
}
